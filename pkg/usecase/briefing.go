package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/safetydocs/pkg/domain/model"
	"github.com/secmon-lab/safetydocs/pkg/domain/model/config"
	"github.com/secmon-lab/safetydocs/pkg/domain/policy"
	"github.com/secmon-lab/safetydocs/pkg/domain/types"
)

type BriefingUseCase struct {
	*base
	defaults config.BriefingDefaults
}

type BriefingItemInput struct {
	Section   string
	Icon      string
	Text      string
	SortOrder int
}

type BriefingInput struct {
	Title              string
	EventName          string
	DateAndLocation    string
	Content            string
	Organisation       string
	AllgemeineHinweise string
	NotfaelleRaeumung  string
	ZusaetzlicheRegeln string
	// Items replaces the item list when non-nil. On update a nil Items
	// keeps the current items.
	Items []BriefingItemInput
}

func (in *BriefingInput) apply(b *model.Briefing) {
	b.Title = strings.TrimSpace(in.Title)
	b.EventName = in.EventName
	b.DateAndLocation = in.DateAndLocation
	b.Content = in.Content
	b.Organisation = in.Organisation
	b.AllgemeineHinweise = in.AllgemeineHinweise
	b.NotfaelleRaeumung = in.NotfaelleRaeumung
	b.ZusaetzlicheRegeln = in.ZusaetzlicheRegeln

	if in.Items != nil {
		b.Items = make([]*model.BriefingItem, 0, len(in.Items))
		for _, item := range in.Items {
			if strings.TrimSpace(item.Text) == "" {
				continue
			}
			b.Items = append(b.Items, &model.BriefingItem{
				ID:        types.NewBriefingItemID(),
				Section:   item.Section,
				Icon:      item.Icon,
				Text:      item.Text,
				SortOrder: item.SortOrder,
			})
		}
		model.SortBriefingItems(b.Items)
	}
}

func (uc *BriefingUseCase) List(ctx context.Context, projectID types.ProjectID) ([]*model.Briefing, error) {
	if _, _, err := uc.authorizeProject(ctx, projectID, policy.KindContent, policy.ActionRead); err != nil {
		return nil, err
	}

	briefings, err := uc.repo.Briefing().ListByProject(ctx, projectID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list briefings", goerr.V(ProjectIDKey, projectID))
	}
	return briefings, nil
}

func (uc *BriefingUseCase) Get(ctx context.Context, id types.BriefingID) (*model.Briefing, error) {
	b, err := uc.repo.Briefing().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get briefing", goerr.V(BriefingIDKey, id))
	}
	if _, _, err := uc.authorizeProject(ctx, b.ProjectID, policy.KindContent, policy.ActionRead); err != nil {
		return nil, err
	}
	return b, nil
}

func (uc *BriefingUseCase) Create(ctx context.Context, projectID types.ProjectID, in BriefingInput) (*model.Briefing, error) {
	_, actor, err := uc.authorizeProject(ctx, projectID, policy.KindContent, policy.ActionCreate)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	b := &model.Briefing{
		ID:        types.NewBriefingID(),
		ProjectID: projectID,
		Items:     []*model.BriefingItem{},
		CreatedBy: actor.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	in.apply(b)

	return uc.save(ctx, b, uc.audit(actor, "create_briefing", ResourceBriefing, b.ID.String(), projectID.String()))
}

func (uc *BriefingUseCase) Update(ctx context.Context, id types.BriefingID, in BriefingInput) (*model.Briefing, error) {
	b, err := uc.repo.Briefing().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get briefing", goerr.V(BriefingIDKey, id))
	}
	_, actor, err := uc.authorizeProject(ctx, b.ProjectID, policy.KindContent, policy.ActionUpdate)
	if err != nil {
		return nil, err
	}

	in.apply(b)
	b.UpdatedAt = uc.now()

	return uc.save(ctx, b, uc.audit(actor, "update_briefing", ResourceBriefing, id.String(), b.ProjectID.String()))
}

func (uc *BriefingUseCase) Delete(ctx context.Context, id types.BriefingID) error {
	b, err := uc.repo.Briefing().Get(ctx, id)
	if err != nil {
		return goerr.Wrap(err, "failed to get briefing", goerr.V(BriefingIDKey, id))
	}
	_, actor, err := uc.authorizeProject(ctx, b.ProjectID, policy.KindContent, policy.ActionDelete)
	if err != nil {
		return err
	}

	entry := uc.audit(actor, "delete_briefing", ResourceBriefing, id.String(), b.ProjectID.String())
	if err := uc.commit(ctx, entry, func(ctx context.Context) error {
		return uc.repo.Briefing().Delete(ctx, id)
	}); err != nil {
		return goerr.Wrap(err, "failed to delete briefing", goerr.V(BriefingIDKey, id))
	}
	return nil
}

// Generate creates a briefing for the project filled with the standard
// rules for productions and events.
func (uc *BriefingUseCase) Generate(ctx context.Context, projectID types.ProjectID) (*model.Briefing, error) {
	project, actor, err := uc.authorizeProject(ctx, projectID, policy.KindContent, policy.ActionCreate)
	if err != nil {
		return nil, err
	}

	d := uc.defaults
	title := "Sicherheitsunterweisung - " + project.Name
	if d.Title != "" {
		title = d.Title
	}

	in := BriefingInput{
		Title:              title,
		EventName:          project.Name,
		DateAndLocation:    dateAndLocation(project),
		Organisation:       d.Organisation,
		AllgemeineHinweise: d.AllgemeineHinweise,
		NotfaelleRaeumung:  d.NotfaelleRaeumung,
		ZusaetzlicheRegeln: d.ZusaetzlicheRegeln,
		Items:              make([]BriefingItemInput, len(d.Items)),
	}
	for i, item := range d.Items {
		in.Items[i] = BriefingItemInput{Section: item.Section, Icon: item.Icon, Text: item.Text, SortOrder: i + 1}
	}

	now := uc.now()
	b := &model.Briefing{
		ID:        types.NewBriefingID(),
		ProjectID: projectID,
		CreatedBy: actor.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	in.apply(b)

	return uc.save(ctx, b, uc.audit(actor, "generate_briefing", ResourceBriefing, b.ID.String(), projectID.String()))
}

func (uc *BriefingUseCase) save(ctx context.Context, b *model.Briefing, entry *model.AuditEntry) (*model.Briefing, error) {
	if err := uc.commit(ctx, entry, func(ctx context.Context) error {
		return uc.repo.Briefing().Put(ctx, b)
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to save briefing", goerr.V(BriefingIDKey, b.ID))
	}
	return b, nil
}

// dateAndLocation renders "dd.mm.yyyy / location", leaving out what is unset
func dateAndLocation(p *model.Project) string {
	var parts []string
	if p.StartDate != nil {
		parts = append(parts, p.StartDate.Format("02.01.2006"))
	}
	if p.Location != "" {
		parts = append(parts, p.Location)
	}
	return strings.Join(parts, " / ")
}
