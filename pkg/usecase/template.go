package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/safetydocs/pkg/domain/model"
	"github.com/secmon-lab/safetydocs/pkg/domain/policy"
	"github.com/secmon-lab/safetydocs/pkg/domain/types"
)

type TemplateUseCase struct {
	*base
	riskScaleMax int
}

type TemplateInput struct {
	Name          string
	Description   string
	Category      string
	Season        types.Season
	IndoorOutdoor types.IndoorOutdoor
	// Active defaults to true on create and is left unchanged on update
	// when nil.
	Active *bool
}

func (in *TemplateInput) normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return invalid("template name is required", "name")
	}
	if in.Season == "" {
		in.Season = types.SeasonAll
	}
	if !in.Season.IsValidForTemplate() {
		return invalid("unknown season", "season")
	}
	if in.IndoorOutdoor == "" {
		in.IndoorOutdoor = types.IndoorOutdoorAll
	}
	if !in.IndoorOutdoor.IsValidForTemplate() {
		return invalid("unknown indoor/outdoor value", "indoor_outdoor")
	}
	return nil
}

// TemplateFilter selects templates for a season and setting. Empty values
// match everything; templates tagged "alle" match every value.
type TemplateFilter struct {
	Season          types.Season
	IndoorOutdoor   types.IndoorOutdoor
	IncludeInactive bool
}

func (uc *TemplateUseCase) List(ctx context.Context, filter TemplateFilter) ([]*model.HazardTemplate, error) {
	if _, err := authorize(ctx, policy.ActionRead, policy.Resource{Kind: policy.KindTemplate}); err != nil {
		return nil, err
	}

	templates, err := uc.repo.Template().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list templates")
	}

	out := make([]*model.HazardTemplate, 0, len(templates))
	for _, t := range templates {
		if !t.Active && !filter.IncludeInactive {
			continue
		}
		if t.Applies(filter.Season, filter.IndoorOutdoor) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (uc *TemplateUseCase) Get(ctx context.Context, id types.TemplateID) (*model.HazardTemplate, error) {
	if _, err := authorize(ctx, policy.ActionRead, policy.Resource{Kind: policy.KindTemplate}); err != nil {
		return nil, err
	}

	tmpl, err := uc.repo.Template().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get template", goerr.V(TemplateIDKey, id))
	}
	return tmpl, nil
}

func (uc *TemplateUseCase) Create(ctx context.Context, in TemplateInput) (*model.HazardTemplate, error) {
	actor, err := authorize(ctx, policy.ActionCreate, policy.Resource{Kind: policy.KindTemplate})
	if err != nil {
		return nil, err
	}
	if err := in.normalize(); err != nil {
		return nil, err
	}

	now := uc.now()
	tmpl := &model.HazardTemplate{
		ID:            types.NewTemplateID(),
		Name:          in.Name,
		Description:   in.Description,
		Category:      in.Category,
		Season:        in.Season,
		IndoorOutdoor: in.IndoorOutdoor,
		Active:        in.Active == nil || *in.Active,
		CreatedBy:     actor.UserID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	entry := uc.audit(actor, "create_template", ResourceTemplate, tmpl.ID.String(), tmpl.Name)
	if err := uc.commit(ctx, entry, func(ctx context.Context) error {
		return uc.repo.Template().Put(ctx, tmpl)
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to create template")
	}
	return tmpl, nil
}

func (uc *TemplateUseCase) Update(ctx context.Context, id types.TemplateID, in TemplateInput) (*model.HazardTemplate, error) {
	actor, err := authorize(ctx, policy.ActionUpdate, policy.Resource{Kind: policy.KindTemplate})
	if err != nil {
		return nil, err
	}
	if err := in.normalize(); err != nil {
		return nil, err
	}

	tmpl, err := uc.repo.Template().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get template", goerr.V(TemplateIDKey, id))
	}
	tmpl.Name = in.Name
	tmpl.Description = in.Description
	tmpl.Category = in.Category
	tmpl.Season = in.Season
	tmpl.IndoorOutdoor = in.IndoorOutdoor
	if in.Active != nil {
		tmpl.Active = *in.Active
	}
	tmpl.UpdatedAt = uc.now()

	entry := uc.audit(actor, "update_template", ResourceTemplate, id.String(), tmpl.Name)
	if err := uc.commit(ctx, entry, func(ctx context.Context) error {
		return uc.repo.Template().Put(ctx, tmpl)
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to update template", goerr.V(TemplateIDKey, id))
	}
	return tmpl, nil
}

// Delete removes the template and its hazards. Hazards already copied into
// projects are not affected.
func (uc *TemplateUseCase) Delete(ctx context.Context, id types.TemplateID) error {
	actor, err := authorize(ctx, policy.ActionDelete, policy.Resource{Kind: policy.KindTemplate})
	if err != nil {
		return err
	}

	entry := uc.audit(actor, "delete_template", ResourceTemplate, id.String(), "")
	err = uc.commit(ctx, entry, func(ctx context.Context) error {
		hazards, err := uc.repo.Hazard().ListByTemplate(ctx, id)
		if err != nil {
			return err
		}
		for _, h := range hazards {
			if err := uc.repo.Hazard().Delete(ctx, h.ID); err != nil {
				return err
			}
		}
		return uc.repo.Template().Delete(ctx, id)
	})
	if err != nil {
		return goerr.Wrap(err, "failed to delete template", goerr.V(TemplateIDKey, id))
	}
	return nil
}

func (uc *TemplateUseCase) ListHazards(ctx context.Context, id types.TemplateID) ([]*model.Hazard, error) {
	if _, err := uc.Get(ctx, id); err != nil {
		return nil, err
	}

	hazards, err := uc.repo.Hazard().ListByTemplate(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list template hazards", goerr.V(TemplateIDKey, id))
	}
	return hazards, nil
}

func (uc *TemplateUseCase) AddHazard(ctx context.Context, id types.TemplateID, in HazardInput) (*model.Hazard, error) {
	actor, err := authorize(ctx, policy.ActionUpdate, policy.Resource{Kind: policy.KindTemplate})
	if err != nil {
		return nil, err
	}
	if err := in.validate(uc.riskScaleMax); err != nil {
		return nil, err
	}
	if _, err := uc.repo.Template().Get(ctx, id); err != nil {
		return nil, goerr.Wrap(err, "failed to get template", goerr.V(TemplateIDKey, id))
	}
	if err := checkArea(ctx, uc.base, in.AreaID); err != nil {
		return nil, err
	}

	now := uc.now()
	hazard := &model.Hazard{
		ID:         types.NewHazardID(),
		TemplateID: id,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	in.apply(hazard)

	entry := uc.audit(actor, "create_hazard", ResourceHazard, hazard.ID.String(), id.String())
	if err := uc.commit(ctx, entry, func(ctx context.Context) error {
		existing, err := uc.repo.Hazard().ListByTemplate(ctx, id)
		if err != nil {
			return err
		}
		hazard.Seq = model.NextHazardSeq(existing)
		return uc.repo.Hazard().Put(ctx, hazard)
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to add template hazard", goerr.V(TemplateIDKey, id))
	}
	return hazard, nil
}

// CopyToProject copies every hazard of the template into the project and
// records the link, all in one transaction.
func (uc *TemplateUseCase) CopyToProject(ctx context.Context, projectID types.ProjectID, templateID types.TemplateID) ([]*model.Hazard, error) {
	_, actor, err := uc.authorizeProject(ctx, projectID, policy.KindContent, policy.ActionCreate)
	if err != nil {
		return nil, err
	}

	tmpl, err := uc.repo.Template().Get(ctx, templateID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get template", goerr.V(TemplateIDKey, templateID))
	}

	var copied []*model.Hazard
	entry := uc.audit(actor, "copy_template", ResourceProject, projectID.String(), tmpl.Name)
	err = uc.commit(ctx, entry, func(ctx context.Context) error {
		// Firestore retries this function; start from scratch each time
		copied = nil

		source, err := uc.repo.Hazard().ListByTemplate(ctx, templateID)
		if err != nil {
			return err
		}

		existing, err := uc.repo.Hazard().ListByProject(ctx, projectID)
		if err != nil {
			return err
		}
		seq := model.NextHazardSeq(existing)

		now := uc.now()
		for i, h := range source {
			c := h.CopyForProject(projectID)
			c.Seq = seq + int64(i)
			c.CreatedAt = now
			c.UpdatedAt = now
			if err := uc.repo.Hazard().Put(ctx, c); err != nil {
				return err
			}
			copied = append(copied, c)
		}

		return uc.repo.Template().PutLink(ctx, &model.ProjectTemplate{
			ProjectID:  projectID,
			TemplateID: templateID,
			AppliedAt:  now,
			AppliedBy:  actor.UserID,
		})
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to copy template", goerr.V(ProjectIDKey, projectID), goerr.V(TemplateIDKey, templateID))
	}
	return copied, nil
}
