package usecase

import (
	"bytes"
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/safetydocs/pkg/domain/model"
	"github.com/secmon-lab/safetydocs/pkg/domain/policy"
	"github.com/secmon-lab/safetydocs/pkg/domain/types"
	"github.com/secmon-lab/safetydocs/pkg/report"
	"github.com/secmon-lab/safetydocs/pkg/service/archive"
	"github.com/secmon-lab/safetydocs/pkg/utils/async"
	"github.com/secmon-lab/safetydocs/pkg/utils/logging"
	"github.com/secmon-lab/safetydocs/pkg/utils/metrics"
	"golang.org/x/sync/errgroup"
)

type ReportUseCase struct {
	*base
	renderer *report.Renderer
	archive  archive.Service
	metrics  *metrics.Metrics
}

// Report is a rendered PDF document
type Report struct {
	Kind        report.Kind
	FileName    string
	GeneratedAt time.Time
	Data        []byte
}

// HazardOverview renders the hazard assessment (GBU) of a project
func (uc *ReportUseCase) HazardOverview(ctx context.Context, projectID types.ProjectID) (*Report, error) {
	project, _, err := uc.authorizeProject(ctx, projectID, policy.KindContent, policy.ActionRead)
	if err != nil {
		return nil, err
	}

	var (
		hazards []*model.Hazard
		areas   []*model.Area
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		hazards, err = uc.repo.Hazard().ListByProject(egCtx, projectID)
		return err
	})
	eg.Go(func() error {
		var err error
		areas, err = uc.repo.Area().List(egCtx)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, goerr.Wrap(err, "failed to load hazard snapshot", goerr.V(ProjectIDKey, projectID))
	}

	h := uc.header(project)
	doc, err := report.BuildHazardOverview(h, hazardRows(hazards, areas))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build hazard overview", goerr.V(ProjectIDKey, projectID))
	}
	return uc.render(ctx, project.ID, doc)
}

// Roster renders the participant sign-in sheet of a project
func (uc *ReportUseCase) Roster(ctx context.Context, projectID types.ProjectID) (*Report, error) {
	project, _, err := uc.authorizeProject(ctx, projectID, policy.KindContent, policy.ActionRead)
	if err != nil {
		return nil, err
	}

	participants, err := uc.repo.Participant().ListByProject(ctx, projectID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list participants", goerr.V(ProjectIDKey, projectID))
	}

	rows := make([]report.ParticipantRow, len(participants))
	for i, p := range participants {
		rows[i] = report.ParticipantRow{
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Company:   p.Company,
			Position:  p.Position,
		}
	}

	doc, err := report.BuildRoster(uc.header(project), rows)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build roster", goerr.V(ProjectIDKey, projectID))
	}
	return uc.render(ctx, project.ID, doc)
}

// Briefing renders one briefing
func (uc *ReportUseCase) Briefing(ctx context.Context, id types.BriefingID) (*Report, error) {
	b, err := uc.repo.Briefing().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get briefing", goerr.V(BriefingIDKey, id))
	}
	project, _, err := uc.authorizeProject(ctx, b.ProjectID, policy.KindContent, policy.ActionRead)
	if err != nil {
		return nil, err
	}

	content := report.BriefingContent{
		Title:              b.Title,
		EventName:          b.EventName,
		DateAndLocation:    b.DateAndLocation,
		Organisation:       b.Organisation,
		AllgemeineHinweise: b.AllgemeineHinweise,
		NotfaelleRaeumung:  b.NotfaelleRaeumung,
		ZusaetzlicheRegeln: b.ZusaetzlicheRegeln,
		Content:            b.Content,
	}
	items := append([]*model.BriefingItem(nil), b.Items...)
	model.SortBriefingItems(items)
	for _, item := range items {
		content.Items = append(content.Items, report.BriefingLine{Section: item.Section, Icon: item.Icon, Text: item.Text})
	}

	doc, err := report.BuildBriefing(uc.header(project), content)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build briefing", goerr.V(BriefingIDKey, id))
	}
	return uc.render(ctx, project.ID, doc)
}

func (uc *ReportUseCase) header(p *model.Project) report.Header {
	return report.Header{
		Subject:       p.Name,
		Location:      p.Location,
		Date:          p.StartDate,
		Season:        p.Season,
		IndoorOutdoor: p.IndoorOutdoor,
		GeneratedAt:   uc.now(),
	}
}

func (uc *ReportUseCase) render(ctx context.Context, projectID types.ProjectID, doc *report.Document) (*Report, error) {
	var buf bytes.Buffer
	if err := uc.renderer.Render(ctx, doc, &buf); err != nil {
		return nil, goerr.Wrap(err, "failed to render report", goerr.V(ProjectIDKey, projectID), goerr.V("kind", doc.Kind))
	}

	out := &Report{
		Kind:        doc.Kind,
		FileName:    report.FileName(doc.Kind, doc.Subject),
		GeneratedAt: doc.GeneratedAt,
		Data:        buf.Bytes(),
	}
	uc.metrics.ReportRendered(string(out.Kind), len(out.Data))

	if uc.archive != nil {
		obj := archive.Object{
			ProjectID:   projectID.String(),
			Kind:        string(out.Kind),
			FileName:    out.FileName,
			GeneratedAt: out.GeneratedAt,
			Data:        bytes.Clone(out.Data),
		}
		async.Dispatch(ctx, "report-archive", func(ctx context.Context) error {
			location, err := uc.archive.Put(ctx, obj)
			if err != nil {
				uc.metrics.ArchiveFailed()
				return err
			}
			logging.From(ctx).Debug("report archived", "location", location)
			return nil
		})
	}

	return out, nil
}

// hazardRows converts stored hazards into overview rows. Hazards without
// a known area end up in the catch-all group.
func hazardRows(hazards []*model.Hazard, areas []*model.Area) []report.HazardRow {
	names := make(map[types.AreaID]string, len(areas))
	for _, a := range areas {
		names[a.ID] = a.Name
	}

	rows := make([]report.HazardRow, len(hazards))
	for i, h := range hazards {
		rows[i] = report.HazardRow{
			Area:           names[h.AreaID],
			Activity:       h.Activity,
			Hazard:         h.Description,
			Severity:       h.Severity,
			Probability:    h.Probability,
			RiskBand:       h.RiskBand,
			Substitution:   h.Substitution.Bool(),
			Technical:      h.Technical.Bool(),
			Organizational: h.Organizational.Bool(),
			Personal:       h.Personal.Bool(),
			Mitigation:     h.MitigationText(),
		}
	}
	return rows
}
