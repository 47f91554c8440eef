package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/safetydocs/pkg/domain/model"
	"github.com/secmon-lab/safetydocs/pkg/domain/model/auth"
	"github.com/secmon-lab/safetydocs/pkg/domain/policy"
	"github.com/secmon-lab/safetydocs/pkg/domain/types"
	"github.com/secmon-lab/safetydocs/pkg/service/notify"
	"github.com/secmon-lab/safetydocs/pkg/utils/async"
	"github.com/secmon-lab/safetydocs/pkg/utils/metrics"
)

type HazardUseCase struct {
	*base
	riskScaleMax int
	notifier     notify.Service
	metrics      *metrics.Metrics
}

// HazardInput is the editable part of a hazard. RiskBand is not part of
// it; the band is always derived from Severity and Probability.
type HazardInput struct {
	AreaID        types.AreaID
	Activity      string
	Description   string
	HazardFactors string
	StressFactors string

	Severity    *int
	Probability *int

	Substitution   types.CheckValue
	Technical      types.CheckValue
	Organizational types.CheckValue
	Personal       types.CheckValue

	Mitigation             string
	SubstitutionMeasures   string
	TechnicalMeasures      string
	OrganizationalMeasures string
	PersonalMeasures       string
	EffectivenessReview    string
	Reporting              string
	Remarks                string
	LegalRegulations       string
	DefectsFixed           bool

	SortOrder int
}

func (in *HazardInput) validate(scaleMax int) error {
	in.Activity = strings.TrimSpace(in.Activity)
	in.Description = strings.TrimSpace(in.Description)
	if in.Activity == "" && in.Description == "" {
		return invalid("activity or hazard is required", "activity")
	}
	if err := checkScale(in.Severity, scaleMax, "severity"); err != nil {
		return err
	}
	if err := checkScale(in.Probability, scaleMax, "probability"); err != nil {
		return err
	}
	for field, v := range map[string]types.CheckValue{
		"substitution":   in.Substitution,
		"technical":      in.Technical,
		"organizational": in.Organizational,
		"personal":       in.Personal,
	} {
		if !v.IsValid() {
			return invalid("invalid check value", field)
		}
	}
	return nil
}

func checkScale(v *int, max int, field string) error {
	if v == nil {
		return nil
	}
	if *v < 1 || *v > max {
		return goerr.Wrap(ErrInvalidInput, "value out of risk scale",
			goerr.V(FieldKey, field), goerr.V("value", *v), goerr.V("max", max))
	}
	return nil
}

// apply copies the input and recomputes the risk band
func (in *HazardInput) apply(h *model.Hazard) {
	h.AreaID = in.AreaID
	h.Activity = in.Activity
	h.Description = in.Description
	h.HazardFactors = in.HazardFactors
	h.StressFactors = in.StressFactors
	h.Severity = copyInt(in.Severity)
	h.Probability = copyInt(in.Probability)
	h.Substitution = in.Substitution
	h.Technical = in.Technical
	h.Organizational = in.Organizational
	h.Personal = in.Personal
	h.Mitigation = in.Mitigation
	h.SubstitutionMeasures = in.SubstitutionMeasures
	h.TechnicalMeasures = in.TechnicalMeasures
	h.OrganizationalMeasures = in.OrganizationalMeasures
	h.PersonalMeasures = in.PersonalMeasures
	h.EffectivenessReview = in.EffectivenessReview
	h.Reporting = in.Reporting
	h.Remarks = in.Remarks
	h.LegalRegulations = in.LegalRegulations
	h.DefectsFixed = in.DefectsFixed
	h.SortOrder = in.SortOrder
	h.Reclassify()
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func (uc *HazardUseCase) ListByProject(ctx context.Context, projectID types.ProjectID) ([]*model.Hazard, error) {
	if _, _, err := uc.authorizeProject(ctx, projectID, policy.KindContent, policy.ActionRead); err != nil {
		return nil, err
	}

	hazards, err := uc.repo.Hazard().ListByProject(ctx, projectID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list hazards", goerr.V(ProjectIDKey, projectID))
	}
	return hazards, nil
}

func (uc *HazardUseCase) Create(ctx context.Context, projectID types.ProjectID, in HazardInput) (*model.Hazard, error) {
	project, actor, err := uc.authorizeProject(ctx, projectID, policy.KindContent, policy.ActionCreate)
	if err != nil {
		return nil, err
	}
	if err := in.validate(uc.riskScaleMax); err != nil {
		return nil, err
	}
	if err := uc.checkArea(ctx, in.AreaID); err != nil {
		return nil, err
	}

	now := uc.now()
	hazard := &model.Hazard{
		ID:        types.NewHazardID(),
		ProjectID: projectID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	in.apply(hazard)

	entry := uc.audit(actor, "create_hazard", ResourceHazard, hazard.ID.String(), projectID.String())
	if err := uc.commit(ctx, entry, func(ctx context.Context) error {
		existing, err := uc.repo.Hazard().ListByProject(ctx, projectID)
		if err != nil {
			return err
		}
		hazard.Seq = model.NextHazardSeq(existing)
		return uc.repo.Hazard().Put(ctx, hazard)
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to create hazard", goerr.V(ProjectIDKey, projectID))
	}

	uc.announce(ctx, project, hazard, types.RiskBandUnset)
	return hazard, nil
}

func (uc *HazardUseCase) Get(ctx context.Context, id types.HazardID) (*model.Hazard, error) {
	hazard, err := uc.repo.Hazard().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get hazard", goerr.V(HazardIDKey, id))
	}
	if _, _, err := uc.authorizeHazard(ctx, hazard, policy.ActionRead); err != nil {
		return nil, err
	}
	return hazard, nil
}

func (uc *HazardUseCase) Update(ctx context.Context, id types.HazardID, in HazardInput) (*model.Hazard, error) {
	hazard, err := uc.repo.Hazard().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get hazard", goerr.V(HazardIDKey, id))
	}
	project, actor, err := uc.authorizeHazard(ctx, hazard, policy.ActionUpdate)
	if err != nil {
		return nil, err
	}
	if err := in.validate(uc.riskScaleMax); err != nil {
		return nil, err
	}
	if err := uc.checkArea(ctx, in.AreaID); err != nil {
		return nil, err
	}

	previous := hazard.RiskBand
	in.apply(hazard)
	hazard.UpdatedAt = uc.now()

	entry := uc.audit(actor, "update_hazard", ResourceHazard, id.String(), string(hazard.RiskBand))
	if err := uc.commit(ctx, entry, func(ctx context.Context) error {
		return uc.repo.Hazard().Put(ctx, hazard)
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to update hazard", goerr.V(HazardIDKey, id))
	}

	if project != nil {
		uc.announce(ctx, project, hazard, previous)
	}
	return hazard, nil
}

func (uc *HazardUseCase) Delete(ctx context.Context, id types.HazardID) error {
	hazard, err := uc.repo.Hazard().Get(ctx, id)
	if err != nil {
		return goerr.Wrap(err, "failed to get hazard", goerr.V(HazardIDKey, id))
	}
	_, actor, err := uc.authorizeHazard(ctx, hazard, policy.ActionDelete)
	if err != nil {
		return err
	}

	entry := uc.audit(actor, "delete_hazard", ResourceHazard, id.String(), "")
	if err := uc.commit(ctx, entry, func(ctx context.Context) error {
		return uc.repo.Hazard().Delete(ctx, id)
	}); err != nil {
		return goerr.Wrap(err, "failed to delete hazard", goerr.V(HazardIDKey, id))
	}
	return nil
}

// authorizeHazard checks against the owning project, or the template
// rules for template hazards. The project is nil for template hazards.
func (uc *HazardUseCase) authorizeHazard(ctx context.Context, hazard *model.Hazard, action policy.Action) (*model.Project, *auth.Actor, error) {
	if hazard.ProjectID != "" {
		return uc.authorizeProject(ctx, hazard.ProjectID, policy.KindContent, action)
	}
	actor, err := authorize(ctx, action, policy.Resource{Kind: policy.KindTemplate})
	if err != nil {
		return nil, nil, goerr.Wrap(err, "template hazard access denied", goerr.V(TemplateIDKey, hazard.TemplateID))
	}
	return nil, actor, nil
}

func (uc *HazardUseCase) checkArea(ctx context.Context, id types.AreaID) error {
	return checkArea(ctx, uc.base, id)
}

func checkArea(ctx context.Context, b *base, id types.AreaID) error {
	if id == "" {
		return nil
	}
	if _, err := b.repo.Area().Get(ctx, id); err != nil {
		if isNotFound(err) {
			return goerr.Wrap(ErrInvalidInput, "unknown area", goerr.V(AreaIDKey, id))
		}
		return goerr.Wrap(err, "failed to get area", goerr.V(AreaIDKey, id))
	}
	return nil
}

// announce reports hazards that became high risk. It never fails the
// request.
func (uc *HazardUseCase) announce(ctx context.Context, project *model.Project, hazard *model.Hazard, previous types.RiskBand) {
	if hazard.RiskBand != types.RiskBandHigh || previous == types.RiskBandHigh {
		return
	}
	uc.metrics.HighRiskHazard()

	if uc.notifier == nil {
		return
	}
	p, h := *project, *hazard
	async.Dispatch(ctx, "high-risk-alert", func(ctx context.Context) error {
		_, err := uc.notifier.HighRisk(ctx, &p, &h)
		return err
	})
}
