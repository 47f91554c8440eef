package model

import (
	"time"

	"github.com/secmon-lab/safetydocs/pkg/domain/types"
)

// Hazard is one row of a hazard assessment (GBU). It belongs either to a
// template or to a project, never both.
type Hazard struct {
	ID         types.HazardID   `json:"id"`
	TemplateID types.TemplateID `json:"template_id,omitempty"`
	ProjectID  types.ProjectID  `json:"project_id,omitempty"`
	AreaID     types.AreaID     `json:"area_id,omitempty"`

	Activity      string `json:"activity"`
	Description   string `json:"hazard"`
	HazardFactors string `json:"hazard_factors"`
	StressFactors string `json:"stress_factors"`

	Severity    *int           `json:"severity"`
	Probability *int           `json:"probability"`
	RiskBand    types.RiskBand `json:"risk_band"`

	Substitution   types.CheckValue `json:"substitution"`
	Technical      types.CheckValue `json:"technical"`
	Organizational types.CheckValue `json:"organizational"`
	Personal       types.CheckValue `json:"personal"`

	Mitigation             string `json:"mitigation"`
	SubstitutionMeasures   string `json:"substitution_measures"`
	TechnicalMeasures      string `json:"technical_measures"`
	OrganizationalMeasures string `json:"organizational_measures"`
	PersonalMeasures       string `json:"personal_measures"`
	EffectivenessReview    string `json:"effectiveness_review"`
	Reporting              string `json:"reporting"`
	Remarks                string `json:"remarks"`
	LegalRegulations       string `json:"legal_regulations"`
	DefectsFixed           bool   `json:"defects_fixed"`

	SortOrder int `json:"sort_order"`
	// Seq is the position the hazard was added at within its project or
	// template. It breaks ties between equal SortOrder values.
	Seq       int64     `json:"seq"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Reclassify refreshes RiskBand from Severity and Probability. Every write
// path must call it before the hazard is persisted.
func (h *Hazard) Reclassify() {
	h.RiskBand = types.ClassifyRisk(h.Severity, h.Probability)
}

// Score returns severity*probability, or 0 when either is unset.
func (h *Hazard) Score() int {
	if h.Severity == nil || h.Probability == nil {
		return 0
	}
	return *h.Severity * *h.Probability
}

// MitigationText joins the general mitigation note with the per-measure
// notes, in STOP order, skipping empty ones.
func (h *Hazard) MitigationText() string {
	parts := []string{
		h.Mitigation,
		h.SubstitutionMeasures,
		h.TechnicalMeasures,
		h.OrganizationalMeasures,
		h.PersonalMeasures,
	}

	var text string
	for _, p := range parts {
		if p == "" {
			continue
		}
		if text != "" {
			text += "\n"
		}
		text += p
	}
	return text
}

// NextHazardSeq returns the Seq for a hazard appended to hazards.
func NextHazardSeq(hazards []*Hazard) int64 {
	var next int64 = 1
	for _, h := range hazards {
		if h.Seq >= next {
			next = h.Seq + 1
		}
	}
	return next
}

// CopyForProject returns a copy of a template hazard rebound to projectID.
func (h *Hazard) CopyForProject(projectID types.ProjectID) *Hazard {
	c := *h
	c.ID = types.NewHazardID()
	c.TemplateID = ""
	c.ProjectID = projectID
	if h.Severity != nil {
		v := *h.Severity
		c.Severity = &v
	}
	if h.Probability != nil {
		v := *h.Probability
		c.Probability = &v
	}
	c.Reclassify()
	return &c
}
