package model

import (
	"time"

	"github.com/secmon-lab/safetydocs/pkg/domain/types"
)

// HazardTemplate is a reusable set of hazards that can be copied into projects
type HazardTemplate struct {
	ID            types.TemplateID    `json:"id"`
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	Category      string              `json:"category"`
	Season        types.Season        `json:"season"`
	IndoorOutdoor types.IndoorOutdoor `json:"indoor_outdoor"`
	Active        bool                `json:"active"`
	CreatedBy     types.UserID        `json:"created_by"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// Applies reports whether the template matches the given filter values.
// Empty filter values match everything.
func (t *HazardTemplate) Applies(season types.Season, indoorOutdoor types.IndoorOutdoor) bool {
	return t.Season.Matches(season) && t.IndoorOutdoor.Matches(indoorOutdoor)
}

// ProjectTemplate records that a template was copied into a project
type ProjectTemplate struct {
	ProjectID  types.ProjectID  `json:"project_id"`
	TemplateID types.TemplateID `json:"template_id"`
	AppliedAt  time.Time        `json:"applied_at"`
	AppliedBy  types.UserID     `json:"applied_by"`
}
