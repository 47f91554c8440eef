package model

import (
	"time"

	"github.com/secmon-lab/safetydocs/pkg/domain/types"
)

// Project is an event or production that safety documents are prepared for
type Project struct {
	ID            types.ProjectID     `json:"id"`
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	Location      string              `json:"location"`
	StartDate     *time.Time          `json:"start_date"`
	EndDate       *time.Time          `json:"end_date"`
	Season        types.Season        `json:"season"`
	IndoorOutdoor types.IndoorOutdoor `json:"indoor_outdoor"`
	Status        types.ProjectStatus `json:"status"`
	CreatedBy     types.UserID        `json:"created_by"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// FillSeason sets the season from the start date when none was given.
func (p *Project) FillSeason() {
	if p.Season == "" && p.StartDate != nil {
		p.Season = types.SeasonFromDate(*p.StartDate)
	}
}

// ProjectMember assigns a user to a project
type ProjectMember struct {
	ProjectID  types.ProjectID `json:"project_id"`
	UserID     types.UserID    `json:"user_id"`
	AssignedAt time.Time       `json:"assigned_at"`
}
