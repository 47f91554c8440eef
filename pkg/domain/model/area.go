package model

import (
	"time"

	"github.com/secmon-lab/safetydocs/pkg/domain/types"
)

// Area (Bereich) is an organisational subdivision used to group hazards
type Area struct {
	ID          types.AreaID `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	SortOrder   int          `json:"sort_order"`
	CreatedAt   time.Time    `json:"created_at"`
}

// AreaAssignment names the area lead (bereichsleiter) responsible for an
// area within one project. There is at most one per (area, project).
type AreaAssignment struct {
	AreaID    types.AreaID    `json:"area_id"`
	ProjectID types.ProjectID `json:"project_id"`
	UserID    types.UserID    `json:"user_id"`
	Notes     string          `json:"notes"`
	UpdatedAt time.Time       `json:"updated_at"`
}
