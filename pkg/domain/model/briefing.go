package model

import (
	"time"

	"github.com/secmon-lab/safetydocs/pkg/domain/types"
)

// Briefing (Unterweisung) is the safety briefing handed to participants
type Briefing struct {
	ID                 types.BriefingID `json:"id"`
	ProjectID          types.ProjectID  `json:"project_id"`
	Title              string           `json:"title"`
	EventName          string           `json:"event_name"`
	DateAndLocation    string           `json:"date_and_location"`
	Content            string           `json:"content"`
	Organisation       string           `json:"organisation"`
	AllgemeineHinweise string           `json:"allgemeine_hinweise"`
	NotfaelleRaeumung  string           `json:"notfaelle_raeumung"`
	ZusaetzlicheRegeln string           `json:"zusaetzliche_regeln"`
	Items              []*BriefingItem  `json:"items"`
	CreatedBy          types.UserID     `json:"created_by"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// BriefingItem is one bullet of a briefing, tagged with a section and icon
type BriefingItem struct {
	ID        types.BriefingItemID `json:"id"`
	Section   string               `json:"section"`
	Icon      string               `json:"icon"`
	Text      string               `json:"text"`
	SortOrder int                  `json:"sort_order"`
}
