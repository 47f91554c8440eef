package model

import (
	"time"

	"github.com/secmon-lab/safetydocs/pkg/domain/types"
)

// Participant is a person who has to attend the safety briefing of a project
type Participant struct {
	ID              types.ParticipantID `json:"id"`
	ProjectID       types.ProjectID     `json:"project_id"`
	FirstName       string              `json:"first_name"`
	LastName        string              `json:"last_name"`
	Email           string              `json:"email"`
	Company         string              `json:"company"`
	Position        string              `json:"position"`
	SignatureType   types.SignatureType `json:"signature_type"`
	SignatureData   string              `json:"signature_data,omitempty"`
	SignedAt        *time.Time          `json:"signed_at"`
	ImportedFromCSV bool                `json:"imported_from_csv"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// SignDigital records a digital signature.
func (p *Participant) SignDigital(data string, at time.Time) {
	p.SignatureType = types.SignatureDigital
	p.SignatureData = data
	p.SignedAt = &at
}

// SignAnalog records that the participant signed the printed list.
func (p *Participant) SignAnalog(at time.Time) {
	p.SignatureType = types.SignatureAnalog
	p.SignatureData = ""
	p.SignedAt = &at
}
