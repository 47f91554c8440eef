package usecase

import (
	"errors"

	"github.com/secmon-lab/safetydocs/pkg/domain/interfaces"
)

// Sentinel errors for use case layer
var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidInput     = errors.New("invalid input")
	ErrConflict         = errors.New("conflict")
	ErrInactiveUser     = errors.New("user is inactive")
	ErrUnauthenticated  = errors.New("unauthenticated")

	// ErrNotFound is shared with the repositories, so a missing record
	// reported by either backend matches it.
	ErrNotFound = interfaces.ErrNotFound
)

// Context keys for error values
const (
	UserIDKey        = "user_id"
	ProjectIDKey     = "project_id"
	AreaIDKey        = "area_id"
	TemplateIDKey    = "template_id"
	HazardIDKey      = "hazard_id"
	ParticipantIDKey = "participant_id"
	BriefingIDKey    = "briefing_id"
	ReasonKey        = "reason"
	FieldKey         = "field"
)
