package model

import (
	"time"

	"github.com/secmon-lab/safetydocs/pkg/domain/types"
)

// AuditEntry is written in the same transaction as the mutation it describes
type AuditEntry struct {
	ID           types.AuditID `json:"id"`
	ActorID      types.UserID  `json:"actor_id"`
	Action       string        `json:"action"`
	ResourceKind string        `json:"resource_kind"`
	ResourceID   string        `json:"resource_id"`
	Detail       string        `json:"detail,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
}
