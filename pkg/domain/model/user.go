package model

import (
	"time"

	"github.com/secmon-lab/safetydocs/pkg/domain/types"
)

// User is a member of the organisation. Credentials are managed by the
// external identity provider; only the profile and role live here.
type User struct {
	ID        types.UserID `json:"id"`
	Email     string       `json:"email"`
	FirstName string       `json:"first_name"`
	LastName  string       `json:"last_name"`
	Role      types.Role   `json:"role"`
	Active    bool         `json:"active"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// FullName returns "First Last", trimmed when either part is empty
func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}
