// Package identity models the authenticated caller supplied by the auth
// collaborator. The core trusts it and performs no credential checks.
package identity

import (
	"strings"

	"github.com/google/uuid"
)

type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleTutor   Role = "TUTOR"
	RoleAdmin   Role = "ADMIN"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTutor, RoleAdmin:
		return true
	}
	return false
}

func ParseRole(s string) Role {
	return Role(strings.ToUpper(strings.TrimSpace(s)))
}

type Status string

const (
	StatusActive Status = "ACTIVE"
	StatusBanned Status = "BANNED"
)

// Identity is the caller. For tutors ProfileID is the tutor profile id.
type Identity struct {
	ProfileID uuid.UUID `json:"profile_id"`
	Role      Role      `json:"role"`
	Status    Status    `json:"status"`
}

func (i Identity) Is(role Role) bool {
	return i.Role == role
}

// ContextKey is where the auth middleware stores the Identity.
const ContextKey = "identity"

// Getter is satisfied by *gin.Context.
type Getter interface {
	Get(key any) (any, bool)
}

// FromContext returns the identity stored by the auth middleware.
func FromContext(c Getter) (Identity, bool) {
	v, ok := c.Get(ContextKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	if !ok || id.ProfileID == uuid.Nil {
		return Identity{}, false
	}
	return id, true
}
