// Package access holds the single ownership check shared by booking and
// review operations.
package access

import (
	"github.com/google/uuid"

	"tutorhub/internal/pkg/apperr"
	"tutorhub/internal/pkg/identity"
)

// Resource is anything that belongs to one student and one tutor.
type Resource interface {
	StudentRef() uuid.UUID
	TutorRef() uuid.UUID
}

// Relation is what the actor must be to the resource.
type Relation int

const (
	// Participant: the resource's student or tutor. Admins pass.
	Participant Relation = iota
	// AssignedTutor: only the tutor the resource belongs to.
	AssignedTutor
	// OwningStudent: only the student the resource belongs to.
	OwningStudent
)

func (r Relation) deniedMessage() string {
	switch r {
	case AssignedTutor:
		return "Only the assigned tutor can perform this action"
	case OwningStudent:
		return "Only the student of this booking can perform this action"
	default:
		return "Access denied"
	}
}

// Check returns nil when actor holds rel over res, AccessDenied otherwise.
func Check(res Resource, actor identity.Identity, rel Relation) error {
	if allowed(res, actor, rel) {
		return nil
	}
	return apperr.AccessDenied(rel.deniedMessage())
}

// CheckWith is Check with a caller-specific denial message.
func CheckWith(res Resource, actor identity.Identity, rel Relation, message string) error {
	if allowed(res, actor, rel) {
		return nil
	}
	return apperr.AccessDenied(message)
}

func allowed(res Resource, actor identity.Identity, rel Relation) bool {
	if actor.ProfileID == uuid.Nil {
		return false
	}
	switch rel {
	case Participant:
		switch actor.Role {
		case identity.RoleAdmin:
			return true
		case identity.RoleStudent:
			return res.StudentRef() == actor.ProfileID
		case identity.RoleTutor:
			return res.TutorRef() == actor.ProfileID
		}
	case AssignedTutor:
		return actor.Role == identity.RoleTutor && res.TutorRef() == actor.ProfileID
	case OwningStudent:
		return actor.Role == identity.RoleStudent && res.StudentRef() == actor.ProfileID
	}
	return false
}
