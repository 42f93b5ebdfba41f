// Package access resolves callers and guards role and ownership for every lifecycle operation.
package access

import (
	"errors"
	"fmt"

	"jobportal/internal/models"

	"github.com/google/uuid"
)

var (
	// ErrUnauthenticated means no usable credential was presented.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden means the caller is known but may not perform the action.
	ErrForbidden = errors.New("forbidden")
)

// Principal is the authenticated caller. It is passed explicitly to every service call.
type Principal struct {
	UserID uuid.UUID
	Email  string
	Role   models.Role
}

// Authenticated reports whether p carries a resolved identity.
func (p *Principal) Authenticated() bool {
	return p != nil && p.UserID != uuid.Nil && p.Role.Valid()
}

// RequireRole fails unless p is authenticated and holds one of roles.
func RequireRole(p *Principal, roles ...models.Role) error {
	if !p.Authenticated() {
		return ErrUnauthenticated
	}
	for _, r := range roles {
		if p.Role == r {
			return nil
		}
	}
	return fmt.Errorf("%w: role %s may not perform this action", ErrForbidden, p.Role)
}

// RequireOwner fails unless p is the identity ownerID.
func RequireOwner(p *Principal, ownerID uuid.UUID) error {
	if !p.Authenticated() {
		return ErrUnauthenticated
	}
	if p.UserID != ownerID {
		return fmt.Errorf("%w: caller does not own this resource", ErrForbidden)
	}
	return nil
}

// IsOwner is the non-failing form of RequireOwner.
func IsOwner(p *Principal, ownerID uuid.UUID) bool {
	return RequireOwner(p, ownerID) == nil
}

// RoleLabel is the human form of a role used in messages.
func RoleLabel(r models.Role) string {
	switch r {
	case models.RoleJobSeeker:
		return "job seeker"
	case models.RoleRecruiter:
		return "recruiter"
	default:
		return "unknown"
	}
}
