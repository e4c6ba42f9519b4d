// Package access centralizes the role and ownership checks applied before
// every operation. Checks are pure functions of the authenticated identity;
// they carry no state of their own.
package access

import (
	"github.com/workpulse/attendance-api/internal/models"
	appErrors "github.com/workpulse/attendance-api/pkg/errors"
)

// Identity is the authenticated caller attached to a unit of work by the
// JWT middleware before any resolver runs.
type Identity struct {
	ID    string
	Role  models.Role
	Email string
	Name  string
}

// RequireRole fails when the identity is absent or its role is not allowed.
func RequireRole(identity *Identity, allowed ...models.Role) error {
	if identity == nil {
		return appErrors.ErrUnauthenticated
	}
	for _, role := range allowed {
		if identity.Role == role {
			return nil
		}
	}
	return appErrors.ErrForbidden
}

// CanAccessEmployeeRecord reports whether the identity may read the target
// employee's data: admins always, employees only their own record. A false
// result is not an error; the caller decides whether it becomes Forbidden.
func CanAccessEmployeeRecord(identity *Identity, targetEmployeeID string) bool {
	if identity == nil {
		return false
	}
	if identity.Role == models.RoleAdmin {
		return true
	}
	return identity.Role == models.RoleEmployee && identity.ID == targetEmployeeID
}
