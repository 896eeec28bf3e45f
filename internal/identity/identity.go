// Package identity carries the authenticated caller through a request's
// context.Context.
package identity

import (
	"context"

	"github.com/BruksfildServices01/medifind/internal/models"
)

// Caller is the verified identity attached by the authentication gate.
// It is a value copy of the user without the password hash.
type Caller struct {
	ID    uint
	Name  string
	Email string
	Role  string
}

func FromUser(u *models.User) Caller {
	return Caller{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  models.NormalizeRole(u.Role),
	}
}

func (c Caller) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}

// HasRole reports whether the caller's role is one of roles. Aliases are
// folded on both sides.
func (c Caller) HasRole(roles ...string) bool {
	for _, r := range roles {
		if models.NormalizeRole(r) == c.Role {
			return true
		}
	}
	return false
}

type contextKey struct{}

func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

func FromContext(ctx context.Context) (Caller, bool) {
	c, ok := ctx.Value(contextKey{}).(Caller)
	return c, ok
}
