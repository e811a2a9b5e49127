package auth

import (
	"context"

	"github.com/blog-personal-api/internal/models"
)

// Principal is the caller of a request. The zero value is anonymous.
type Principal struct {
	UserID        int64
	Role          models.Role
	Authenticated bool
}

// Anonymous is the principal of a request without valid credentials
var Anonymous = Principal{}

// User returns an authenticated principal
func User(id int64, role models.Role) Principal {
	return Principal{UserID: id, Role: role, Authenticated: true}
}

// IsAuthor reports whether the principal holds the Author or Admin role
func (p Principal) IsAuthor() bool {
	return p.Authenticated && p.Role.CanAuthor()
}

// IsAdmin reports whether the principal holds the Admin role
func (p Principal) IsAdmin() bool {
	return p.Authenticated && p.Role == models.RoleAdmin
}

// Owns reports whether the principal is the given user
func (p Principal) Owns(userID int64) bool {
	return p.Authenticated && p.UserID == userID
}

type ctxKeyPrincipal struct{}

// WithPrincipal stores the principal in the context
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxKeyPrincipal{}, p)
}

// PrincipalFrom returns the principal stored in ctx, or Anonymous
func PrincipalFrom(ctx context.Context) Principal {
	p, _ := ctx.Value(ctxKeyPrincipal{}).(Principal)
	return p
}
