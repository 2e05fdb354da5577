// Package auth implements JWT cookie authentication: token issuing and
// parsing, the request filter that binds the authenticated principal to the
// request context, and authority-based route guards.
package auth

import (
	"context"

	"github.com/google/uuid"
)

// Principal is the authenticated identity bound to a request.
type Principal struct {
	UserID      uuid.UUID
	Email       string
	Authorities []string
}

// HasAuthority reports whether the principal carries the named authority.
func (p *Principal) HasAuthority(name string) bool {
	for _, a := range p.Authorities {
		if a == name {
			return true
		}
	}
	return false
}

type contextKey struct{}

// WithPrincipal returns a context carrying the principal.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// PrincipalFrom extracts the principal from a context, if present.
func PrincipalFrom(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(contextKey{}).(*Principal)
	return p, ok
}
