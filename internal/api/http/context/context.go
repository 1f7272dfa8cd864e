// Package context carries verified session claims through a request
// context.
package context

import (
	"context"

	"github.com/avshem/docvault/internal/model"
)

type contextKey int

const claimsKey contextKey = iota

// Manager implements model.ContextManager over standard request contexts.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetClaimsToContext returns a context carrying the verified claims.
func (m *Manager) SetClaimsToContext(ctx context.Context, claims model.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// GetClaimsFromContext retrieves verified claims from the context. The
// boolean result is false when the request never passed authentication.
func (m *Manager) GetClaimsFromContext(ctx context.Context) (model.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(model.Claims)
	return claims, ok
}
