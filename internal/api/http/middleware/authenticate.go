package middleware

import (
	"net/http"

	"github.com/avshem/docvault/internal/api/http/handler"
	"github.com/avshem/docvault/internal/logger"
	"github.com/avshem/docvault/internal/model"
)

// Authenticate validates the identity cookie and injects verified claims
// into the request context.
type Authenticate struct {
	sessions       model.SessionManager
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(sessions model.SessionManager, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{sessions: sessions, contextManager: contextManager, logger: logger}
}

// Handle rejects requests without a valid identity cookie. An invalid
// cookie is indistinguishable from a missing one.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := m.sessions.Validate(r)
		if !ok {
			handler.RespondJSON(w, http.StatusUnauthorized, map[string]any{"ok": false, "error": "authentication required"})
			return
		}

		ctx := m.contextManager.SetClaimsToContext(r.Context(), claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
