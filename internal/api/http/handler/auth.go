package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/avshem/docvault/internal/logger"
	"github.com/avshem/docvault/internal/model"
)

// AuthService defines user registration and login operations.
type AuthService interface {
	Login(ctx context.Context, login, pwd string) (int64, error)
	Register(ctx context.Context, login, pwd string) (model.User, error)
}

// Auth handles HTTP endpoints for authentication.
type Auth struct {
	authService AuthService
	sessions    model.SessionManager
	logger      *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, sessions model.SessionManager, logger *logger.Logger) *Auth {
	return &Auth{
		authService: authService,
		sessions:    sessions,
		logger:      logger,
	}
}

type credentialsRequest struct {
	Login string `json:"login"`
	Pwd   string `json:"pwd"`
}

// Login verifies credentials and sets the identity cookie on success.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": "invalid request body"})
		return
	}

	userID, err := h.authService.Login(r.Context(), req.Login, req.Pwd)
	if err != nil {
		handleError(w, err)
		return
	}

	if err := h.sessions.Issue(w, userID); err != nil {
		h.logger.Error("Auth handler: failed to issue session", "error", err.Error())
		RespondJSON(w, http.StatusInternalServerError, map[string]any{"ok": false, "error": "internal server error"})
		return
	}

	RespondJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// Register creates a new account. It never authenticates the caller; a
// separate login request is required.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": "invalid request body"})
		return
	}

	if req.Login == "" || req.Pwd == "" {
		RespondJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": "login and password are required"})
		return
	}

	if _, err := h.authService.Register(r.Context(), req.Login, req.Pwd); err != nil {
		handleError(w, err)
		return
	}

	RespondJSON(w, http.StatusCreated, map[string]any{"ok": true})
}

// Logout clears the identity cookie. Idempotent: logging out without a
// session still succeeds.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Revoke(w)
	RespondJSON(w, http.StatusOK, map[string]any{"ok": true})
}
