package handler

import (
	"errors"
	"net/http"

	"github.com/avshem/docvault/internal/model"
)

// handleError maps service errors to client-visible responses. Internal
// detail never reaches the client; ownership mismatches surface as plain
// not-found.
func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		RespondJSON(w, http.StatusNotFound, map[string]any{"ok": false, "error": "not found"})
	case errors.Is(err, model.ErrConflict):
		RespondJSON(w, http.StatusConflict, map[string]any{"ok": false, "error": "login already taken"})
	case errors.Is(err, model.ErrInvalidCredentials):
		RespondJSON(w, http.StatusUnauthorized, map[string]any{"ok": false})
	case errors.Is(err, model.ErrEmptyContent):
		RespondJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": "file is empty"})
	default:
		RespondJSON(w, http.StatusInternalServerError, map[string]any{"ok": false, "error": "internal server error"})
	}
}
