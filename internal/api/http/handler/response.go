package handler

import (
	"encoding/json"
	"net/http"
)

// RespondJSON writes v as a JSON response body with the given status.
func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // nothing sensible to do once the status is written
	json.NewEncoder(w).Encode(v)
}
