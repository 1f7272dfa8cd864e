package model

import "net/http"

// Claims is the verified identity carried by a session cookie. It is
// produced once per request by SessionManager.Validate and passed by value
// through the call chain; no handler parses the cookie itself.
type Claims struct {
	UserID int64
}

// SessionManager issues, validates and revokes the client-held identity
// cookie. Validate never returns an error: a missing, malformed, expired or
// tampered cookie is simply an unauthenticated request.
type SessionManager interface {
	Issue(w http.ResponseWriter, userID int64) error
	Validate(r *http.Request) (Claims, bool)
	Revoke(w http.ResponseWriter)
}
