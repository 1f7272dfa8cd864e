// Package session implements the identity cookie: a signed JWT carrying
// only the user id, set and cleared on the HTTP response.
package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/avshem/docvault/internal/model"
)

// CookieName is the name of the identity cookie.
const CookieName = "dv_session"

// Claims represents session JWT claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"user_id"`
}

var _ model.SessionManager = (*Manager)(nil)

// Manager signs and verifies identity cookies with symmetric HMAC.
type Manager struct {
	secretKey string
	ttl       time.Duration
}

// NewManager creates a session manager with the provided secret key and
// token lifetime.
func NewManager(secretKey string, ttl time.Duration) *Manager {
	return &Manager{secretKey: secretKey, ttl: ttl}
}

// Issue signs a token binding userID and sets it as an HttpOnly cookie.
// A re-issue on the next login overwrites any previous cookie.
func (m *Manager) Issue(w http.ResponseWriter, userID int64) error {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString([]byte(m.secretKey))
	if err != nil {
		return fmt.Errorf("failed to sign session token: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    tokenString,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

// Validate verifies the identity cookie on r. It reports false for a
// missing, malformed, expired or tampered cookie and never returns an
// error: an invalid token is an unauthenticated request, not a failure.
func (m *Manager) Validate(r *http.Request) (model.Claims, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return model.Claims{}, false
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(m.secretKey), nil
	})
	if err != nil || !token.Valid {
		return model.Claims{}, false
	}
	if claims.UserID <= 0 {
		return model.Claims{}, false
	}

	return model.Claims{UserID: claims.UserID}, true
}

// Revoke instructs the client to discard the identity cookie. It is
// idempotent and succeeds even if no cookie was present.
func (m *Manager) Revoke(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
