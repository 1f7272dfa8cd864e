package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpctx "github.com/avshem/docvault/internal/api/http/context"
	"github.com/avshem/docvault/internal/model"
	"github.com/avshem/docvault/internal/session"
	"github.com/avshem/docvault/internal/testutil"
)

func TestAuthenticate_ValidCookie(t *testing.T) {
	sessions := session.NewManager("secret", time.Hour)
	contextManager := httpctx.NewManager()
	mw := NewAuthenticate(sessions, contextManager, testutil.MakeNoopLogger())

	var gotClaims model.Claims
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims, gotOK = contextManager.GetClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	issue := httptest.NewRecorder()
	require.NoError(t, sessions.Issue(issue, 7))

	r := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
	r.AddCookie(issue.Result().Cookies()[0])

	rec := httptest.NewRecorder()
	mw.Handle(next).ServeHTTP(rec, r)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, gotOK)
	assert.Equal(t, int64(7), gotClaims.UserID)
}

func TestAuthenticate_MissingCookie(t *testing.T) {
	sessions := session.NewManager("secret", time.Hour)
	mw := NewAuthenticate(sessions, httpctx.NewManager(), testutil.MakeNoopLogger())

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	r := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
	rec := httptest.NewRecorder()
	mw.Handle(next).ServeHTTP(rec, r)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuthenticate_ForgedCookie(t *testing.T) {
	sessions := session.NewManager("secret", time.Hour)
	mw := NewAuthenticate(sessions, httpctx.NewManager(), testutil.MakeNoopLogger())

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	// Token signed with a different key must be rejected the same way a
	// missing cookie is.
	forged := session.NewManager("other-secret", time.Hour)
	issue := httptest.NewRecorder()
	require.NoError(t, forged.Issue(issue, 7))

	r := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
	r.AddCookie(issue.Result().Cookies()[0])

	rec := httptest.NewRecorder()
	mw.Handle(next).ServeHTTP(rec, r)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestLogging_PassesThrough(t *testing.T) {
	mw := NewLogging(testutil.MakeNoopLogger())

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	})

	r := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
	rec := httptest.NewRecorder()
	mw.Handle(next).ServeHTTP(rec, r)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "short and stout", rec.Body.String())
}
