package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	httpctx "github.com/avshem/docvault/internal/api/http/context"
	"github.com/avshem/docvault/internal/cache"
	"github.com/avshem/docvault/internal/model"
	"github.com/avshem/docvault/internal/service"
	"github.com/avshem/docvault/internal/session"
	"github.com/avshem/docvault/internal/testutil"
)

// In-memory stores backing a full server for end-to-end route tests.

type memUserStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[string]model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[string]model.User)}
}

func (s *memUserStore) GetByLogin(_ context.Context, login string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[login]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return user, nil
}

func (s *memUserStore) GetIDByLogin(ctx context.Context, login string) (int64, error) {
	user, err := s.GetByLogin(ctx, login)
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}

func (s *memUserStore) Create(_ context.Context, user model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.Login]; ok {
		return model.User{}, model.ErrConflict
	}
	s.nextID++
	user.ID = s.nextID
	user.CreatedAt = time.Now()
	s.users[user.Login] = user
	return user, nil
}

type memDocumentStore struct {
	mu        sync.Mutex
	nextID    int64
	documents map[int64]model.Document
}

func newMemDocumentStore() *memDocumentStore {
	return &memDocumentStore{documents: make(map[int64]model.Document)}
}

func (s *memDocumentStore) Create(_ context.Context, document model.Document) (model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	document.ID = s.nextID
	document.UploadedAt = time.Now()
	s.documents[document.ID] = document
	return document, nil
}

func (s *memDocumentStore) GetByOwner(_ context.Context, ownerID int64) ([]model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Document
	for _, document := range s.documents {
		if document.OwnerID == ownerID {
			out = append(out, document)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *memDocumentStore) GetByIDAndOwner(_ context.Context, id, ownerID int64) (model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	document, ok := s.documents[id]
	if !ok || document.OwnerID != ownerID {
		return model.Document{}, model.ErrNotFound
	}
	return document, nil
}

func (s *memDocumentStore) DeleteByIDAndOwner(_ context.Context, id, ownerID int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	document, ok := s.documents[id]
	if !ok || document.OwnerID != ownerID {
		return "", model.ErrNotFound
	}
	delete(s.documents, id)
	return document.BlobKey, nil
}

type memStorage struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{blobs: make(map[string][]byte)}
}

func (s *memStorage) Upload(_ context.Context, key string, reader io.Reader) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = data
	return nil
}

func (s *memStorage) Download(_ context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[key]
	if !ok {
		return nil, model.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *memStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, key)
	return nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	log := testutil.MakeNoopLogger()
	authService := service.NewAuth(newMemUserStore(), cache.NewMemory(), time.Hour, bcrypt.MinCost, log)
	documentService := service.NewDocument(newMemDocumentStore(), newMemStorage(), log)

	handler := New(
		authService,
		documentService,
		session.NewManager("test-secret", time.Hour),
		httpctx.NewManager(),
		1<<20,
		log,
	).Register()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func postJSON(t *testing.T, client *http.Client, url, body string) *http.Response {
	t.Helper()

	resp, err := client.Post(url, "application/json", bytes.NewReader([]byte(body)))
	require.NoError(t, err)
	return resp
}

func uploadFile(t *testing.T, client *http.Client, url, fileName string, content []byte) *http.Response {
	t.Helper()

	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	part, err := writer.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	resp, err := client.Post(url, writer.FormDataContentType(), buf)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()

	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestRouter_FullFlow(t *testing.T) {
	srv := newTestServer(t)
	alice := newClient(t)

	// Private routes reject anonymous callers.
	resp, err := alice.Get(srv.URL + "/api/documents")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = postJSON(t, alice, srv.URL+"/api/register", `{"login":"alice","pwd":"s3cret"}`)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, alice, srv.URL+"/api/register", `{"login":"alice","pwd":"another"}`)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = postJSON(t, alice, srv.URL+"/api/login", `{"login":"alice","pwd":"wrong"}`)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = postJSON(t, alice, srv.URL+"/api/login", `{"login":"alice","pwd":"s3cret"}`)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	content := []byte("%PDF-1.7 hello")
	resp = uploadFile(t, alice, srv.URL+"/api/upload", "report.pdf", content)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var uploaded struct {
		OK       bool `json:"ok"`
		Document struct {
			ID           int64  `json:"id"`
			OriginalName string `json:"original_name"`
		} `json:"document"`
	}
	decodeBody(t, resp, &uploaded)
	require.True(t, uploaded.OK)
	require.Positive(t, uploaded.Document.ID)
	assert.Equal(t, "report.pdf", uploaded.Document.OriginalName)

	docURL := srv.URL + "/api/document/" + strconv.FormatInt(uploaded.Document.ID, 10)

	resp, err = alice.Get(srv.URL + "/api/documents")
	require.NoError(t, err)
	var listed struct {
		OK        bool `json:"ok"`
		Documents []struct {
			ID           int64  `json:"id"`
			OriginalName string `json:"original_name"`
		} `json:"documents"`
	}
	decodeBody(t, resp, &listed)
	require.Len(t, listed.Documents, 1)
	assert.Equal(t, "report.pdf", listed.Documents[0].OriginalName)

	resp, err = alice.Get(docURL)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, content, data)

	// A second account cannot see or delete the first account's document.
	bob := newClient(t)
	resp = postJSON(t, bob, srv.URL+"/api/register", `{"login":"bob","pwd":"s3cret"}`)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = postJSON(t, bob, srv.URL+"/api/login", `{"login":"bob","pwd":"s3cret"}`)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = bob.Get(docURL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	req, err := http.NewRequest(http.MethodDelete, docURL, nil)
	require.NoError(t, err)
	resp, err = bob.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// The owner deletes it, and the id stops resolving.
	req, err = http.NewRequest(http.MethodDelete, docURL, nil)
	require.NoError(t, err)
	resp, err = alice.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = alice.Get(docURL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Logout invalidates the cookie for private routes.
	resp = postJSON(t, alice, srv.URL+"/api/logout", ``)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = alice.Get(srv.URL + "/api/documents")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_DuplicateRegisterKeepsFirstPassword(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	resp := postJSON(t, client, srv.URL+"/api/register", `{"login":"alice","pwd":"x"}`)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, client, srv.URL+"/api/register", `{"login":"alice","pwd":"y"}`)
	resp.Body.Close()
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	// The rejected second registration must not have touched the account.
	resp = postJSON(t, client, srv.URL+"/api/login", `{"login":"alice","pwd":"y"}`)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = postJSON(t, client, srv.URL+"/api/login", `{"login":"alice","pwd":"x"}`)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_DeleteAliasRoute(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	resp := postJSON(t, client, srv.URL+"/api/register", `{"login":"carol","pwd":"s3cret"}`)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = postJSON(t, client, srv.URL+"/api/login", `{"login":"carol","pwd":"s3cret"}`)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = uploadFile(t, client, srv.URL+"/api/upload", "old-route.pdf", []byte("data"))
	var uploaded struct {
		Document struct {
			ID int64 `json:"id"`
		} `json:"document"`
	}
	decodeBody(t, resp, &uploaded)
	require.Positive(t, uploaded.Document.ID)

	req, err := http.NewRequest(http.MethodDelete,
		srv.URL+"/api/delete-document/"+strconv.FormatInt(uploaded.Document.ID, 10), nil)
	require.NoError(t, err)
	resp, err = client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
