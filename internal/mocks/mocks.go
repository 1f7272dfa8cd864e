// Package mocks contains hand-written testify mocks for the model
// interfaces.
package mocks

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/avshem/docvault/internal/model"
)

// UserStore is a mock implementation of model.UserStore.
type UserStore struct {
	mock.Mock
}

func (m *UserStore) GetByLogin(ctx context.Context, login string) (model.User, error) {
	args := m.Called(ctx, login)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) GetIDByLogin(ctx context.Context, login string) (int64, error) {
	args := m.Called(ctx, login)
	return args.Get(0).(int64), args.Error(1)
}

func (m *UserStore) Create(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(model.User), args.Error(1)
}

// DocumentStore is a mock implementation of model.DocumentStore.
type DocumentStore struct {
	mock.Mock
}

func (m *DocumentStore) Create(ctx context.Context, document model.Document) (model.Document, error) {
	args := m.Called(ctx, document)
	return args.Get(0).(model.Document), args.Error(1)
}

func (m *DocumentStore) GetByOwner(ctx context.Context, ownerID int64) ([]model.Document, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}

func (m *DocumentStore) GetByIDAndOwner(ctx context.Context, id, ownerID int64) (model.Document, error) {
	args := m.Called(ctx, id, ownerID)
	return args.Get(0).(model.Document), args.Error(1)
}

func (m *DocumentStore) DeleteByIDAndOwner(ctx context.Context, id, ownerID int64) (string, error) {
	args := m.Called(ctx, id, ownerID)
	return args.String(0), args.Error(1)
}

// CredentialCache is a mock implementation of model.CredentialCache.
type CredentialCache struct {
	mock.Mock
}

func (m *CredentialCache) Lookup(ctx context.Context, login string) (string, bool, error) {
	args := m.Called(ctx, login)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *CredentialCache) Store(ctx context.Context, login, hash string, ttl time.Duration) error {
	args := m.Called(ctx, login, hash, ttl)
	return args.Error(0)
}

// Storage is a mock implementation of model.Storage.
type Storage struct {
	mock.Mock
}

func (m *Storage) Upload(ctx context.Context, key string, reader io.Reader) error {
	args := m.Called(ctx, key, reader)
	return args.Error(0)
}

func (m *Storage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *Storage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// SessionManager is a mock implementation of model.SessionManager.
type SessionManager struct {
	mock.Mock
}

func (m *SessionManager) Issue(w http.ResponseWriter, userID int64) error {
	args := m.Called(w, userID)
	return args.Error(0)
}

func (m *SessionManager) Validate(r *http.Request) (model.Claims, bool) {
	args := m.Called(r)
	return args.Get(0).(model.Claims), args.Bool(1)
}

func (m *SessionManager) Revoke(w http.ResponseWriter) {
	m.Called(w)
}
