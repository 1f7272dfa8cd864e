package model

import "errors"

var (
	// ErrNotFound covers both absent resources and resources owned by
	// another user. The two cases must stay indistinguishable to callers.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a login is already taken.
	ErrConflict = errors.New("already exists")
	// ErrInvalidCredentials is returned for unknown logins and wrong
	// passwords alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmptyContent is returned when an upload carries no bytes.
	ErrEmptyContent = errors.New("empty content")
)
