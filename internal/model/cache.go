package model

import (
	"context"
	"time"
)

// CredentialCache is a volatile, time-bounded mapping from login to the
// last password hash resolved from the user store. It is an optimization
// only: callers must treat any error or miss as "go to the store" and must
// never fail a login because the cache is unavailable.
type CredentialCache interface {
	Lookup(ctx context.Context, login string) (hash string, ok bool, err error)
	Store(ctx context.Context, login, hash string, ttl time.Duration) error
}
