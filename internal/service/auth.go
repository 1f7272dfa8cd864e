package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/avshem/docvault/internal/logger"
	"github.com/avshem/docvault/internal/model"
)

// Auth implements the login and registration protocol: credentials are
// verified against the user store, with a write-through cache of verified
// password hashes short-circuiting the store read on repeat logins.
type Auth struct {
	userStore  model.UserStore
	cache      model.CredentialCache
	cacheTTL   time.Duration
	bcryptCost int
	logger     *logger.Logger
}

func NewAuth(
	userStore model.UserStore,
	cache model.CredentialCache,
	cacheTTL time.Duration,
	bcryptCost int,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:  userStore,
		cache:      cache,
		cacheTTL:   cacheTTL,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Login verifies login/pwd and returns the user id on success. Unknown
// logins and wrong passwords both yield model.ErrInvalidCredentials so the
// caller cannot enumerate accounts. The password itself is never logged.
func (a *Auth) Login(ctx context.Context, login, pwd string) (int64, error) {
	if login == "" || pwd == "" {
		return 0, model.ErrInvalidCredentials
	}

	hash, userID, err := a.resolveCredentials(ctx, login)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			a.logger.Info("Auth service: failed login attempt", "login", login)
			return 0, model.ErrInvalidCredentials
		}
		return 0, fmt.Errorf("failed to resolve credentials: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(pwd)); err != nil {
		a.logger.Info("Auth service: failed login attempt", "login", login)
		return 0, model.ErrInvalidCredentials
	}

	a.logger.Info("Auth service: user logged in", "login", login, "user_id", userID)

	return userID, nil
}

// resolveCredentials returns the password hash to verify against and the
// live user id. A cache hit still confirms the login maps to an existing
// user: a cache entry alone does not prove the account is live.
func (a *Auth) resolveCredentials(ctx context.Context, login string) (string, int64, error) {
	hash, hit, err := a.cache.Lookup(ctx, login)
	if err != nil {
		// Cache unavailability degrades to a store read, never to a
		// denied login.
		a.logger.Warn("Auth service: credential cache lookup failed", "login", login, "error", err.Error())
		hit = false
	}

	if hit {
		userID, err := a.userStore.GetIDByLogin(ctx, login)
		if err != nil {
			return "", 0, err
		}
		return hash, userID, nil
	}

	user, err := a.userStore.GetByLogin(ctx, login)
	if err != nil {
		return "", 0, err
	}

	if err := a.cache.Store(ctx, login, user.PasswordHash, a.cacheTTL); err != nil {
		a.logger.Warn("Auth service: credential cache store failed", "login", login, "error", err.Error())
	}

	return user.PasswordHash, user.ID, nil
}

// Register creates a new user. A taken login is surfaced as
// model.ErrConflict. Registration populates the credential cache eagerly
// but never authenticates the caller; a separate login is required.
func (a *Auth) Register(ctx context.Context, login, pwd string) (model.User, error) {
	a.logger.Debug("Auth service: registering user", "login", login)

	_, err := a.userStore.GetIDByLogin(ctx, login)
	if err == nil {
		a.logger.Info("Auth service: login already taken", "login", login)
		return model.User{}, model.ErrConflict
	}
	if !errors.Is(err, model.ErrNotFound) {
		return model.User{}, fmt.Errorf("failed to check login: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), a.bcryptCost)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := a.userStore.Create(ctx, model.User{
		Login:        login,
		PasswordHash: string(hash),
	})
	if err != nil {
		// The unique constraint closes the race between the existence
		// check and the insert.
		if errors.Is(err, model.ErrConflict) {
			a.logger.Info("Auth service: login already taken", "login", login)
			return model.User{}, model.ErrConflict
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	// The hash will be needed on the immediately following login.
	if err := a.cache.Store(ctx, login, user.PasswordHash, a.cacheTTL); err != nil {
		a.logger.Warn("Auth service: credential cache store failed", "login", login, "error", err.Error())
	}

	a.logger.Info("Auth service: user registered", "login", login, "user_id", user.ID)

	return user, nil
}
