// Package settings is the profile accessor: a read-through cached copy of
// the account record plus the partial-update operation with its
// re-authentication side effects.
package settings

import (
	"context"
	"fmt"
	"sync"

	"github.com/credor-app/credor/internal/client/api"
	"github.com/credor-app/credor/internal/client/models"
	"github.com/credor-app/credor/internal/common"
	"github.com/credor-app/credor/internal/logging"
)

// APIClient is the slice of the backend API this accessor needs.
type APIClient interface {
	GetProfile(ctx context.Context, token string) (models.Profile, error)
	UpdateProfile(ctx context.Context, token string, req api.UpdateProfileRequest) error
	CheckEmailTaken(ctx context.Context, email string) (bool, error)
}

// SessionManager is what the accessor needs from the session layer.
type SessionManager interface {
	Token() string
	Logout(ctx context.Context)
	RefreshContext(ctx context.Context)
}

// Accessor caches the profile and mediates updates to it.
type Accessor struct {
	api     APIClient
	session SessionManager
	log     logging.Logger

	mu      sync.RWMutex
	profile models.Profile
}

// NewAccessor performs one profile fetch up front. A failed fetch is logged
// and leaves the cached profile at zero values; callers may Refresh later.
func NewAccessor(ctx context.Context, apiClient APIClient, session SessionManager, log logging.Logger) *Accessor {
	a := &Accessor{api: apiClient, session: session, log: log}
	if err := a.Refresh(ctx); err != nil {
		log.Warn(ctx, "initial profile fetch failed", "error", err)
	}
	return a
}

// Refresh re-fetches the profile into the local cache.
func (a *Accessor) Refresh(ctx context.Context) error {
	profile, err := a.api.GetProfile(ctx, a.session.Token())
	if err != nil {
		return fmt.Errorf("failed to fetch profile: %w", err)
	}

	a.mu.Lock()
	a.profile = profile
	a.mu.Unlock()
	return nil
}

// Profile returns the cached copy.
func (a *Accessor) Profile() models.Profile {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.profile
}

// CheckValid reports whether candidateEmail is available for use. Fails
// closed: a malformed address or any lookup failure yields false.
func (a *Accessor) CheckValid(ctx context.Context, candidateEmail string) bool {
	if !common.ValidEmail(candidateEmail) {
		return false
	}

	taken, err := a.api.CheckEmailTaken(ctx, candidateEmail)
	if err != nil {
		a.log.Warn(ctx, "email availability check failed", "error", err)
		return false
	}
	return !taken
}

// Update sends a partial profile update; nil fields mean "unchanged".
//
// Side effects on success: a change to email or password forces a logout,
// because the token was issued against the old credentials and must not
// remain trusted. A change to name and/or age only triggers a session
// refresh, keeping the token. Callers rely on exactly this split.
func (a *Accessor) Update(ctx context.Context, name, email, password *string, age *int) error {
	if email != nil && !common.ValidEmail(*email) {
		return common.ErrInvalidEmail
	}
	if age != nil && !common.ValidAge(*age) {
		return common.ErrInvalidAge
	}

	req := api.UpdateProfileRequest{Name: name, Email: email, Password: password, Age: age}
	if err := a.api.UpdateProfile(ctx, a.session.Token(), req); err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}

	if email != nil || password != nil {
		a.log.Info(ctx, "credentials changed, logging out")
		a.session.Logout(ctx)
		return nil
	}

	a.mu.Lock()
	if name != nil {
		a.profile.Name = *name
	}
	if age != nil {
		a.profile.Age = *age
	}
	a.mu.Unlock()

	a.session.RefreshContext(ctx)
	return nil
}
