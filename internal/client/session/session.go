// Package session owns the client's proof of authentication: the bearer
// token plus the cached display name. The Manager is explicitly constructed
// and injected into the accessors; there is no ambient global session.
package session

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/credor-app/credor/internal/client/api"
	"github.com/credor-app/credor/internal/client/models"
	"github.com/credor-app/credor/internal/client/storage"
	"github.com/credor-app/credor/internal/logging"
)

// Session is the persisted shape: an issued JWT and the display name cached
// next to it. Invariant: a live session has both fields non-empty.
type Session struct {
	Token string `json:"jwt"`
	Name  string `json:"name"`
}

// State is the manager's observable authentication state once Load has run.
type State int

const (
	StateUnauthenticated State = iota
	StateAuthenticated
)

// AuthResult is the non-throwing outcome of a login or register attempt.
// A server rejection lands here (Status + ErrorMsg) with a nil error; only
// connectivity failures surface as errors from the calling operation.
type AuthResult struct {
	Status   int
	Token    string
	Name     string
	ErrorMsg string
}

// APIClient is the slice of the backend API the manager needs.
type APIClient interface {
	Login(ctx context.Context, email, password string) (api.AuthPayload, error)
	Register(ctx context.Context, name string, age int, gender, email, password string) (api.AuthPayload, error)
	GetProfile(ctx context.Context, token string) (models.Profile, error)
}

// Manager holds the in-memory session and mirrors every change to the
// persistent store before considering it authoritative.
type Manager struct {
	store storage.Store
	api   APIClient
	log   logging.Logger

	mu      sync.RWMutex
	current *Session
}

func NewManager(store storage.Store, apiClient APIClient, log logging.Logger) *Manager {
	return &Manager{store: store, api: apiClient, log: log}
}

// Load performs the one-time storage read that resolves the initial state.
// Malformed JSON, or a record missing token or name, is treated as logged
// out; the stale record is removed so the next load is clean.
func (m *Manager) Load(ctx context.Context) {
	raw, err := m.store.Get(ctx, storage.KeySession)
	if err != nil {
		m.log.Warn(ctx, "session read failed, treating as logged out", "error", err)
		return
	}
	if raw == nil {
		return
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil || s.Token == "" || s.Name == "" {
		m.log.Warn(ctx, "discarding malformed stored session")
		if err := m.store.Delete(ctx, storage.KeySession); err != nil {
			m.log.Warn(ctx, "failed to remove malformed session", "error", err)
		}
		return
	}

	m.mu.Lock()
	m.current = &s
	m.mu.Unlock()
}

// State reports whether a session is held.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current != nil {
		return StateAuthenticated
	}
	return StateUnauthenticated
}

// Current returns a copy of the session, if any.
func (m *Manager) Current() (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return Session{}, false
	}
	return *m.current, true
}

// Token returns the bearer token, or "" when logged out.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return ""
	}
	return m.current.Token
}

// Expiry reports the token's exp claim, when present. The claim is read
// without signature verification: expiry is informational on the client,
// the server is the authority. An expired token does not clear the session.
func (m *Manager) Expiry() (time.Time, bool) {
	token := m.Token()
	if token == "" {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Login authenticates against the backend. Server rejections are reported
// via AuthResult with a nil error; connectivity failures are returned as
// errors. On success the session is persisted before it becomes current.
func (m *Manager) Login(ctx context.Context, email, password string) (AuthResult, error) {
	payload, err := m.api.Login(ctx, email, password)
	if err != nil {
		if apiErr, ok := api.AsAPIError(err); ok {
			m.log.Info(ctx, "login rejected", "status", apiErr.StatusCode, "code", apiErr.Code)
			return AuthResult{Status: apiErr.StatusCode, ErrorMsg: apiErr.Body}, nil
		}
		return AuthResult{}, err
	}

	if payload.Token == "" {
		m.log.Warn(ctx, "login succeeded without a token")
		return AuthResult{Status: http.StatusOK}, nil
	}

	m.install(ctx, Session{Token: payload.Token, Name: payload.Name})
	return AuthResult{Status: http.StatusOK, Token: payload.Token, Name: payload.Name}, nil
}

// Register creates an account; the contract mirrors Login. The backend's
// "user_already_exists" identifier arrives in ErrorMsg for callers to match.
func (m *Manager) Register(ctx context.Context, name string, age int, gender, email, password string) (AuthResult, error) {
	payload, err := m.api.Register(ctx, name, age, gender, email, password)
	if err != nil {
		if apiErr, ok := api.AsAPIError(err); ok {
			m.log.Info(ctx, "registration rejected", "status", apiErr.StatusCode, "code", apiErr.Code)
			return AuthResult{Status: apiErr.StatusCode, ErrorMsg: apiErr.Body}, nil
		}
		return AuthResult{}, err
	}

	if payload.Token == "" {
		m.log.Warn(ctx, "registration succeeded without a token")
		return AuthResult{Status: http.StatusOK}, nil
	}

	m.install(ctx, Session{Token: payload.Token, Name: payload.Name})
	return AuthResult{Status: http.StatusOK, Token: payload.Token, Name: payload.Name}, nil
}

// Logout clears the persisted and in-memory session. Idempotent.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.store.Delete(ctx, storage.KeySession); err != nil {
		m.log.Warn(ctx, "failed to clear persisted session", "error", err)
	}
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()
}

// RefreshContext re-fetches the profile name under the current token and
// re-persists the session with it. The token never changes here. Failures
// are logged and swallowed; a stale name is acceptable.
func (m *Manager) RefreshContext(ctx context.Context) {
	token := m.Token()
	if token == "" {
		return
	}

	profile, err := m.api.GetProfile(ctx, token)
	if err != nil {
		m.log.Warn(ctx, "session refresh failed, keeping cached name", "error", err)
		return
	}
	if profile.Name == "" {
		return
	}

	m.install(ctx, Session{Token: token, Name: profile.Name})
}

// install persists the session and then makes it current. A storage failure
// is logged and the in-memory update still happens: losing durability must
// not log the user out of a live session.
func (m *Manager) install(ctx context.Context, s Session) {
	raw, err := json.Marshal(s)
	if err != nil {
		m.log.Error(ctx, "failed to serialize session", "error", err)
	} else if err := m.store.Set(ctx, storage.KeySession, raw); err != nil {
		m.log.Warn(ctx, "failed to persist session", "error", err)
	}

	m.mu.Lock()
	m.current = &s
	m.mu.Unlock()
}
