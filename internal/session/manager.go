// Package session holds the single active login and the guards views use to
// decide between rendering and redirecting.
package session

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"hrportal/internal/domain/auth"
	"hrportal/internal/platform/httpclient"
)

var ErrNotAuthenticated = errors.New("not authenticated")

type Credential = httpclient.Credential

type Session struct {
	UserID      string    `json:"userId"`
	Role        auth.Role `json:"role"`
	DisplayName string    `json:"displayName"`
	Token       string    `json:"token"`
}

type Redirect string

const (
	RedirectNone      Redirect = ""
	RedirectLogin     Redirect = "/login"
	RedirectDashboard Redirect = "/dashboard"
)

// Manager owns the one active session. A token restored from disk is
// attached to requests but the session only counts as authenticated once a
// profile has been fetched for it.
type Manager struct {
	mu      sync.RWMutex
	store   TokenStore
	logger  *slog.Logger
	token   string
	user    *auth.User
	pending int
	subs    map[chan Redirect]struct{}
}

func NewManager(store TokenStore, logger *slog.Logger) *Manager {
	if store == nil {
		store = NewMemoryTokenStore("")
	}
	if logger == nil {
		logger = slog.Default()
	}
	m := &Manager{store: store, logger: logger, subs: map[chan Redirect]struct{}{}}
	token, err := store.Load()
	if err != nil {
		logger.Warn("restore token failed", "err", err)
		_ = store.Clear()
	}
	m.token = token
	return m
}

// Start records a successful login or registration and persists the token.
func (m *Manager) Start(user auth.User, token string) error {
	m.mu.Lock()
	m.token = token
	m.user = &user
	m.mu.Unlock()
	return m.store.Save(token)
}

// Confirm marks the current token as backed by a fetched profile.
func (m *Manager) Confirm(user auth.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token == "" {
		return
	}
	m.user = &user
}

// End forgets the session and the persisted token.
func (m *Manager) End() error {
	m.mu.Lock()
	m.token = ""
	m.user = nil
	m.mu.Unlock()
	return m.store.Clear()
}

// HandleUnauthorized is wired as the HTTP client's 401 hook.
func (m *Manager) HandleUnauthorized() {
	if err := m.End(); err != nil {
		m.logger.Warn("clear token failed", "err", err)
	}
	m.emit(RedirectLogin)
}

func (m *Manager) Current() (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil || m.token == "" {
		return Session{}, false
	}
	return Session{
		UserID:      m.user.ID,
		Role:        m.user.Role,
		DisplayName: m.user.DisplayName(),
		Token:       m.token,
	}, true
}

func (m *Manager) User() (auth.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil || m.token == "" {
		return auth.User{}, false
	}
	return *m.user, true
}

func (m *Manager) Credential() Credential {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Credential{Token: m.token}
}

func (m *Manager) HasToken() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token != ""
}

func (m *Manager) IsAuthenticated() bool {
	_, ok := m.Current()
	return ok
}

func (m *Manager) Role() auth.Role {
	s, _ := m.Current()
	return s.Role
}

// TokenExpired reports whether the held token carries an exp claim in the
// past. Tokens that cannot be decoded are treated as expired.
func (m *Manager) TokenExpired(now time.Time) bool {
	m.mu.RLock()
	token := m.token
	m.mu.RUnlock()
	if token == "" {
		return true
	}
	claims, err := auth.PeekClaims(token)
	if err != nil {
		return true
	}
	return claims.Expired(now)
}

// Track counts a profile fetch in flight so guards can report loading.
func (m *Manager) Track() (done func()) {
	m.mu.Lock()
	m.pending++
	m.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			m.pending--
			m.mu.Unlock()
		})
	}
}

func (m *Manager) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pending > 0
}

// Redirects delivers navigation requests raised outside a guard check, such
// as a 401 from any call. Slow readers miss events rather than block.
func (m *Manager) Redirects() <-chan Redirect {
	ch := make(chan Redirect, 4)
	m.mu.Lock()
	m.subs[ch] = struct{}{}
	m.mu.Unlock()
	return ch
}

func (m *Manager) StopRedirects(ch <-chan Redirect) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for sub := range m.subs {
		if sub == ch {
			delete(m.subs, sub)
			close(sub)
			return
		}
	}
}

func (m *Manager) emit(r Redirect) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for sub := range m.subs {
		select {
		case sub <- r:
		default:
		}
	}
}

// Can reports whether the signed-in role carries permission.
func (m *Manager) Can(permission string) bool {
	s, ok := m.Current()
	return ok && auth.Allowed(s.Role, permission)
}
