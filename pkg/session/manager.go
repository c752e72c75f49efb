package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/billpoint/billpoint/pkg/authsdk"
	"github.com/billpoint/billpoint/pkg/keystore"
)

// Keystore keys for the persisted identity. KeyAuthToken holds the access
// token returned on login so logout can invalidate it server-side.
const (
	KeyCurrentUser = "current_user"
	KeyAuthToken   = "auth_token"
)

var (
	// ErrLoginInFlight is returned when a login or signup is attempted while
	// another call is already in flight. The earlier call wins; the caller
	// should wait for it to resolve.
	ErrLoginInFlight = errors.New("session: a call is already in flight")

	// ErrClosed is returned by operations on a Manager that has been closed.
	ErrClosed = errors.New("session: manager is closed")
)

// Manager owns the authentication state machine. All dependencies are
// injected; substitute test doubles freely.
type Manager struct {
	client *authsdk.Client
	store  keystore.Store
	logger *slog.Logger

	mu      sync.Mutex
	state   State
	token   string
	closed  bool
	subs    map[int]chan State
	nextSub int
}

// New creates a Manager and restores a previously persisted identity from
// the keystore. If one is found the initial phase is Authenticated;
// otherwise Idle. Restore failures are logged and degrade to a fresh Idle
// state rather than failing construction.
func New(ctx context.Context, client *authsdk.Client, store keystore.Store, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}

	m := &Manager{
		client: client,
		store:  store,
		logger: logger,
		state:  initialState(),
		subs:   make(map[int]chan State),
	}
	m.restore(ctx)
	return m
}

func (m *Manager) restore(ctx context.Context) {
	raw, err := m.store.Get(ctx, KeyCurrentUser)
	if err != nil {
		m.logger.Warn("session restore failed", "err", err)
		return
	}
	if raw == nil {
		return
	}

	var user authsdk.UserRecord
	if err := json.Unmarshal(raw, &user); err != nil || !user.Valid() {
		m.logger.Warn("discarding unreadable persisted user", "err", err)
		return
	}

	if tok, err := m.store.Get(ctx, KeyAuthToken); err == nil {
		m.token = string(tok)
	}

	m.state = State{Phase: PhaseAuthenticated, User: &user, HidePassword: true}
}

// State returns the current snapshot.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Subscribe registers an observer. Every transition publishes the new
// snapshot to the returned channel; sends never block, so a slow observer
// misses intermediate states rather than stalling transitions. The cancel
// function unregisters the observer and closes the channel.
func (m *Manager) Subscribe() (<-chan State, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextSub
	m.nextSub++

	ch := make(chan State, 8)
	m.subs[id] = ch

	return ch, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if sub, ok := m.subs[id]; ok {
			delete(m.subs, id)
			close(sub)
		}
	}
}

// setState replaces the snapshot and publishes it. Caller must hold mu.
func (m *Manager) setState(s State) {
	m.state = s
	for _, ch := range m.subs {
		select {
		case ch <- s:
		default:
		}
	}
}

// Login runs the login flow: Idle/Failed/Authenticated -> InFlight ->
// Authenticated or Failed. Returns ErrLoginInFlight if a call is already in
// flight, ErrClosed after Close, and otherwise an error carrying the failure
// message iff the attempt failed. State carries the same outcome for
// observers.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	if err := m.begin(); err != nil {
		return err
	}

	env := m.client.Login(ctx, email, password)
	return m.finish(ctx, env)
}

// Signup runs the signup flow through the same machine as Login.
func (m *Manager) Signup(ctx context.Context, params authsdk.SignupParams) error {
	if err := m.begin(); err != nil {
		return err
	}

	env := m.client.Signup(ctx, params)
	return m.finish(ctx, env)
}

// begin guards entry into InFlight and clears any prior error.
func (m *Manager) begin() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if m.state.Phase == PhaseInFlight {
		return ErrLoginInFlight
	}

	next := m.state
	next.Phase = PhaseInFlight
	next.Err = ""
	m.setState(next)
	return nil
}

// finish resolves an in-flight call from its envelope.
func (m *Manager) finish(ctx context.Context, env authsdk.Envelope[authsdk.AuthResult]) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Torn down while the call was in flight: drop the result, touch nothing.
	if m.closed {
		return ErrClosed
	}

	if !env.Success {
		next := m.state
		next.Phase = PhaseFailed
		next.Err = env.Err
		m.setState(next)
		return errors.New(env.Err)
	}

	user := env.Data.User
	m.token = env.Data.Token
	m.persist(ctx, user, env.Data.Token)

	next := m.state
	next.Phase = PhaseAuthenticated
	next.Err = ""
	next.User = &user
	m.setState(next)
	return nil
}

// persist writes the identity to the keystore. A write failure downgrades to
// a warning: the login itself has already succeeded and the session proceeds
// without local persistence. Caller must hold mu.
func (m *Manager) persist(ctx context.Context, user authsdk.UserRecord, token string) {
	raw, err := json.Marshal(user)
	if err != nil {
		m.logger.Warn("failed to encode user for persistence", "err", err)
		return
	}

	if err := m.store.Set(ctx, KeyCurrentUser, raw); err != nil {
		m.logger.Warn("failed to persist user", "err", err)
		return
	}
	if err := m.store.Set(ctx, KeyAuthToken, []byte(token)); err != nil {
		m.logger.Warn("failed to persist token", "err", err)
	}
}

// Logout invalidates the session: best-effort server-side token revocation,
// removal of the persisted identity, and a reset to the Idle shape. Calling
// Logout on an already-idle Manager is a no-op.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	if m.state.Phase == PhaseIdle && m.state.User == nil && m.token == "" {
		m.mu.Unlock()
		return nil
	}
	token := m.token
	m.mu.Unlock()

	// Network call outside the lock; observers can still read state.
	if token != "" {
		if env := m.client.Logout(ctx, token); !env.Success {
			m.logger.Warn("server-side logout failed", "err", env.Err)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}

	if err := m.store.Delete(ctx, KeyCurrentUser); err != nil {
		m.logger.Warn("failed to remove persisted user", "err", err)
	}
	if err := m.store.Delete(ctx, KeyAuthToken); err != nil {
		m.logger.Warn("failed to remove persisted token", "err", err)
	}

	m.token = ""
	m.setState(initialState())
	return nil
}

// TogglePasswordVisibility flips the visibility flag without touching the
// rest of the state.
func (m *Manager) TogglePasswordVisibility() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}

	next := m.state
	next.HidePassword = !next.HidePassword
	m.setState(next)
}

// Token returns the current access token, empty when signed out.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// Close tears the Manager down. In-flight calls resolve as no-ops: late
// results and late persistence writes are discarded rather than erroring.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	m.closed = true

	for id, ch := range m.subs {
		delete(m.subs, id)
		close(ch)
	}
}
