// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/jeranaias/shopfront-tui/internal/api"
)

// =============================================================================
// PHASES & ERROR KINDS
// =============================================================================

// Phase is the discrete resolved-or-resolving state of the session lifecycle.
type Phase int

const (
	// PhaseIdle means bootstrap has not started yet.
	PhaseIdle Phase = iota

	// PhaseAuthenticating means a session check or login is in flight.
	PhaseAuthenticating

	// PhaseAuthenticated means the backend confirmed a signed-in user.
	PhaseAuthenticated

	// PhaseAnonymous means the backend confirmed there is no session.
	PhaseAnonymous

	// PhaseFailed means resolution failed; Err carries the reason.
	PhaseFailed
)

// String returns the phase name for logs and status output.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAuthenticating:
		return "authenticating"
	case PhaseAuthenticated:
		return "authenticated"
	case PhaseAnonymous:
		return "anonymous"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the phase is a rest state. Only an explicit
// login, logout, or re-bootstrap moves the machine out of a terminal phase.
func (p Phase) Terminal() bool {
	return p == PhaseAuthenticated || p == PhaseAnonymous || p == PhaseFailed
}

// ErrKind discriminates session failures for display and diagnosis.
type ErrKind int

const (
	// ErrKindRateLimited means the backend is throttling requests.
	ErrKindRateLimited ErrKind = iota + 1

	// ErrKindNetworkError means the backend was unreachable, timed out,
	// or returned an unexpected failure.
	ErrKindNetworkError

	// ErrKindLoginFailed means the backend rejected explicit credentials.
	ErrKindLoginFailed

	// ErrKindMalformedSession means a resolved response was missing the
	// user identifier. Shown like a network error, logged distinctly.
	ErrKindMalformedSession
)

// String returns the error kind name for logs.
func (k ErrKind) String() string {
	switch k {
	case ErrKindRateLimited:
		return "rate_limited"
	case ErrKindNetworkError:
		return "network_error"
	case ErrKindLoginFailed:
		return "login_failed"
	case ErrKindMalformedSession:
		return "malformed_session"
	default:
		return "unknown"
	}
}

// Fallback messages when the backend supplies none.
const (
	msgRateLimited  = "Too many requests. Please wait a moment and try again."
	msgNetworkError = "Cannot reach the store. Check your connection and retry."
	msgLoginFailed  = "Login failed"
)

// =============================================================================
// STATE SNAPSHOT
// =============================================================================

// User is the normalized signed-in identity. Email may be empty; the
// backend does not always include it in session-check responses.
type User struct {
	ID      string
	Email   string
	IsAdmin bool
}

// Error is the transient failure attached to PhaseFailed.
type Error struct {
	Kind    ErrKind
	Message string
}

// State is an immutable snapshot of session state. Exactly one of User and
// Err is set, gated by Phase. Snapshots are replaced wholesale on each
// transition, never mutated in place.
type State struct {
	Phase Phase
	User  *User
	Err   *Error

	// InitialCheckDone latches true once the first bootstrap resolves,
	// success or failure. Routing must not redirect before then; Phase
	// alone cannot distinguish "not started" from "resolved anonymous"
	// after a logout.
	InitialCheckDone bool
}

// =============================================================================
// STORE
// =============================================================================

// Config holds tunables for the session store.
type Config struct {
	// AuthTimeout bounds the startup session check (default: 5 seconds).
	AuthTimeout time.Duration

	// ErrorTTL is how long a transient error stays visible before it
	// clears itself (default: 4 seconds).
	ErrorTTL time.Duration
}

// DefaultConfig returns the default store configuration.
func DefaultConfig() Config {
	return Config{
		AuthTimeout: 5 * time.Second,
		ErrorTTL:    4 * time.Second,
	}
}

// Store is the single source of truth for the current session. All
// mutation flows through its methods; subscribers observe snapshots.
type Store struct {
	mu     sync.Mutex
	client *api.Client
	logger *log.Logger

	authTimeout time.Duration
	errorTTL    time.Duration

	phase            Phase
	user             *User
	err              *Error
	initialCheckDone bool

	// epoch increments on every bootstrap and logout. A bootstrap result
	// carrying a stale epoch is discarded instead of applied.
	epoch uint64

	// errGen identifies the currently displayed error so a delayed
	// auto-clear never removes a newer one.
	errGen     uint64
	clearTimer *time.Timer

	subscribers []func(State)
}

// NewStore creates a session store in PhaseIdle.
func NewStore(client *api.Client, cfg Config) *Store {
	if cfg.AuthTimeout <= 0 {
		cfg.AuthTimeout = DefaultConfig().AuthTimeout
	}
	if cfg.ErrorTTL <= 0 {
		cfg.ErrorTTL = DefaultConfig().ErrorTTL
	}
	return &Store{
		client:      client,
		authTimeout: cfg.AuthTimeout,
		errorTTL:    cfg.ErrorTTL,
		phase:       PhaseIdle,
	}
}

// SetLogger sets the diagnostic logger. A nil logger disables logging.
func (s *Store) SetLogger(logger *log.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger = logger
}

// Subscribe registers a callback invoked after every state change. The
// callback runs outside the store lock and must not block.
func (s *Store) Subscribe(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Snapshot returns the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// =============================================================================
// BOOTSTRAP
// =============================================================================

// Bootstrap resolves the current session against the backend. It drives the
// phase through Authenticating to a terminal phase and returns the resulting
// snapshot. Safe to call again after a failure; each call starts a fresh
// epoch and a response from a superseded call is discarded.
func (s *Store) Bootstrap(ctx context.Context) State {
	epoch := s.begin()

	cctx, cancel := context.WithTimeout(ctx, s.authTimeout)
	defer cancel()

	resp, err := s.client.CheckAuth(cctx)

	s.mu.Lock()
	if epoch != s.epoch {
		// A newer bootstrap or a logout superseded this call.
		s.logf("session: discarding stale bootstrap result (epoch %d != %d)", epoch, s.epoch)
		st := s.stateLocked()
		s.mu.Unlock()
		return st
	}

	switch {
	case err == nil:
		user, token, nerr := normalizeCheckAuth(resp)
		if nerr != ErrKind(0) {
			s.logf("session: malformed check-auth payload: missing user identifier")
			s.failLocked(ErrKindMalformedSession, msgNetworkError)
			break
		}
		if token != "" {
			s.client.SetAccessToken(token)
		}
		s.authenticateLocked(user)
	case api.IsUnauthorized(err):
		s.anonymousLocked()
	case api.IsRateLimited(err):
		s.failLocked(ErrKindRateLimited, msgRateLimited)
	default:
		s.logf("session: bootstrap failed: %v", err)
		s.failLocked(ErrKindNetworkError, msgNetworkError)
	}

	s.initialCheckDone = true
	st := s.stateLocked()
	subs := s.subscribersLocked()
	s.mu.Unlock()

	notify(subs, st)
	return st
}

// begin opens a new request cycle: bumps the epoch, cancels any pending
// error clear, and moves the phase to Authenticating.
func (s *Store) begin() uint64 {
	s.mu.Lock()
	s.epoch++
	epoch := s.epoch
	s.cancelClearLocked()
	s.phase = PhaseAuthenticating
	s.err = nil
	st := s.stateLocked()
	subs := s.subscribersLocked()
	s.mu.Unlock()

	notify(subs, st)
	return epoch
}

// normalizeCheckAuth maps either response shape onto a User. The backend
// returns an embedded user object on some deployments and bare
// userId/isAdmin fields on others; an empty email is acceptable, a missing
// identifier is not.
func normalizeCheckAuth(resp *api.CheckAuthResponse) (*User, string, ErrKind) {
	var user User
	if resp.User != nil {
		user = User{ID: resp.User.ID, Email: resp.User.Email, IsAdmin: resp.User.IsAdmin}
	} else {
		user = User{ID: resp.UserID, IsAdmin: resp.IsAdmin}
	}
	if user.ID == "" {
		return nil, "", ErrKindMalformedSession
	}
	return &user, resp.AccessToken, ErrKind(0)
}

// =============================================================================
// LOGIN & LOGOUT
// =============================================================================

// BeginLogin moves the phase to Authenticating while a login request is in
// flight. The login view calls this before contacting the backend.
func (s *Store) BeginLogin() {
	s.mu.Lock()
	s.cancelClearLocked()
	s.phase = PhaseAuthenticating
	s.err = nil
	st := s.stateLocked()
	subs := s.subscribersLocked()
	s.mu.Unlock()

	notify(subs, st)
}

// ReportLogin records the outcome of an explicit login attempt. On failure
// the message is taken from the backend's error payload when present.
func (s *Store) ReportLogin(user *api.User, err error) State {
	s.mu.Lock()
	switch {
	case err != nil:
		s.failLocked(ErrKindLoginFailed, api.ErrorMessage(err, msgLoginFailed))
	case user == nil || user.ID == "":
		s.logf("session: malformed login payload: missing user identifier")
		s.failLocked(ErrKindMalformedSession, msgLoginFailed)
	default:
		s.authenticateLocked(&User{ID: user.ID, Email: user.Email, IsAdmin: user.IsAdmin})
	}
	s.initialCheckDone = true
	st := s.stateLocked()
	subs := s.subscribersLocked()
	s.mu.Unlock()

	notify(subs, st)
	return st
}

// Logout transitions to Anonymous immediately and notifies the backend in
// the background. A backend failure is logged and ignored; the local
// transition never blocks on it. The epoch bump guarantees an in-flight
// bootstrap cannot resurrect the old session afterwards.
func (s *Store) Logout(ctx context.Context) State {
	s.mu.Lock()
	s.epoch++
	s.cancelClearLocked()
	s.client.ClearAccessToken()
	s.anonymousLocked()
	st := s.stateLocked()
	subs := s.subscribersLocked()
	logger := s.logger
	s.mu.Unlock()

	go func() {
		cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.authTimeout)
		defer cancel()
		if err := s.client.Logout(cctx); err != nil && logger != nil {
			logger.Printf("session: logout notification failed: %v", err)
		}
	}()

	notify(subs, st)
	return st
}

// =============================================================================
// TRANSITIONS
// =============================================================================

// authenticateLocked applies the Authenticated phase. Re-applying the same
// terminal result is a no-op so duplicate dispatches carry no side effects.
func (s *Store) authenticateLocked(user *User) {
	if s.phase == PhaseAuthenticated && s.user != nil &&
		s.user.ID == user.ID && s.user.IsAdmin == user.IsAdmin {
		return
	}
	s.cancelClearLocked()
	s.phase = PhaseAuthenticated
	s.user = user
	s.err = nil
}

// anonymousLocked applies the Anonymous phase.
func (s *Store) anonymousLocked() {
	if s.phase == PhaseAnonymous && s.user == nil && s.err == nil {
		return
	}
	s.cancelClearLocked()
	s.phase = PhaseAnonymous
	s.user = nil
	s.err = nil
}

// failLocked applies the Failed phase and schedules the error to clear
// itself after the TTL. The phase stays Failed after the clear; only an
// explicit retry moves it.
func (s *Store) failLocked(kind ErrKind, message string) {
	s.cancelClearLocked()
	s.phase = PhaseFailed
	s.user = nil
	s.err = &Error{Kind: kind, Message: message}

	s.errGen++
	gen := s.errGen
	s.clearTimer = time.AfterFunc(s.errorTTL, func() {
		s.clearError(gen)
	})
}

// clearError removes the transient error if it is still the one the timer
// was scheduled for.
func (s *Store) clearError(gen uint64) {
	s.mu.Lock()
	if gen != s.errGen || s.err == nil {
		s.mu.Unlock()
		return
	}
	s.err = nil
	s.clearTimer = nil
	st := s.stateLocked()
	subs := s.subscribersLocked()
	s.mu.Unlock()

	notify(subs, st)
}

// ClearError dismisses the transient error immediately.
func (s *Store) ClearError() {
	s.mu.Lock()
	if s.err == nil {
		s.mu.Unlock()
		return
	}
	s.cancelClearLocked()
	s.err = nil
	st := s.stateLocked()
	subs := s.subscribersLocked()
	s.mu.Unlock()

	notify(subs, st)
}

// cancelClearLocked stops a pending auto-clear. Every transition calls this
// so a timer from an old error can never fire against a newer one.
func (s *Store) cancelClearLocked() {
	s.errGen++
	if s.clearTimer != nil {
		s.clearTimer.Stop()
		s.clearTimer = nil
	}
}

// =============================================================================
// INTERNAL HELPERS
// =============================================================================

func (s *Store) stateLocked() State {
	st := State{
		Phase:            s.phase,
		InitialCheckDone: s.initialCheckDone,
	}
	if s.user != nil {
		u := *s.user
		st.User = &u
	}
	if s.err != nil {
		e := *s.err
		st.Err = &e
	}
	return st
}

func (s *Store) subscribersLocked() []func(State) {
	subs := make([]func(State), len(s.subscribers))
	copy(subs, s.subscribers)
	return subs
}

func (s *Store) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}

func notify(subs []func(State), st State) {
	for _, fn := range subs {
		fn(st)
	}
}
