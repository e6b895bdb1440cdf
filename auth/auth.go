// Copyright (c) 2026 The Crewkerne Gazette.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/crewkernegazette/gazette/models"
	"github.com/crewkernegazette/gazette/session"
	"github.com/crewkernegazette/gazette/transport"
)

// State is the admin session lifecycle position.
type State int

const (
	// StateUnknown: token presence not yet checked.
	StateUnknown State = iota
	// StateChecking: a stored token exists and is being verified.
	StateChecking
	// StateAuthenticated: the backend confirmed the stored token.
	StateAuthenticated
	// StateAnonymous: no admin session.
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateChecking:
		return "checking"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// LoginResult is returned by Login instead of an error so callers can render
// inline feedback without a try/catch at the call site.
type LoginResult struct {
	Success bool
	Error   string
}

// CredentialStore is the slice of the session store the machine needs.
type CredentialStore interface {
	Get(slot string) string
	Set(slot, value string) error
	Clear(slot string) error
}

// Machine tracks the admin session for the lifetime of the process.
// Unknown -> Checking -> Authenticated | Anonymous.
type Machine struct {
	client *transport.Client
	store  CredentialStore
	logger *zap.Logger

	mu    sync.Mutex
	state State
	user  *models.User
}

func NewMachine(client *transport.Client, store CredentialStore, logger *zap.Logger) *Machine {
	return &Machine{
		client: client,
		store:  store,
		logger: logger,
		state:  StateUnknown,
	}
}

// State returns the current lifecycle state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// User returns the authenticated user, or nil.
func (m *Machine) User() *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// Resolve settles the initial state. With no stored token it goes straight
// to Anonymous; otherwise it verifies the token against /auth/me. A token
// the backend rejects is cleared rather than kept around to fail again.
func (m *Machine) Resolve(ctx context.Context) State {
	token := m.store.Get(session.SlotAdminToken)
	if token == "" {
		m.transition(StateAnonymous, nil)
		return StateAnonymous
	}

	m.transition(StateChecking, nil)

	var user models.User
	if err := m.client.Get(ctx, "/auth/me", session.SlotAdminToken, &user); err != nil {
		m.logger.Info("stored admin token rejected", zap.String("kind", string(transport.KindOf(err))))
		if err := m.store.Clear(session.SlotAdminToken); err != nil {
			m.logger.Warn("failed to clear stale admin token", zap.Error(err))
		}
		m.transition(StateAnonymous, nil)
		return StateAnonymous
	}

	m.transition(StateAuthenticated, &user)
	return StateAuthenticated
}

// Login attempts the primary login endpoint, then the emergency endpoint on
// any failure. Tolerating one degraded endpoint is deliberate; the endpoint
// that succeeded is logged for observability. Login never returns an error
// value: failures come back inside the LoginResult.
func (m *Machine) Login(ctx context.Context, username, password string) LoginResult {
	req := models.LoginRequest{Username: username, Password: password}

	var resp models.LoginResponse
	primaryErr := m.client.Post(ctx, "/auth/login", "", req, &resp)
	if primaryErr == nil {
		return m.finishLogin(resp, "/auth/login")
	}

	m.logger.Warn("primary login failed, trying emergency endpoint",
		zap.String("kind", string(transport.KindOf(primaryErr))))

	fallbackErr := m.client.Post(ctx, "/auth/emergency-login", "", req, &resp)
	if fallbackErr == nil {
		return m.finishLogin(resp, "/auth/emergency-login")
	}

	return LoginResult{Success: false, Error: loginError(primaryErr, fallbackErr)}
}

func (m *Machine) finishLogin(resp models.LoginResponse, endpoint string) LoginResult {
	if err := m.store.Set(session.SlotAdminToken, resp.Token); err != nil {
		m.logger.Error("failed to persist admin token", zap.Error(err))
		return LoginResult{Success: false, Error: "could not save your session"}
	}

	m.transition(StateAuthenticated, &resp.User)
	m.logger.Info("admin login succeeded", zap.String("endpoint", endpoint))
	return LoginResult{Success: true}
}

// loginError distinguishes rejected credentials from an unreachable service.
// Credentials count as rejected if either endpoint said so; otherwise both
// endpoints were down or erroring.
func loginError(primary, fallback error) string {
	for _, err := range []error{fallback, primary} {
		switch transport.KindOf(err) {
		case transport.KindUnauthorized, transport.KindValidation:
			return "Invalid username or password"
		}
	}
	return "The Gazette is unavailable right now - try again shortly"
}

// Logout clears the persisted token and transitions to Anonymous. It is
// synchronous and makes no network call; the transport reads the credential
// slot live, so clearing the slot also stops bearer attachment immediately.
func (m *Machine) Logout() {
	if err := m.store.Clear(session.SlotAdminToken); err != nil {
		m.logger.Warn("failed to clear admin token on logout", zap.Error(err))
	}
	m.transition(StateAnonymous, nil)
	m.logger.Info("admin logged out")
}

// Invalidate is the 401 soft-logout: the stored token is dropped and the
// machine returns to Anonymous, but nothing navigates. Wire it to the
// transport's OnUnauthorized hook for the admin slot.
func (m *Machine) Invalidate() {
	if m.State() != StateAuthenticated && m.store.Get(session.SlotAdminToken) == "" {
		return
	}
	if err := m.store.Clear(session.SlotAdminToken); err != nil {
		m.logger.Warn("failed to clear admin token on invalidation", zap.Error(err))
	}
	m.transition(StateAnonymous, nil)
	m.logger.Info("admin session invalidated by backend")
}

func (m *Machine) transition(state State, user *models.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state
	m.user = user
}
