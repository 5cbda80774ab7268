// ABOUTME: Session lifecycle manager built on the API client and token store
// ABOUTME: Resolves a stored credential to a user identity exactly once

package session

import (
	"context"

	"github.com/nickigann03/phishguard/internal/client"
	"github.com/nickigann03/phishguard/internal/token"
)

// State is the explicit session state. A session is authenticated only
// after the backend has confirmed the credential; a stored token alone
// proves nothing.
type State int

const (
	StateResolving State = iota
	StateAuthenticated
	StateUnauthenticated
)

// String returns the string representation of a State
func (s State) String() string {
	switch s {
	case StateResolving:
		return "resolving"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Manager owns the session lifecycle for one process
type Manager struct {
	client   *client.Client
	tokens   token.Store
	state    State
	user     *client.User
	resolved bool
}

// New creates a session manager over the given client and token store
func New(apiClient *client.Client, tokens token.Store) *Manager {
	return &Manager{
		client: apiClient,
		tokens: tokens,
		state:  StateResolving,
	}
}

// Resume performs the initial resolution: if a credential is stored, it
// is exchanged for a user identity; a failure is treated as a stale or
// revoked token and clears it silently. With no stored credential the
// manager lands Unauthenticated without any network call.
//
// The resolution runs once per Manager; later calls return immediately.
func (m *Manager) Resume(ctx context.Context) {
	if m.resolved {
		return
	}
	m.resolved = true

	if _, ok := m.tokens.Get(); !ok {
		m.state = StateUnauthenticated
		return
	}

	user, err := m.client.CurrentUser(ctx)
	if err != nil {
		m.tokens.Clear()
		m.state = StateUnauthenticated
		return
	}

	m.user = user
	m.state = StateAuthenticated
}

// Login authenticates and resolves the identity. The client persists the
// issued token as part of Login. Errors propagate to the caller and
// leave the session signed out.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	if _, err := m.client.Login(ctx, email, password); err != nil {
		return err
	}

	user, err := m.client.CurrentUser(ctx)
	if err != nil {
		return err
	}

	m.user = user
	m.state = StateAuthenticated
	m.resolved = true
	return nil
}

// Logout clears the credential and session locally. No network call is
// made and it cannot fail.
func (m *Manager) Logout() {
	m.tokens.Clear()
	m.user = nil
	m.state = StateUnauthenticated
	m.resolved = true
}

// User returns the resolved identity, or nil when signed out
func (m *Manager) User() *client.User {
	return m.user
}

// State returns the current session state
func (m *Manager) State() State {
	return m.state
}

// IsAuthenticated reports whether a resolved session exists. It is
// defined strictly as "user identity present", never "token present".
func (m *Manager) IsAuthenticated() bool {
	return m.user != nil
}

// Resolving reports whether the initial resolution has not completed yet
func (m *Manager) Resolving() bool {
	return m.state == StateResolving
}
