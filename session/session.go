// Package session holds the process-wide signed-in state.
package session

import (
	"context"
	"sync"

	"github.com/ncobase/blogclient/logging/logger"
	"github.com/ncobase/blogclient/structs"
)

// Checker is the identity surface the Manager depends on.
type Checker interface {
	CheckSession(ctx context.Context) *structs.Session
	Logout(ctx context.Context) error
}

// State is an immutable snapshot of the session.
type State struct {
	User    *structs.Session
	Loading bool
}

// LoggedIn reports whether a user is signed in.
func (s State) LoggedIn() bool { return s.User != nil }

// Access is the decision for a protected view.
type Access int

const (
	// Pending means render nothing yet: the initial check is running.
	Pending Access = iota
	// Redirect means send the user to the login view.
	Redirect
	// Allow means render the protected view.
	Allow
)

func (a Access) String() string {
	switch a {
	case Pending:
		return "pending"
	case Redirect:
		return "redirect"
	case Allow:
		return "allow"
	default:
		return "unknown"
	}
}

// Manager is the single writer of the session state.
type Manager struct {
	checker Checker

	mu     sync.RWMutex
	state  State
	subs   map[int]func(State)
	nextID int

	initOnce sync.Once
}

// NewManager creates a Manager in the loading state.
func NewManager(c Checker) *Manager {
	return &Manager{
		checker: c,
		state:   State{Loading: true},
		subs:    map[int]func(State){},
	}
}

// Init runs the initial session check. Only the first call has effect.
func (m *Manager) Init(ctx context.Context) State {
	m.initOnce.Do(func() {
		user := m.checker.CheckSession(ctx)
		m.set(State{User: user})
	})
	return m.State()
}

// State returns the current snapshot.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return State{User: m.state.User.Clone(), Loading: m.state.Loading}
}

// User returns the current session or nil.
func (m *Manager) User() *structs.Session { return m.State().User }

// Refresh re-runs the session check, e.g. after a login completes.
func (m *Manager) Refresh(ctx context.Context) State {
	user := m.checker.CheckSession(ctx)
	// a refresh also settles a pending initial check
	m.initOnce.Do(func() {})
	m.set(State{User: user})
	return m.State()
}

// Logout ends the provider session and clears the local one. The user is
// cleared even when the provider call fails; that error is returned.
func (m *Manager) Logout(ctx context.Context) error {
	err := m.checker.Logout(ctx)
	if err != nil {
		logger.Warnf(ctx, "provider sign out: %v", err)
	}
	m.initOnce.Do(func() {})
	m.set(State{})
	return err
}

// Gate decides access for a view that requires a signed-in user.
func (m *Manager) Gate() Access {
	s := m.State()
	switch {
	case s.Loading:
		return Pending
	case s.User == nil:
		return Redirect
	default:
		return Allow
	}
}

// Subscribe registers fn to receive every new snapshot. The returned func
// unregisters it.
func (m *Manager) Subscribe(fn func(State)) func() {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs, id)
			m.mu.Unlock()
		})
	}
}

func (m *Manager) set(s State) {
	m.mu.Lock()
	m.state = State{User: s.User.Clone(), Loading: s.Loading}
	subs := make([]func(State), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	m.mu.Unlock()

	for _, fn := range subs {
		fn(State{User: s.User.Clone(), Loading: s.Loading})
	}
}
