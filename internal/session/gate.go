// Package session tracks who is signed in on each browser session and keeps
// a persisted copy so sign-ins survive a restart.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"amana-travel/internal/data/entity"
)

type Status int

const (
	Anonymous Status = iota
	Authenticating
	Authenticated
)

func (s Status) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

var ErrInvalidTransition = errors.New("invalid session transition")

// State is an immutable snapshot of a gate. Token and User are only set
// while Authenticated.
type State struct {
	Status    Status
	User      entity.User
	Token     string
	ExpiresAt time.Time
}

func (s State) IsAuthenticated() bool {
	return s.Status == Authenticated
}

// Listener sees every transition in the order it happened. It must not
// transition the gate it listens to.
type Listener func(prev, next State)

// Gate is the state machine for one session:
//
//	Anonymous -> Authenticating -> Authenticated -> Anonymous
//	                    \-> Anonymous (failed)
type Gate struct {
	mu       sync.Mutex
	notifyMu sync.Mutex
	state    State
	subs     map[int]Listener
	nextSub  int
}

func NewGate() *Gate {
	return &Gate{subs: make(map[int]Listener)}
}

func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

func (g *Gate) Subscribe(fn Listener) (unsubscribe func()) {
	g.mu.Lock()
	id := g.nextSub
	g.nextSub++
	g.subs[id] = fn
	g.mu.Unlock()

	return func() {
		g.mu.Lock()
		delete(g.subs, id)
		g.mu.Unlock()
	}
}

// BeginAuth moves an anonymous gate to Authenticating.
func (g *Gate) BeginAuth() error {
	return g.transition(func(cur State) (State, error) {
		if cur.Status != Anonymous {
			return cur, fmt.Errorf("%w: begin auth from %s", ErrInvalidTransition, cur.Status)
		}
		return State{Status: Authenticating}, nil
	})
}

// Complete finishes a sign-in or a revalidation.
func (g *Gate) Complete(user entity.User, token string, expiresAt time.Time) error {
	return g.transition(func(cur State) (State, error) {
		if cur.Status != Authenticating {
			return cur, fmt.Errorf("%w: complete from %s", ErrInvalidTransition, cur.Status)
		}
		return State{Status: Authenticated, User: user, Token: token, ExpiresAt: expiresAt}, nil
	})
}

// Fail abandons a sign-in or a revalidation.
func (g *Gate) Fail() error {
	return g.transition(func(cur State) (State, error) {
		if cur.Status != Authenticating {
			return cur, fmt.Errorf("%w: fail from %s", ErrInvalidTransition, cur.Status)
		}
		return State{Status: Anonymous}, nil
	})
}

// SignOut drops an authenticated session, on logout or when the token is
// found to be expired or rejected.
func (g *Gate) SignOut() error {
	return g.transition(func(cur State) (State, error) {
		if cur.Status != Authenticated {
			return cur, fmt.Errorf("%w: sign out from %s", ErrInvalidTransition, cur.Status)
		}
		return State{Status: Anonymous}, nil
	})
}

func (g *Gate) transition(step func(cur State) (State, error)) error {
	g.mu.Lock()
	prev := g.state
	next, err := step(prev)
	if err != nil {
		g.mu.Unlock()
		return err
	}
	g.state = next

	subs := make([]Listener, 0, len(g.subs))
	for _, fn := range g.subs {
		subs = append(subs, fn)
	}

	// hand over to notifyMu before releasing mu so listeners observe
	// transitions in order
	g.notifyMu.Lock()
	g.mu.Unlock()
	defer g.notifyMu.Unlock()

	for _, fn := range subs {
		fn(prev, next)
	}
	return nil
}
