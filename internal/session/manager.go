package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"amana-travel/internal/data/entity"
	"amana-travel/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Identity checks and revokes remote tokens.
type Identity interface {
	Me(ctx context.Context, token string) (*entity.User, error)
	Logout(ctx context.Context, token string) error
}

// Store persists sessions.
type Store interface {
	Save(ctx context.Context, session *entity.Session) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error)
	ListAll(ctx context.Context) ([]*entity.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SignInFunc performs the remote login or registration.
type SignInFunc func(ctx context.Context) (user entity.User, token string, err error)

const (
	persistTimeout = 5 * time.Second
	loadTimeout    = 30 * time.Second
)

// Manager owns one Gate per browser session id. Persisted sessions are
// loaded on first use and revalidated against the remote API before the
// caller sees them.
type Manager struct {
	identity Identity
	store    Store
	ttl      time.Duration
	now      func() time.Time
	log      *zap.Logger

	mu    sync.Mutex
	gates map[uuid.UUID]*Gate
	loads singleflight.Group
}

func NewManager(identity Identity, store Store, ttl time.Duration, log *zap.Logger) *Manager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &Manager{
		identity: identity,
		store:    store,
		ttl:      ttl,
		now:      time.Now,
		log:      log.With(zap.String("component", "session_manager")),
		gates:    make(map[uuid.UUID]*Gate),
	}
}

// newGate builds a gate whose transitions are mirrored to the store. It is
// not visible to State until registered.
func (m *Manager) newGate(id uuid.UUID, createdAt time.Time) *Gate {
	g := NewGate()
	g.Subscribe(func(prev, next State) {
		m.persist(id, createdAt, prev, next)
	})
	return g
}

func (m *Manager) register(id uuid.UUID, g *Gate) {
	m.mu.Lock()
	m.gates[id] = g
	m.mu.Unlock()
}

func (m *Manager) persist(id uuid.UUID, createdAt time.Time, prev, next State) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	switch next.Status {
	case Authenticated:
		err := m.store.Save(ctx, &entity.Session{
			BaseSimple: entity.BaseSimple{ID: id, CreatedAt: createdAt},
			User:       next.User,
			Token:      next.Token,
			ExpiresAt:  next.ExpiresAt,
		})
		if err != nil {
			m.log.Error("Failed to persist session",
				zap.Error(err),
				zap.String("session_id", id.String()))
		}
	case Anonymous:
		m.mu.Lock()
		delete(m.gates, id)
		m.mu.Unlock()

		if err := m.store.Delete(ctx, id); err != nil {
			m.log.Error("Failed to discard session",
				zap.Error(err),
				zap.String("session_id", id.String()))
		}
		m.log.Info("Session ended",
			zap.String("session_id", id.String()),
			zap.String("from", prev.Status.String()))
	}
}

// ExpiryFor reads the exp claim of a JWT without verifying it. Opaque
// tokens, and JWTs without exp, expire after the configured TTL.
func (m *Manager) ExpiryFor(token string) time.Time {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err == nil && claims.ExpiresAt != nil {
		return claims.ExpiresAt.Time
	}
	return m.now().Add(m.ttl)
}

// SignIn opens a fresh session and runs fn while it is Authenticating.
func (m *Manager) SignIn(ctx context.Context, fn SignInFunc) (uuid.UUID, State, error) {
	id := uuid.New()
	g := m.newGate(id, m.now())

	if err := g.BeginAuth(); err != nil {
		return uuid.Nil, State{}, err
	}

	user, token, err := fn(ctx)
	if err == nil && token == "" {
		err = utils.NewRemoteError("The server did not return a session token", nil)
	}
	if err != nil {
		_ = g.Fail()
		return uuid.Nil, State{}, err
	}

	if err := g.Complete(user, token, m.ExpiryFor(token)); err != nil {
		return uuid.Nil, State{}, err
	}
	m.register(id, g)

	m.log.Info("Session signed in",
		zap.String("session_id", id.String()),
		zap.String("user_id", user.ID))

	return id, g.State(), nil
}

// State resolves a session id. Unknown, expired or rejected sessions come
// back Anonymous; only storage failures are errors.
func (m *Manager) State(ctx context.Context, id uuid.UUID) (State, error) {
	g, err := m.gate(ctx, id)
	if err != nil {
		return State{}, err
	}
	if g == nil {
		return State{Status: Anonymous}, nil
	}

	st := g.State()
	if st.IsAuthenticated() && !st.ExpiresAt.IsZero() && !m.now().Before(st.ExpiresAt) {
		m.log.Info("Session expired", zap.String("session_id", id.String()))
		_ = g.SignOut()
		return State{Status: Anonymous}, nil
	}

	return st, nil
}

func (m *Manager) cached(id uuid.UUID) *Gate {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gates[id]
}

// gate returns the live gate for id, loading and revalidating a persisted
// session on first use. Concurrent first uses share one load.
func (m *Manager) gate(ctx context.Context, id uuid.UUID) (*Gate, error) {
	if g := m.cached(id); g != nil {
		return g, nil
	}

	v, err, _ := m.loads.Do(id.String(), func() (any, error) {
		if g := m.cached(id); g != nil {
			return g, nil
		}

		// the load is shared by every waiter, so it outlives the caller
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()

		sess, err := m.store.FindByID(ctx, id)
		if errors.Is(err, utils.ErrUnsealFailed) {
			m.log.Warn("Discarding unreadable session", zap.String("session_id", id.String()))
			m.discard(ctx, id)
			return (*Gate)(nil), nil
		}
		if err != nil {
			return nil, fmt.Errorf("load session: %w", err)
		}
		if sess == nil {
			return (*Gate)(nil), nil
		}

		return m.revalidate(ctx, sess), nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*Gate), nil
}

// revalidate turns a persisted session into a live gate. Expired sessions
// are discarded without a network call; a failed identity check discards
// the token. A check that was cut short leaves the row in place.
func (m *Manager) revalidate(ctx context.Context, sess *entity.Session) *Gate {
	if sess.Expired(m.now()) {
		m.log.Info("Discarding expired session", zap.String("session_id", sess.ID.String()))
		m.discard(ctx, sess.ID)
		return nil
	}

	g := m.newGate(sess.ID, sess.CreatedAt)
	if err := g.BeginAuth(); err != nil {
		return nil
	}

	user, err := m.identity.Me(ctx, sess.Token)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		// no answer is not a rejection: keep the row, retry on next use
		m.log.Warn("Session revalidation interrupted",
			zap.Error(err),
			zap.String("session_id", sess.ID.String()))
		return nil
	}
	if err != nil {
		m.log.Warn("Session revalidation failed",
			zap.Error(err),
			zap.String("session_id", sess.ID.String()))
		_ = g.Fail()
		return nil
	}

	if err := g.Complete(*user, sess.Token, sess.ExpiresAt); err != nil {
		return nil
	}

	// registered only once Authenticated, so no caller sees a half-checked
	// session
	m.register(sess.ID, g)
	return g
}

func (m *Manager) discard(ctx context.Context, id uuid.UUID) {
	if err := m.store.Delete(ctx, id); err != nil {
		m.log.Error("Failed to discard session",
			zap.Error(err),
			zap.String("session_id", id.String()))
	}
}

// Restore revalidates every persisted session at startup, at most limit at
// a time. It returns how many are signed in afterwards.
func (m *Manager) Restore(ctx context.Context, limit int) (int, error) {
	sessions, err := m.store.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("restore sessions: %w", err)
	}

	if limit < 1 {
		limit = 1
	}

	var (
		mu       sync.Mutex
		restored int
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)

	for _, sess := range sessions {
		eg.Go(func() error {
			if g := m.revalidate(egCtx, sess); g != nil {
				mu.Lock()
				restored++
				mu.Unlock()
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return restored, fmt.Errorf("restore sessions: %w", err)
	}

	m.log.Info("Sessions restored",
		zap.Int("persisted", len(sessions)),
		zap.Int("restored", restored))

	return restored, nil
}

// SignOut revokes the remote token, then ends the session even if the
// remote call failed.
func (m *Manager) SignOut(ctx context.Context, id uuid.UUID) error {
	st, err := m.State(ctx, id)
	if err != nil {
		return err
	}
	if !st.IsAuthenticated() {
		return utils.NewUnauthenticatedError("Please sign in to continue")
	}

	if err := m.identity.Logout(ctx, st.Token); err != nil {
		m.log.Warn("Remote logout failed",
			zap.Error(err),
			zap.String("session_id", id.String()))
	}

	if g := m.cached(id); g != nil {
		if err := g.SignOut(); err != nil && !errors.Is(err, ErrInvalidTransition) {
			return err
		}
	}

	return nil
}
