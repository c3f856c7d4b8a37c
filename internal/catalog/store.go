package catalog

import (
	"context"
	"strings"
	"sync"
	"time"

	"amana-travel/internal/data/entity"
	"amana-travel/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Fetcher loads packages from the remote API.
type Fetcher interface {
	List(ctx context.Context, kind entity.Kind) ([]entity.Package, error)
	FindByID(ctx context.Context, kind entity.Kind, id string) (entity.Package, error)
}

// Snapshot is an immutable copy of one kind's active catalog.
type Snapshot struct {
	Kind      entity.Kind
	Items     []entity.Package
	FetchedAt time.Time
}

type detailEntry struct {
	pkg       entity.Package
	fetchedAt time.Time
}

// Store caches catalog snapshots and package details. Entries are dropped
// by tag ("tour", "tour:<id>") or when they outlive the TTL.
type Store struct {
	fetcher Fetcher
	ttl     time.Duration
	now     func() time.Time
	log     *zap.Logger

	mu      sync.RWMutex
	lists   map[entity.Kind]*Snapshot
	details map[string]detailEntry
	subs    map[int]func(Snapshot)
	nextSub int

	group singleflight.Group
}

func NewStore(fetcher Fetcher, ttl time.Duration, log *zap.Logger) *Store {
	return &Store{
		fetcher: fetcher,
		ttl:     ttl,
		now:     time.Now,
		log:     log.With(zap.String("component", "catalog_store")),
		lists:   make(map[entity.Kind]*Snapshot),
		details: make(map[string]detailEntry),
		subs:    make(map[int]func(Snapshot)),
	}
}

// fetchTimeout bounds a shared fetch, which no longer follows the caller's
// cancellation.
const fetchTimeout = 30 * time.Second

// detach keeps ctx values but not its cancellation, so one caller going
// away does not fail the others waiting on the same fetch.
func detach(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), fetchTimeout)
}

func detailTag(kind entity.Kind, id string) string {
	return string(kind) + ":" + id
}

func (s *Store) fresh(fetchedAt time.Time) bool {
	return s.ttl <= 0 || s.now().Sub(fetchedAt) < s.ttl
}

// List returns the active packages of kind, fetching when the cached
// snapshot is missing, invalidated or stale.
func (s *Store) List(ctx context.Context, kind entity.Kind) (*Snapshot, error) {
	s.mu.RLock()
	snap, ok := s.lists[kind]
	s.mu.RUnlock()

	if ok && s.fresh(snap.FetchedAt) {
		return snap, nil
	}

	v, err, _ := s.group.Do("list:"+string(kind), func() (any, error) {
		ctx, cancel := detach(ctx)
		defer cancel()

		items, err := s.fetcher.List(ctx, kind)
		if err != nil {
			return nil, err
		}

		active := make([]entity.Package, 0, len(items))
		for _, p := range items {
			if p.Info().Active() {
				active = append(active, p)
			}
		}

		if dropped := len(items) - len(active); dropped > 0 {
			s.log.Debug("Dropped inactive packages",
				zap.String("kind", kind.String()),
				zap.Int("dropped", dropped))
		}

		next := &Snapshot{Kind: kind, Items: active, FetchedAt: s.now()}
		s.replace(next)
		return next, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*Snapshot), nil
}

func (s *Store) replace(next *Snapshot) {
	s.mu.Lock()
	s.lists[next.Kind] = next
	subs := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(*next)
	}
}

// Get returns one active package. Inactive packages are reported as not
// found.
func (s *Store) Get(ctx context.Context, kind entity.Kind, id string) (entity.Package, error) {
	tag := detailTag(kind, id)

	s.mu.RLock()
	entry, ok := s.details[tag]
	s.mu.RUnlock()

	if ok && s.fresh(entry.fetchedAt) {
		return entry.pkg, nil
	}

	v, err, _ := s.group.Do("get:"+tag, func() (any, error) {
		ctx, cancel := detach(ctx)
		defer cancel()

		pkg, err := s.fetcher.FindByID(ctx, kind, id)
		if err != nil {
			return nil, err
		}
		if !pkg.Info().Active() {
			return nil, utils.NewNotFoundError("Package not found")
		}

		s.mu.Lock()
		s.details[tag] = detailEntry{pkg: pkg, fetchedAt: s.now()}
		s.mu.Unlock()

		return pkg, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(entity.Package), nil
}

// Invalidate drops cached entries. A bare kind tag drops the list and every
// detail of that kind; "kind:id" drops one detail.
func (s *Store) Invalidate(tags ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, tag := range tags {
		if kind, ok := entity.ParseKind(tag); ok && !strings.Contains(tag, ":") {
			delete(s.lists, kind)
			prefix := string(kind) + ":"
			for key := range s.details {
				if strings.HasPrefix(key, prefix) {
					delete(s.details, key)
				}
			}
			continue
		}
		delete(s.details, tag)
	}
}

// Subscribe registers fn for every replaced snapshot. fn runs on the
// fetching goroutine and must not block.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}
