package catalog

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"amana-travel/internal/data/entity"
	"amana-travel/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeFetcher struct {
	mu      sync.Mutex
	items   map[entity.Kind][]entity.Package
	lists   atomic.Int32
	details atomic.Int32
	release chan struct{}
}

func (f *fakeFetcher) List(ctx context.Context, kind entity.Kind) ([]entity.Package, error) {
	f.lists.Add(1)
	if f.release != nil {
		<-f.release
	}
	if err := ctx.Err(); err != nil {
		return nil, utils.NewNetworkError(err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.items[kind], nil
}

func (f *fakeFetcher) FindByID(ctx context.Context, kind entity.Kind, id string) (entity.Package, error) {
	f.details.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, utils.NewNetworkError(err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.items[kind] {
		if p.Info().ID == id {
			return p, nil
		}
	}
	return nil, utils.NewNotFoundError("Package not found")
}

func newFakeFetcher() *fakeFetcher {
	inactive := hajj("h2", "Closed Hajj", "2025", "21 days", 800000)
	inactive.Status = entity.StatusInactive

	return &fakeFetcher{items: map[entity.Kind][]entity.Package{
		entity.KindTour: sevenTours(),
		entity.KindHajj: {hajj("h1", "Hajj", "2026", "21 days", 900000), inactive},
	}}
}

func TestStoreListCachesSnapshot(t *testing.T) {
	fetcher := newFakeFetcher()
	store := NewStore(fetcher, time.Minute, zap.NewNop())

	first, err := store.List(context.Background(), entity.KindTour)
	require.NoError(t, err)
	second, err := store.List(context.Background(), entity.KindTour)
	require.NoError(t, err)

	assert.Len(t, first.Items, 7)
	assert.Same(t, first, second)
	assert.EqualValues(t, 1, fetcher.lists.Load())
}

func TestStoreListDropsInactive(t *testing.T) {
	store := NewStore(newFakeFetcher(), time.Minute, zap.NewNop())

	snap, err := store.List(context.Background(), entity.KindHajj)
	require.NoError(t, err)

	assert.Equal(t, []string{"h1"}, ids(snap.Items))
}

func TestStoreGetInactiveIsNotFound(t *testing.T) {
	store := NewStore(newFakeFetcher(), time.Minute, zap.NewNop())

	_, err := store.Get(context.Background(), entity.KindHajj, "h2")
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))

	p, err := store.Get(context.Background(), entity.KindHajj, "h1")
	require.NoError(t, err)
	assert.Equal(t, "h1", p.Info().ID)
}

func TestStoreTTLExpiry(t *testing.T) {
	fetcher := newFakeFetcher()
	store := NewStore(fetcher, time.Minute, zap.NewNop())

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	_, err := store.List(context.Background(), entity.KindTour)
	require.NoError(t, err)

	now = now.Add(59 * time.Second)
	_, err = store.List(context.Background(), entity.KindTour)
	require.NoError(t, err)
	assert.EqualValues(t, 1, fetcher.lists.Load())

	now = now.Add(time.Second)
	_, err = store.List(context.Background(), entity.KindTour)
	require.NoError(t, err)
	assert.EqualValues(t, 2, fetcher.lists.Load())
}

func TestStoreInvalidateByTag(t *testing.T) {
	fetcher := newFakeFetcher()
	store := NewStore(fetcher, time.Hour, zap.NewNop())
	ctx := context.Background()

	_, err := store.Get(ctx, entity.KindTour, "t1")
	require.NoError(t, err)
	_, err = store.Get(ctx, entity.KindTour, "t2")
	require.NoError(t, err)
	assert.EqualValues(t, 2, fetcher.details.Load())

	store.Invalidate("tour:t1")
	_, err = store.Get(ctx, entity.KindTour, "t1")
	require.NoError(t, err)
	_, err = store.Get(ctx, entity.KindTour, "t2")
	require.NoError(t, err)
	assert.EqualValues(t, 3, fetcher.details.Load())

	_, err = store.List(ctx, entity.KindTour)
	require.NoError(t, err)
	store.Invalidate("tour")
	_, err = store.List(ctx, entity.KindTour)
	require.NoError(t, err)
	_, err = store.Get(ctx, entity.KindTour, "t2")
	require.NoError(t, err)

	assert.EqualValues(t, 2, fetcher.lists.Load())
	assert.EqualValues(t, 4, fetcher.details.Load())
}

func TestStoreNotifiesSubscribers(t *testing.T) {
	store := NewStore(newFakeFetcher(), time.Hour, zap.NewNop())

	var got []entity.Kind
	unsubscribe := store.Subscribe(func(s Snapshot) {
		got = append(got, s.Kind)
	})

	_, err := store.List(context.Background(), entity.KindTour)
	require.NoError(t, err)

	unsubscribe()
	store.Invalidate("tour")
	_, err = store.List(context.Background(), entity.KindTour)
	require.NoError(t, err)

	assert.Equal(t, []entity.Kind{entity.KindTour}, got)
}

func TestStoreConcurrentMissesShareOneFetch(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.release = make(chan struct{})
	store := NewStore(fetcher, time.Hour, zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.List(context.Background(), entity.KindTour)
			assert.NoError(t, err)
		}()
	}

	require.Eventually(t, func() bool { return fetcher.lists.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(fetcher.release)
	wg.Wait()

	assert.EqualValues(t, 1, fetcher.lists.Load())
}

func TestStoreCancelledCallerDoesNotFailFetch(t *testing.T) {
	store := NewStore(newFakeFetcher(), time.Minute, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	snap, err := store.List(ctx, entity.KindTour)
	require.NoError(t, err)
	assert.Len(t, snap.Items, 7)

	pkg, err := store.Get(ctx, entity.KindHajj, "h1")
	require.NoError(t, err)
	assert.Equal(t, "h1", pkg.Info().ID)
}
