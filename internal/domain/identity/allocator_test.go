package identity

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chinmayajanata/backend/internal/domain/rank"
	"github.com/chinmayajanata/backend/internal/domain/repository"
)

// reservingStore mimics the conditional-create contract of the gateway.
type reservingStore struct {
	mu    sync.Mutex
	taken map[int64]bool
}

func newReservingStore() *reservingStore {
	return &reservingStore{taken: map[int64]bool{}}
}

func (s *reservingStore) create(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.taken[id] {
		return repository.ErrConflict
	}
	s.taken[id] = true
	return nil
}

func TestAllocateReturnsDistinctIDsUnderConcurrency(t *testing.T) {
	store := newReservingStore()
	alloc := New()

	const workers = 64
	ids := make(chan int64, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := alloc.Allocate(context.Background(), rank.CenterIDSpace, store.create)
			require.NoError(t, err)
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[int64]bool{}
	for id := range ids {
		require.False(t, seen[id], "id %d allocated twice", id)
		require.GreaterOrEqual(t, id, int64(0))
		require.LessOrEqual(t, id, rank.CenterIDSpace)
		seen[id] = true
	}
	require.Len(t, seen, workers)
}

func TestAllocateRetriesOnConflict(t *testing.T) {
	alloc := NewWithSeed(1)
	calls := 0
	id, err := alloc.Allocate(context.Background(), rank.EventIDSpace, func(_ context.Context, _ int64) error {
		calls++
		if calls < 4 {
			return repository.ErrConflict
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 4, calls)
	require.GreaterOrEqual(t, id, int64(0))
}

func TestAllocateDoesNotRetryStorageFailures(t *testing.T) {
	alloc := NewWithSeed(2)
	boom := errors.New("connection reset")
	calls := 0
	_, err := alloc.Allocate(context.Background(), rank.CenterIDSpace, func(_ context.Context, _ int64) error {
		calls++
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.Equal(t, 1, calls, "a storage failure must never be treated as a free id")
}

func TestAllocateGivesUpAfterSaturation(t *testing.T) {
	alloc := NewWithSeed(3)
	_, err := alloc.Allocate(context.Background(), rank.CenterIDSpace, func(_ context.Context, _ int64) error {
		return repository.ErrConflict
	})
	require.ErrorIs(t, err, repository.ErrConflict)
}

func TestAllocateHonorsContextCancellation(t *testing.T) {
	alloc := NewWithSeed(4)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := alloc.Allocate(ctx, rank.CenterIDSpace, func(_ context.Context, _ int64) error {
		t.Fatal("create must not run after cancellation")
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestAllocateRejectsNonPositiveSpace(t *testing.T) {
	alloc := NewWithSeed(5)
	_, err := alloc.Allocate(context.Background(), 0, func(_ context.Context, _ int64) error { return nil })
	require.Error(t, err)
}
