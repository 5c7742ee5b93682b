// Package identity mints unique numeric identifiers for centers and events.
//
// Allocation draws a uniform random candidate from the entity kind's id
// space and asks the persistence gateway to reserve it with an atomic
// conditional create. A lost race surfaces as repository.ErrConflict and the
// allocator retries with a fresh candidate; a separate existence check is
// never trusted as a reservation.
package identity

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/chinmayajanata/backend/internal/domain/repository"
)

// maxAttempts bounds the retry loop. The id spaces are huge relative to the
// expected population, so hitting this means the space is saturated or the
// gateway is misreporting conflicts.
const maxAttempts = 32

// CreateFunc durably reserves the candidate id, returning
// repository.ErrConflict if it is already taken.
type CreateFunc func(ctx context.Context, id int64) error

// Allocator generates identifiers. The zero value is not usable; construct
// with New.
type Allocator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func New() *Allocator {
	return &Allocator{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewWithSeed is intended for tests that need reproducible candidates.
func NewWithSeed(seed int64) *Allocator {
	return &Allocator{rng: rand.New(rand.NewSource(seed))}
}

// Allocate reserves and returns a fresh id in [0, space]. Only ErrConflict
// triggers a retry; every other error propagates unchanged so that a storage
// failure is never mistaken for uniqueness.
func (a *Allocator) Allocate(ctx context.Context, space int64, create CreateFunc) (int64, error) {
	if space <= 0 {
		return 0, fmt.Errorf("identity: id space must be positive, got %d", space)
	}
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		candidate := a.candidate(space)
		err := create(ctx, candidate)
		if err == nil {
			return candidate, nil
		}
		if errors.Is(err, repository.ErrConflict) {
			continue
		}
		return 0, err
	}
	return 0, fmt.Errorf("identity: gave up after %d collisions: %w", maxAttempts, repository.ErrConflict)
}

func (a *Allocator) candidate(space int64) int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	// Int63n is exclusive of its bound; the space constant is inclusive.
	return a.rng.Int63n(space + 1)
}
