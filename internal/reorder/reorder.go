// Package reorder implements the optimistic batch mutation pattern shared by
// every drag-reorderable collection (certifications, achievement stories,
// resume bullet order): apply the new order locally right away, persist each
// moved entry with its own request, and roll the whole order back if any of
// them fails.
package reorder

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Mutator holds the local copy of one ordered collection. K is the entry's
// identifier type.
type Mutator[T any, K comparable] struct {
	mu      sync.Mutex
	items   []T
	key     func(T) K
	persist func(ctx context.Context, key K, position int) error
	fetch   func(ctx context.Context) ([]T, error)
}

// NewMutator builds a mutator over the current server-fetched order.
// persist saves a single entry's new position; fetch returns the
// server-authoritative order for reconciliation.
func NewMutator[T any, K comparable](
	items []T,
	key func(T) K,
	persist func(ctx context.Context, key K, position int) error,
	fetch func(ctx context.Context) ([]T, error),
) *Mutator[T, K] {
	m := &Mutator[T, K]{key: key, persist: persist, fetch: fetch}
	m.items = append(m.items, items...)
	return m
}

// Items returns a copy of the current local order.
func (m *Mutator[T, K]) Items() []T {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]T, len(m.items))
	copy(out, m.items)
	return out
}

// Apply commits a reorder. The new order is visible locally before any
// request completes, so a successful save never appears to snap back. One
// persistence call is issued per entry whose position actually changed,
// concurrently. If any call fails the entire local order reverts to the
// pre-reorder snapshot and the error is returned for the caller to surface.
//
// Calls that succeeded before a later failure are not undone server-side;
// until the next fetch the client's rolled-back order may diverge from the
// server's partially-applied one. The divergence is bounded by the next
// read, which is server-authoritative.
func (m *Mutator[T, K]) Apply(ctx context.Context, newOrder []T) error {
	m.mu.Lock()
	snapshot := m.items
	positions := make(map[K]int, len(snapshot))
	for i, item := range snapshot {
		positions[m.key(item)] = i
	}
	m.items = make([]T, len(newOrder))
	copy(m.items, newOrder)
	m.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)
	for i, item := range newOrder {
		prev, known := positions[m.key(item)]
		if known && prev == i {
			continue
		}
		position := i
		key := m.key(item)
		g.Go(func() error {
			return m.persist(gctx, key, position)
		})
	}
	if err := g.Wait(); err != nil {
		m.mu.Lock()
		m.items = snapshot
		m.mu.Unlock()
		return err
	}

	// Reconcile with the server. A failed refetch keeps the optimistic
	// order; the next successful read replaces it anyway.
	if fetched, err := m.fetch(ctx); err == nil {
		m.mu.Lock()
		m.items = fetched
		m.mu.Unlock()
	}
	return nil
}

// Refresh replaces the local order with the server's.
func (m *Mutator[T, K]) Refresh(ctx context.Context) error {
	fetched, err := m.fetch(ctx)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.items = fetched
	m.mu.Unlock()
	return nil
}
