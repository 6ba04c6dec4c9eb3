package reorder

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	ID   string
	Name string
}

type fakeStore struct {
	mu        sync.Mutex
	persisted map[string]int
	failFor   map[string]bool
	server    []entry
	calls     int
}

func newFakeStore(server []entry) *fakeStore {
	return &fakeStore{
		persisted: map[string]int{},
		failFor:   map[string]bool{},
		server:    server,
	}
}

func (s *fakeStore) persist(_ context.Context, id string, position int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.failFor[id] {
		return fmt.Errorf("persist %s failed", id)
	}
	s.persisted[id] = position
	return nil
}

func (s *fakeStore) fetch(_ context.Context) ([]entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entry, len(s.server))
	copy(out, s.server)
	return out, nil
}

func TestApplyPersistsOnlyMovedEntries(t *testing.T) {
	items := []entry{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	store := newFakeStore(items)
	m := NewMutator(items, func(e entry) string { return e.ID }, store.persist, store.fetch)

	// swap the last two; "a" keeps its position
	newOrder := []entry{{ID: "a"}, {ID: "c"}, {ID: "b"}}
	require.NoError(t, m.Apply(context.Background(), newOrder))

	assert.Equal(t, 2, store.calls)
	assert.Equal(t, map[string]int{"c": 1, "b": 2}, store.persisted)
}

func TestApplyIsOptimistic(t *testing.T) {
	items := []entry{{ID: "a"}, {ID: "b"}}
	store := newFakeStore(items)

	applied := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	persist := func(ctx context.Context, id string, pos int) error {
		once.Do(func() { close(applied) })
		<-release
		return nil
	}

	m := NewMutator(items, func(e entry) string { return e.ID }, persist, store.fetch)

	done := make(chan error)
	go func() {
		done <- m.Apply(context.Background(), []entry{{ID: "b"}, {ID: "a"}})
	}()

	<-applied
	// local order already shows the new order while persistence is in flight
	local := m.Items()
	assert.Equal(t, "b", local[0].ID)
	assert.Equal(t, "a", local[1].ID)
	close(release)
	require.NoError(t, <-done)
}

// Reorder of 2 entries where one PATCH fails: the entire local order reverts
// to the pre-reorder snapshot, and a later refetch shows the
// server-authoritative order.
func TestApplyRollsBackWholeOrderOnAnyFailure(t *testing.T) {
	items := []entry{{ID: "a"}, {ID: "b"}}
	store := newFakeStore(items)
	store.failFor["b"] = true
	m := NewMutator(items, func(e entry) string { return e.ID }, store.persist, store.fetch)

	err := m.Apply(context.Background(), []entry{{ID: "b"}, {ID: "a"}})
	require.Error(t, err)

	local := m.Items()
	assert.Equal(t, "a", local[0].ID, "rollback restores the pre-reorder order")
	assert.Equal(t, "b", local[1].ID)

	// the call that succeeded is not undone server-side; the divergence is
	// bounded by the next read
	store.mu.Lock()
	store.server = []entry{{ID: "b"}, {ID: "a"}}
	store.mu.Unlock()
	require.NoError(t, m.Refresh(context.Background()))
	local = m.Items()
	assert.Equal(t, "b", local[0].ID, "refetch shows server-authoritative order")
	assert.Equal(t, "a", local[1].ID)
}

func TestApplyReconcilesWithServerOnSuccess(t *testing.T) {
	items := []entry{{ID: "a", Name: "stale"}, {ID: "b"}}
	server := []entry{{ID: "b", Name: "fresh"}, {ID: "a", Name: "fresh"}}
	store := newFakeStore(server)
	m := NewMutator(items, func(e entry) string { return e.ID }, store.persist, store.fetch)

	require.NoError(t, m.Apply(context.Background(), []entry{{ID: "b"}, {ID: "a", Name: "stale"}}))
	local := m.Items()
	assert.Equal(t, "fresh", local[0].Name, "successful save reconciles with the refetched order")
	assert.Equal(t, "fresh", local[1].Name)
}

func TestItemsReturnsCopy(t *testing.T) {
	items := []entry{{ID: "a"}, {ID: "b"}}
	store := newFakeStore(items)
	m := NewMutator(items, func(e entry) string { return e.ID }, store.persist, store.fetch)

	got := m.Items()
	got[0] = entry{ID: "z"}
	assert.Equal(t, "a", m.Items()[0].ID)
}
