package grid

import (
	"fmt"
	"sync"
)

// Changeset is the batch a Save applies to a Store.
type Changeset struct {
	Updated []Record // existing rows whose fields changed
	Added   []Record // new rows, appended in order
}

// Empty reports whether the changeset carries nothing.
func (c Changeset) Empty() bool { return len(c.Updated) == 0 && len(c.Added) == 0 }

// Store holds the committed rows.
type Store interface {
	// Load returns the committed rows in store order.
	Load() ([]Record, error)
	// Commit applies cs atomically: either every change lands or none.
	Commit(cs Changeset) error
}

// MemoryStore is a Store kept in a slice.
type MemoryStore struct {
	mu   sync.Mutex
	rows []Record
}

// NewMemoryStore returns a store holding a copy of seed.
func NewMemoryStore(seed []Record) *MemoryStore {
	return &MemoryStore{rows: append([]Record(nil), seed...)}
}

func (s *MemoryStore) Load() ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Record(nil), s.rows...), nil
}

func (s *MemoryStore) Commit(cs Changeset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := append([]Record(nil), s.rows...)
	index := make(map[string]int, len(next))
	for i, r := range next {
		index[r.ID] = i
	}
	for _, r := range cs.Updated {
		i, ok := index[r.ID]
		if !ok {
			return fmt.Errorf("update %s: %w", r.ID, ErrUnknownRow)
		}
		next[i] = r
	}
	for _, r := range cs.Added {
		if _, ok := index[r.ID]; ok {
			return fmt.Errorf("add %s: duplicate id", r.ID)
		}
		index[r.ID] = len(next)
		next = append(next, r)
	}
	s.rows = next
	return nil
}
