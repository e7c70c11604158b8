// Package memory is the learning memory cache: an exact-text-keyed record of
// every response the assistant has produced for a query, used to build a
// refinement hint on later turns. Keys are compared by literal equality only,
// there is no normalization or fuzzy matching, and nothing is ever evicted.
package memory

import (
	"strings"
	"sync"
)

// Store persists the full mapping with whole-document semantics. Concurrent
// writers through separate processes can lose updates; that is a property of
// the store contract, not of this cache.
type Store interface {
	GetMemory() (map[string][]string, error)
	PutMemory(entries map[string][]string) error
}

// Memory is the process-wide cache. The mutex guards the in-process map; the
// injected store carries it across restarts.
type Memory struct {
	mu      sync.Mutex
	store   Store
	entries map[string][]string
}

// New loads the persisted mapping through store. A store miss starts empty.
func New(store Store) (*Memory, error) {
	entries, err := store.GetMemory()
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = make(map[string][]string)
	}
	return &Memory{store: store, entries: entries}, nil
}

// Record appends response under the exact query text and persists the full
// mapping. Duplicates are kept in storage and collapsed at read time.
func (m *Memory) Record(query, response string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[query] = append(m.entries[query], response)
	return m.store.PutMemory(m.entries)
}

// Refine returns the distinct responses ever recorded for the exact query,
// joined in first-seen order, or "" for a query never seen.
func (m *Memory) Refine(query string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	responses := m.entries[query]
	if len(responses) == 0 {
		return ""
	}

	seen := make(map[string]bool, len(responses))
	distinct := make([]string, 0, len(responses))
	for _, r := range responses {
		if seen[r] {
			continue
		}
		seen[r] = true
		distinct = append(distinct, r)
	}
	return strings.Join(distinct, " ")
}
