package status

import (
	"context"
	"sync"

	"github.com/aetherlearn/pathweaver/internal/types"
)

// DefaultMemoryCapacity bounds the in-memory ledger so a long-lived process
// cannot grow it without limit.
const DefaultMemoryCapacity = 1000

// MemoryStore is a mutex-guarded map implementation of Store. When the
// capacity is reached the record with the oldest update is evicted.
type MemoryStore struct {
	mu       sync.Mutex
	capacity int
	records  map[string]*types.SearchStatus
}

// NewMemoryStore creates a bounded in-memory store. Non-positive capacity
// falls back to the default.
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	return &MemoryStore{
		capacity: capacity,
		records:  make(map[string]*types.SearchStatus),
	}
}

// Upsert stores a copy of the status under its search id.
func (m *MemoryStore) Upsert(_ context.Context, status *types.SearchStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.records[status.SearchID]; !exists && len(m.records) >= m.capacity {
		m.evictOldestLocked()
	}
	clone := *status
	m.records[status.SearchID] = &clone
	return nil
}

// Get returns a copy of the stored status, or (nil, nil) when unknown.
func (m *MemoryStore) Get(_ context.Context, searchID string) (*types.SearchStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.records[searchID]
	if !ok {
		return nil, nil
	}
	clone := *record
	return &clone, nil
}

// Len reports the number of tracked searches.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

func (m *MemoryStore) evictOldestLocked() {
	var oldestID string
	first := true
	var oldest *types.SearchStatus
	for id, record := range m.records {
		if first || record.UpdatedAt.Before(oldest.UpdatedAt) {
			oldestID = id
			oldest = record
			first = false
		}
	}
	if !first {
		delete(m.records, oldestID)
	}
}
