package status

import (
	"context"
	"log"

	"github.com/aetherlearn/pathweaver/internal/types"
)

// Ledger combines a durable store with an in-memory fallback. Writes go to
// the durable store first but never fail the caller when it is down; the
// memory store is updated unconditionally so this process can always answer
// status queries for its own runs.
type Ledger struct {
	durable Store
	memory  *MemoryStore
}

// NewLedger creates a ledger. The durable store may be nil, in which case
// only the memory store is used.
func NewLedger(durable Store, memory *MemoryStore) *Ledger {
	if memory == nil {
		memory = NewMemoryStore(0)
	}
	return &Ledger{durable: durable, memory: memory}
}

// Upsert writes the status durable-first with silent degradation.
func (l *Ledger) Upsert(ctx context.Context, status *types.SearchStatus) error {
	if l.durable != nil {
		if err := l.durable.Upsert(ctx, status); err != nil {
			log.Printf("status: durable upsert failed for %s, memory ledger is authoritative: %v", status.SearchID, err)
		}
	}
	return l.memory.Upsert(ctx, status)
}

// Get reads durable-then-memory. A durable-store error is treated the same
// as a miss so the in-process record still answers.
func (l *Ledger) Get(ctx context.Context, searchID string) (*types.SearchStatus, error) {
	if l.durable != nil {
		record, err := l.durable.Get(ctx, searchID)
		if err == nil && record != nil {
			return record, nil
		}
		if err != nil {
			log.Printf("status: durable get failed for %s, falling back to memory: %v", searchID, err)
		}
	}
	return l.memory.Get(ctx, searchID)
}
