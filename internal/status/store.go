// Package status tracks the lifecycle of search runs across a durable
// store and an in-process fallback ledger.
package status

import (
	"context"

	"github.com/aetherlearn/pathweaver/internal/types"
)

// Store persists search status records. Get returns (nil, nil) for an
// unknown id; an error means the store itself failed.
type Store interface {
	Upsert(ctx context.Context, status *types.SearchStatus) error
	Get(ctx context.Context, searchID string) (*types.SearchStatus, error)
}
