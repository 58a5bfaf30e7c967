// Package pipeline orchestrates the discovery-to-curriculum flow for a
// search and owns the status state machine.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/aetherlearn/pathweaver/internal/cache"
	"github.com/aetherlearn/pathweaver/internal/config"
	"github.com/aetherlearn/pathweaver/internal/discovery"
	"github.com/aetherlearn/pathweaver/internal/llm"
	"github.com/aetherlearn/pathweaver/internal/status"
	"github.com/aetherlearn/pathweaver/internal/types"
)

// PathStore persists finished learning paths. Insert failures do not block
// completion; the pipeline falls back to a surrogate id.
type PathStore interface {
	Insert(ctx context.Context, path *types.LearningPath) (string, error)
	Get(ctx context.Context, id string) (*types.LearningPath, error)
}

// Enricher optionally fills item metadata from the content page.
type Enricher interface {
	Enrich(ctx context.Context, item types.ContentItem) types.ContentItem
}

// Options carries the collaborators and knobs for a Manager. Provider is
// required; everything else degrades gracefully when absent.
type Options struct {
	Provider  discovery.Provider
	Generator llm.Generator
	Ledger    *status.Ledger
	Paths     PathStore
	Cache     *cache.Cache
	Enricher  Enricher
	Config    config.Config
}

// Manager runs searches. One Manager is constructed per process and shared
// by all callers; per-search state lives entirely in the status ledger.
type Manager struct {
	provider  discovery.Provider
	generator llm.Generator
	ledger    *status.Ledger
	paths     PathStore
	cache     *cache.Cache
	enricher  Enricher
	cfg       config.Config
}

// New creates a Manager from options, filling in defaults for the ledger
// and cache when not supplied.
func New(opts Options) (*Manager, error) {
	if opts.Provider == nil {
		return nil, fmt.Errorf("a search provider is required")
	}

	cfg := opts.Config.MergeWithDefaults(config.Defaults())

	ledger := opts.Ledger
	if ledger == nil {
		ledger = status.NewLedger(nil, nil)
	}
	c := opts.Cache
	if c == nil {
		c = cache.New(cfg.CacheTTL(), cfg.CacheCapacity)
	}

	return &Manager{
		provider:  opts.Provider,
		generator: opts.Generator,
		ledger:    ledger,
		paths:     opts.Paths,
		cache:     c,
		enricher:  opts.Enricher,
		cfg:       cfg,
	}, nil
}

// StartSearch validates the request, records INITIATED and spawns the
// pipeline run in the background. The caller polls GetStatus for progress.
func (m *Manager) StartSearch(ctx context.Context, req *types.SearchRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	searchID := uuid.NewString()
	now := time.Now().UTC()
	initial := &types.SearchStatus{
		SearchID:  searchID,
		UserID:    req.UserID,
		Query:     req.Query,
		State:     types.StateInitiated,
		Progress:  0,
		Message:   "Search initiated",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := m.ledger.Upsert(ctx, initial); err != nil {
		return "", fmt.Errorf("failed to record search: %w", err)
	}

	go func() {
		// The run outlives the initiating request.
		if _, err := m.ProcessSearch(context.Background(), searchID, req.Query, req.Preferences); err != nil {
			log.Printf("pipeline: search %s failed: %v", searchID, err)
		}
	}()

	return searchID, nil
}

// GetStatus returns the current status for a search, or (nil, nil) when the
// id is unknown.
func (m *Manager) GetStatus(ctx context.Context, searchID string) (*types.SearchStatus, error) {
	return m.ledger.Get(ctx, searchID)
}

// GetPath returns a stored learning path by id.
func (m *Manager) GetPath(ctx context.Context, pathID string) (*types.LearningPath, error) {
	if m.paths == nil {
		return nil, nil
	}
	return m.paths.Get(ctx, pathID)
}

// Close releases generator resources.
func (m *Manager) Close() error {
	if m.generator != nil {
		return m.generator.Close()
	}
	return nil
}
