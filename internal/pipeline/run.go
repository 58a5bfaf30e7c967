package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aetherlearn/pathweaver/internal/curriculum"
	"github.com/aetherlearn/pathweaver/internal/discovery"
	"github.com/aetherlearn/pathweaver/internal/diversity"
	"github.com/aetherlearn/pathweaver/internal/filter"
	"github.com/aetherlearn/pathweaver/internal/ranking"
	"github.com/aetherlearn/pathweaver/internal/scoring"
	"github.com/aetherlearn/pathweaver/internal/types"
)

// Progress checkpoints per stage.
const (
	progressSearching    = 10
	progressDiscovering  = 25
	progressCategorizing = 40
	progressRanking      = 60
	progressGenerating   = 80
	progressCompleted    = 100
)

// ProcessSearch runs the full pipeline for one search id. Stage-local
// failures degrade; an unrecoverable error writes FAILED with progress 0
// and is returned to the caller for logging.
func (m *Manager) ProcessSearch(ctx context.Context, searchID, query string, prefs *types.Preferences) (pathID string, err error) {
	defer func() {
		if err != nil {
			m.update(ctx, searchID, types.StatusUpdate{
				State:    types.StateFailed,
				Progress: types.IntPtr(0),
				Message:  fmt.Sprintf("Search failed: %v", err),
			})
		}
	}()

	m.update(ctx, searchID, types.StatusUpdate{
		State:    types.StateSearching,
		Progress: types.IntPtr(progressSearching),
		Message:  fmt.Sprintf("Searching for %q", query),
	})

	ranked, found, scanned, err := m.discoverAndRank(ctx, searchID, query, prefs)
	if err != nil {
		return "", err
	}
	if len(ranked) == 0 {
		return "", fmt.Errorf("no usable content found for %q", query)
	}

	m.update(ctx, searchID, types.StatusUpdate{
		State:          types.StateGenerating,
		Progress:       types.IntPtr(progressGenerating),
		Message:        "Generating learning path",
		ResourcesFound: types.IntPtr(found),
		SourcesScanned: types.IntPtr(scanned),
	})

	path, err := curriculum.Synthesize(ctx, m.generator, query, ranked, prefs)
	if err != nil {
		return "", fmt.Errorf("curriculum synthesis failed: %w", err)
	}

	pathID = m.persistPath(ctx, path)

	m.update(ctx, searchID, types.StatusUpdate{
		State:          types.StateCompleted,
		Progress:       types.IntPtr(progressCompleted),
		Message:        "Learning path ready",
		LearningPathID: pathID,
	})
	return pathID, nil
}

// discoverAndRank produces the final ranked content list for a query,
// consulting the cache before touching the provider.
func (m *Manager) discoverAndRank(ctx context.Context, searchID, query string, prefs *types.Preferences) (ranked []types.ContentItem, found, scanned int, err error) {
	if cached, ok := m.cache.Check(query); ok {
		scanned = countSources(cached)
		m.update(ctx, searchID, types.StatusUpdate{
			State:          types.StateCategorizing,
			Progress:       types.IntPtr(progressRanking),
			Message:        fmt.Sprintf("Ranked %d cached resources", len(cached)),
			ResourcesFound: types.IntPtr(len(cached)),
			SourcesScanned: types.IntPtr(scanned),
		})
		// Preferences still apply to the cached universe.
		return ranking.Rank(cached, prefs), len(cached), scanned, nil
	}

	hits, err := m.provider.Search(ctx, query)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("search provider failed: %w", err)
	}

	m.update(ctx, searchID, types.StatusUpdate{
		State:          types.StateDiscovering,
		Progress:       types.IntPtr(progressDiscovering),
		Message:        fmt.Sprintf("Found %d candidate resources", len(hits)),
		ResourcesFound: types.IntPtr(len(hits)),
	})

	items := discovery.BuildItems(hits)
	scanned = countSources(items)

	if m.enricher != nil {
		for i := range items {
			items[i] = m.enricher.Enrich(ctx, items[i])
		}
	}

	m.update(ctx, searchID, types.StatusUpdate{
		State:          types.StateCategorizing,
		Progress:       types.IntPtr(progressCategorizing),
		Message:        "Filtering and scoring content",
		SourcesScanned: types.IntPtr(scanned),
	})

	filtered := filter.Apply(items, prefs, filter.Config{
		QualityThreshold:  m.cfg.QualityThreshold,
		MaxContentItems:   m.cfg.MaxContentItems,
		MaxContentSources: m.cfg.MaxContentSources,
	})
	scored := scoring.ApplyCredibility(filtered)
	balanced := diversity.Balance(scored, prefs, diversity.Config{MaxItems: m.cfg.MaxBalancedItems})
	ranked = ranking.Rank(balanced, prefs)

	m.update(ctx, searchID, types.StatusUpdate{
		Progress:       types.IntPtr(progressRanking),
		Message:        fmt.Sprintf("Ranked %d resources", len(ranked)),
		ResourcesFound: types.IntPtr(len(ranked)),
	})

	if len(ranked) > 0 {
		m.cache.Store(query, ranked)
	}
	return ranked, len(ranked), scanned, nil
}

// persistPath stores the path, falling back to a surrogate id when the
// store is missing or down so the run still completes.
func (m *Manager) persistPath(ctx context.Context, path *types.LearningPath) string {
	if m.paths != nil {
		if id, err := m.paths.Insert(ctx, path); err == nil {
			return id
		}
	}
	return uuid.NewString()
}

// CustomizePath regenerates a stored path under new preferences, running
// the customization through the same status state machine.
func (m *Manager) CustomizePath(ctx context.Context, pathID string, prefs *types.Preferences) (string, *types.LearningPath, error) {
	original, err := m.GetPath(ctx, pathID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to load path %s: %w", pathID, err)
	}
	if original == nil {
		return "", nil, &NotFoundError{Kind: "learning path", ID: pathID}
	}

	searchID := uuid.NewString()
	now := time.Now().UTC()
	m.ledger.Upsert(ctx, &types.SearchStatus{
		SearchID:  searchID,
		UserID:    original.UserID,
		Query:     original.Query,
		State:     types.StateInitiated,
		Message:   "Customization initiated",
		CreatedAt: now,
		UpdatedAt: now,
	})

	m.update(ctx, searchID, types.StatusUpdate{
		State:    types.StateGenerating,
		Progress: types.IntPtr(progressGenerating),
		Message:  "Customizing learning path",
	})

	customized, err := curriculum.Customize(ctx, m.generator, original, prefs)
	if err != nil {
		m.update(ctx, searchID, types.StatusUpdate{
			State:    types.StateFailed,
			Progress: types.IntPtr(0),
			Message:  fmt.Sprintf("Customization failed: %v", err),
		})
		return "", nil, err
	}

	newID := m.persistPath(ctx, customized)
	customized.ID = newID

	m.update(ctx, searchID, types.StatusUpdate{
		State:          types.StateCompleted,
		Progress:       types.IntPtr(progressCompleted),
		Message:        "Customized learning path ready",
		LearningPathID: newID,
	})
	return searchID, customized, nil
}

// update applies a partial status mutation through the ledger, enforcing
// the forward-only state machine.
func (m *Manager) update(ctx context.Context, searchID string, u types.StatusUpdate) {
	current, err := m.ledger.Get(ctx, searchID)
	if err != nil || current == nil {
		return
	}
	if u.State != "" && !current.State.CanTransition(u.State) {
		return
	}
	u.Apply(current)
	m.ledger.Upsert(ctx, current)
}

func countSources(items []types.ContentItem) int {
	seen := make(map[string]bool)
	for _, item := range items {
		seen[item.Source] = true
	}
	return len(seen)
}
