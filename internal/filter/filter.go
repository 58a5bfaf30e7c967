// Package filter discards low-quality content, enforces per-source
// diversity caps, and applies user-preference predicates.
package filter

import (
	"github.com/aetherlearn/pathweaver/internal/types"
)

// Config holds the filtering knobs.
type Config struct {
	// QualityThreshold is the minimum quality score an item must carry.
	QualityThreshold float64
	// MaxContentItems caps the filtered result size.
	MaxContentItems int
	// MaxContentSources bounds source fan-out; the per-source item cap is
	// MaxContentSources / 5, rounded down.
	MaxContentSources int
}

// DefaultConfig returns the standard filter configuration.
func DefaultConfig() Config {
	return Config{
		QualityThreshold:  0.7,
		MaxContentItems:   30,
		MaxContentSources: 10,
	}
}

// perSourceCap returns how many items a single source may contribute.
func (c Config) perSourceCap() int {
	return c.MaxContentSources / 5
}

// Apply runs the filter stages in order: quality threshold, per-source cap
// (first-seen wins), preference predicates, then truncation to
// MaxContentItems. A nil or empty preferences value matches everything.
// Only items that pass every stage count against their source's cap, so a
// rejected item never costs its source a slot.
func Apply(items []types.ContentItem, prefs *types.Preferences, cfg Config) []types.ContentItem {
	kept := make([]types.ContentItem, 0, len(items))
	perSource := make(map[string]int)
	sourceCap := cfg.perSourceCap()

	for _, item := range items {
		if item.QualityScore < cfg.QualityThreshold {
			continue
		}
		if perSource[item.Source] >= sourceCap {
			continue
		}
		if !matchesPreferences(&item, prefs) {
			continue
		}
		perSource[item.Source]++
		kept = append(kept, item)
		if len(kept) >= cfg.MaxContentItems {
			break
		}
	}
	return kept
}

// matchesPreferences evaluates every preference predicate against the item.
// Each predicate is vacuously true when its preference key is absent.
func matchesPreferences(item *types.ContentItem, prefs *types.Preferences) bool {
	if prefs.Empty() {
		return true
	}

	if prefs.Difficulty != "" {
		diff := prefs.Difficulty.Level() - item.Difficulty.Level()
		if diff < 0 {
			diff = -diff
		}
		if diff > 1 {
			return false
		}
	}

	if len(prefs.Formats) > 0 && !prefs.PrefersFormat(item.ResourceType) {
		return false
	}

	if len(prefs.LearningStyle) > 0 && !item.HasLearningStyle(prefs.LearningStyle) {
		return false
	}

	if prefs.MaxTimeMinutes > 0 && item.EstimatedTimeMinutes > prefs.MaxTimeMinutes {
		return false
	}

	return true
}
