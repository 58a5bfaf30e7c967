// Package diversity reshapes a scored content list so the final set spans
// multiple content-type categories instead of being dominated by one.
package diversity

import (
	"math"
	"sort"

	"github.com/aetherlearn/pathweaver/internal/ranking"
	"github.com/aetherlearn/pathweaver/internal/types"
)

// passThroughLimit is the input size at or below which balancing is skipped;
// fragmenting smaller sets across type buckets over-thins every bucket.
const passThroughLimit = 10

// preferredFormatBoost is applied to the target proportion of each format
// the user prefers before renormalization.
const preferredFormatBoost = 1.5

// Config holds the balancing knobs.
type Config struct {
	// MaxItems caps the balanced output size.
	MaxItems int
}

// DefaultConfig returns the standard balancer configuration.
func DefaultConfig() Config {
	return Config{MaxItems: 20}
}

// target pairs a resource type with its share of the output. The slice
// keeps a fixed order so balancing is deterministic.
type target struct {
	resourceType types.ResourceType
	proportion   float64
}

// baseTargets are the default output proportions, summing to 1.0.
var baseTargets = []target{
	{types.ResourceVideo, 0.30},
	{types.ResourceArticle, 0.25},
	{types.ResourceCourse, 0.20},
	{types.ResourceInteractive, 0.15},
	{types.ResourceDocumentation, 0.10},
}

// leftoverOrder fixes the flattening order of unconsumed pools so the
// top-up pass is deterministic.
var leftoverOrder = []types.ResourceType{
	types.ResourceVideo, types.ResourceArticle, types.ResourceCourse,
	types.ResourceInteractive, types.ResourceDocumentation,
	types.ResourceAcademic, types.ResourceTutorial, types.ResourceUnknown,
}

// Balance applies the two-pass fill-then-top-up algorithm: each targeted
// type first claims max(1, floor(maxItems*proportion)) of its best items,
// then the remaining slots are filled with the highest-scoring leftovers
// across all types. Inputs of passThroughLimit items or fewer are returned
// unchanged.
func Balance(items []types.ContentItem, prefs *types.Preferences, cfg Config) []types.ContentItem {
	if len(items) <= passThroughLimit {
		return items
	}

	maxItems := cfg.MaxItems
	if maxItems <= 0 {
		maxItems = DefaultConfig().MaxItems
	}
	if len(items) < maxItems {
		maxItems = len(items)
	}

	pools := make(map[types.ResourceType][]types.ContentItem)
	for _, item := range items {
		pools[item.ResourceType] = append(pools[item.ResourceType], item)
	}
	for rt := range pools {
		pool := pools[rt]
		sort.SliceStable(pool, func(i, j int) bool {
			return ranking.CompositeScore(&pool[i]) > ranking.CompositeScore(&pool[j])
		})
	}

	targets := adjustTargets(prefs)

	// First pass: guarantee each targeted type its share.
	selected := make([]types.ContentItem, 0, maxItems)
	for _, tgt := range targets {
		pool := pools[tgt.resourceType]
		if len(pool) == 0 {
			continue
		}
		take := int(math.Floor(float64(maxItems) * tgt.proportion))
		if take < 1 {
			take = 1
		}
		if take > len(pool) {
			take = len(pool)
		}
		if remaining := maxItems - len(selected); take > remaining {
			take = remaining
		}
		selected = append(selected, pool[:take]...)
		pools[tgt.resourceType] = pool[take:]
	}

	// Second pass: top up with the globally best leftovers.
	if remaining := maxItems - len(selected); remaining > 0 {
		var leftovers []types.ContentItem
		for _, rt := range leftoverOrder {
			leftovers = append(leftovers, pools[rt]...)
		}
		sort.SliceStable(leftovers, func(i, j int) bool {
			return ranking.CompositeScore(&leftovers[i]) > ranking.CompositeScore(&leftovers[j])
		})
		if remaining > len(leftovers) {
			remaining = len(leftovers)
		}
		selected = append(selected, leftovers[:remaining]...)
	}

	return selected
}

// adjustTargets boosts preferred formats and renormalizes so the
// proportions never sum past 1.0.
func adjustTargets(prefs *types.Preferences) []target {
	adjusted := make([]target, len(baseTargets))
	copy(adjusted, baseTargets)

	if prefs == nil || len(prefs.Formats) == 0 {
		return adjusted
	}

	sum := 0.0
	for i := range adjusted {
		if prefs.PrefersFormat(adjusted[i].resourceType) {
			adjusted[i].proportion *= preferredFormatBoost
		}
		sum += adjusted[i].proportion
	}
	if sum > 1.0 {
		for i := range adjusted {
			adjusted[i].proportion /= sum
		}
	}
	return adjusted
}
