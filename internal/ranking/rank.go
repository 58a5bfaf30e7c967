// Package ranking computes composite content scores and produces the final
// ordering of discovered resources.
package ranking

import (
	"sort"

	"github.com/aetherlearn/pathweaver/internal/types"
)

// Weights for the composite base score.
const (
	qualityWeight     = 0.4
	credibilityWeight = 0.3
	typeWeight        = 0.3
)

// Preference bonuses, each additive on top of the base score.
const (
	learningStyleBonus   = 0.10 // per overlapping style tag
	exactDifficultyBonus = 0.15
	timeRangeBonus       = 0.10
)

// typeWeights is the static resource-type priority table. Courses carry the
// most structural value for a learning path; unknown content the least.
var typeWeights = map[types.ResourceType]float64{
	types.ResourceCourse:        1.00,
	types.ResourceTutorial:      0.90,
	types.ResourceDocumentation: 0.85,
	types.ResourceVideo:         0.80,
	types.ResourceInteractive:   0.75,
	types.ResourceAcademic:      0.70,
	types.ResourceArticle:       0.60,
	types.ResourceUnknown:       0.40,
}

// TypeWeight returns the priority weight for a resource type.
func TypeWeight(rt types.ResourceType) float64 {
	if w, ok := typeWeights[rt]; ok {
		return w
	}
	return typeWeights[types.ResourceUnknown]
}

// CompositeScore computes the base score used for ordering before
// preference bonuses are applied.
func CompositeScore(item *types.ContentItem) float64 {
	return qualityWeight*item.QualityScore +
		credibilityWeight*item.CredibilityScore +
		typeWeight*TypeWeight(item.ResourceType)
}

// FinalScore computes the composite score plus preference bonuses, capped
// at 1.0.
func FinalScore(item *types.ContentItem, prefs *types.Preferences) float64 {
	score := CompositeScore(item)

	if prefs != nil {
		for _, want := range prefs.LearningStyle {
			for _, have := range item.LearningStyles {
				if have == want {
					score += learningStyleBonus
					break
				}
			}
		}
		if prefs.Difficulty != "" && prefs.Difficulty == item.Difficulty {
			score += exactDifficultyBonus
		}
		if prefs.PreferredTimeRange != "" &&
			types.TimeRangeFor(item.EstimatedTimeMinutes) == prefs.PreferredTimeRange {
			score += timeRangeBonus
		}
	}

	if score > 1.0 {
		score = 1.0
	}
	if score < 0.0 {
		score = 0.0
	}
	return score
}

// Rank assigns final scores and returns a new slice ordered by final score
// descending. The sort is stable, so ties keep their discovery order and
// identical inputs always produce identical output.
func Rank(items []types.ContentItem, prefs *types.Preferences) []types.ContentItem {
	ranked := make([]types.ContentItem, len(items))
	copy(ranked, items)

	for i := range ranked {
		ranked[i].FinalScore = FinalScore(&ranked[i], prefs)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].FinalScore > ranked[j].FinalScore
	})

	return ranked
}
