package pipeline

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aetherlearn/pathweaver/internal/diversity"
	"github.com/aetherlearn/pathweaver/internal/filter"
	"github.com/aetherlearn/pathweaver/internal/ranking"
	"github.com/aetherlearn/pathweaver/internal/scoring"
	"github.com/aetherlearn/pathweaver/internal/types"
)

// runStages composes the content stages the way discoverAndRank does,
// without the provider, cache, or ledger in the way.
func runStages(items []types.ContentItem, prefs *types.Preferences) []types.ContentItem {
	filtered := filter.Apply(items, prefs, filter.DefaultConfig())
	scored := scoring.ApplyCredibility(filtered)
	balanced := diversity.Balance(scored, prefs, diversity.DefaultConfig())
	return ranking.Rank(balanced, prefs)
}

func TestStages_BeginnerVideoScenario(t *testing.T) {
	videos := []types.ContentItem{
		{Title: "Intro lecture", URL: "https://v1.example.com/a", Source: "v1.example.com",
			ResourceType: types.ResourceVideo, QualityScore: 0.60, Difficulty: types.DifficultyBeginner},
		{Title: "Vectors explained", URL: "https://v2.example.com/a", Source: "v2.example.com",
			ResourceType: types.ResourceVideo, QualityScore: 0.70, Difficulty: types.DifficultyBeginner},
		{Title: "Matrix operations", URL: "https://v3.example.com/a", Source: "v3.example.com",
			ResourceType: types.ResourceVideo, QualityScore: 0.80, Difficulty: types.DifficultyIntermediate},
		{Title: "Spectral theory", URL: "https://v4.example.com/a", Source: "v4.example.com",
			ResourceType: types.ResourceVideo, QualityScore: 0.90, Difficulty: types.DifficultyAdvanced},
		{Title: "Eigenvalues visually", URL: "https://v5.example.com/a", Source: "v5.example.com",
			ResourceType: types.ResourceVideo, QualityScore: 0.95, Difficulty: types.DifficultyBeginner},
	}
	var articles []types.ContentItem
	for i := 0; i < 10; i++ {
		articles = append(articles, types.ContentItem{
			Title:        fmt.Sprintf("Linear algebra notes %d", i),
			URL:          fmt.Sprintf("https://a%d.example.com/notes", i),
			Source:       fmt.Sprintf("a%d.example.com", i),
			ResourceType: types.ResourceArticle,
			QualityScore: 0.75,
			Difficulty:   types.DifficultyBeginner,
		})
	}
	items := append(videos, articles...)

	prefs := &types.Preferences{
		Difficulty: types.DifficultyBeginner,
		Formats:    []types.ResourceType{types.ResourceVideo},
	}
	ranked := runStages(items, prefs)

	// Only videos within the beginner difficulty window and above the
	// quality threshold survive: the 0.60 video and the advanced one drop.
	require.Len(t, ranked, 3)
	var titles []string
	for _, item := range ranked {
		assert.Equal(t, types.ResourceVideo, item.ResourceType)
		assert.NotEqual(t, types.DifficultyAdvanced, item.Difficulty)
		titles = append(titles, item.Title)
	}
	assert.ElementsMatch(t, []string{"Vectors explained", "Matrix operations", "Eigenvalues visually"}, titles)
	assert.Equal(t, "Eigenvalues visually", ranked[0].Title)
}

func TestStages_NoPreferencesKeepsMixedTypes(t *testing.T) {
	var items []types.ContentItem
	for i := 0; i < 8; i++ {
		items = append(items, types.ContentItem{
			Title:        fmt.Sprintf("Video %d", i),
			URL:          fmt.Sprintf("https://v%d.example.com/x", i),
			Source:       fmt.Sprintf("v%d.example.com", i),
			ResourceType: types.ResourceVideo,
			QualityScore: 0.9,
		})
	}
	for i := 0; i < 8; i++ {
		items = append(items, types.ContentItem{
			Title:        fmt.Sprintf("Article %d", i),
			URL:          fmt.Sprintf("https://a%d.example.com/x", i),
			Source:       fmt.Sprintf("a%d.example.com", i),
			ResourceType: types.ResourceArticle,
			QualityScore: 0.85,
		})
	}

	ranked := runStages(items, nil)

	byType := make(map[types.ResourceType]int)
	for _, item := range ranked {
		byType[item.ResourceType]++
	}
	assert.Greater(t, byType[types.ResourceVideo], 0)
	assert.Greater(t, byType[types.ResourceArticle], 0)
	assert.LessOrEqual(t, len(ranked), diversity.DefaultConfig().MaxItems)
}

func TestStages_Deterministic(t *testing.T) {
	var items []types.ContentItem
	for i := 0; i < 12; i++ {
		items = append(items, types.ContentItem{
			Title:        fmt.Sprintf("Resource %d", i),
			URL:          fmt.Sprintf("https://s%d.example.com/x", i),
			Source:       fmt.Sprintf("s%d.example.com", i),
			ResourceType: types.ResourceArticle,
			QualityScore: 0.75,
		})
	}

	first := runStages(items, nil)
	for i := 0; i < 5; i++ {
		again := runStages(items, nil)
		require.Equal(t, first, again)
	}
}
