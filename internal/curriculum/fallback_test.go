package curriculum

import (
	"fmt"
	"testing"

	"github.com/aetherlearn/pathweaver/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallback_GroupsByTypeInPedagogicalOrder(t *testing.T) {
	items := []types.ContentItem{
		{Title: "video", ResourceType: types.ResourceVideo, QualityScore: 0.8, EstimatedTimeMinutes: 15},
		{Title: "course", ResourceType: types.ResourceCourse, QualityScore: 0.9, EstimatedTimeMinutes: 120},
		{Title: "docs", ResourceType: types.ResourceDocumentation, QualityScore: 0.85, EstimatedTimeMinutes: 30},
		{Title: "article", ResourceType: types.ResourceArticle, QualityScore: 0.75, EstimatedTimeMinutes: 10},
	}

	path := Fallback("kubernetes", items, nil)
	require.Len(t, path.Modules, 4)

	assert.Equal(t, types.ResourceCourse, path.Modules[0].Resources[0].ResourceType)
	assert.Equal(t, types.ResourceDocumentation, path.Modules[1].Resources[0].ResourceType)
	assert.Equal(t, types.ResourceVideo, path.Modules[2].Resources[0].ResourceType)
	assert.Equal(t, types.ResourceArticle, path.Modules[3].Resources[0].ResourceType)

	for i, m := range path.Modules {
		assert.Equal(t, i+1, m.Order)
	}
}

func TestFallback_CapsModuleSize(t *testing.T) {
	var items []types.ContentItem
	for i := 0; i < 10; i++ {
		items = append(items, types.ContentItem{
			Title:        fmt.Sprintf("v%d", i),
			ResourceType: types.ResourceVideo,
			QualityScore: float64(i) / 10,
		})
	}

	path := Fallback("topic", items, nil)
	require.Len(t, path.Modules, 1)
	assert.Len(t, path.Modules[0].Resources, 3)
	// Highest-quality items are kept.
	assert.Equal(t, "v9", path.Modules[0].Resources[0].Title)
}

func TestFallback_SingleItemNeverFails(t *testing.T) {
	items := []types.ContentItem{{Title: "only", ResourceType: types.ResourceUnknown}}
	path := Fallback("x", items, nil)

	require.NotNil(t, path)
	require.NotEmpty(t, path.Modules)
	assert.NotEmpty(t, path.Title)
	assert.NotEmpty(t, path.Description)
}

func TestFallback_AppliesPreferredDifficulty(t *testing.T) {
	items := []types.ContentItem{{Title: "a", ResourceType: types.ResourceVideo}}

	path := Fallback("x", items, &types.Preferences{Difficulty: types.DifficultyAdvanced})
	assert.Equal(t, types.DifficultyAdvanced, path.Difficulty)

	neutral := Fallback("x", items, nil)
	assert.Equal(t, types.DifficultyIntermediate, neutral.Difficulty)
}

func TestFallback_DerivesHours(t *testing.T) {
	items := []types.ContentItem{
		{Title: "a", ResourceType: types.ResourceVideo, EstimatedTimeMinutes: 30},
		{Title: "b", ResourceType: types.ResourceVideo, EstimatedTimeMinutes: 30},
	}
	path := Fallback("x", items, nil)
	assert.InDelta(t, 1.0, path.EstimatedHours, 1e-9)
}
