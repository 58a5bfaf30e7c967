package curriculum

import (
	"fmt"
	"sort"

	"github.com/aetherlearn/pathweaver/internal/types"
)

// fallbackModuleOrder is the fixed pedagogical progression used when the
// generator cannot produce a path.
var fallbackModuleOrder = []types.ResourceType{
	types.ResourceCourse,
	types.ResourceDocumentation,
	types.ResourceTutorial,
	types.ResourceVideo,
	types.ResourceArticle,
	types.ResourceInteractive,
}

// maxResourcesPerFallbackModule caps each heuristic module's size.
const maxResourcesPerFallbackModule = 3

// Fallback assembles a learning path without the generator. It groups items
// by resource type in a fixed order and has no external dependency, so it
// cannot fail when given at least one item.
func Fallback(query string, items []types.ContentItem, prefs *types.Preferences) *types.LearningPath {
	byType := make(map[types.ResourceType][]types.ContentItem)
	for _, item := range items {
		byType[item.ResourceType] = append(byType[item.ResourceType], item)
	}
	for rt := range byType {
		pool := byType[rt]
		sort.SliceStable(pool, func(i, j int) bool {
			return pool[i].QualityScore > pool[j].QualityScore
		})
	}

	var modules []types.PathModule
	order := 1
	addModule := func(rt types.ResourceType) {
		pool := byType[rt]
		if len(pool) == 0 {
			return
		}
		if len(pool) > maxResourcesPerFallbackModule {
			pool = pool[:maxResourcesPerFallbackModule]
		}
		modules = append(modules, types.PathModule{
			Title:       fmt.Sprintf("%s resources for %s", titleCase(string(rt)), query),
			Description: fmt.Sprintf("A collection of %s resources related to %s", rt, query),
			Order:       order,
			Resources:   pool,
		})
		delete(byType, rt)
		order++
	}

	for _, rt := range fallbackModuleOrder {
		addModule(rt)
	}
	// Remaining types (academic, unknown) go last in a stable order.
	var rest []types.ResourceType
	for rt := range byType {
		rest = append(rest, rt)
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })
	for _, rt := range rest {
		addModule(rt)
	}

	difficulty := types.DifficultyIntermediate
	if prefs != nil && prefs.Difficulty != "" {
		difficulty = prefs.Difficulty
	}

	path := &types.LearningPath{
		Query:       query,
		Title:       fmt.Sprintf("Learning path for %s", query),
		Description: fmt.Sprintf("A curated set of resources for learning %s, grouped by format.", query),
		Difficulty:  difficulty,
		Modules:     modules,
		Preferences: prefs,
	}
	path.DeriveEstimatedHours()
	return path
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	first := s[0]
	if first >= 'a' && first <= 'z' {
		first -= 'a' - 'A'
	}
	return string(first) + s[1:]
}
