package curriculum

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	"github.com/aetherlearn/pathweaver/internal/llm"
	"github.com/aetherlearn/pathweaver/internal/prompts"
	"github.com/aetherlearn/pathweaver/internal/types"
)

// Customize regenerates an existing path under new preferences. Generator
// failures degrade to BasicCustomize, so the call never returns an error
// for a non-nil original path.
func Customize(ctx context.Context, gen llm.Generator, original *types.LearningPath, prefs *types.Preferences) (*types.LearningPath, error) {
	if original == nil {
		return nil, &GenerationError{Message: "no original path to customize"}
	}

	customized, err := regenerate(ctx, gen, original, prefs)
	if err != nil {
		return BasicCustomize(original, prefs), nil
	}
	return customized, nil
}

func regenerate(ctx context.Context, gen llm.Generator, original *types.LearningPath, prefs *types.Preferences) (*types.LearningPath, error) {
	if gen == nil {
		return nil, &GenerationError{Message: "no generator configured"}
	}

	template, err := prompts.Get("learning_path.json", "customize-path")
	if err != nil {
		return nil, &GenerationError{Message: "prompt template unavailable", Cause: err}
	}

	originalJSON, err := json.Marshal(original)
	if err != nil {
		return nil, &GenerationError{Message: "failed to encode original path", Cause: err}
	}
	prefsJSON := "{}"
	if prefs != nil {
		if data, err := json.Marshal(prefs); err == nil {
			prefsJSON = string(data)
		}
	}

	prompt := prompts.Format(template, map[string]string{
		"OriginalPath": string(originalJSON),
		"Preferences":  prefsJSON,
	})

	raw, err := gen.GenerateJSON(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return nil, &GenerationError{Message: "generator call failed", Cause: err}
	}
	if strings.TrimSpace(raw) == "" {
		return nil, &GenerationError{Message: "generator returned empty response"}
	}

	customized, err := ParseResponse(raw, original.Query, prefs)
	if err != nil {
		return nil, err
	}
	customized.OriginalPathID = original.ID
	customized.UserID = original.UserID
	return customized, nil
}

// BasicCustomize applies preferences deterministically: the requested
// difficulty is stamped on the path and each module's resources are
// reordered so preferred formats come first. The original is not mutated.
func BasicCustomize(original *types.LearningPath, prefs *types.Preferences) *types.LearningPath {
	clone := *original
	clone.ID = ""
	clone.OriginalPathID = original.ID
	clone.Preferences = prefs

	clone.Modules = make([]types.PathModule, len(original.Modules))
	copy(clone.Modules, original.Modules)
	for i := range clone.Modules {
		resources := make([]types.ContentItem, len(original.Modules[i].Resources))
		copy(resources, original.Modules[i].Resources)
		clone.Modules[i].Resources = resources
	}

	if prefs == nil {
		return &clone
	}

	if prefs.Difficulty != "" {
		clone.Difficulty = prefs.Difficulty
	}
	if len(prefs.Formats) > 0 {
		for i := range clone.Modules {
			resources := clone.Modules[i].Resources
			sort.SliceStable(resources, func(a, b int) bool {
				return prefs.PrefersFormat(resources[a].ResourceType) &&
					!prefs.PrefersFormat(resources[b].ResourceType)
			})
		}
	}
	return &clone
}
