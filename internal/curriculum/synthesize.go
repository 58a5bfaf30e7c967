// Package curriculum turns a ranked content set into an ordered learning
// path, either through the generator or a deterministic fallback.
package curriculum

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aetherlearn/pathweaver/internal/llm"
	"github.com/aetherlearn/pathweaver/internal/prompts"
	"github.com/aetherlearn/pathweaver/internal/schemas"
	"github.com/aetherlearn/pathweaver/internal/types"
)

// summaryLimit caps how many items feed the prompt context.
const summaryLimit = 20

// snippetLimit truncates item descriptions inside the content summary.
const snippetLimit = 200

// Synthesize builds a learning path for the query from the retained items.
// The generator path is attempted first; any generation or parse failure
// falls back to the deterministic heuristic, so with at least one item the
// call never returns an error.
func Synthesize(ctx context.Context, gen llm.Generator, query string, items []types.ContentItem, prefs *types.Preferences) (*types.LearningPath, error) {
	if len(items) == 0 {
		return nil, &GenerationError{Message: "no content items to build from"}
	}

	path, err := generate(ctx, gen, query, items, prefs)
	if err != nil {
		return Fallback(query, items, prefs), nil
	}
	return path, nil
}

func generate(ctx context.Context, gen llm.Generator, query string, items []types.ContentItem, prefs *types.Preferences) (*types.LearningPath, error) {
	if gen == nil {
		return nil, &GenerationError{Message: "no generator configured"}
	}

	prompt, err := buildPrompt(query, items, prefs)
	if err != nil {
		return nil, err
	}

	raw, err := gen.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &GenerationError{Message: "generator call failed", Cause: err}
	}
	if strings.TrimSpace(raw) == "" {
		return nil, &GenerationError{Message: "generator returned empty response"}
	}

	return ParseResponse(raw, query, prefs)
}

func buildPrompt(query string, items []types.ContentItem, prefs *types.Preferences) (string, error) {
	template, err := prompts.Get("learning_path.json", "generate-path")
	if err != nil {
		return "", &GenerationError{Message: "prompt template unavailable", Cause: err}
	}

	prefsJSON := "{}"
	if prefs != nil {
		if data, err := json.Marshal(prefs); err == nil {
			prefsJSON = string(data)
		}
	}

	return prompts.Format(template, map[string]string{
		"Query":          query,
		"ContentSummary": ContentSummary(items),
		"Preferences":    prefsJSON,
	}), nil
}

// ContentSummary renders the retained items as numbered prompt context.
func ContentSummary(items []types.ContentItem) string {
	if len(items) > summaryLimit {
		items = items[:summaryLimit]
	}

	var sb strings.Builder
	for i, item := range items {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		desc := item.Description
		if len(desc) > snippetLimit {
			desc = desc[:snippetLimit] + "..."
		}
		fmt.Fprintf(&sb, "%d. %s (%s from %s)\n", i+1, item.Title, item.ResourceType, item.Source)
		fmt.Fprintf(&sb, "Description: %s\n", desc)
		fmt.Fprintf(&sb, "Difficulty: %s, Time: %d min", item.Difficulty, item.EstimatedTimeMinutes)
	}
	return sb.String()
}

// ParseResponse validates and decodes generator output into a learning
// path. The document must pass the embedded schema and carry a title,
// description and at least one module; module order defaults to list index.
func ParseResponse(raw, query string, prefs *types.Preferences) (*types.LearningPath, error) {
	cleaned := llm.CleanJSONBlock(raw)

	if err := schemas.ValidateLearningPathJSON(cleaned); err != nil {
		return nil, &ParseError{Message: "response failed schema validation", Cause: err}
	}

	var path types.LearningPath
	if err := json.Unmarshal([]byte(cleaned), &path); err != nil {
		return nil, &ParseError{Message: "response is not valid JSON", Cause: err}
	}

	if strings.TrimSpace(path.Title) == "" || strings.TrimSpace(path.Description) == "" {
		return nil, &ParseError{Message: "response missing title or description"}
	}
	if len(path.Modules) == 0 {
		return nil, &ParseError{Message: "response has no modules"}
	}

	for i := range path.Modules {
		if path.Modules[i].Order == 0 {
			path.Modules[i].Order = i + 1
		}
		for j := range path.Modules[i].Resources {
			r := &path.Modules[i].Resources[j]
			r.ResourceType = types.CoerceResourceType(string(r.ResourceType))
		}
	}

	path.Query = query
	path.Preferences = prefs
	if path.Difficulty == "" {
		path.Difficulty = types.DifficultyIntermediate
	}
	path.DeriveEstimatedHours()
	return &path, nil
}
