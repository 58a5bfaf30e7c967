// Package types provides type definitions for structured data used throughout the pathweaver system.
package types

import "fmt"

// ResourceType categorizes a discovered educational resource.
type ResourceType string

// Resource type constants define the closed set of content categories.
const (
	ResourceVideo         ResourceType = "video"
	ResourceArticle       ResourceType = "article"
	ResourceCourse        ResourceType = "course"
	ResourceInteractive   ResourceType = "interactive"
	ResourceDocumentation ResourceType = "documentation"
	ResourceAcademic      ResourceType = "academic"
	ResourceTutorial      ResourceType = "tutorial"
	ResourceUnknown       ResourceType = "unknown"
)

var validResourceTypes = map[ResourceType]bool{
	ResourceVideo:         true,
	ResourceArticle:       true,
	ResourceCourse:        true,
	ResourceInteractive:   true,
	ResourceDocumentation: true,
	ResourceAcademic:      true,
	ResourceTutorial:      true,
	ResourceUnknown:       true,
}

// Valid reports whether the resource type is a member of the closed enum.
func (rt ResourceType) Valid() bool {
	return validResourceTypes[rt]
}

// CoerceResourceType maps an arbitrary string onto the closed enum.
// Unrecognized values become ResourceUnknown rather than propagating
// arbitrary strings through the pipeline.
func CoerceResourceType(s string) ResourceType {
	rt := ResourceType(s)
	if rt.Valid() {
		return rt
	}
	return ResourceUnknown
}

// Difficulty represents the skill level a resource targets.
type Difficulty string

// Difficulty constants define the supported levels.
const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Level maps a difficulty onto an ordinal scale: beginner=0, intermediate=1,
// advanced=2. Unrecognized values map to intermediate.
func (d Difficulty) Level() int {
	switch d {
	case DifficultyBeginner:
		return 0
	case DifficultyIntermediate:
		return 1
	case DifficultyAdvanced:
		return 2
	default:
		return 1
	}
}

// Valid reports whether the difficulty is one of the supported levels.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// ContentItem is one discovered educational resource with quality and
// credibility metadata attached as it moves through the pipeline.
type ContentItem struct {
	Title                string            `json:"title"`
	URL                  string            `json:"url"`
	Source               string            `json:"source"`
	ResourceType         ResourceType      `json:"resource_type"`
	Description          string            `json:"description"`
	EstimatedTimeMinutes int               `json:"estimated_time_minutes"`
	Difficulty           Difficulty        `json:"difficulty"`
	QualityScore         float64           `json:"quality_score"`
	CredibilityScore     float64           `json:"credibility_score"`
	LearningStyles       []string          `json:"learning_styles,omitempty"`
	FinalScore           float64           `json:"final_score"`
	Metadata             map[string]string `json:"metadata,omitempty"`
}

// Validate checks the content item invariants: scores stay in [0,1], the
// resource type belongs to the closed enum, and the time estimate is
// non-negative.
func (c *ContentItem) Validate() error {
	if c.QualityScore < 0 || c.QualityScore > 1 {
		return fmt.Errorf("quality_score %.3f out of range [0,1]", c.QualityScore)
	}
	if c.CredibilityScore < 0 || c.CredibilityScore > 1 {
		return fmt.Errorf("credibility_score %.3f out of range [0,1]", c.CredibilityScore)
	}
	if c.FinalScore < 0 || c.FinalScore > 1 {
		return fmt.Errorf("final_score %.3f out of range [0,1]", c.FinalScore)
	}
	if !c.ResourceType.Valid() {
		return fmt.Errorf("resource_type %q is not a recognized type", c.ResourceType)
	}
	if c.EstimatedTimeMinutes < 0 {
		return fmt.Errorf("estimated_time_minutes %d must be non-negative", c.EstimatedTimeMinutes)
	}
	return nil
}

// HasLearningStyle reports whether the item carries any of the given style tags.
func (c *ContentItem) HasLearningStyle(styles []string) bool {
	for _, want := range styles {
		for _, have := range c.LearningStyles {
			if have == want {
				return true
			}
		}
	}
	return false
}
