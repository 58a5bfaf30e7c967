package types

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// TimeRange buckets the per-resource time commitment a user prefers.
const (
	TimeRangeShort  = "short"  // 30 minutes or less
	TimeRangeMedium = "medium" // 31-90 minutes
	TimeRangeLong   = "long"   // more than 90 minutes
)

// TimeRangeFor returns the bucket a time estimate falls into.
func TimeRangeFor(minutes int) string {
	switch {
	case minutes <= 30:
		return TimeRangeShort
	case minutes <= 90:
		return TimeRangeMedium
	default:
		return TimeRangeLong
	}
}

// Preferences holds optional user constraints that shape filtering, diversity
// balancing, and ranking. The zero value matches everything.
type Preferences struct {
	Difficulty         Difficulty     `json:"difficulty,omitempty"`
	Formats            []ResourceType `json:"formats,omitempty"`
	LearningStyle      []string       `json:"learning_style,omitempty"`
	MaxTimeMinutes     int            `json:"max_time_minutes,omitempty"`
	PreferredTimeRange string         `json:"preferred_time_range,omitempty"`
}

// Empty reports whether no preference is set.
func (p *Preferences) Empty() bool {
	if p == nil {
		return true
	}
	return p.Difficulty == "" && len(p.Formats) == 0 && len(p.LearningStyle) == 0 &&
		p.MaxTimeMinutes == 0 && p.PreferredTimeRange == ""
}

// PrefersFormat reports whether the given resource type is among the
// preferred formats. An empty format list prefers nothing in particular.
func (p *Preferences) PrefersFormat(rt ResourceType) bool {
	if p == nil {
		return false
	}
	for _, f := range p.Formats {
		if f == rt {
			return true
		}
	}
	return false
}

// SearchRequest is a learning-path search submission. It is immutable once
// submitted to the orchestrator.
type SearchRequest struct {
	Query       string       `json:"query" validate:"required,min=1"`
	Preferences *Preferences `json:"preferences,omitempty"`
	UserID      string       `json:"user_id,omitempty"`
}

// Validate checks the request before the pipeline starts. Invalid input is
// rejected here, never surfaced as a pipeline failure.
func (r *SearchRequest) Validate() error {
	r.Query = strings.TrimSpace(r.Query)
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}
	if r.Preferences != nil {
		if d := r.Preferences.Difficulty; d != "" && !d.Valid() {
			return &ValidationError{Field: "preferences.difficulty", Message: "must be beginner, intermediate, or advanced"}
		}
		for i, f := range r.Preferences.Formats {
			if !f.Valid() {
				return &ValidationError{Field: fmt.Sprintf("preferences.formats[%d]", i), Message: "unrecognized format"}
			}
		}
		if r.Preferences.MaxTimeMinutes < 0 {
			return &ValidationError{Field: "preferences.max_time_minutes", Message: "must be non-negative"}
		}
		switch r.Preferences.PreferredTimeRange {
		case "", TimeRangeShort, TimeRangeMedium, TimeRangeLong:
		default:
			return &ValidationError{Field: "preferences.preferred_time_range", Message: "must be short, medium, or long"}
		}
	}
	return nil
}
