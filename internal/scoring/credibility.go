// Package scoring assigns source credibility scores and blends them into
// content quality.
package scoring

import (
	"strings"

	"github.com/aetherlearn/pathweaver/internal/types"
)

// Blend weights for adjusted quality.
const (
	qualityWeight     = 0.7
	credibilityWeight = 0.3
)

// DefaultCredibility is used for sources with no reputation data.
const DefaultCredibility = 0.60

// exactCredibility maps known source domains to reputation scores.
var exactCredibility = map[string]float64{
	"khanacademy.org":       0.95,
	"mit.edu":               0.95,
	"stanford.edu":          0.95,
	"coursera.org":          0.93,
	"edx.org":               0.92,
	"arxiv.org":             0.92,
	"developer.mozilla.org": 0.90,
	"freecodecamp.org":      0.88,
	"udemy.com":             0.85,
	"github.com":            0.82,
	"stackoverflow.com":     0.82,
	"wikipedia.org":         0.80,
	"youtube.com":           0.75,
	"medium.com":            0.70,
	"dev.to":                0.65,
	"unknown":               0.50,
}

// patternCredibility is consulted by substring match when no exact entry
// exists. Order matters: first match wins, so domain patterns come before
// the generic ones.
var patternCredibility = []struct {
	pattern string
	score   float64
}{
	{"khanacademy", 0.95},
	{"coursera", 0.93},
	{"edx.org", 0.92},
	{"mozilla", 0.90},
	{".edu", 0.90},
	{".gov", 0.88},
	{"freecodecamp", 0.88},
	{"docs.", 0.85},
	{"udemy", 0.85},
	{"github", 0.82},
	{"stackoverflow", 0.82},
	{"wikipedia", 0.80},
	{"youtube", 0.75},
	{"academy", 0.75},
	{"medium", 0.70},
	{"tutorial", 0.65},
	{"blog", 0.60},
}

// Credibility returns the reputation score for a content source domain.
// Exact matches are checked first, then substring patterns in a fixed
// order; unrecognized sources receive DefaultCredibility.
func Credibility(source string) float64 {
	source = strings.ToLower(strings.TrimSpace(source))
	if source == "" {
		return DefaultCredibility
	}
	if score, ok := exactCredibility[source]; ok {
		return score
	}
	for _, p := range patternCredibility {
		if strings.Contains(source, p.pattern) {
			return p.score
		}
	}
	return DefaultCredibility
}

// ApplyCredibility sets each item's credibility score from its source and
// blends it into the quality score (0.7*quality + 0.3*credibility). It runs
// once per pipeline execution, after filtering and before diversity
// balancing; items that already carry a credibility score are left alone so
// re-running cannot double-count the blend.
func ApplyCredibility(items []types.ContentItem) []types.ContentItem {
	scored := make([]types.ContentItem, len(items))
	for i, item := range items {
		if item.CredibilityScore > 0 {
			scored[i] = item
			continue
		}
		item.CredibilityScore = Credibility(item.Source)
		item.QualityScore = qualityWeight*item.QualityScore + credibilityWeight*item.CredibilityScore
		if item.QualityScore > 1.0 {
			item.QualityScore = 1.0
		}
		scored[i] = item
	}
	return scored
}
