package discovery

import (
	"net/url"
	"strings"

	"github.com/aetherlearn/pathweaver/internal/scoring"
	"github.com/aetherlearn/pathweaver/internal/types"
)

// Quality seeding constants. Quality starts from the source's credibility
// class and decays with result rank, so the first hit from a strong source
// scores highest before any preference logic runs.
const (
	qualitySourceWeight = 0.6
	qualityRankWeight   = 0.4
	rankDecayStep       = 0.05
	rankDecayFloor      = 0.5
)

// SeedQuality computes the initial quality score for a hit at the given
// zero-based rank from the given source.
func SeedQuality(rank int, source string) float64 {
	decay := 1.0 - rankDecayStep*float64(rank)
	if decay < rankDecayFloor {
		decay = rankDecayFloor
	}
	return qualitySourceWeight*scoring.Credibility(source) + qualityRankWeight*decay
}

// BuildItems converts raw hits into content items, applying the
// classification heuristics and quality seeding. Hits without a usable
// link are dropped.
func BuildItems(hits []RawHit) []types.ContentItem {
	items := make([]types.ContentItem, 0, len(hits))
	for i, hit := range hits {
		if hit.Link == "" {
			continue
		}

		source := hit.DisplaySource
		if source == "" {
			source = extractDomain(hit.Link)
		}

		rt := ClassifyURL(hit.Link)
		items = append(items, types.ContentItem{
			Title:                hit.Title,
			URL:                  hit.Link,
			Source:               source,
			ResourceType:         rt,
			Description:          hit.Snippet,
			EstimatedTimeMinutes: EstimateTimeMinutes(rt, hit.Snippet),
			Difficulty:           EstimateDifficulty(hit.Title, hit.Snippet),
			QualityScore:         SeedQuality(i, source),
			LearningStyles:       LearningStylesFor(rt),
		})
	}
	return items
}

func extractDomain(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return "unknown"
	}
	return strings.TrimPrefix(parsed.Host, "www.")
}
