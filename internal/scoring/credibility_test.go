package scoring

import (
	"testing"

	"github.com/aetherlearn/pathweaver/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredibility_ExactMatch(t *testing.T) {
	assert.InDelta(t, 0.95, Credibility("khanacademy.org"), 1e-9)
	assert.InDelta(t, 0.93, Credibility("coursera.org"), 1e-9)
	assert.InDelta(t, 0.75, Credibility("youtube.com"), 1e-9)
}

func TestCredibility_SubstringMatch(t *testing.T) {
	assert.InDelta(t, 0.75, Credibility("www.youtube.com"), 1e-9)
	assert.InDelta(t, 0.90, Credibility("ocw.mit.edu"), 1e-9)
	assert.InDelta(t, 0.85, Credibility("docs.python.org"), 1e-9)
}

func TestCredibility_UnknownSource(t *testing.T) {
	assert.InDelta(t, 0.50, Credibility("unknown"), 1e-9)
	assert.InDelta(t, DefaultCredibility, Credibility("some-random-site.net"), 1e-9)
	assert.InDelta(t, DefaultCredibility, Credibility(""), 1e-9)
}

func TestCredibility_CaseInsensitive(t *testing.T) {
	assert.InDelta(t, 0.93, Credibility("Coursera.org"), 1e-9)
}

func TestApplyCredibility_BlendsQuality(t *testing.T) {
	items := []types.ContentItem{
		{Title: "a", Source: "coursera.org", QualityScore: 0.8},
		{Title: "b", Source: "some-random-site.net", QualityScore: 0.9},
	}

	scored := ApplyCredibility(items)
	require.Len(t, scored, 2)

	assert.InDelta(t, 0.93, scored[0].CredibilityScore, 1e-9)
	assert.InDelta(t, 0.7*0.8+0.3*0.93, scored[0].QualityScore, 1e-9)

	assert.InDelta(t, 0.60, scored[1].CredibilityScore, 1e-9)
	assert.InDelta(t, 0.7*0.9+0.3*0.60, scored[1].QualityScore, 1e-9)

	// Input slice is untouched
	assert.InDelta(t, 0.8, items[0].QualityScore, 1e-9)
	assert.Zero(t, items[0].CredibilityScore)
}

func TestApplyCredibility_Idempotent(t *testing.T) {
	items := []types.ContentItem{
		{Title: "a", Source: "coursera.org", QualityScore: 0.8},
	}

	once := ApplyCredibility(items)
	twice := ApplyCredibility(once)

	assert.Equal(t, once[0].QualityScore, twice[0].QualityScore)
	assert.Equal(t, once[0].CredibilityScore, twice[0].CredibilityScore)
}

func TestApplyCredibility_StaysInRange(t *testing.T) {
	items := []types.ContentItem{
		{Title: "a", Source: "khanacademy.org", QualityScore: 1.0},
	}
	scored := ApplyCredibility(items)
	assert.LessOrEqual(t, scored[0].QualityScore, 1.0)
	assert.GreaterOrEqual(t, scored[0].QualityScore, 0.0)
}
