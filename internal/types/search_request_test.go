package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchRequest_Validate(t *testing.T) {
	req := SearchRequest{Query: "linear algebra"}
	require.NoError(t, req.Validate())
}

func TestSearchRequest_EmptyQueryRejected(t *testing.T) {
	req := SearchRequest{Query: "   "}
	assert.Error(t, req.Validate())

	req = SearchRequest{}
	assert.Error(t, req.Validate())
}

func TestSearchRequest_TrimsQuery(t *testing.T) {
	req := SearchRequest{Query: "  rust macros  "}
	require.NoError(t, req.Validate())
	assert.Equal(t, "rust macros", req.Query)
}

func TestSearchRequest_InvalidPreferences(t *testing.T) {
	req := SearchRequest{
		Query:       "go concurrency",
		Preferences: &Preferences{Difficulty: "expert"},
	}
	assert.Error(t, req.Validate())

	req = SearchRequest{
		Query:       "go concurrency",
		Preferences: &Preferences{Formats: []ResourceType{"podcast"}},
	}
	assert.Error(t, req.Validate())

	req = SearchRequest{
		Query:       "go concurrency",
		Preferences: &Preferences{MaxTimeMinutes: -10},
	}
	assert.Error(t, req.Validate())

	req = SearchRequest{
		Query:       "go concurrency",
		Preferences: &Preferences{PreferredTimeRange: "forever"},
	}
	assert.Error(t, req.Validate())
}

func TestPreferences_Empty(t *testing.T) {
	var p *Preferences
	assert.True(t, p.Empty())
	assert.True(t, (&Preferences{}).Empty())
	assert.False(t, (&Preferences{Difficulty: DifficultyBeginner}).Empty())
}

func TestTimeRangeFor(t *testing.T) {
	assert.Equal(t, TimeRangeShort, TimeRangeFor(15))
	assert.Equal(t, TimeRangeShort, TimeRangeFor(30))
	assert.Equal(t, TimeRangeMedium, TimeRangeFor(31))
	assert.Equal(t, TimeRangeMedium, TimeRangeFor(90))
	assert.Equal(t, TimeRangeLong, TimeRangeFor(91))
}
