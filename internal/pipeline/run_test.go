package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aetherlearn/pathweaver/internal/config"
	"github.com/aetherlearn/pathweaver/internal/discovery"
	"github.com/aetherlearn/pathweaver/internal/llm"
	"github.com/aetherlearn/pathweaver/internal/status"
	"github.com/aetherlearn/pathweaver/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProvider returns canned hits or an error.
type stubProvider struct {
	hits  []discovery.RawHit
	err   error
	calls int
}

func (s *stubProvider) Search(context.Context, string) ([]discovery.RawHit, error) {
	s.calls++
	return s.hits, s.err
}

// stubGenerator returns a canned JSON response or an error.
type stubGenerator struct {
	response string
	err      error
}

func (s *stubGenerator) GenerateJSON(context.Context, string, llm.ModelTier) (string, error) {
	return s.response, s.err
}

func (s *stubGenerator) Close() error { return nil }

// stubPathStore records inserts and can be forced to fail.
type stubPathStore struct {
	inserted  []*types.LearningPath
	insertErr error
	paths     map[string]*types.LearningPath
}

func (s *stubPathStore) Insert(_ context.Context, path *types.LearningPath) (string, error) {
	if s.insertErr != nil {
		return "", s.insertErr
	}
	id := fmt.Sprintf("path-%d", len(s.inserted)+1)
	s.inserted = append(s.inserted, path)
	if s.paths == nil {
		s.paths = make(map[string]*types.LearningPath)
	}
	stored := *path
	stored.ID = id
	s.paths[id] = &stored
	return id, nil
}

func (s *stubPathStore) Get(_ context.Context, id string) (*types.LearningPath, error) {
	return s.paths[id], nil
}

func goodHits() []discovery.RawHit {
	var hits []discovery.RawHit
	for i := 0; i < 12; i++ {
		hits = append(hits, discovery.RawHit{
			Title:         fmt.Sprintf("Go resource %d", i),
			Link:          fmt.Sprintf("https://freecodecamp.org/news/go-%d", i),
			Snippet:       "Learn the fundamentals of Go programming",
			DisplaySource: "freecodecamp.org",
		})
	}
	hits = append(hits,
		discovery.RawHit{Title: "Go course", Link: "https://coursera.org/learn/golang",
			Snippet: "A structured course", DisplaySource: "coursera.org"},
		discovery.RawHit{Title: "Go video", Link: "https://youtube.com/watch?v=go",
			Snippet: "A video introduction, 20 minutes", DisplaySource: "youtube.com"},
		discovery.RawHit{Title: "Go docs", Link: "https://docs.golang.org/spec",
			Snippet: "Language reference", DisplaySource: "golang.org"},
	)
	return hits
}

const pathResponse = `{
	"title": "Go Path",
	"description": "Structured Go curriculum",
	"difficulty": "beginner",
	"modules": [
		{"title": "Basics", "resources": [
			{"title": "Go docs", "url": "https://docs.golang.org/spec", "estimated_time_minutes": 30}
		]}
	]
}`

func newTestManager(t *testing.T, provider discovery.Provider, gen llm.Generator, paths PathStore) *Manager {
	t.Helper()
	m, err := New(Options{
		Provider:  provider,
		Generator: gen,
		Paths:     paths,
		Config:    config.Defaults(),
	})
	require.NoError(t, err)
	return m
}

func initiated(t *testing.T, m *Manager, query string) string {
	t.Helper()
	searchID := "search-1"
	now := time.Now().UTC()
	require.NoError(t, m.ledger.Upsert(context.Background(), &types.SearchStatus{
		SearchID:  searchID,
		Query:     query,
		State:     types.StateInitiated,
		CreatedAt: now,
		UpdatedAt: now,
	}))
	return searchID
}

func TestProcessSearch_HappyPath(t *testing.T) {
	ctx := context.Background()
	store := &stubPathStore{}
	m := newTestManager(t, &stubProvider{hits: goodHits()}, &stubGenerator{response: pathResponse}, store)
	searchID := initiated(t, m, "golang")

	pathID, err := m.ProcessSearch(ctx, searchID, "golang", nil)
	require.NoError(t, err)
	assert.Equal(t, "path-1", pathID)
	require.Len(t, store.inserted, 1)

	st, err := m.GetStatus(ctx, searchID)
	require.NoError(t, err)
	require.NotNil(t, st)
	assert.Equal(t, types.StateCompleted, st.State)
	assert.Equal(t, 100, st.Progress)
	assert.Equal(t, "path-1", st.LearningPathID)
	assert.Greater(t, st.ResourcesFound, 0)
}

func TestProcessSearch_ProviderFailureEndsFailed(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, &stubProvider{err: errors.New("search API down")},
		&stubGenerator{response: pathResponse}, &stubPathStore{})
	searchID := initiated(t, m, "golang")

	_, err := m.ProcessSearch(ctx, searchID, "golang", nil)
	require.Error(t, err, "unrecoverable errors are re-returned")

	st, _ := m.GetStatus(ctx, searchID)
	require.NotNil(t, st)
	assert.Equal(t, types.StateFailed, st.State)
	assert.Equal(t, 0, st.Progress)
	assert.Contains(t, st.Message, "failed")
}

func TestProcessSearch_ZeroContentEndsFailed(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, &stubProvider{hits: nil}, &stubGenerator{response: pathResponse}, &stubPathStore{})
	searchID := initiated(t, m, "golang")

	_, err := m.ProcessSearch(ctx, searchID, "golang", nil)
	require.Error(t, err)

	st, _ := m.GetStatus(ctx, searchID)
	assert.Equal(t, types.StateFailed, st.State)
}

func TestProcessSearch_GeneratorFailureStillCompletes(t *testing.T) {
	ctx := context.Background()
	store := &stubPathStore{}
	m := newTestManager(t, &stubProvider{hits: goodHits()},
		&stubGenerator{err: errors.New("quota")}, store)
	searchID := initiated(t, m, "golang")

	pathID, err := m.ProcessSearch(ctx, searchID, "golang", nil)
	require.NoError(t, err, "generator failure degrades to the fallback curriculum")
	assert.NotEmpty(t, pathID)

	st, _ := m.GetStatus(ctx, searchID)
	assert.Equal(t, types.StateCompleted, st.State)
	require.Len(t, store.inserted, 1)
	assert.NotEmpty(t, store.inserted[0].Modules)
}

func TestProcessSearch_PathStoreFailureUsesSurrogateID(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, &stubProvider{hits: goodHits()},
		&stubGenerator{response: pathResponse},
		&stubPathStore{insertErr: errors.New("db down")})
	searchID := initiated(t, m, "golang")

	pathID, err := m.ProcessSearch(ctx, searchID, "golang", nil)
	require.NoError(t, err, "persistence failure must not block completion")
	assert.NotEmpty(t, pathID)

	st, _ := m.GetStatus(ctx, searchID)
	assert.Equal(t, types.StateCompleted, st.State)
	assert.Equal(t, pathID, st.LearningPathID)
}

func TestProcessSearch_SecondRunServedFromCache(t *testing.T) {
	ctx := context.Background()
	provider := &stubProvider{hits: goodHits()}
	m := newTestManager(t, provider, &stubGenerator{response: pathResponse}, &stubPathStore{})

	first := initiated(t, m, "golang")
	_, err := m.ProcessSearch(ctx, first, "golang", nil)
	require.NoError(t, err)
	require.Equal(t, 1, provider.calls)

	secondID := "search-2"
	now := time.Now().UTC()
	require.NoError(t, m.ledger.Upsert(ctx, &types.SearchStatus{
		SearchID: secondID, Query: "golang", State: types.StateInitiated,
		CreatedAt: now, UpdatedAt: now,
	}))

	_, err = m.ProcessSearch(ctx, secondID, "golang", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, provider.calls, "second run must not hit the provider")
}

func TestProcessSearch_CachedRunCarriesCounters(t *testing.T) {
	ctx := context.Background()
	provider := &stubProvider{hits: goodHits()}
	m := newTestManager(t, provider, &stubGenerator{response: pathResponse}, &stubPathStore{})

	first := initiated(t, m, "golang")
	_, err := m.ProcessSearch(ctx, first, "golang", nil)
	require.NoError(t, err)

	secondID := "search-2"
	now := time.Now().UTC()
	require.NoError(t, m.ledger.Upsert(ctx, &types.SearchStatus{
		SearchID: secondID, Query: "golang", State: types.StateInitiated,
		CreatedAt: now, UpdatedAt: now,
	}))

	_, err = m.ProcessSearch(ctx, secondID, "golang", nil)
	require.NoError(t, err)

	// A cache-served run reports the sources behind the cached items, not
	// zeros, so its status history reads like a fresh run's.
	st, err := m.GetStatus(ctx, secondID)
	require.NoError(t, err)
	require.NotNil(t, st)
	assert.Equal(t, types.StateCompleted, st.State)
	assert.Greater(t, st.ResourcesFound, 0)
	assert.Greater(t, st.SourcesScanned, 0)
}

func TestProcessSearch_ProgressNeverDecreases(t *testing.T) {
	ctx := context.Background()
	durable := &progressRecorder{inner: status.NewMemoryStore(10)}
	ledger := status.NewLedger(durable, status.NewMemoryStore(10))

	m, err := New(Options{
		Provider:  &stubProvider{hits: goodHits()},
		Generator: &stubGenerator{response: pathResponse},
		Ledger:    ledger,
		Config:    config.Defaults(),
	})
	require.NoError(t, err)

	searchID := "search-1"
	now := time.Now().UTC()
	require.NoError(t, ledger.Upsert(ctx, &types.SearchStatus{
		SearchID: searchID, Query: "golang", State: types.StateInitiated,
		CreatedAt: now, UpdatedAt: now,
	}))

	_, err = m.ProcessSearch(ctx, searchID, "golang", nil)
	require.NoError(t, err)

	require.NotEmpty(t, durable.progress)
	for i := 1; i < len(durable.progress); i++ {
		assert.GreaterOrEqual(t, durable.progress[i], durable.progress[i-1])
	}
	assert.Equal(t, 100, durable.progress[len(durable.progress)-1])
}

// progressRecorder captures each progress value written through it.
type progressRecorder struct {
	inner    *status.MemoryStore
	progress []int
}

func (r *progressRecorder) Upsert(ctx context.Context, s *types.SearchStatus) error {
	r.progress = append(r.progress, s.Progress)
	return r.inner.Upsert(ctx, s)
}

func (r *progressRecorder) Get(ctx context.Context, id string) (*types.SearchStatus, error) {
	return r.inner.Get(ctx, id)
}

func TestStartSearch_RejectsInvalidRequest(t *testing.T) {
	m := newTestManager(t, &stubProvider{}, nil, nil)

	_, err := m.StartSearch(context.Background(), &types.SearchRequest{Query: "   "})
	assert.Error(t, err)
}

func TestStartSearch_RecordsInitiatedAndRuns(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, &stubProvider{hits: goodHits()},
		&stubGenerator{response: pathResponse}, &stubPathStore{})

	searchID, err := m.StartSearch(ctx, &types.SearchRequest{Query: "golang"})
	require.NoError(t, err)
	require.NotEmpty(t, searchID)

	// The background run completes quickly with stub collaborators.
	deadline := time.Now().Add(5 * time.Second)
	for {
		st, err := m.GetStatus(ctx, searchID)
		require.NoError(t, err)
		require.NotNil(t, st)
		if st.State.Terminal() {
			assert.Equal(t, types.StateCompleted, st.State)
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("search did not finish, last state %s", st.State)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestCustomizePath_RegeneratesStoredPath(t *testing.T) {
	ctx := context.Background()
	store := &stubPathStore{}
	m := newTestManager(t, &stubProvider{hits: goodHits()},
		&stubGenerator{response: pathResponse}, store)

	searchID := initiated(t, m, "golang")
	originalID, err := m.ProcessSearch(ctx, searchID, "golang", nil)
	require.NoError(t, err)

	prefs := &types.Preferences{Difficulty: types.DifficultyAdvanced}
	customizeID, customized, err := m.CustomizePath(ctx, originalID, prefs)
	require.NoError(t, err)
	require.NotNil(t, customized)
	assert.NotEqual(t, originalID, customized.ID)

	st, err := m.GetStatus(ctx, customizeID)
	require.NoError(t, err)
	assert.Equal(t, types.StateCompleted, st.State)
	assert.Equal(t, customized.ID, st.LearningPathID)
}

func TestCustomizePath_UnknownPath(t *testing.T) {
	m := newTestManager(t, &stubProvider{}, nil, &stubPathStore{})
	_, _, err := m.CustomizePath(context.Background(), "missing", nil)
	assert.Error(t, err)
}

func TestNew_RequiresProvider(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}

func TestNew_DefaultsLedgerAndCache(t *testing.T) {
	m, err := New(Options{Provider: &stubProvider{}})
	require.NoError(t, err)
	assert.NotNil(t, m.ledger)
	assert.NotNil(t, m.cache)
	assert.Equal(t, 0.7, m.cfg.QualityThreshold)
}
