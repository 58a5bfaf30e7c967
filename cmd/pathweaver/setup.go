package main

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/aetherlearn/pathweaver/internal/cache"
	"github.com/aetherlearn/pathweaver/internal/config"
	"github.com/aetherlearn/pathweaver/internal/db"
	"github.com/aetherlearn/pathweaver/internal/discovery"
	"github.com/aetherlearn/pathweaver/internal/llm"
	"github.com/aetherlearn/pathweaver/internal/pipeline"
	"github.com/aetherlearn/pathweaver/internal/status"
	"github.com/aetherlearn/pathweaver/internal/types"
)

// loadConfig merges an optional config file, environment variables, and
// defaults into the effective configuration.
func loadConfig(path string) (config.Config, error) {
	cfg := config.Config{}
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return cfg, err
		}
		cfg = *loaded
	}
	cfg.FromEnv()
	cfg = cfg.MergeWithDefaults(config.Defaults())
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// buildManager wires the pipeline collaborators from configuration. The
// returned cleanup releases the database pool and generator.
func buildManager(ctx context.Context, cfg config.Config) (*pipeline.Manager, func(), error) {
	if cfg.SearchAPIKey == "" || cfg.SearchEngineID == "" {
		return nil, nil, fmt.Errorf("SEARCH_API_KEY and SEARCH_ENGINE_ID are required")
	}

	provider, err := discovery.NewGoogleProvider(ctx, cfg.SearchAPIKey, cfg.SearchEngineID, cfg.SearchTimeout())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create search provider: %w", err)
	}

	var generator llm.Generator
	if cfg.GeminiAPIKey != "" {
		llmCfg := llm.DefaultConfig()
		llmCfg.Timeout = cfg.GeneratorTimeout()
		generator, err = llm.NewGenerator(ctx, llmCfg, cfg.GeminiAPIKey)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create generator: %w", err)
		}
	} else {
		log.Println("GEMINI_API_KEY not set, using the heuristic curriculum fallback")
	}

	var database *db.DB
	var durable status.Store
	var paths pipeline.PathStore
	if cfg.DatabaseURL != "" {
		database, err = db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Printf("database unavailable, running with in-memory status only: %v", err)
		} else {
			durable = db.NewStatusStore(database)
			paths = db.NewPathStore(database)
		}
	}
	if paths == nil {
		paths = newMemoryPathStore()
	}

	var enricher pipeline.Enricher
	if cfg.EnrichResults {
		enricher = discovery.NewEnricher(0)
	}

	manager, err := pipeline.New(pipeline.Options{
		Provider:  provider,
		Generator: generator,
		Ledger:    status.NewLedger(durable, status.NewMemoryStore(0)),
		Paths:     paths,
		Cache:     cache.New(cfg.CacheTTL(), cfg.CacheCapacity),
		Enricher:  enricher,
		Config:    cfg,
	})
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if err := manager.Close(); err != nil {
			log.Printf("failed to close generator: %v", err)
		}
		if database != nil {
			database.Close()
		}
	}
	return manager, cleanup, nil
}

// memoryPathStore keeps finished paths in-process when no database is
// configured.
type memoryPathStore struct {
	mu    sync.Mutex
	paths map[string]*types.LearningPath
}

func newMemoryPathStore() *memoryPathStore {
	return &memoryPathStore{paths: make(map[string]*types.LearningPath)}
}

func (s *memoryPathStore) Insert(_ context.Context, path *types.LearningPath) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	stored := *path
	stored.ID = id
	s.paths[id] = &stored
	return id, nil
}

func (s *memoryPathStore) Get(_ context.Context, id string) (*types.LearningPath, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	path, ok := s.paths[id]
	if !ok {
		return nil, nil
	}
	copied := *path
	return &copied, nil
}
