package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/aetherlearn/pathweaver/internal/types"
)

// PathStore persists finished learning paths as JSONB payloads.
type PathStore struct {
	db *DB
}

// NewPathStore creates a durable path store over the pool.
func NewPathStore(db *DB) *PathStore {
	return &PathStore{db: db}
}

// Insert stores a learning path and returns its generated id.
func (s *PathStore) Insert(ctx context.Context, path *types.LearningPath) (string, error) {
	id := uuid.NewString()
	now := time.Now().UTC()

	stored := *path
	stored.ID = id
	stored.CreatedAt = now
	stored.UpdatedAt = now

	payload, err := json.Marshal(&stored)
	if err != nil {
		return "", fmt.Errorf("failed to marshal learning path: %w", err)
	}

	_, err = s.db.pool.Exec(ctx,
		`INSERT INTO learning_paths (id, user_id, query, payload, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		id, nullable(stored.UserID), stored.Query, payload, now, now,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert learning path: %w", err)
	}
	return id, nil
}

// Get retrieves a learning path by id, or (nil, nil) when unknown.
func (s *PathStore) Get(ctx context.Context, id string) (*types.LearningPath, error) {
	var payload []byte
	err := s.db.pool.QueryRow(ctx,
		`SELECT payload FROM learning_paths WHERE id = $1`,
		id,
	).Scan(&payload)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get learning path: %w", err)
	}

	var path types.LearningPath
	if err := json.Unmarshal(payload, &path); err != nil {
		return nil, fmt.Errorf("failed to unmarshal learning path %s: %w", id, err)
	}
	return &path, nil
}
