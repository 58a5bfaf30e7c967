package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aetherlearn/pathweaver/internal/types"
)

// StatusStore is the durable status.Store implementation.
type StatusStore struct {
	db *DB
}

// NewStatusStore creates a durable status store over the pool.
func NewStatusStore(db *DB) *StatusStore {
	return &StatusStore{db: db}
}

// Upsert writes the full status record for a search id.
func (s *StatusStore) Upsert(ctx context.Context, status *types.SearchStatus) error {
	_, err := s.db.pool.Exec(ctx,
		`INSERT INTO search_status (search_id, user_id, query, status, progress, message,
		                            resources_found, sources_scanned, learning_path_id,
		                            created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 ON CONFLICT (search_id) DO UPDATE SET
		   status = $4, progress = $5, message = $6, resources_found = $7,
		   sources_scanned = $8, learning_path_id = $9, updated_at = $11`,
		status.SearchID, nullable(status.UserID), status.Query, string(status.State),
		status.Progress, status.Message, status.ResourcesFound, status.SourcesScanned,
		nullable(status.LearningPathID), status.CreatedAt, status.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert search status: %w", err)
	}
	return nil
}

// Get retrieves the status for a search id, or (nil, nil) when unknown.
func (s *StatusStore) Get(ctx context.Context, searchID string) (*types.SearchStatus, error) {
	var status types.SearchStatus
	var state string
	var userID, pathID *string

	err := s.db.pool.QueryRow(ctx,
		`SELECT search_id, user_id, query, status, progress, message,
		        resources_found, sources_scanned, learning_path_id, created_at, updated_at
		 FROM search_status
		 WHERE search_id = $1`,
		searchID,
	).Scan(&status.SearchID, &userID, &status.Query, &state, &status.Progress,
		&status.Message, &status.ResourcesFound, &status.SourcesScanned, &pathID,
		&status.CreatedAt, &status.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get search status: %w", err)
	}

	status.State = types.SearchState(state)
	if userID != nil {
		status.UserID = *userID
	}
	if pathID != nil {
		status.LearningPathID = *pathID
	}
	return &status, nil
}

// nullable maps empty strings to SQL NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
