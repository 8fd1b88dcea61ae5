package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/upskill-agent/internal/types"
)

const createAnalysesTable = `
CREATE TABLE IF NOT EXISTS analyses (
	user_id    TEXT PRIMARY KEY,
	state      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PgStore is a Store backed by PostgreSQL. The latest analysis per user is
// kept as a JSONB document; saves upsert on user_id.
type PgStore struct {
	pool *pgxpool.Pool
}

// NewPgStore connects to the database and ensures the analyses table exists
func NewPgStore(ctx context.Context, databaseURL string) (*PgStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := pool.Exec(ctx, createAnalysesTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create analyses table: %w", err)
	}
	return &PgStore{pool: pool}, nil
}

// Close releases the connection pool
func (s *PgStore) Close() {
	s.pool.Close()
}

// SaveAnalysis upserts the latest analysis for a user
func (s *PgStore) SaveAnalysis(ctx context.Context, userID string, state *types.PipelineState) error {
	if userID == "" {
		return fmt.Errorf("user ID is required")
	}
	encoded, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode pipeline state: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO analyses (user_id, state, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id)
		DO UPDATE SET state = EXCLUDED.state, updated_at = now()`,
		userID, encoded)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	return nil
}

// GetAnalysis returns the latest analysis for a user
func (s *PgStore) GetAnalysis(ctx context.Context, userID string) (*types.PipelineState, error) {
	var encoded []byte
	err := s.pool.QueryRow(ctx,
		`SELECT state FROM analyses WHERE user_id = $1`, userID).Scan(&encoded)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &NotFoundError{UserID: userID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load analysis: %w", err)
	}

	var state types.PipelineState
	if err := json.Unmarshal(encoded, &state); err != nil {
		return nil, fmt.Errorf("failed to decode pipeline state: %w", err)
	}
	return &state, nil
}
