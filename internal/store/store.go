// Package store persists finished pipeline runs keyed by user, so a user's
// latest analysis can be retrieved without re-running the pipeline.
package store

import (
	"context"
	"fmt"

	"github.com/jonathan/upskill-agent/internal/types"
)

// Store persists and retrieves the latest analysis per user
type Store interface {
	SaveAnalysis(ctx context.Context, userID string, state *types.PipelineState) error
	GetAnalysis(ctx context.Context, userID string) (*types.PipelineState, error)
}

// NotFoundError indicates no analysis exists for a user
type NotFoundError struct {
	UserID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no analysis found for user %s", e.UserID)
}
