package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jonathan/upskill-agent/internal/types"
)

// MemoryStore is an in-process Store for single runs and tests. State is
// stored as JSON so reads return independent copies.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// SaveAnalysis stores the latest analysis for a user, replacing any prior one
func (s *MemoryStore) SaveAnalysis(_ context.Context, userID string, state *types.PipelineState) error {
	if userID == "" {
		return fmt.Errorf("user ID is required")
	}
	encoded, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode pipeline state: %w", err)
	}

	s.mu.Lock()
	s.data[userID] = encoded
	s.mu.Unlock()
	return nil
}

// GetAnalysis returns the latest analysis for a user
func (s *MemoryStore) GetAnalysis(_ context.Context, userID string) (*types.PipelineState, error) {
	s.mu.RLock()
	encoded, ok := s.data[userID]
	s.mu.RUnlock()
	if !ok {
		return nil, &NotFoundError{UserID: userID}
	}

	var state types.PipelineState
	if err := json.Unmarshal(encoded, &state); err != nil {
		return nil, fmt.Errorf("failed to decode pipeline state: %w", err)
	}
	return &state, nil
}
