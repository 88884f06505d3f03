package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/jonathan/career-advisor/internal/types"
)

// ErrSessionNotFound is returned when a session id has no stored journey
var ErrSessionNotFound = errors.New("session not found")

// Store persists journey state by session id. Implementations must
// return copies: mutating a returned state must not affect the stored
// one until Put is called.
type Store interface {
	Get(ctx context.Context, sessionID string) (*types.JourneyState, error)
	Put(ctx context.Context, state *types.JourneyState) error
	Delete(ctx context.Context, sessionID string) error
}

// MemoryStore is an in-process Store. Safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[string]json.RawMessage
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]json.RawMessage)}
}

// Get returns a copy of the stored state for a session
func (s *MemoryStore) Get(_ context.Context, sessionID string) (*types.JourneyState, error) {
	s.mu.RLock()
	raw, ok := s.states[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	var state types.JourneyState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("failed to decode journey state: %w", err)
	}
	return &state, nil
}

// Put stores a snapshot of the state under its session id
func (s *MemoryStore) Put(_ context.Context, state *types.JourneyState) error {
	if state == nil || state.SessionID == "" {
		return errors.New("journey state requires a session id")
	}

	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode journey state: %w", err)
	}

	s.mu.Lock()
	s.states[state.SessionID] = raw
	s.mu.Unlock()
	return nil
}

// Delete removes a session. Deleting an unknown session is a no-op.
func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.states, sessionID)
	s.mu.Unlock()
	return nil
}
