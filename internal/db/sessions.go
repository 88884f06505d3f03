package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/career-advisor/internal/progress"
	"github.com/jonathan/career-advisor/internal/types"
)

// SessionStore persists journey state in the journeys table. It
// implements progress.Store, so the progress engine can run against
// the database instead of process memory.
type SessionStore struct {
	db *DB
}

// NewSessionStore creates a journey store over an open database
func NewSessionStore(db *DB) *SessionStore {
	return &SessionStore{db: db}
}

// Get loads the journey state for a session
func (s *SessionStore) Get(ctx context.Context, sessionID string) (*types.JourneyState, error) {
	var raw []byte
	err := s.db.pool.QueryRow(ctx,
		`SELECT state FROM journeys WHERE session_id = $1`,
		sessionID,
	).Scan(&raw)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("%w: %s", progress.ErrSessionNotFound, sessionID)
		}
		return nil, fmt.Errorf("failed to get journey: %w", err)
	}

	var state types.JourneyState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("failed to decode journey state: %w", err)
	}
	return &state, nil
}

// Put upserts the journey state under its session id
func (s *SessionStore) Put(ctx context.Context, state *types.JourneyState) error {
	if state == nil || state.SessionID == "" {
		return fmt.Errorf("journey state requires a session id")
	}

	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode journey state: %w", err)
	}

	_, err = s.db.pool.Exec(ctx,
		`INSERT INTO journeys (session_id, state)
		 VALUES ($1, $2)
		 ON CONFLICT (session_id) DO UPDATE SET state = $2, updated_at = NOW()`,
		state.SessionID, raw,
	)
	if err != nil {
		return fmt.Errorf("failed to save journey: %w", err)
	}
	return nil
}

// Delete removes a journey. Deleting an unknown session is a no-op.
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	_, err := s.db.pool.Exec(ctx, `DELETE FROM journeys WHERE session_id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete journey: %w", err)
	}
	return nil
}
