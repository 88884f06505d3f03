// Package db provides PostgreSQL persistence for assessments and
// learning journeys.
package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema creates the tables this package needs when they do not
// exist yet. Safe to call on every startup.
func (db *DB) EnsureSchema(ctx context.Context) error {
	_, err := db.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS assessments (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			desired_role TEXT NOT NULL,
			verdict TEXT,
			feasibility_score DOUBLE PRECISION,
			status TEXT NOT NULL DEFAULT 'running',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			completed_at TIMESTAMPTZ
		);

		CREATE TABLE IF NOT EXISTS assessment_artifacts (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			assessment_id UUID NOT NULL REFERENCES assessments(id) ON DELETE CASCADE,
			stage TEXT NOT NULL,
			content JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (assessment_id, stage)
		);

		CREATE TABLE IF NOT EXISTS journeys (
			session_id TEXT PRIMARY KEY,
			state JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// CreateAssessment creates a new assessment record and returns its ID
func (db *DB) CreateAssessment(ctx context.Context, desiredRole string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO assessments (desired_role, status)
		 VALUES ($1, 'running')
		 RETURNING id`,
		desiredRole,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create assessment: %w", err)
	}
	return id, nil
}

// CompleteAssessment records the final verdict of an assessment
func (db *DB) CompleteAssessment(ctx context.Context, assessmentID uuid.UUID, verdict string, feasibilityScore float64) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE assessments
		 SET verdict = $1, feasibility_score = $2, status = 'completed', completed_at = NOW()
		 WHERE id = $3`,
		verdict, feasibilityScore, assessmentID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete assessment: %w", err)
	}
	return nil
}

// FailAssessment marks an assessment as failed
func (db *DB) FailAssessment(ctx context.Context, assessmentID uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE assessments SET status = 'failed', completed_at = NOW() WHERE id = $1`,
		assessmentID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark assessment failed: %w", err)
	}
	return nil
}

// SaveArtifact stores a JSON artifact for an assessment stage,
// replacing any earlier artifact for the same stage.
func (db *DB) SaveArtifact(ctx context.Context, assessmentID uuid.UUID, stage string, content any) error {
	jsonBytes, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("failed to marshal artifact: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO assessment_artifacts (assessment_id, stage, content)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (assessment_id, stage) DO UPDATE SET content = $3, created_at = NOW()`,
		assessmentID, stage, jsonBytes,
	)
	if err != nil {
		return fmt.Errorf("failed to save artifact %s: %w", stage, err)
	}
	return nil
}

// GetArtifact retrieves a JSON artifact by assessment ID and stage.
// Returns nil when the stage has no artifact.
func (db *DB) GetArtifact(ctx context.Context, assessmentID uuid.UUID, stage string) ([]byte, error) {
	var content []byte
	err := db.pool.QueryRow(ctx,
		`SELECT content FROM assessment_artifacts WHERE assessment_id = $1 AND stage = $2`,
		assessmentID, stage,
	).Scan(&content)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get artifact %s: %w", stage, err)
	}
	return content, nil
}

// GetAssessment retrieves an assessment by ID. Returns nil when the
// ID is unknown.
func (db *DB) GetAssessment(ctx context.Context, assessmentID uuid.UUID) (*Assessment, error) {
	var a Assessment
	err := db.pool.QueryRow(ctx,
		`SELECT id, desired_role, verdict, feasibility_score, status, created_at, completed_at
		 FROM assessments WHERE id = $1`,
		assessmentID,
	).Scan(&a.ID, &a.DesiredRole, &a.Verdict, &a.FeasibilityScore, &a.Status, &a.CreatedAt, &a.CompletedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}
	return &a, nil
}

// ListAssessments retrieves recent assessments, newest first
func (db *DB) ListAssessments(ctx context.Context, limit int) ([]Assessment, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, desired_role, verdict, feasibility_score, status, created_at, completed_at
		 FROM assessments ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	defer rows.Close()

	var assessments []Assessment
	for rows.Next() {
		var a Assessment
		if err := rows.Scan(&a.ID, &a.DesiredRole, &a.Verdict, &a.FeasibilityScore, &a.Status, &a.CreatedAt, &a.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan assessment: %w", err)
		}
		assessments = append(assessments, a)
	}
	return assessments, nil
}

// DeleteAssessment deletes an assessment and its artifacts (via cascade)
func (db *DB) DeleteAssessment(ctx context.Context, assessmentID uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM assessments WHERE id = $1`, assessmentID)
	if err != nil {
		return fmt.Errorf("failed to delete assessment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("assessment not found: %s", assessmentID)
	}
	return nil
}
