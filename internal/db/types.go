package db

import (
	"time"

	"github.com/google/uuid"
)

// Assessment stage names used as artifact keys
const (
	StageProfile        = "student_profile"
	StageMarketAnalysis = "market_analysis"
	StageFeasibility    = "feasibility"
	StageAlternatives   = "alternatives"
	StageRoadmap        = "roadmap"
	StageReevaluation   = "reevaluation"
)

// Assessment statuses
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Assessment represents one stored career assessment
type Assessment struct {
	ID               uuid.UUID  `json:"id"`
	DesiredRole      string     `json:"desired_role"`
	Verdict          *string    `json:"verdict,omitempty"`
	FeasibilityScore *float64   `json:"feasibility_score,omitempty"`
	Status           string     `json:"status"`
	CreatedAt        time.Time  `json:"created_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}
