package progress

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/career-advisor/internal/market"
	"github.com/jonathan/career-advisor/internal/reroute"
	"github.com/jonathan/career-advisor/internal/types"
)

// ErrInvalidStep is returned when a step number is outside the roadmap
var ErrInvalidStep = errors.New("invalid step number")

// hoursPerWeek converts roadmap step durations into expected effort
const hoursPerWeek = 40

// Engine tracks learning journeys and triggers market-based
// re-evaluations. All operations are rule-based; the only LLM use is
// indirect, through the reroute ranker's justifications.
type Engine struct {
	// mu serializes read-modify-write cycles against the store.
	mu      sync.Mutex
	store   Store
	catalog *market.Catalog
	ranker  *reroute.Ranker
}

// NewEngine creates a progress engine. A nil store uses an in-memory
// one, a nil catalog the embedded dataset, and a nil ranker a
// deterministic one built on the same catalog.
func NewEngine(store Store, catalog *market.Catalog, ranker *reroute.Ranker) *Engine {
	if store == nil {
		store = NewMemoryStore()
	}
	if catalog == nil {
		catalog = market.Default()
	}
	if ranker == nil {
		ranker = reroute.NewRanker(nil, catalog, nil)
	}
	return &Engine{store: store, catalog: catalog, ranker: ranker}
}

// InitResult reports a newly initialized journey
type InitResult struct {
	Status                   string `json:"status"`
	SessionID                string `json:"session_id"`
	TotalSteps               int    `json:"total_steps"`
	EstimatedCompletionWeeks int    `json:"estimated_completion_weeks"`
}

// InitializeJourney starts tracking a new learning journey and returns
// its generated session id. The market snapshot anchors later shift
// detection.
func (e *Engine) InitializeJourney(ctx context.Context, profile *types.StudentProfile, targetRole string, roadmap []types.Step, snapshot *types.MarketAnalysis) (*InitResult, error) {
	if profile == nil {
		return nil, fmt.Errorf("student profile is required")
	}
	if len(roadmap) == 0 {
		return nil, fmt.Errorf("roadmap must have at least one step")
	}

	now := time.Now()
	state := &types.JourneyState{
		SessionID:       uuid.NewString(),
		TargetRole:      targetRole,
		Roadmap:         roadmap,
		TotalSteps:      len(roadmap),
		CurrentStep:     1,
		TimeSpent:       make(map[int]float64),
		MotivationLevel: 1.0,
		StartDate:       now,
		LastActivity:    now,
		Profile:         *profile,
	}
	if snapshot != nil {
		state.MarketSnapshot = *snapshot
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.store.Put(ctx, state); err != nil {
		return nil, err
	}

	weeks := 0
	for _, step := range roadmap {
		weeks += step.DurationWeeks
	}
	return &InitResult{
		Status:                   "initialized",
		SessionID:                state.SessionID,
		TotalSteps:               state.TotalSteps,
		EstimatedCompletionWeeks: weeks,
	}, nil
}

// RecordCompletion marks a roadmap step as done and runs a
// re-evaluation when a trigger condition is met.
func (e *Engine) RecordCompletion(ctx context.Context, sessionID string, stepNumber int, timeSpentHours float64) (*types.CompletionResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	state, err := e.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if stepNumber < 1 || stepNumber > state.TotalSteps {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStep, stepNumber)
	}

	if state.IsCompleted(stepNumber) {
		return &types.CompletionResult{
			Status:             "already_completed",
			StepNumber:         stepNumber,
			ProgressPercentage: round1(state.ProgressPercent()),
			CompletedSteps:     len(state.CompletedSteps),
			RemainingSteps:     state.TotalSteps - len(state.CompletedSteps),
		}, nil
	}

	state.CompletedSteps = append(state.CompletedSteps, stepNumber)
	state.CurrentStep = stepNumber + 1
	if timeSpentHours > 0 {
		state.TimeSpent[stepNumber] += timeSpentHours
	}
	state.LastActivity = time.Now()

	result := &types.CompletionResult{
		Status:             "completed",
		StepNumber:         stepNumber,
		ProgressPercentage: round1(state.ProgressPercent()),
		CompletedSteps:     len(state.CompletedSteps),
		RemainingSteps:     state.TotalSteps - len(state.CompletedSteps),
		ShouldReevaluate:   e.shouldReevaluate(state),
	}

	if result.ShouldReevaluate {
		reeval, rerr := e.reevaluate(ctx, state)
		if rerr != nil {
			return nil, rerr
		}
		result.Reevaluation = reeval
	}

	if err := e.store.Put(ctx, state); err != nil {
		return nil, err
	}
	return result, nil
}

// RecordBlocker records that the student is stuck on a step. Repeated
// reports for the same step increment its attempt count. Motivation
// drops with the number of blocked steps and a critical blocker
// pattern forces an immediate re-evaluation.
func (e *Engine) RecordBlocker(ctx context.Context, sessionID string, stepNumber int, reason string, attempts int) (*types.BlockerResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	state, err := e.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if stepNumber < 1 || stepNumber > state.TotalSteps {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStep, stepNumber)
	}

	now := time.Now()
	var existing *types.Blocker
	for i := range state.BlockedSteps {
		if state.BlockedSteps[i].Step == stepNumber {
			existing = &state.BlockedSteps[i]
			break
		}
	}

	if existing != nil {
		existing.Attempts++
		existing.LastReported = now
	} else {
		if attempts < 1 {
			attempts = 1
		}
		state.BlockedSteps = append(state.BlockedSteps, types.Blocker{
			Step:          stepNumber,
			Reason:        reason,
			Attempts:      attempts,
			FirstReported: now,
			LastReported:  now,
		})
	}

	blockerCount := len(state.BlockedSteps)
	state.MotivationLevel = math.Max(1.0-float64(blockerCount)*0.2, 0.1)
	state.LastActivity = now

	result := &types.BlockerResult{
		Status:           "blocker_recorded",
		StepNumber:       stepNumber,
		TotalBlockers:    blockerCount,
		MotivationLevel:  state.MotivationLevel,
		ShouldReevaluate: e.shouldReevaluate(state),
	}
	if existing != nil {
		result.Attempts = existing.Attempts
	} else {
		result.Attempts = attempts
	}

	if blockerCount >= 2 || (existing != nil && existing.Attempts >= 3) {
		reeval, rerr := e.reevaluate(ctx, state)
		if rerr != nil {
			return nil, rerr
		}
		result.Reevaluation = reeval
		result.Recommendation = "Consider alternative path"
	}

	if err := e.store.Put(ctx, state); err != nil {
		return nil, err
	}
	return result, nil
}

// Reevaluate re-checks whether the current path is still optimal,
// regardless of trigger conditions.
func (e *Engine) Reevaluate(ctx context.Context, sessionID string) (*types.ReevaluationResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	state, err := e.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	result, err := e.reevaluate(ctx, state)
	if err != nil {
		return nil, err
	}
	if err := e.store.Put(ctx, state); err != nil {
		return nil, err
	}
	return result, nil
}

// Summary returns a comprehensive progress view for a session
func (e *Engine) Summary(ctx context.Context, sessionID string) (*types.ProgressSummary, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	state, err := e.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	totalTime := totalTimeSpent(state)
	expected := expectedHours(state)
	efficiency := 100.0
	if totalTime > 0 {
		efficiency = expected / totalTime * 100
	}

	return &types.ProgressSummary{
		SessionID:            state.SessionID,
		TargetRole:           state.TargetRole,
		CompletedSteps:       len(state.CompletedSteps),
		TotalSteps:           state.TotalSteps,
		ProgressPercentage:   round1(state.ProgressPercent()),
		RemainingSteps:       state.TotalSteps - len(state.CompletedSteps),
		TotalHoursSpent:      round1(totalTime),
		ExpectedHours:        round1(expected),
		EfficiencyPercentage: round1(efficiency),
		BlockerCount:         len(state.BlockedSteps),
		Blockers:             state.BlockedSteps,
		MotivationLevel:      state.MotivationLevel,
		RerouteCount:         state.RerouteCount,
		StartDate:            state.StartDate,
		LastActivity:         state.LastActivity,
	}, nil
}

// NextStepResult describes the next roadmap step to work on
type NextStepResult struct {
	Status     string      `json:"status"`
	Message    string      `json:"message,omitempty"`
	NextStep   *types.Step `json:"next_step,omitempty"`
	StepNumber int         `json:"step_number,omitempty"`
	TotalSteps int         `json:"total_steps,omitempty"`
}

// NextStep returns the step the student should work on next, or a
// completion message when the roadmap is done.
func (e *Engine) NextStep(ctx context.Context, sessionID string) (*NextStepResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	state, err := e.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if state.CurrentStep > state.TotalSteps {
		return &NextStepResult{
			Status:  "completed",
			Message: "Congratulations! You've completed all steps.",
		}, nil
	}

	step := state.Roadmap[state.CurrentStep-1]
	return &NextStepResult{
		Status:     "in_progress",
		NextStep:   &step,
		StepNumber: state.CurrentStep,
		TotalSteps: state.TotalSteps,
	}, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
