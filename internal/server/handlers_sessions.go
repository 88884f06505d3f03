package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/career-advisor/internal/roadmap"
	"github.com/jonathan/career-advisor/internal/types"
)

// CreateSessionRequest represents the request body for /sessions.
// When no roadmap steps are provided, a rule-based roadmap for the
// target role is generated.
type CreateSessionRequest struct {
	Profile       *types.StudentProfile `json:"student_profile" validate:"required"`
	TargetRole    string                `json:"target_role" validate:"required"`
	Roadmap       []types.Step          `json:"roadmap,omitempty"`
	DurationWeeks int                   `json:"duration_weeks" validate:"gte=0"`
}

// CompletionRequest represents a step-completed event
type CompletionRequest struct {
	StepNumber     int     `json:"step_number" validate:"required,gte=1"`
	TimeSpentHours float64 `json:"time_spent_hours" validate:"gte=0"`
}

// BlockerRequest represents a step-blocked event
type BlockerRequest struct {
	StepNumber int    `json:"step_number" validate:"required,gte=1"`
	Reason     string `json:"reason"`
	Attempts   int    `json:"attempts" validate:"gte=0"`
}

// handleCreateSession initializes journey tracking for a student
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := validateRequest(&req); err != nil {
		s.handleError(w, err)
		return
	}

	analysis, err := s.catalog.Analyze(req.TargetRole, req.Profile.AllSkills())
	if err != nil {
		analysis = nil
	}

	steps := req.Roadmap
	if len(steps) == 0 {
		if analysis == nil {
			s.errorResponse(w, http.StatusBadRequest, "Role not found in market data; provide a roadmap explicitly")
			return
		}
		generator := roadmap.NewGenerator(nil, nil)
		rm, err := generator.Generate(r.Context(), req.TargetRole, req.Profile, analysis, req.DurationWeeks)
		if err != nil {
			s.handleError(w, err)
			return
		}
		steps = rm.Steps
	}

	result, err := s.engine.InitializeJourney(r.Context(), req.Profile, req.TargetRole, steps, analysis)
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, result)
}

// handleSessionSummary returns the progress summary for a session
func (s *Server) handleSessionSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.engine.Summary(r.Context(), r.PathValue("id"))
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, summary)
}

// handleNextStep returns the next roadmap step for a session
func (s *Server) handleNextStep(w http.ResponseWriter, r *http.Request) {
	next, err := s.engine.NextStep(r.Context(), r.PathValue("id"))
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, next)
}

// handleRecordCompletion records a completed roadmap step
func (s *Server) handleRecordCompletion(w http.ResponseWriter, r *http.Request) {
	var req CompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := validateRequest(&req); err != nil {
		s.handleError(w, err)
		return
	}

	result, err := s.engine.RecordCompletion(r.Context(), r.PathValue("id"), req.StepNumber, req.TimeSpentHours)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleRecordBlocker records a blocked roadmap step
func (s *Server) handleRecordBlocker(w http.ResponseWriter, r *http.Request) {
	var req BlockerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := validateRequest(&req); err != nil {
		s.handleError(w, err)
		return
	}

	result, err := s.engine.RecordBlocker(r.Context(), r.PathValue("id"), req.StepNumber, req.Reason, req.Attempts)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleReevaluate forces a journey re-evaluation
func (s *Server) handleReevaluate(w http.ResponseWriter, r *http.Request) {
	result, err := s.engine.Reevaluate(r.Context(), r.PathValue("id"))
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}
