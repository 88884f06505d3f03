package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/career-advisor/internal/pipeline"
	"github.com/jonathan/career-advisor/internal/reroute"
	"github.com/jonathan/career-advisor/internal/types"
)

var validate = validator.New()

// validateRequest runs struct validation and converts the first
// failure into the API's validation error.
func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &ErrValidation{Field: verrs[0].Field(), Message: "failed on '" + verrs[0].Tag() + "' validation"}
	}
	return &ErrValidation{Field: "request", Message: err.Error()}
}

// AssessRequest represents the request body for /assess
type AssessRequest struct {
	Profile         *types.StudentProfile `json:"student_profile" validate:"required"`
	DesiredRole     string                `json:"desired_role" validate:"required"`
	DurationWeeks   int                   `json:"duration_weeks" validate:"gte=0"`
	TopAlternatives int                   `json:"top_alternatives" validate:"gte=0"`
}

// AlternativesRequest represents the request body for /alternatives
type AlternativesRequest struct {
	Profile    *types.StudentProfile `json:"student_profile" validate:"required"`
	FailedRole string                `json:"failed_role" validate:"required"`
	TopN       int                   `json:"top_n" validate:"gte=0"`
}

// handleAssess runs a full assessment and returns the result
func (s *Server) handleAssess(w http.ResponseWriter, r *http.Request) {
	var req AssessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := validateRequest(&req); err != nil {
		s.handleError(w, err)
		return
	}

	result, err := pipeline.Run(r.Context(), pipeline.RunOptions{
		Profile:         req.Profile,
		DesiredRole:     req.DesiredRole,
		DurationWeeks:   req.DurationWeeks,
		TopAlternatives: req.TopAlternatives,
		APIKey:          s.apiKey,
		DatabaseURL:     s.databaseURL,
	})
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleAssessStream runs an assessment and streams stage progress via SSE
func (s *Server) handleAssessStream(w http.ResponseWriter, r *http.Request) {
	var req AssessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := validateRequest(&req); err != nil {
		s.handleError(w, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	result, err := pipeline.Run(r.Context(), pipeline.RunOptions{
		Profile:         req.Profile,
		DesiredRole:     req.DesiredRole,
		DurationWeeks:   req.DurationWeeks,
		TopAlternatives: req.TopAlternatives,
		APIKey:          s.apiKey,
		DatabaseURL:     s.databaseURL,
		OnProgress: func(event pipeline.ProgressEvent) {
			if err := sse.WriteEvent("progress", event); err != nil {
				log.Printf("Error writing SSE event: %v", err)
			}
		},
	})
	if err != nil {
		sse.WriteError(err.Error())
		return
	}

	if err := sse.WriteEvent("result", result); err != nil {
		log.Printf("Error writing SSE result: %v", err)
	}
	sse.WriteComplete(result.AssessmentID, result.Status)
}

// handleAlternatives ranks alternative roles without a full assessment
func (s *Server) handleAlternatives(w http.ResponseWriter, r *http.Request) {
	var req AlternativesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := validateRequest(&req); err != nil {
		s.handleError(w, err)
		return
	}
	if req.TopN == 0 {
		req.TopN = 3
	}

	// Analysis of the failed role enriches justifications but is not
	// required; the failed role may be absent from the catalog.
	analysis, err := s.catalog.Analyze(req.FailedRole, req.Profile.AllSkills())
	if err != nil {
		analysis = nil
	}

	ranker := reroute.NewRanker(nil, s.catalog, nil)
	recs, err := ranker.FindAlternatives(r.Context(), req.Profile, req.FailedRole, analysis, req.TopN)
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, recs)
}

// handleListRoles returns the catalog role names
func (s *Server) handleListRoles(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"roles": s.catalog.RoleNames(),
	})
}

// handleTrendingRoles returns the fastest growing catalog roles
func (s *Server) handleTrendingRoles(w http.ResponseWriter, r *http.Request) {
	topN := 3
	if v := r.URL.Query().Get("top"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			s.errorResponse(w, http.StatusBadRequest, "Invalid top parameter")
			return
		}
		topN = n
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"trending": s.catalog.TrendingRoles(topN),
	})
}

// handleRoleAnalysis returns the market analysis for one role. Student
// skills may be passed as repeated "skill" query parameters to compute
// the skill gap.
func (s *Server) handleRoleAnalysis(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" {
		s.errorResponse(w, http.StatusBadRequest, "Role name is required")
		return
	}

	skills := r.URL.Query()["skill"]
	analysis, err := s.catalog.Analyze(name, skills)
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, analysis)
}
