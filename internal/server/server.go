// Package server provides the HTTP REST API for the career advisor.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/career-advisor/internal/config"
	"github.com/jonathan/career-advisor/internal/db"
	"github.com/jonathan/career-advisor/internal/market"
	"github.com/jonathan/career-advisor/internal/progress"
	"github.com/jonathan/career-advisor/internal/reroute"
	"github.com/jonathan/career-advisor/internal/server/middleware"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	catalog     *market.Catalog
	engine      *progress.Engine
	apiKey      string
	databaseURL string
	jwtService  *JWTService // nil when JWT_SECRET is unset; session routes are then open
}

// Config holds server configuration
type Config struct {
	Addr        string
	DatabaseURL string
	APIKey      string
}

// New creates a new server instance. Journey state lives in Postgres
// when a database URL is configured and in memory otherwise.
func New(cfg Config) (*Server, error) {
	s := &Server{
		catalog:     market.Default(),
		apiKey:      cfg.APIKey,
		databaseURL: cfg.DatabaseURL,
	}

	var store progress.Store
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.EnsureSchema(context.Background()); err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to ensure database schema: %w", err)
		}
		s.db = database
		store = db.NewSessionStore(database)
	}
	s.engine = progress.NewEngine(store, s.catalog, reroute.NewRanker(nil, s.catalog, nil))

	if os.Getenv("JWT_SECRET") != "" {
		jwtConfig, err := config.NewJWTConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to create JWT config: %w", err)
		}
		s.jwtService = NewJWTService(jwtConfig)
	}

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.withLogging(s.withCORS(s.routes())),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // Long timeout for assessments with LLM prose
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the request mux. Session routes require a bearer token
// when JWT auth is configured.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /assess", s.handleAssess)
	mux.HandleFunc("POST /assess/stream", s.handleAssessStream)
	mux.HandleFunc("POST /alternatives", s.handleAlternatives)

	mux.HandleFunc("GET /roles", s.handleListRoles)
	mux.HandleFunc("GET /roles/trending", s.handleTrendingRoles)
	mux.HandleFunc("GET /roles/{name}", s.handleRoleAnalysis)

	sessions := http.NewServeMux()
	sessions.HandleFunc("POST /sessions", s.handleCreateSession)
	sessions.HandleFunc("GET /sessions/{id}", s.handleSessionSummary)
	sessions.HandleFunc("GET /sessions/{id}/next-step", s.handleNextStep)
	sessions.HandleFunc("POST /sessions/{id}/completions", s.handleRecordCompletion)
	sessions.HandleFunc("POST /sessions/{id}/blockers", s.handleRecordBlocker)
	sessions.HandleFunc("POST /sessions/{id}/reevaluate", s.handleReevaluate)

	var sessionHandler http.Handler = sessions
	if s.jwtService != nil {
		sessionHandler = middleware.AuthMiddleware(s.jwtService.AsTokenValidator())(sessions)
	}
	mux.Handle("/sessions", sessionHandler)
	mux.Handle("/sessions/", sessionHandler)

	mux.HandleFunc("GET /health", s.handleHealth)

	return mux
}

// Start begins listening for requests
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.db != nil {
		s.db.Close()
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
