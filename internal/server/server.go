package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/yildizm/SentiView/internal/config"
	"github.com/yildizm/SentiView/internal/logger"
)

const (
	detailEmptyText      = "Text cannot be empty"
	detailInvalidBody    = "Invalid request body"
	detailMethod         = "Method Not Allowed"
	detailModelNotLoaded = "Model not loaded"

	shutdownTimeout = 5 * time.Second
	maxBodyBytes    = 1 << 20
)

// AnalyzeRequest is the body accepted by POST /analyze
type AnalyzeRequest struct {
	Text string `json:"text"`
}

// AnalyzeResponse is the body returned by a successful POST /analyze
type AnalyzeResponse struct {
	Text       string `json:"text"`
	Sentiment  string `json:"sentiment"`
	Percentage string `json:"percentage"`
}

// HealthResponse is the body returned by GET /health
type HealthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// Server is a local Analysis Service
type Server struct {
	addr   string
	scorer *Scorer
	log    *logger.Logger
}

// New creates a server from the server section of the configuration.
// A nil scorer is allowed and reports the model as not loaded.
func New(cfg *config.ServerConfig, scorer *Scorer, log *logger.Logger) *Server {
	if log == nil {
		log = logger.NewWithCallback("server", func() bool { return false })
	}
	return &Server{
		addr:   cfg.Addr,
		scorer: scorer,
		log:    log.WithComponent("server"),
	}
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.addr
}

// Handler returns the routes of the service
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/analyze", s.handleAnalyze)
	mux.HandleFunc("/health", s.handleHealth)
	return s.logRequests(mux)
}

// httpServer builds the listener config; net/http's own errors go to the logger at warn level
func (s *Server) httpServer() *http.Server {
	return &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(s.log.Slog().Handler(), slog.LevelWarn),
	}
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := s.httpServer()

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening on %s", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.log.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, detailMethod)
		return
	}

	var req AnalyzeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, detailInvalidBody)
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, detailEmptyText)
		return
	}

	if s.scorer == nil {
		writeError(w, http.StatusInternalServerError, detailModelNotLoaded)
		return
	}

	score := s.scorer.Score(req.Text)
	s.log.DebugWithFields("scored text", []logger.Field{
		logger.F("sentiment", score.Label),
		logger.F("compound", score.Compound),
	})

	writeJSON(w, http.StatusOK, AnalyzeResponse{
		Text:       req.Text,
		Sentiment:  score.Label,
		Percentage: score.Percentage(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, http.StatusMethodNotAllowed, detailMethod)
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy", ModelLoaded: s.scorer != nil})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		fields := []logger.Field{
			logger.F("method", r.Method),
			logger.F("path", r.URL.Path),
			logger.Status(rec.status),
			logger.Duration(time.Since(start)),
		}
		if rec.status >= http.StatusInternalServerError {
			s.log.WarnWithFields("request failed", fields)
			return
		}
		s.log.InfoWithFields("request", fields)
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}
