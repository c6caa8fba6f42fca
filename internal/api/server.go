// Package api serves the dashboard session over HTTP as JSON for a
// presentation layer.
package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/monsTa-b0y/exp-dashboard/internal/config"
	"github.com/monsTa-b0y/exp-dashboard/internal/session"
)

// Server is a ready-to-run http.Server bound to one session.
type Server struct {
	http.Server
	session       *session.Session
	dateLayout    string
	maxUploadSize int64
	log           zerolog.Logger
}

// NewServer configures routes, returning a ready-to-run server.
func NewServer(cfg *config.Config, sess *session.Session, log zerolog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		session:       sess,
		dateLayout:    cfg.DateLayout,
		maxUploadSize: cfg.Server.MaxUploadSize,
		log:           log.With().Str("component", "api").Logger(),
	}

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/categories", s.withRequestLog(s.handleCategories))
	mux.HandleFunc("/ledger", s.withRequestLog(s.handleUpload))
	mux.HandleFunc("/ledger/filters", s.withRequestLog(s.handleFilters))
	mux.HandleFunc("/ledger/corrections", s.withRequestLog(s.handleCorrections))
	mux.HandleFunc("/dashboard", s.withRequestLog(s.handleDashboard))

	return s
}

// withRequestLog tags the request with an id, stores a request-scoped logger
// in the context for zerolog.Ctx and logs completion.
func (s *Server) withRequestLog(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()

		log := s.log.With().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Logger()
		r = r.WithContext(log.WithContext(r.Context()))

		w.Header().Set("X-Request-ID", requestID)
		w.Header().Set("X-Content-Type-Options", "nosniff")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		log.Info().
			Int("status", rw.statusCode).
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("request completed")
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
