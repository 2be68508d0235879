// Package server exposes the harmonic summation engines over a small HTTP
// API with Prometheus instrumentation and standard security hardening.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/agbru/harmcalc/internal/harmonic"
	"github.com/agbru/harmcalc/internal/logging"
	"github.com/agbru/harmcalc/internal/orchestration"
)

const (
	// DefaultRequestTimeout bounds the summation work done for one request.
	DefaultRequestTimeout = 30 * time.Second
	// shutdownTimeout bounds graceful shutdown on context cancellation.
	shutdownTimeout = 5 * time.Second
)

// Server serves the summation API.
type Server struct {
	addr           string
	factory        harmonic.EngineFactory
	logger         logging.Logger
	metrics        *Metrics
	security       SecurityConfig
	requestTimeout time.Duration
	httpServer     *http.Server
}

// NewServer creates a server listening on addr, running engines from factory.
func NewServer(addr string, factory harmonic.EngineFactory, logger logging.Logger) *Server {
	s := &Server{
		addr:           addr,
		factory:        factory,
		logger:         logger,
		metrics:        NewMetrics(),
		security:       DefaultSecurityConfig(),
		requestTimeout: DefaultRequestTimeout,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/sum", SecurityMiddleware(s.security, s.metricsMiddleware(s.handleSum)))
	mux.HandleFunc("/healthz", SecurityMiddleware(s.security, s.metricsMiddleware(s.handleHealth)))
	mux.HandleFunc("/metrics", SecurityMiddleware(s.security, s.handleMetrics))

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

// Run starts the server and blocks until ctx is canceled or the listener
// fails. Cancellation triggers a graceful shutdown.
func (s *Server) Run(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", logging.String("addr", s.addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		s.logger.Info("server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	}
}

// statusRecorder captures the response status code for metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware tracks active requests and counts completed ones.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		s.metrics.RecordRequest(r.URL.Path, rec.status)
	}
}

// engineResult is the JSON shape of one engine's directed sums.
type engineResult struct {
	Engine         string  `json:"engine"`
	Bits           int     `json:"bits"`
	Forward        float64 `json:"forward"`
	Backward       float64 `json:"backward"`
	Difference     float64 `json:"difference"`
	ForwardText    string  `json:"forward_text"`
	BackwardText   string  `json:"backward_text"`
	DifferenceText string  `json:"difference_text"`
	DurationMs     float64 `json:"duration_ms"`
}

// sumResponse is the JSON shape of a successful /api/v1/sum response.
type sumResponse struct {
	Terms     uint64         `json:"terms"`
	Reference float64        `json:"reference"`
	Results   []engineResult `json:"results"`
}

// errorResponse is the JSON shape of an error response.
type errorResponse struct {
	Error string `json:"error"`
}

// handleSum runs the requested engines and returns both directed sums.
//
// Query parameters:
//   - terms: number of series terms (default 100)
//   - algo: engine key or "all" (default "all")
func (s *Server) handleSum(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r)
		return
	}

	terms := uint64(harmonic.DefaultTerms)
	if raw := r.URL.Query().Get("terms"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid terms value %q", raw))
			return
		}
		terms = parsed
	}
	if terms < harmonic.MinTerms || terms > s.security.MaxTermsValue {
		s.writeError(w, http.StatusBadRequest,
			fmt.Sprintf("terms must be between %d and %d", harmonic.MinTerms, s.security.MaxTermsValue))
		return
	}

	algo := r.URL.Query().Get("algo")
	if algo == "" {
		algo = "all"
	}
	engines := orchestration.GetEnginesToRun(algo, s.factory)
	if len(engines) == 0 {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown engine %q", algo))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	start := time.Now()
	results := orchestration.ExecuteSummations(ctx, engines, terms, orchestration.NullProgressReporter{}, io.Discard)

	resp := sumResponse{
		Terms:     terms,
		Reference: orchestration.ReferenceValue(terms),
	}
	for _, res := range results {
		if res.Err != nil {
			s.logger.Error("summation failed", res.Err,
				logging.String("engine", res.Name), logging.Uint64("terms", terms))
			if errors.Is(res.Err, context.DeadlineExceeded) {
				s.writeError(w, http.StatusGatewayTimeout, "summation timed out")
			} else {
				s.writeError(w, http.StatusInternalServerError, "summation failed")
			}
			return
		}
		s.metrics.ObserveSummationDuration(res.Name, res.Duration.Seconds())
		resp.Results = append(resp.Results, engineResult{
			Engine:         res.Name,
			Bits:           res.Report.Bits,
			Forward:        res.Report.Forward,
			Backward:       res.Report.Backward,
			Difference:     res.Report.Difference,
			ForwardText:    res.Report.FormatForward(),
			BackwardText:   res.Report.FormatBackward(),
			DifferenceText: res.Report.FormatDifference(),
			DurationMs:     float64(res.Duration.Microseconds()) / 1000.0,
		})
	}

	s.logger.Info("summation served",
		logging.Uint64("terms", terms),
		logging.String("algo", algo),
		logging.Int("engines", len(engines)),
		logging.String("elapsed", time.Since(start).String()))
	s.writeJSON(w, http.StatusOK, resp)
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleMetrics serves Prometheus metrics.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r)
		return
	}
	s.metrics.WritePrometheus(w, r)
}

func (s *Server) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	s.logger.Debug("method not allowed",
		logging.String("method", r.Method), logging.String("path", r.URL.Path))
	w.Header().Set("Allow", http.MethodGet)
	s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}
