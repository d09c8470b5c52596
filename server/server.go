package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/MrEthical07/passy"
	"github.com/MrEthical07/passy/middleware"
	"github.com/sirupsen/logrus"
)

const maxBodyBytes = 64 << 10

// Server implements the bridge endpoints.
type Server struct {
	engine   *passy.Engine
	logger   logrus.FieldLogger
	verifier middleware.TokenVerifier
	limiter  middleware.Allower
	metrics  http.Handler
}

// Option configures a Server.
type Option func(*Server)

func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Server) { s.logger = l }
}

// WithTokenVerifier guards the /v1 routes with bridge tokens.
func WithTokenVerifier(v middleware.TokenVerifier) Option {
	return func(s *Server) { s.verifier = v }
}

// WithLimiter rate-limits the /v1 routes per client.
func WithLimiter(l middleware.Allower) Option {
	return func(s *Server) { s.limiter = l }
}

// WithMetricsHandler mounts h on GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) { s.metrics = h }
}

func New(engine *passy.Engine, opts ...Option) *Server {
	s := &Server{
		engine: engine,
		logger: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register mounts routes on the given mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", s.health)
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics)
	}

	mux.Handle("POST /v1/password/generate", s.guard(http.HandlerFunc(s.generate)))
	mux.Handle("POST /v1/password/strength", s.guard(http.HandlerFunc(s.strength)))
	mux.Handle("POST /v1/password/preview", s.guard(http.HandlerFunc(s.preview)))
}

// Handler returns the full handler: routes wrapped with request ids and
// access logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.Register(mux)
	return middleware.RequestID(s.accessLog(mux))
}

func (s *Server) guard(h http.Handler) http.Handler {
	metrics := s.engine.Metrics()
	h = middleware.RateLimit(s.limiter, middleware.ClientKey, metrics, s.logger)(h)
	if s.verifier != nil {
		h = middleware.RequireBridgeToken(s.verifier, metrics)(h)
	}
	return h
}

// ---------- endpoints ----------

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

type generateResponse struct {
	Password string `json:"password"`
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request) {
	var opts passy.Options
	if !s.decode(w, r, &opts) {
		return
	}
	pw := s.engine.GeneratePassword(r.Context(), opts.Policy())
	writeJSON(w, http.StatusOK, generateResponse{Password: pw})
}

type strengthRequest struct {
	Password string   `json:"password"`
	Detail   bool     `json:"detail"`
	Hints    []string `json:"hints,omitempty"`
}

type strengthResponse struct {
	passy.StrengthReport
	Entropy float64       `json:"entropy,omitempty"`
	Advice  *passy.Advice `json:"advice,omitempty"`
}

func (s *Server) strength(w http.ResponseWriter, r *http.Request) {
	var req strengthRequest
	if !s.decode(w, r, &req) {
		return
	}

	resp := strengthResponse{
		StrengthReport: s.engine.EstimateStrength(r.Context(), req.Password),
	}
	if req.Detail {
		resp.Entropy = passy.Entropy(req.Password)
		advice := s.engine.Advise(r.Context(), req.Password, req.Hints...)
		resp.Advice = &advice
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) preview(w http.ResponseWriter, r *http.Request) {
	var opts passy.Options
	if !s.decode(w, r, &opts) {
		return
	}
	writeJSON(w, http.StatusOK, s.engine.EstimatePolicyStrength(r.Context(), opts.Policy()))
}

// ---------- helpers ----------

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeErr(w, http.StatusRequestEntityTooLarge, "request body too large")
		case errors.Is(err, io.EOF):
			writeErr(w, http.StatusBadRequest, "empty request body")
		default:
			writeErr(w, http.StatusBadRequest, "invalid JSON body")
		}
		return false
	}
	return true
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// accessLog logs method, path, status and latency. Bodies are never logged.
func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		entry := s.logger.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     rec.status,
			"duration":   time.Since(start),
			"request_id": passy.RequestIDFromContext(r.Context()),
		})
		if rec.status >= http.StatusInternalServerError {
			entry.Warn("request failed")
			return
		}
		entry.Debug("request served")
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
