package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hamed0406/iptest/internal/domain"
	apimw "github.com/hamed0406/iptest/internal/httpapi/middleware"
	"github.com/hamed0406/iptest/internal/probe"
	"github.com/hamed0406/iptest/internal/target"
)

// ProbeRunner is what the endpoint needs from the probe engine; tests inject
// a fake so handlers run without network access.
type ProbeRunner interface {
	Run(ctx context.Context, tg target.Target, attempts int, perAttempt time.Duration) []domain.Attempt
}

type Server struct {
	Logger         *zap.Logger
	Engine         ProbeRunner
	Attempts       int
	PerAttempt     time.Duration
	ResolveTimeout time.Duration
}

func NewServer(l *zap.Logger, e ProbeRunner, attempts int, perAttempt, resolveTimeout time.Duration) *Server {
	if attempts < 1 {
		attempts = 1
	}
	return &Server{
		Logger:         l,
		Engine:         e,
		Attempts:       attempts,
		PerAttempt:     perAttempt,
		ResolveTimeout: resolveTimeout,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)
	r.Use(apimw.RequestLogger(s.Logger))

	r.Get("/health", s.handleHealth)
	r.Post("/lookup", s.handleLookup)

	return r
}

type lookupPayload struct {
	Target            string `json:"target"`
	ClientSentEpochMS int64  `json:"client_sent_epoch_ms,omitempty"`
}

type lookupResponse struct {
	RequestID string `json:"request_id"`
	domain.Report
	Timing domain.Timing `json:"timing"`
}

type healthResponse struct {
	Status string        `json:"status"`
	Timing domain.Timing `json:"timing"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status: "ok",
		Timing: domain.BuildTiming(0, time.Now()),
	})
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	received := time.Now()
	var p lookupPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "bad payload", http.StatusBadRequest)
		return
	}

	resp := lookupResponse{
		RequestID: uuid.NewString(),
		Timing:    domain.BuildTiming(p.ClientSentEpochMS, received),
	}

	tg, err := target.Parse(p.Target)
	if err != nil {
		// A validation result is not a server error; the probe engine is
		// never invoked for it.
		resp.Report = domain.InvalidTarget(p.Target)
		s.Logger.Info("lookup",
			zap.String("request_id", resp.RequestID),
			zap.String("target", p.Target),
			zap.String("status", string(resp.Status)),
		)
		writeJSON(w, http.StatusOK, resp)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), probe.Budget(s.Attempts, s.PerAttempt, s.ResolveTimeout))
	defer cancel()

	attempts := s.Engine.Run(ctx, tg, s.Attempts, s.PerAttempt)
	resp.Report = domain.Aggregate(tg.Host, s.Attempts, attempts)

	s.Logger.Info("lookup",
		zap.String("request_id", resp.RequestID),
		zap.String("target", tg.Host),
		zap.String("status", string(resp.Status)),
		zap.Int("success_count", resp.SuccessCount),
		zap.Int64("duration_ms", time.Since(received).Milliseconds()),
	)
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
