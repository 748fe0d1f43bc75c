package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"fleet-insights-go/internal/analysis"
	"fleet-insights-go/internal/logger"
	"fleet-insights-go/internal/metrics"
	"fleet-insights-go/internal/pipeline"
	"fleet-insights-go/internal/types"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Source produces a fresh record collection for POST /api/v1/reload.
type Source func(ctx context.Context) ([]types.Record, error)

type Options struct {
	Runner  *pipeline.Runner
	Metrics *metrics.Collector
	Logger  *logger.Logger
	Reload  Source
}

// Server serves the dashboard views over the loaded record collection.
type Server struct {
	router  *mux.Router
	runner  *pipeline.Runner
	metrics *metrics.Collector
	log     *logger.Logger
	reload  Source
	now     func() time.Time

	mu      sync.RWMutex
	records []types.Record
}

// NewServer creates a server over records.
func NewServer(records []types.Record, opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = logger.New()
	}
	runner := opts.Runner
	if runner == nil {
		runner = pipeline.New(pipeline.DefaultOptions(), opts.Metrics, log)
	}
	s := &Server{
		router:  mux.NewRouter(),
		runner:  runner,
		metrics: opts.Metrics,
		log:     log.Component("api"),
		reload:  opts.Reload,
		now:     time.Now,
	}
	s.setRecords(records)
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/healthz", s.handleHealth).Methods("GET")
	if s.metrics != nil {
		s.router.Handle("/metrics", s.metrics.Handler()).Methods("GET")
	}

	v1 := s.router.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/stats", s.handleStats).Methods("GET")
	v1.HandleFunc("/vehicles", s.handleVehicles).Methods("GET")
	v1.HandleFunc("/rankings/{kind}", s.handleRanking).Methods("GET")
	v1.HandleFunc("/efficiency", s.handleEfficiency).Methods("GET")
	v1.HandleFunc("/anomalies", s.handleAnomalies).Methods("GET")
	v1.HandleFunc("/trends", s.handleTrends).Methods("GET")
	v1.HandleFunc("/benchmark", s.handleBenchmark).Methods("GET")
	v1.HandleFunc("/attention", s.handleAttention).Methods("GET")
	v1.HandleFunc("/attention.pdf", s.handleAttentionPDF).Methods("GET")
	v1.HandleFunc("/consistency", s.handleConsistency).Methods("GET")
	v1.HandleFunc("/heatmap", s.handleHeatmap).Methods("GET")
	v1.HandleFunc("/compare", s.handleCompare).Methods("GET")
	v1.HandleFunc("/report", s.handleReport).Methods("GET")
	v1.HandleFunc("/export.xlsx", s.handleExport).Methods("GET")
	v1.HandleFunc("/reload", s.handleReload).Methods("POST")

	s.router.Use(s.requestIDMiddleware)
	s.router.Use(s.loggingMiddleware)
}

// Router returns the configured router
func (s *Server) Router() *mux.Router {
	return s.router
}

// Records returns the collection currently served.
func (s *Server) Records() []types.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records
}

func (s *Server) setRecords(records []types.Record) {
	if records == nil {
		records = []types.Record{}
	}
	s.mu.Lock()
	s.records = records
	s.mu.Unlock()
	s.metrics.SetDataset(len(records), len(analysis.UniqueVehicles(records)))
}

// Middleware

func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
			r.Header.Set("X-Request-ID", id)
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		s.metrics.ObserveRequest(route, rec.status)

		entry := s.log.WithRequest(r).WithField("status", rec.status).
			WithField("duration_ms", time.Since(start).Milliseconds())
		if rec.status >= http.StatusInternalServerError {
			entry.Error("request failed")
		} else {
			entry.Info("request served")
		}
	})
}

// Response helpers
type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Meta    *meta       `json:"meta,omitempty"`
}

type meta struct {
	Total   int    `json:"total"`
	Start   string `json:"start,omitempty"`
	End     string `json:"end,omitempty"`
	Vehicle string `json:"vehicle,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiResponse{Success: true, Data: data})
}

func respondWithMeta(w http.ResponseWriter, data interface{}, m *meta) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(apiResponse{Success: true, Data: data, Meta: m})
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiResponse{Success: false, Error: message})
}
