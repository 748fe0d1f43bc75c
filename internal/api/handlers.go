package api

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"fleet-insights-go/internal/analysis"
	"fleet-insights-go/internal/dataset"
	"fleet-insights-go/internal/period"
	"fleet-insights-go/internal/report"
	"fleet-insights-go/internal/types"

	"github.com/gorilla/mux"
)

// maxCompared bounds the vehicles of one comparison series.
const maxCompared = 5

type httpError struct {
	status int
	msg    string
}

func (e *httpError) Error() string { return e.msg }

func badRequest(format string, args ...interface{}) error {
	return &httpError{status: http.StatusBadRequest, msg: fmt.Sprintf(format, args...)}
}

func notFound(format string, args ...interface{}) error {
	return &httpError{status: http.StatusNotFound, msg: fmt.Sprintf(format, args...)}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	var he *httpError
	if errors.As(err, &he) {
		respondError(w, he.status, he.msg)
		return
	}
	s.log.WithRequest(r).WithError(err).Error("handler failed")
	respondError(w, http.StatusInternalServerError, err.Error())
}

// scope is the record selection of one request.
type scope struct {
	records []types.Record
	meta    meta
}

// scope applies the preset, start, end and (optionally) vehicle query filters.
// Explicit start/end take precedence over a preset.
func (s *Server) scope(r *http.Request, byVehicle bool) (scope, error) {
	all := s.Records()
	q := r.URL.Query()

	var start, end string
	if p := q.Get("preset"); p != "" {
		var err error
		if start, end, err = period.Preset(period.Months(all), p); err != nil {
			return scope{}, badRequest("%v", err)
		}
	}
	bounds := []struct {
		name string
		dst  *string
	}{{"start", &start}, {"end", &end}}
	for _, b := range bounds {
		v := q.Get(b.name)
		if v == "" {
			continue
		}
		if err := period.ValidateBound(b.name, v); err != nil {
			return scope{}, badRequest("%v", err)
		}
		*b.dst = v
	}

	records := period.Filter(all, start, end)
	vehicle := ""
	if byVehicle {
		vehicle = q.Get("vehicle")
		if vehicle != "" {
			if !hasVehicle(all, vehicle) {
				return scope{}, notFound("unknown vehicle %q", vehicle)
			}
			records = period.FilterVehicle(records, vehicle)
			if records == nil {
				records = []types.Record{}
			}
		}
	}
	return scope{
		records: records,
		meta:    meta{Total: len(records), Start: start, End: end, Vehicle: vehicle},
	}, nil
}

func hasVehicle(records []types.Record, vehicle string) bool {
	for _, r := range records {
		if r.Vehicle == vehicle {
			return true
		}
	}
	return false
}

func floatParam(r *http.Request, name string, def float64) (float64, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, badRequest("invalid %s %q", name, v)
	}
	return f, nil
}

// Handlers
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"records": len(s.Records()),
	})
}

// view serves a JSON view computed from the request scope.
func (s *Server) view(byVehicle bool, compute func(r *http.Request, records []types.Record) (interface{}, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, err := s.scope(r, byVehicle)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		data, err := compute(r, sc.records)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		respondWithMeta(w, data, &sc.meta)
	}
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.view(true, func(_ *http.Request, records []types.Record) (interface{}, error) {
		return s.runner.Fleet(records), nil
	})(w, r)
}

func (s *Server) handleVehicles(w http.ResponseWriter, r *http.Request) {
	s.view(false, func(_ *http.Request, records []types.Record) (interface{}, error) {
		return analysis.UniqueVehicles(records), nil
	})(w, r)
}

func (s *Server) handleRanking(w http.ResponseWriter, r *http.Request) {
	kind := mux.Vars(r)["kind"]
	s.view(true, func(_ *http.Request, records []types.Record) (interface{}, error) {
		switch kind {
		case "vehicles":
			return s.runner.Vehicles(records), nil
		case "models":
			return s.runner.Models(records), nil
		case "groups":
			return s.runner.Groups(records), nil
		case "months":
			return s.runner.Months(records), nil
		}
		return nil, notFound("unknown ranking %q", kind)
	})(w, r)
}

func (s *Server) handleEfficiency(w http.ResponseWriter, r *http.Request) {
	s.view(true, func(_ *http.Request, records []types.Record) (interface{}, error) {
		return s.runner.Efficiency(records), nil
	})(w, r)
}

func (s *Server) handleAnomalies(w http.ResponseWriter, r *http.Request) {
	s.view(true, func(r *http.Request, records []types.Record) (interface{}, error) {
		threshold, err := floatParam(r, "threshold", s.runner.Options().DropThreshold)
		if err != nil {
			return nil, err
		}
		if threshold > 0 {
			return nil, badRequest("threshold must be <= 0")
		}
		return s.runner.Anomalies(records, threshold), nil
	})(w, r)
}

func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	s.view(true, func(_ *http.Request, records []types.Record) (interface{}, error) {
		return s.runner.Trends(records), nil
	})(w, r)
}

func (s *Server) handleBenchmark(w http.ResponseWriter, r *http.Request) {
	s.view(true, func(_ *http.Request, records []types.Record) (interface{}, error) {
		return s.runner.Benchmark(records), nil
	})(w, r)
}

func (s *Server) handleAttention(w http.ResponseWriter, r *http.Request) {
	s.view(true, func(_ *http.Request, records []types.Record) (interface{}, error) {
		return s.runner.Attention(records), nil
	})(w, r)
}

func (s *Server) handleAttentionPDF(w http.ResponseWriter, r *http.Request) {
	sc, err := s.scope(r, true)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := report.WriteAttentionPDF(&buf, s.runner.Attention(sc.records), s.now()); err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="attention.pdf"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (s *Server) handleConsistency(w http.ResponseWriter, r *http.Request) {
	s.view(true, func(r *http.Request, records []types.Record) (interface{}, error) {
		threshold, err := floatParam(r, "threshold", s.runner.Options().ConsistencyThreshold)
		if err != nil {
			return nil, err
		}
		if threshold <= 0 {
			return nil, badRequest("threshold must be > 0")
		}
		return s.runner.Consistency(records, threshold), nil
	})(w, r)
}

func (s *Server) handleHeatmap(w http.ResponseWriter, r *http.Request) {
	s.view(true, func(_ *http.Request, records []types.Record) (interface{}, error) {
		return s.runner.Heatmap(records), nil
	})(w, r)
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	s.view(false, func(r *http.Request, records []types.Record) (interface{}, error) {
		vehicles := r.URL.Query()["vehicle"]
		if len(vehicles) == 0 {
			return nil, badRequest("at least one vehicle is required")
		}
		if len(vehicles) > maxCompared {
			return nil, badRequest("at most %d vehicles can be compared", maxCompared)
		}
		return s.runner.Compare(records, vehicles), nil
	})(w, r)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	s.view(true, func(_ *http.Request, records []types.Record) (interface{}, error) {
		return s.runner.Run(records), nil
	})(w, r)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sc, err := s.scope(r, true)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := dataset.ExportXLSX(&buf, sc.records); err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="fleet.xlsx"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if s.reload == nil {
		respondError(w, http.StatusNotImplemented, "no reload source configured")
		return
	}
	records, err := s.reload(r.Context())
	if err != nil {
		s.fail(w, r, fmt.Errorf("reload: %w", err))
		return
	}
	s.setRecords(records)
	s.log.WithRequest(r).WithField("records", len(records)).Info("dataset reloaded")
	respondJSON(w, http.StatusOK, map[string]int{"records": len(records)})
}
