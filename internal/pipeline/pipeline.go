// internal/pipeline/pipeline.go
package pipeline

import (
	"time"

	"fleet-insights-go/internal/actionable"
	"fleet-insights-go/internal/analysis"
	"fleet-insights-go/internal/logger"
	"fleet-insights-go/internal/stats"
	"fleet-insights-go/internal/types"
)

// Observer receives the duration of each analysis. *metrics.Collector
// satisfies it.
type Observer interface {
	ObserveAnalysis(name string, d time.Duration)
}

type Options struct {
	DropThreshold        float64
	ConsistencyThreshold float64
}

// DefaultOptions returns the thresholds the dashboard uses.
func DefaultOptions() Options {
	return Options{
		DropThreshold:        analysis.DefaultDropThreshold,
		ConsistencyThreshold: analysis.DefaultConsistencyThreshold,
	}
}

// Report holds every dashboard view computed from one record collection.
type Report struct {
	Stats          types.FleetStats            `json:"stats"`
	VehicleRanking []types.VehicleRank         `json:"vehicle_ranking"`
	ModelRanking   []types.ModelStat           `json:"model_ranking"`
	GroupStats     []types.GroupStat           `json:"group_stats"`
	MonthlyTrend   []types.MonthStat           `json:"monthly_trend"`
	LoadEfficiency []types.LoadEfficiencyEntry `json:"load_efficiency"`
	Anomalies      []types.AnomalyEntry        `json:"anomalies"`
	Trends         []types.TrendEntry          `json:"trends"`
	Benchmark      []types.ModelBenchmarkEntry `json:"benchmark"`
	Attention      []types.AttentionEntry      `json:"attention"`
	Consistency    []types.ConsistencyEntry    `json:"consistency"`
	Heatmap        types.Heatmap               `json:"heatmap"`
}

// Sections lists the report parts addressable by name.
var Sections = []string{
	"stats", "vehicles", "models", "groups", "months",
	"efficiency", "anomalies", "trends", "benchmark", "attention",
	"consistency", "heatmap",
}

// Section returns the named part of the report.
func (r Report) Section(name string) (any, bool) {
	switch name {
	case "stats":
		return r.Stats, true
	case "vehicles":
		return r.VehicleRanking, true
	case "models":
		return r.ModelRanking, true
	case "groups":
		return r.GroupStats, true
	case "months":
		return r.MonthlyTrend, true
	case "efficiency":
		return r.LoadEfficiency, true
	case "anomalies":
		return r.Anomalies, true
	case "trends":
		return r.Trends, true
	case "benchmark":
		return r.Benchmark, true
	case "attention":
		return r.Attention, true
	case "consistency":
		return r.Consistency, true
	case "heatmap":
		return r.Heatmap, true
	}
	return nil, false
}

// Runner times every analysis it runs and reports it to an Observer.
type Runner struct {
	opts Options
	obs  Observer
	log  *logger.Logger
}

// New returns a Runner. obs and log may be nil.
func New(opts Options, obs Observer, log *logger.Logger) *Runner {
	if log == nil {
		log = logger.New()
	}
	return &Runner{opts: opts, obs: obs, log: log.Component("pipeline")}
}

// Options returns the runner's thresholds.
func (r *Runner) Options() Options { return r.opts }

func timed[T any](r *Runner, name string, fn func() T) T {
	start := time.Now()
	out := fn()
	if r.obs != nil {
		r.obs.ObserveAnalysis(name, time.Since(start))
	}
	return out
}

// Run computes the whole report. The attention report is composed from the
// efficiency, anomaly and trend views computed in the same run.
func (r *Runner) Run(records []types.Record) Report {
	start := time.Now()
	rep := Report{
		Stats:          r.Fleet(records),
		VehicleRanking: r.Vehicles(records),
		ModelRanking:   r.Models(records),
		GroupStats:     r.Groups(records),
		MonthlyTrend:   r.Months(records),
		LoadEfficiency: r.Efficiency(records),
		Anomalies:      r.Anomalies(records, r.opts.DropThreshold),
		Trends:         r.Trends(records),
		Benchmark:      r.Benchmark(records),
		Consistency:    r.Consistency(records, r.opts.ConsistencyThreshold),
		Heatmap:        r.Heatmap(records),
	}
	rep.Attention = timed(r, "attention", func() []types.AttentionEntry {
		return actionable.Generate(records, rep.LoadEfficiency, rep.Anomalies, rep.Trends)
	})
	r.log.WithFields(map[string]interface{}{
		"records":     len(records),
		"vehicles":    rep.Stats.TotalVehicles,
		"attention":   len(rep.Attention),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("report computed")
	return rep
}

func (r *Runner) Fleet(records []types.Record) types.FleetStats {
	return timed(r, "stats", func() types.FleetStats { return stats.Fleet(records) })
}

func (r *Runner) Vehicles(records []types.Record) []types.VehicleRank {
	return timed(r, "vehicles", func() []types.VehicleRank { return stats.Vehicles(records) })
}

func (r *Runner) Models(records []types.Record) []types.ModelStat {
	return timed(r, "models", func() []types.ModelStat { return stats.Models(records) })
}

func (r *Runner) Groups(records []types.Record) []types.GroupStat {
	return timed(r, "groups", func() []types.GroupStat { return stats.Groups(records) })
}

func (r *Runner) Months(records []types.Record) []types.MonthStat {
	return timed(r, "months", func() []types.MonthStat { return stats.Months(records) })
}

func (r *Runner) Efficiency(records []types.Record) []types.LoadEfficiencyEntry {
	return timed(r, "efficiency", func() []types.LoadEfficiencyEntry { return analysis.LoadEfficiency(records) })
}

func (r *Runner) Anomalies(records []types.Record, threshold float64) []types.AnomalyEntry {
	return timed(r, "anomalies", func() []types.AnomalyEntry { return analysis.DetectAnomalies(records, threshold) })
}

func (r *Runner) Trends(records []types.Record) []types.TrendEntry {
	return timed(r, "trends", func() []types.TrendEntry { return analysis.Trends(records) })
}

func (r *Runner) Benchmark(records []types.Record) []types.ModelBenchmarkEntry {
	return timed(r, "benchmark", func() []types.ModelBenchmarkEntry { return analysis.ModelBenchmark(records) })
}

// Attention runs the three upstream analyses and composes their output.
func (r *Runner) Attention(records []types.Record) []types.AttentionEntry {
	eff := r.Efficiency(records)
	anomalies := r.Anomalies(records, r.opts.DropThreshold)
	trends := r.Trends(records)
	return timed(r, "attention", func() []types.AttentionEntry {
		return actionable.Generate(records, eff, anomalies, trends)
	})
}

func (r *Runner) Consistency(records []types.Record, threshold float64) []types.ConsistencyEntry {
	return timed(r, "consistency", func() []types.ConsistencyEntry { return analysis.Consistency(records, threshold) })
}

func (r *Runner) Heatmap(records []types.Record) types.Heatmap {
	return timed(r, "heatmap", func() types.Heatmap { return analysis.BuildHeatmap(records) })
}

func (r *Runner) Compare(records []types.Record, vehicles []string) []types.ComparisonPoint {
	return timed(r, "compare", func() []types.ComparisonPoint { return analysis.Compare(records, vehicles) })
}
