// internal/types/analytics_models.go
package types

// --------------------------------------------
// Load efficiency
// --------------------------------------------
type LoadEfficiencyEntry struct {
	VehicleInfo
	KmTotal    float64 `json:"km_total"`
	KmLoaded   float64 `json:"km_loaded"`
	KmEmpty    float64 `json:"km_empty"`
	Efficiency float64 `json:"efficiency"` // percentage of loaded km
}

// --------------------------------------------
// Anomalies
// --------------------------------------------
type AnomalyEntry struct {
	VehicleInfo
	Month             string  `json:"month"`
	CurrentValue      float64 `json:"current_value"`
	HistoricalAverage float64 `json:"historical_average"`
	Variation         float64 `json:"variation"` // percent
	IsAnomaly         bool    `json:"is_anomaly"`
}

// --------------------------------------------
// Trends
// --------------------------------------------
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

type TrendEntry struct {
	VehicleInfo
	CurrentAverage  float64 `json:"current_average"`
	TrailingAverage float64 `json:"trailing_average"` // mean of up to 3 preceding months
	Trend           Trend   `json:"trend"`
	Variation       float64 `json:"variation"`
}

// --------------------------------------------
// Model benchmark
// --------------------------------------------
type UnderperformingVehicle struct {
	Vehicle    string  `json:"vehicle"`
	Average    float64 `json:"average"`
	Difference float64 `json:"difference"` // vehicle mean - benchmark, always negative
}

type ModelBenchmarkEntry struct {
	Model        string                   `json:"model"`
	Brand        string                   `json:"brand"`
	Benchmark    float64                  `json:"benchmark"`
	Underperform []UnderperformingVehicle `json:"underperforming"`
}

// --------------------------------------------
// Attention report
// --------------------------------------------
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "media"
	PriorityLow    Priority = "low"
)

type AttentionEntry struct {
	VehicleInfo
	Problems []string `json:"problems"`
	Priority Priority `json:"priority"`
	Score    int      `json:"score"`
}

// --------------------------------------------
// Consistency
// --------------------------------------------
type ConsistencyEntry struct {
	VehicleInfo
	Mean                 float64   `json:"mean"`
	StdDev               float64   `json:"std_dev"`
	CoefficientVariation float64   `json:"coefficient_variation"`
	Values               []float64 `json:"values"`
	IsInconsistent       bool      `json:"is_inconsistent"`
}

// --------------------------------------------
// Heatmap
// --------------------------------------------
type Performance string

const (
	PerformanceGood   Performance = "good"
	PerformanceMedium Performance = "medium"
	PerformanceBad    Performance = "bad"
)

type HeatmapCell struct {
	Month       string      `json:"month"`
	Value       float64     `json:"value"`
	Performance Performance `json:"performance"`
}

type HeatmapRow struct {
	Vehicle string        `json:"vehicle"`
	Months  []HeatmapCell `json:"months"`
}

type Heatmap struct {
	Rows   []HeatmapRow `json:"rows"`
	Months []string     `json:"months"`
}

// --------------------------------------------
// Vehicle comparison
// --------------------------------------------
type ComparisonPoint struct {
	Month  string             `json:"month"`
	Values map[string]float64 `json:"values"`
}
