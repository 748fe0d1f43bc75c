package analysis

import (
	"sort"

	"fleet-insights-go/internal/aggregator"
	"fleet-insights-go/internal/period"
	"fleet-insights-go/internal/types"
)

// DefaultDropThreshold is the percent variation below which the latest month
// counts as an anomaly.
const DefaultDropThreshold = -10.0

// DetectAnomalies compares each vehicle's latest loaded average with the mean
// of its earlier months and returns the vehicles whose variation falls below
// dropThreshold, most severe drop first. Vehicles with a single record are
// never reported.
func DetectAnomalies(records []types.Record, dropThreshold float64) []types.AnomalyEntry {
	out := []types.AnomalyEntry{}
	for _, g := range aggregator.GroupBy(records, aggregator.Vehicle) {
		if len(g.Records) < 2 {
			continue
		}
		sorted := period.Sorted(g.Records)
		latest := sorted[len(sorted)-1]
		historical := aggregator.MeanLoaded(sorted[:len(sorted)-1])
		variation := percentChange(latest.AverageLoadedNum, historical)
		if variation >= dropThreshold {
			continue
		}
		out = append(out, types.AnomalyEntry{
			VehicleInfo:       latest.Info(),
			Month:             latest.Month,
			CurrentValue:      latest.AverageLoadedNum,
			HistoricalAverage: historical,
			Variation:         variation,
			IsAnomaly:         true,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Variation < out[j].Variation })
	return out
}

// percentChange is (value-base)/base*100, or 0 unless base is positive.
func percentChange(value, base float64) float64 {
	if base <= 0 {
		return 0
	}
	return (value - base) / base * 100
}
