package analysis

import (
	"fleet-insights-go/internal/aggregator"
	"fleet-insights-go/internal/period"
	"fleet-insights-go/internal/types"
)

const (
	heatmapGood = 1.05
	heatmapBad  = 0.95
)

// BuildHeatmap lays out each vehicle's loaded average per month against the
// fleet mean. Months a vehicle has no record for are 0 and rated medium.
func BuildHeatmap(records []types.Record) types.Heatmap {
	months := period.Months(records)
	if months == nil {
		months = []string{}
	}
	overall := aggregator.MeanLoaded(records)
	good := overall * heatmapGood
	bad := overall * heatmapBad

	groups := aggregator.GroupBy(records, aggregator.Vehicle)
	rows := make([]types.HeatmapRow, 0, len(groups))
	for _, g := range groups {
		byMonth := map[string]float64{}
		for _, r := range g.Records {
			// Repeated months fold pairwise: each new value is averaged with the running one.
			if prev := byMonth[r.Month]; prev != 0 {
				byMonth[r.Month] = (prev + r.AverageLoadedNum) / 2
			} else {
				byMonth[r.Month] = r.AverageLoadedNum
			}
		}
		cells := make([]types.HeatmapCell, 0, len(months))
		for _, m := range months {
			v := byMonth[m]
			perf := types.PerformanceMedium
			if v >= good {
				perf = types.PerformanceGood
			} else if v > 0 && v <= bad {
				perf = types.PerformanceBad
			}
			cells = append(cells, types.HeatmapCell{Month: m, Value: v, Performance: perf})
		}
		rows = append(rows, types.HeatmapRow{Vehicle: g.Key, Months: cells})
	}
	return types.Heatmap{Rows: rows, Months: months}
}
