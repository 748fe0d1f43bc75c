package analysis

import (
	"sort"

	"fleet-insights-go/internal/aggregator"
	"fleet-insights-go/internal/period"
	"fleet-insights-go/internal/types"
)

const (
	trendWindow    = 3
	trendThreshold = 3.0
)

// Trends classifies each vehicle's latest loaded average against the mean of
// the (up to) three months before it. Results are ordered by descending
// variation, most improving first.
func Trends(records []types.Record) []types.TrendEntry {
	groups := aggregator.GroupBy(records, aggregator.Vehicle)
	out := make([]types.TrendEntry, 0, len(groups))
	for _, g := range groups {
		out = append(out, classify(period.Sorted(g.Records)))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Variation > out[j].Variation })
	return out
}

func classify(sorted []types.Record) types.TrendEntry {
	if len(sorted) < 2 {
		only := sorted[0]
		return types.TrendEntry{
			VehicleInfo:     only.Info(),
			CurrentAverage:  only.AverageLoadedNum,
			TrailingAverage: only.AverageLoadedNum,
			Trend:           types.TrendStable,
		}
	}
	n := len(sorted)
	latest := sorted[n-1]
	first := n - 1 - trendWindow
	if first < 0 {
		first = 0
	}
	window := sorted[first : n-1]
	trailing := latest.AverageLoadedNum
	if len(window) > 0 {
		trailing = aggregator.MeanLoaded(window)
	}
	variation := percentChange(latest.AverageLoadedNum, trailing)

	trend := types.TrendStable
	switch {
	case variation > trendThreshold:
		trend = types.TrendUp
	case variation < -trendThreshold:
		trend = types.TrendDown
	}
	return types.TrendEntry{
		VehicleInfo:     latest.Info(),
		CurrentAverage:  latest.AverageLoadedNum,
		TrailingAverage: trailing,
		Trend:           trend,
		Variation:       variation,
	}
}
