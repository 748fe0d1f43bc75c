// Package stats computes whole-fleet aggregates and rankings.
package stats

import (
	"sort"

	"fleet-insights-go/internal/aggregator"
	"fleet-insights-go/internal/period"
	"fleet-insights-go/internal/types"
)

// Fleet summarizes all records. Averages are taken over records, so a vehicle
// with more months weighs more. Best is the first record holding the highest
// loaded average and Worst the last record holding the lowest.
func Fleet(records []types.Record) types.FleetStats {
	if len(records) == 0 {
		return types.FleetStats{}
	}
	var st types.FleetStats
	var avgSum, loadedSum float64
	vehicles := map[string]struct{}{}
	best, worst := 0, 0
	for i, r := range records {
		vehicles[r.Vehicle] = struct{}{}
		st.TotalKm += r.TotalDistance
		st.TotalLoadedKm += r.LoadedDistance
		avgSum += r.AverageNum
		loadedSum += r.AverageLoadedNum
		if r.AverageLoadedNum > records[best].AverageLoadedNum {
			best = i
		}
		if r.AverageLoadedNum <= records[worst].AverageLoadedNum {
			worst = i
		}
	}
	n := float64(len(records))
	st.TotalVehicles = len(vehicles)
	st.AvgAverage = avgSum / n
	st.AvgLoadedAverage = loadedSum / n
	b, w := records[best], records[worst]
	st.Best, st.Worst = &b, &w
	return st
}

// Vehicles ranks vehicles by their mean loaded average, highest first.
func Vehicles(records []types.Record) []types.VehicleRank {
	totals := aggregator.ByVehicle(records)
	out := make([]types.VehicleRank, 0, len(totals))
	for _, t := range totals {
		out = append(out, types.VehicleRank{
			VehicleInfo:   t.VehicleInfo,
			LoadedAverage: t.LoadedAverage(),
			Months:        t.Count,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].LoadedAverage > out[j].LoadedAverage })
	return out
}

// Models ranks models by the mean loaded average of their records, highest first.
func Models(records []types.Record) []types.ModelStat {
	groups := aggregator.GroupBy(records, aggregator.Model)
	out := make([]types.ModelStat, 0, len(groups))
	for _, g := range groups {
		out = append(out, types.ModelStat{
			Model:         g.Key,
			Brand:         g.Records[0].Brand,
			LoadedAverage: aggregator.MeanLoaded(g.Records),
			Count:         len(g.Records),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].LoadedAverage > out[j].LoadedAverage })
	return out
}

// Groups reports loaded distance and mean loaded average per fleet segment,
// in first-seen order.
func Groups(records []types.Record) []types.GroupStat {
	groups := aggregator.GroupBy(records, aggregator.FleetGroup)
	out := make([]types.GroupStat, 0, len(groups))
	for _, g := range groups {
		var km float64
		for _, r := range g.Records {
			km += r.LoadedDistance
		}
		out = append(out, types.GroupStat{
			Group:         g.Key,
			KmLoaded:      km,
			LoadedAverage: aggregator.MeanLoaded(g.Records),
		})
	}
	return out
}

// Months reports loaded distance and mean loaded average per month, in
// chronological order.
func Months(records []types.Record) []types.MonthStat {
	groups := aggregator.GroupBy(records, aggregator.Month)
	out := make([]types.MonthStat, 0, len(groups))
	for _, g := range groups {
		var km float64
		for _, r := range g.Records {
			km += r.LoadedDistance
		}
		out = append(out, types.MonthStat{
			Month:         g.Key,
			LoadedAverage: aggregator.MeanLoaded(g.Records),
			KmLoaded:      km,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return period.Compare(out[i].Month, out[j].Month) < 0 })
	return out
}
