package analysis

import (
	"sort"

	"fleet-insights-go/internal/aggregator"
	"fleet-insights-go/internal/period"
	"fleet-insights-go/internal/types"
)

// UniqueVehicles lists every vehicle once, with the attributes of its first
// record, ordered by id.
func UniqueVehicles(records []types.Record) []types.VehicleInfo {
	groups := aggregator.GroupBy(records, aggregator.Vehicle)
	out := make([]types.VehicleInfo, 0, len(groups))
	for _, g := range groups {
		out = append(out, g.Records[0].Info())
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Vehicle < out[j].Vehicle })
	return out
}

// Compare builds a month-by-month series of loaded averages for the selected
// vehicles. A vehicle without a record in a month reads 0; when several
// records match, the first one wins.
func Compare(records []types.Record, vehicles []string) []types.ComparisonPoint {
	out := []types.ComparisonPoint{}
	if len(vehicles) == 0 {
		return out
	}
	type key struct{ vehicle, month string }
	first := map[key]float64{}
	for _, r := range records {
		k := key{r.Vehicle, r.Month}
		if _, ok := first[k]; !ok {
			first[k] = r.AverageLoadedNum
		}
	}
	for _, m := range period.Months(records) {
		values := make(map[string]float64, len(vehicles))
		for _, v := range vehicles {
			values[v] = first[key{v, m}]
		}
		out = append(out, types.ComparisonPoint{Month: m, Values: values})
	}
	return out
}
