package analysis

import (
	"sort"

	"fleet-insights-go/internal/aggregator"
	"fleet-insights-go/internal/types"
)

// LoadEfficiency reports, per vehicle, the share of distance driven loaded.
// The result is ordered by ascending efficiency so the worst vehicles come first.
func LoadEfficiency(records []types.Record) []types.LoadEfficiencyEntry {
	totals := aggregator.ByVehicle(records)
	out := make([]types.LoadEfficiencyEntry, 0, len(totals))
	for _, t := range totals {
		var eff float64
		if t.KmTotal > 0 {
			eff = t.KmLoaded / t.KmTotal * 100
		}
		out = append(out, types.LoadEfficiencyEntry{
			VehicleInfo: t.VehicleInfo,
			KmTotal:     t.KmTotal,
			KmLoaded:    t.KmLoaded,
			KmEmpty:     t.KmTotal - t.KmLoaded,
			Efficiency:  eff,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Efficiency < out[j].Efficiency })
	return out
}
