package analysis

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"fleet-insights-go/internal/aggregator"
	"fleet-insights-go/internal/types"
)

// DefaultConsistencyThreshold is the coefficient of variation, in percent,
// above which a vehicle's monthly loaded averages are considered erratic.
const DefaultConsistencyThreshold = 15.0

// Consistency measures how much each vehicle's loaded average varies month to
// month, using the population standard deviation. Results are ordered by
// descending coefficient of variation.
func Consistency(records []types.Record, threshold float64) []types.ConsistencyEntry {
	groups := aggregator.GroupBy(records, aggregator.Vehicle)
	out := make([]types.ConsistencyEntry, 0, len(groups))
	for _, g := range groups {
		values := make([]float64, len(g.Records))
		for i, r := range g.Records {
			values[i] = r.AverageLoadedNum
		}
		mean, std := stat.PopMeanStdDev(values, nil)
		var cv float64
		if mean > 0 {
			cv = std / mean * 100
		}
		out = append(out, types.ConsistencyEntry{
			VehicleInfo:          g.Records[0].Info(),
			Mean:                 mean,
			StdDev:               std,
			CoefficientVariation: cv,
			Values:               values,
			IsInconsistent:       cv > threshold,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CoefficientVariation > out[j].CoefficientVariation
	})
	return out
}
