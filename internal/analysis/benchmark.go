package analysis

import (
	"sort"

	"fleet-insights-go/internal/aggregator"
	"fleet-insights-go/internal/types"
)

// benchmarkTolerance is how far below its model's mean a vehicle may sit
// before it is listed.
const benchmarkTolerance = 0.95

// ModelBenchmark lists, per model, the vehicles whose mean loaded average is
// more than 5% below the model's mean over all its records. Models without
// such vehicles are omitted. Models are ordered by descending number of
// underperformers, and each model's vehicles by ascending difference.
func ModelBenchmark(records []types.Record) []types.ModelBenchmarkEntry {
	// A vehicle belongs to the model of its first record.
	vehicles := aggregator.ByVehicle(records)

	out := []types.ModelBenchmarkEntry{}
	for _, g := range aggregator.GroupBy(records, aggregator.Model) {
		benchmark := aggregator.MeanLoaded(g.Records)
		below := []types.UnderperformingVehicle{}
		for _, v := range vehicles {
			if v.Model != g.Key {
				continue
			}
			mean := v.LoadedAverage()
			if mean < benchmark*benchmarkTolerance {
				below = append(below, types.UnderperformingVehicle{
					Vehicle:    v.Vehicle,
					Average:    mean,
					Difference: mean - benchmark,
				})
			}
		}
		if len(below) == 0 {
			continue
		}
		sort.SliceStable(below, func(i, j int) bool { return below[i].Difference < below[j].Difference })
		out = append(out, types.ModelBenchmarkEntry{
			Model:        g.Key,
			Brand:        g.Records[0].Brand,
			Benchmark:    benchmark,
			Underperform: below,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return len(out[i].Underperform) > len(out[j].Underperform) })
	return out
}
