package aggregator

import "fleet-insights-go/internal/types"

// VehicleTotals accumulates the records of one vehicle. The categorical
// attributes come from the first record seen for the vehicle; later records
// with different brand/model/group are summed without any conflict check.
type VehicleTotals struct {
	types.VehicleInfo
	KmTotal          float64 `json:"km_total"`
	KmLoaded         float64 `json:"km_loaded"`
	AverageSum       float64 `json:"average_sum"`
	LoadedAverageSum float64 `json:"loaded_average_sum"`
	Count            int     `json:"count"`
}

// LoadedAverage is the plain mean of the vehicle's loaded averages.
func (v VehicleTotals) LoadedAverage() float64 {
	if v.Count == 0 {
		return 0
	}
	return v.LoadedAverageSum / float64(v.Count)
}

// ByVehicle folds records into one accumulator per vehicle, in first-seen order.
func ByVehicle(records []types.Record) []VehicleTotals {
	index := map[string]int{}
	var out []VehicleTotals
	for _, r := range records {
		i, ok := index[r.Vehicle]
		if !ok {
			i = len(out)
			index[r.Vehicle] = i
			out = append(out, VehicleTotals{VehicleInfo: r.Info()})
		}
		acc := out[i]
		acc.KmTotal += r.TotalDistance
		acc.KmLoaded += r.LoadedDistance
		acc.AverageSum += r.AverageNum
		acc.LoadedAverageSum += r.AverageLoadedNum
		acc.Count++
		out[i] = acc
	}
	return out
}

// Group is an ordered bucket of records sharing a key.
type Group struct {
	Key     string
	Records []types.Record
}

// GroupBy buckets records by key, keeping first-seen key order and input order
// within each bucket.
func GroupBy(records []types.Record, key func(types.Record) string) []Group {
	index := map[string]int{}
	var groups []Group
	for _, r := range records {
		k := key(r)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group{Key: k})
		}
		groups[i].Records = append(groups[i].Records, r)
	}
	return groups
}

// Vehicle keys records by vehicle id.
func Vehicle(r types.Record) string { return r.Vehicle }

// Model keys records by model.
func Model(r types.Record) string { return r.Model }

// FleetGroup keys records by fleet segment.
func FleetGroup(r types.Record) string { return r.Group }

// Month keys records by month token.
func Month(r types.Record) string { return r.Month }

// MeanLoaded returns the mean loaded average of records, 0 when empty.
func MeanLoaded(records []types.Record) float64 {
	if len(records) == 0 {
		return 0
	}
	var sum float64
	for _, r := range records {
		sum += r.AverageLoadedNum
	}
	return sum / float64(len(records))
}
