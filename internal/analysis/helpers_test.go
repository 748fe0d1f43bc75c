package analysis

import "fleet-insights-go/internal/types"

func rec(vehicle, month string, total, loaded, loadedAvg float64) types.Record {
	return types.Record{
		RawRecord: types.RawRecord{
			Month:          month,
			Vehicle:        vehicle,
			Brand:          "Volvo",
			Model:          "FH 540",
			Group:          "Long haul",
			TotalDistance:  total,
			LoadedDistance: loaded,
		},
		AverageNum:       loadedAvg,
		AverageLoadedNum: loadedAvg,
	}
}

func withModel(r types.Record, model string) types.Record {
	r.Model = model
	return r
}
