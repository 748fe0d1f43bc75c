package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-insights-go/internal/types"
)

func rec(vehicle, model, group, month string, total, loaded, avg, loadedAvg float64) types.Record {
	return types.Record{
		RawRecord: types.RawRecord{
			Month:          month,
			Vehicle:        vehicle,
			Brand:          "Mercedes-Benz",
			Model:          model,
			Group:          group,
			TotalDistance:  total,
			LoadedDistance: loaded,
		},
		AverageNum:       avg,
		AverageLoadedNum: loadedAvg,
	}
}

func TestFleet(t *testing.T) {
	records := []types.Record{
		rec("A", "Actros", "North", "01/24", 1000, 800, 3, 10),
		rec("B", "Actros", "North", "01/24", 2000, 1000, 3, 12),
		rec("C", "Axor", "South", "01/24", 1000, 500, 2, 12),
		rec("A", "Actros", "North", "02/24", 1000, 700, 2, 8),
		rec("D", "Axor", "South", "02/24", 500, 100, 2, 8),
	}
	st := Fleet(records)

	assert.Equal(t, 4, st.TotalVehicles)
	assert.Equal(t, 5500.0, st.TotalKm)
	assert.Equal(t, 3100.0, st.TotalLoadedKm)
	assert.InDelta(t, 2.4, st.AvgAverage, 1e-9)
	assert.InDelta(t, 10.0, st.AvgLoadedAverage, 1e-9)
	require.NotNil(t, st.Best)
	require.NotNil(t, st.Worst)
	// first of the highest, last of the lowest
	assert.Equal(t, "B", st.Best.Vehicle)
	assert.Equal(t, "D", st.Worst.Vehicle)
}

func TestFleet_Empty(t *testing.T) {
	st := Fleet(nil)
	assert.Equal(t, types.FleetStats{}, st)
	assert.Nil(t, st.Best)
	assert.Nil(t, st.Worst)
}

func TestVehicles(t *testing.T) {
	out := Vehicles([]types.Record{
		rec("A", "Actros", "North", "01/24", 1, 1, 1, 8),
		rec("B", "Actros", "North", "01/24", 1, 1, 1, 11),
		rec("A", "Actros", "North", "02/24", 1, 1, 1, 10),
	})
	require.Len(t, out, 2)
	assert.Equal(t, "B", out[0].Vehicle)
	assert.Equal(t, 11.0, out[0].LoadedAverage)
	assert.Equal(t, 1, out[0].Months)
	assert.Equal(t, "A", out[1].Vehicle)
	assert.Equal(t, 9.0, out[1].LoadedAverage)
	assert.Equal(t, 2, out[1].Months)
}

func TestModels(t *testing.T) {
	out := Models([]types.Record{
		rec("A", "Axor", "North", "01/24", 1, 1, 1, 6),
		rec("B", "Actros", "North", "01/24", 1, 1, 1, 11),
		rec("C", "Axor", "North", "01/24", 1, 1, 1, 8),
	})
	require.Len(t, out, 2)
	assert.Equal(t, types.ModelStat{Model: "Actros", Brand: "Mercedes-Benz", LoadedAverage: 11, Count: 1}, out[0])
	assert.Equal(t, types.ModelStat{Model: "Axor", Brand: "Mercedes-Benz", LoadedAverage: 7, Count: 2}, out[1])
}

func TestGroups_FirstSeenOrder(t *testing.T) {
	out := Groups([]types.Record{
		rec("A", "Axor", "South", "01/24", 100, 40, 1, 6),
		rec("B", "Axor", "North", "01/24", 100, 90, 1, 9),
		rec("C", "Axor", "South", "01/24", 100, 60, 1, 8),
	})
	require.Len(t, out, 2)
	assert.Equal(t, types.GroupStat{Group: "South", KmLoaded: 100, LoadedAverage: 7}, out[0])
	assert.Equal(t, types.GroupStat{Group: "North", KmLoaded: 90, LoadedAverage: 9}, out[1])
}

func TestMonths_Chronological(t *testing.T) {
	out := Months([]types.Record{
		rec("A", "Axor", "North", "01/24", 100, 50, 1, 6),
		rec("A", "Axor", "North", "12/23", 100, 50, 1, 6),
		rec("A", "Axor", "North", "9/23", 100, 50, 1, 6),
		rec("B", "Axor", "North", "01/24", 100, 30, 1, 8),
	})
	require.Len(t, out, 3)
	assert.Equal(t, "9/23", out[0].Month)
	assert.Equal(t, "12/23", out[1].Month)
	assert.Equal(t, "01/24", out[2].Month)
	assert.Equal(t, 80.0, out[2].KmLoaded)
	assert.Equal(t, 7.0, out[2].LoadedAverage)
}

func TestRankings_Empty(t *testing.T) {
	assert.Empty(t, Vehicles(nil))
	assert.Empty(t, Models(nil))
	assert.Empty(t, Groups(nil))
	assert.Empty(t, Months(nil))
}
