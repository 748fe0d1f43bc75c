package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-insights-go/internal/types"
)

func TestConsistency(t *testing.T) {
	out := Consistency([]types.Record{
		rec("steady", "01/24", 100, 80, 10),
		rec("steady", "02/24", 100, 80, 10),
		rec("erratic", "01/24", 100, 80, 5),
		rec("erratic", "02/24", 100, 80, 15),
	}, DefaultConsistencyThreshold)

	require.Len(t, out, 2)
	assert.Equal(t, "erratic", out[0].Vehicle)
	assert.InDelta(t, 10.0, out[0].Mean, 1e-9)
	assert.InDelta(t, 5.0, out[0].StdDev, 1e-9)
	assert.InDelta(t, 50.0, out[0].CoefficientVariation, 1e-9)
	assert.Equal(t, []float64{5, 15}, out[0].Values)
	assert.True(t, out[0].IsInconsistent)

	assert.Equal(t, "steady", out[1].Vehicle)
	assert.Zero(t, out[1].CoefficientVariation)
	assert.False(t, out[1].IsInconsistent)
}

func TestConsistency_ZeroMean(t *testing.T) {
	out := Consistency([]types.Record{rec("V", "01/24", 100, 80, 0)}, DefaultConsistencyThreshold)
	require.Len(t, out, 1)
	assert.Zero(t, out[0].CoefficientVariation)
}
