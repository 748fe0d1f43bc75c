package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-insights-go/internal/types"
)

func monthRecord(vehicle, month string) types.Record {
	return types.Record{RawRecord: types.RawRecord{Vehicle: vehicle, Month: month}}
}

func TestFilterFlags_Apply(t *testing.T) {
	records := []types.Record{
		monthRecord("A", "11/23"), monthRecord("B", "12/23"),
		monthRecord("A", "01/24"), monthRecord("B", "02/24"),
	}

	out, err := filterFlags{start: "12/23", end: "01/24"}.apply(records)
	require.NoError(t, err)
	assert.Len(t, out, 2)

	out, err = filterFlags{preset: "3m", vehicle: "B"}.apply(records)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "12/23", out[0].Month)
}

func TestFilterFlags_RejectsInvalidBounds(t *testing.T) {
	records := []types.Record{monthRecord("A", "01/24")}

	checks := []struct {
		name  string
		flags filterFlags
		want  string
	}{
		{"start", filterFlags{start: "2024-01"}, `invalid start month "2024-01"`},
		{"end", filterFlags{end: "13/24"}, `invalid end month "13/24"`},
		{"preset", filterFlags{preset: "2y"}, `unknown period preset "2y"`},
	}
	for _, c := range checks {
		t.Run(c.name, func(t *testing.T) {
			out, err := c.flags.apply(records)
			require.Error(t, err)
			assert.Contains(t, err.Error(), c.want)
			assert.Nil(t, out)
		})
	}
}
