package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-insights-go/internal/types"
)

func TestWriteAttentionPDF(t *testing.T) {
	entries := []types.AttentionEntry{
		{
			VehicleInfo: types.VehicleInfo{Vehicle: "TRK-01", Brand: "Volvo", Model: "FH 540", Group: "Longa distância"},
			Problems:    []string{"Low load efficiency: 50%", "Drop of 50% in 03/24"},
			Priority:    types.PriorityHigh,
			Score:       7,
		},
		{
			VehicleInfo: types.VehicleInfo{Vehicle: "TRK-02", Model: "R 450"},
			Problems:    []string{"Below fleet average: 5.00 km/l"},
			Priority:    types.PriorityLow,
			Score:       1,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteAttentionPDF(&buf, entries, time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestWriteAttentionPDF_ManyPages(t *testing.T) {
	var entries []types.AttentionEntry
	for i := 0; i < 80; i++ {
		entries = append(entries, types.AttentionEntry{
			VehicleInfo: types.VehicleInfo{Vehicle: "TRK", Model: "FH"},
			Problems:    []string{strings.Repeat("Downward trend: -12.5% ", 20)},
			Priority:    types.PriorityMedium,
			Score:       3,
		})
	}
	var buf bytes.Buffer
	require.NoError(t, WriteAttentionPDF(&buf, entries, time.Now()))
	assert.Greater(t, buf.Len(), 1000)
}

func TestWriteAttentionPDF_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAttentionPDF(&buf, nil, time.Now()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}
