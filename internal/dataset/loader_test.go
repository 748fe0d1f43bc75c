package dataset

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-insights-go/internal/types"
)

const sampleCSV = `Mês,Veículo,Marca,Modelo,Grupo,KM Rodado,KM Rodado Carregado,Média,Média Carregado
01/24,TRK-01,Volvo,FH 540,Long haul,"12.345","10.000","2,35","2,10"
02/24,TRK-01,Volvo,FH 540,Long haul,11000,9000,"2,40","2,20"
,TRK-02,Volvo,FH 540,Long haul,1,1,1,1
03/24,TRK-02,Volvo
03/24,"TRK ""X""",Scania,R 450,Regional,500,250,"3,1","2,9"
`

func TestParseCSV(t *testing.T) {
	raw, err := ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, raw, 3)

	assert.Equal(t, types.RawRecord{
		Month: "01/24", Vehicle: "TRK-01", Brand: "Volvo", Model: "FH 540", Group: "Long haul",
		TotalDistance: 12345, LoadedDistance: 10000, AverageRaw: "2,35", AverageLoadedRaw: "2,10",
	}, raw[0])
	assert.Equal(t, `TRK "X"`, raw[2].Vehicle)
	assert.Equal(t, 250.0, raw[2].LoadedDistance)
}

func TestParseCSV_ReorderedHeader(t *testing.T) {
	in := "Veiculo,Mes,Marca,Modelo,Grupo,KM Rodado,KM Rodado Carregado,Media,Media Carregado\n" +
		"TRK-09,05/24,MAN,TGX,Urban,100,80,\"3,0\",\"2,5\"\n"
	raw, err := ParseCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, raw, 1)
	assert.Equal(t, "TRK-09", raw[0].Vehicle)
	assert.Equal(t, "05/24", raw[0].Month)
}

func TestParseCSV_Empty(t *testing.T) {
	raw, err := ParseCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, raw)
}

func TestParseJSON(t *testing.T) {
	in := `[
		{"Mês": "01/24", "Veículo": "TRK-01", "Marca": "Volvo", "Modelo": "FH 540", "Grupo": "Long haul",
		 "KM Rodado": 1200, "KM Rodado Carregado": "1.000", "Média": "2,5", "Média Carregado": 2.25},
		{"month": "02/24", "vehicle": "TRK-02", "total_distance": 10, "average_loaded_raw": "1,5"},
		"ignored"
	]`
	raw, err := ParseJSON(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, raw, 2)

	assert.Equal(t, "TRK-01", raw[0].Vehicle)
	assert.Equal(t, 1200.0, raw[0].TotalDistance)
	assert.Equal(t, 1000.0, raw[0].LoadedDistance)
	assert.Equal(t, "2,5", raw[0].AverageRaw)
	assert.Equal(t, "2.25", raw[0].AverageLoadedRaw)
	assert.Equal(t, "TRK-02", raw[1].Vehicle)
	assert.Equal(t, 10.0, raw[1].TotalDistance)
	assert.Equal(t, "1,5", raw[1].AverageLoadedRaw)
}

func TestParseJSON_DuplicateAliases(t *testing.T) {
	in := `[
		{"month": "02/24", "Mês": "01/24", "Veículo": null, "vehicle": "TRK-02",
		 "total_distance": 5, "KM Rodado": 7}
	]`
	for i := 0; i < 20; i++ {
		raw, err := ParseJSON(strings.NewReader(in))
		require.NoError(t, err)
		require.Len(t, raw, 1)
		assert.Equal(t, "01/24", raw[0].Month)
		assert.Equal(t, "TRK-02", raw[0].Vehicle)
		assert.Equal(t, 7.0, raw[0].TotalDistance)
	}
}

func TestParseJSON_NotArray(t *testing.T) {
	_, err := ParseJSON(strings.NewReader(`{"month": "01/24"}`))
	assert.ErrorIs(t, err, ErrNotArray)
}

func TestExportThenParseXLSX(t *testing.T) {
	records := Normalize([]types.RawRecord{
		{Month: "01/24", Vehicle: "TRK-01", Brand: "Volvo", Model: "FH 540", Group: "Long haul",
			TotalDistance: 12345, LoadedDistance: 10000, AverageRaw: "2,35", AverageLoadedRaw: "2,10"},
		{Month: "02/24", Vehicle: "TRK-02", Brand: "Scania", Model: "R 450", Group: "Regional",
			TotalDistance: 800.5, LoadedDistance: 0, AverageRaw: "3,1", AverageLoadedRaw: "2,9"},
	})

	var buf bytes.Buffer
	require.NoError(t, ExportXLSX(&buf, records))

	raw, err := ParseXLSX(&buf)
	require.NoError(t, err)
	assert.Equal(t, records, Normalize(raw))
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "fleet.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(sampleCSV), 0o644))
	records, err := LoadFile(csvPath)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.InDelta(t, 2.1, records[0].AverageLoadedNum, 1e-9)

	xlsxPath := filepath.Join(dir, "fleet.xlsx")
	f, err := os.Create(xlsxPath)
	require.NoError(t, err)
	require.NoError(t, ExportXLSX(f, records))
	require.NoError(t, f.Close())
	fromXLSX, err := LoadFile(xlsxPath)
	require.NoError(t, err)
	assert.Equal(t, records, fromXLSX)

	_, err = LoadFile(filepath.Join(dir, "fleet.txt"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = LoadFile(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}

func TestLoadAndSummarize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fleet.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	s, err := LoadAndSummarize(path)
	require.NoError(t, err)
	assert.Len(t, s.Records, 3)
	assert.Equal(t, 2, s.Stats.TotalVehicles)
	assert.Equal(t, 3, s.Months)

	empty := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(empty, []byte("Mês,Veículo\n"), 0o644))
	_, err = LoadAndSummarize(empty)
	assert.ErrorIs(t, err, ErrNoRows)
}
