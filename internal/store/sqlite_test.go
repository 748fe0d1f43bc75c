package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-insights-go/internal/types"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "fleet.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func sample() []types.Record {
	return []types.Record{
		{
			RawRecord: types.RawRecord{
				Month: "02/24", Vehicle: "TRK-02", Brand: "Iveco", Model: "S-Way", Group: "Regional",
				TotalDistance: 8000, LoadedDistance: 5000, AverageRaw: "2,9", AverageLoadedRaw: "2,6",
			},
			AverageNum: 2.9, AverageLoadedNum: 2.6,
		},
		{
			RawRecord: types.RawRecord{
				Month: "01/24", Vehicle: "TRK-01", Brand: "Iveco", Model: "S-Way", Group: "Regional",
				TotalDistance: 9100.5, LoadedDistance: 7000, AverageRaw: "3,1", AverageLoadedRaw: "2,8",
			},
			AverageNum: 3.1, AverageLoadedNum: 2.8,
		},
	}
}

func TestLoad_EmptySnapshot(t *testing.T) {
	st := openTemp(t)
	_, err := st.Load(context.Background())
	assert.ErrorIs(t, err, ErrEmptySnapshot)

	_, err = st.LastImport(context.Background())
	assert.ErrorIs(t, err, ErrEmptySnapshot)
}

func TestSaveLoad_KeepsImportOrder(t *testing.T) {
	st := openTemp(t)
	ctx := context.Background()
	records := sample()

	require.NoError(t, st.Save(ctx, "file:fleet.xlsx", records))
	got, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, records, got)

	imp, err := st.LastImport(ctx)
	require.NoError(t, err)
	assert.Equal(t, "file:fleet.xlsx", imp.Source)
	assert.Equal(t, 2, imp.RecordCount)
}

func TestSave_ReplacesSnapshot(t *testing.T) {
	st := openTemp(t)
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, "first", sample()))
	require.NoError(t, st.Save(ctx, "second", sample()[:1]))

	got, err := st.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "TRK-02", got[0].Vehicle)

	imp, err := st.LastImport(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", imp.Source)
}

func TestSave_EmptyCollection(t *testing.T) {
	st := openTemp(t)
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, "empty", nil))
	got, err := st.Load(ctx)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSave_CancelledContextKeepsPreviousSnapshot(t *testing.T) {
	st := openTemp(t)
	require.NoError(t, st.Save(context.Background(), "first", sample()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, st.Save(ctx, "second", sample()[:1]))

	got, err := st.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fleet.db")
	st, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, st.Save(context.Background(), "file", sample()))
	require.NoError(t, st.Close())

	st, err = Open(path)
	require.NoError(t, err)
	defer st.Close()
	got, err := st.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sample(), got)
}
