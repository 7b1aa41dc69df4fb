package excel

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"pitchlens/domain/core"
)

func TestDataReader_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.csv")
	csv := "game_date,pitch_type,release_speed,zone,description\n" +
		"2024-06-10,FF,95.3,5,called_strike\n" +
		"2024-06-10,SL,,13,ball\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	events, err := NewDataReader(path).ReadEvents()
	require.NoError(t, err)
	require.Len(t, events, 2)

	v, ok := events[0].Velocity.Float()
	require.True(t, ok)
	assert.InDelta(t, 95.3, v, 1e-9)
	assert.False(t, events[1].Velocity.Defined(), "blank velocity should be null")
}

func TestDataReader_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.xlsx")

	f := excelize.NewFile()
	rows := [][]interface{}{
		{"game_date", "pitch_type", "release_speed", "zone", "description"},
		{"2024-06-10", "FF", 95.3, 5, "called_strike"},
		{"2024-06-12", "CH", 84.0, 11, "ball"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	events, err := NewDataReader(path).ReadEvents()
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, core.GameDate("2024-06-12"), events[1].GameDate)
	assert.Equal(t, "CH", events[1].PitchType)
	assert.Equal(t, 11, events[1].Zone)
	assert.False(t, events[1].InZone())
}

func TestDataReader_MissingFile(t *testing.T) {
	_, err := NewDataReader("/nonexistent/file.csv").ReadEvents()
	require.Error(t, err)
}

func TestDataReader_AsSeasonSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.csv")
	csv := "game_date,pitch_type,release_speed\n2024-06-10,FF,94.0\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	events, err := NewDataReader(path).FetchSeason(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}
