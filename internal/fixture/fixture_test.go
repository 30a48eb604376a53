package fixture

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-dashboard-backend/internal/fleet"
)

func TestDir_LoadTables(t *testing.T) {
	tables, err := NewDir("testdata/valid").LoadTables(context.Background())
	require.NoError(t, err)

	assert.Len(t, tables.Equipment, 2)
	assert.Equal(t, "M404", tables.Equipment[1].EquipmentModelID)
	require.Len(t, tables.Models, 1)
	assert.Equal(t, float64(-5), tables.Models[0].HourlyEarnings[1].Value)
	require.Len(t, tables.Positions, 1)
	assert.False(t, tables.Positions[0].Positions[0].At.IsZero())
	assert.Equal(t, "S1", tables.StateHistories[0].States[0].EquipmentStateID)
}

func TestDir_LoadTablesWithoutHistoryFiles(t *testing.T) {
	tables, err := NewDir("testdata/catalog_only").LoadTables(context.Background())
	require.NoError(t, err)

	assert.Len(t, tables.Equipment, 2)
	assert.Empty(t, tables.Positions)
	assert.Empty(t, tables.StateHistories)
}

func TestDir_LoadTablesMalformed(t *testing.T) {
	_, err := NewDir("testdata/broken").LoadTables(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, fleet.ErrMalformed)
	assert.Contains(t, err.Error(), ModelFile)
}

func TestDir_LoadTablesMissingDir(t *testing.T) {
	_, err := NewDir("testdata/nowhere").LoadTables(context.Background())
	assert.True(t, os.IsNotExist(err))
}

func TestDir_LoadTablesBundledDataset(t *testing.T) {
	tables, err := NewDir("../../data").LoadTables(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, tables.Equipment)
}
