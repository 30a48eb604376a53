package fleet

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// sampleTables mirrors a small slice of the production dataset.
func sampleTables() Tables {
	return Tables{
		Equipment: []Equipment{
			{ID: "E1", EquipmentModelID: "M1", Name: "CA-0001"},
			{ID: "E2", EquipmentModelID: "M2", Name: "HV-1002"},
			{ID: "E3", EquipmentModelID: "M1", Name: "CA-0003"},
		},
		Models: []EquipmentModel{
			{ID: "M1", Name: "Caminhão de carga", HourlyEarnings: []HourlyEarning{
				{EquipmentStateID: "S1", Value: 50},
				{EquipmentStateID: "S2", Value: -5},
				{EquipmentStateID: "S3", Value: -20},
			}},
			{ID: "M2", Name: "Harvester", HourlyEarnings: []HourlyEarning{
				{EquipmentStateID: "S2", Value: -10},
				{EquipmentStateID: "S1", Value: 100},
			}},
		},
		States: []EquipmentState{
			{ID: "S1", Name: "Operando", Color: "#2ecc71"},
			{ID: "S2", Name: "Parado", Color: "#f1c40f"},
			{ID: "S3", Name: "Manutenção", Color: "#e74c3c"},
		},
		Positions: []PositionHistory{
			{EquipmentID: "E1", Positions: []PositionSample{
				{Date: "2024-01-01T00:00", Lat: 1, Lon: 1},
				{Date: "2024-01-02T00:00", Lat: 2, Lon: 2},
			}},
			{EquipmentID: "E2", Positions: []PositionSample{
				{Date: "2024-01-03T12:00:00.000Z", Lat: -19.1, Lon: -46.0},
			}},
			{EquipmentID: "E3", Positions: []PositionSample{
				{Date: "2024-01-05T08:00:00.000Z", Lat: -19.2, Lon: -46.1},
			}},
		},
		StateHistories: []StateHistory{
			{EquipmentID: "E1", States: []StateHistoryEntry{
				{EquipmentStateID: "S3", Date: "2024-01-02T00:00:00.000Z"},
				{EquipmentStateID: "S1", Date: "2024-01-01T00:00:00.000Z"},
			}},
		},
	}
}

func newTestCatalog(t *testing.T, raw Tables) *Catalog {
	t.Helper()
	tables, err := NewTables(raw)
	require.NoError(t, err)
	return NewCatalog(tables)
}
