package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"fleet-dashboard-backend/internal/view"
)

func sampleReport() (view.List, view.Summary) {
	list := view.List{
		Items: []view.EquipmentItem{
			{
				ID:              "E1",
				Name:            "CA-0001",
				Model:           view.ModelLabel{ID: "M1", Name: "Caminhão de carga"},
				CurrentState:    view.StateLabel{ID: "S3", Name: "Manutenção", Color: "#e74c3c"},
				CurrentPosition: view.Position{Lat: -19.1, Lon: -46.0, DisplayDate: "02/01/2024 10:30"},
				Earning:         view.Earning{Value: -20, Display: view.FormatCurrency(-20)},
			},
		},
		Failures: []view.FailureItem{
			{ID: "E9", Name: "CA-0009", Reason: "empty", Message: "positions of E9: empty collection"},
		},
		LoadedAt: time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC),
	}
	summary := view.Summary{
		Total:       2,
		Enriched:    1,
		Failed:      1,
		ByState:     []view.StateCount{{State: view.StateLabel{ID: "S3", Name: "Manutenção"}, Count: 1}},
		HourlyTotal: view.Earning{Value: -20, Display: view.FormatCurrency(-20)},
	}
	return list, summary
}

func TestBuildFleetXLSX(t *testing.T) {
	list, summary := sampleReport()

	data, err := BuildFleetXLSX(list, summary)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetSummary, SheetEquipment, SheetFailures}, f.GetSheetList())

	name, err := f.GetCellValue(SheetEquipment, "B2")
	require.NoError(t, err)
	assert.Equal(t, "CA-0001", name)

	state, err := f.GetCellValue(SheetEquipment, "D2")
	require.NoError(t, err)
	assert.Equal(t, "Manutenção", state)

	reason, err := f.GetCellValue(SheetFailures, "C2")
	require.NoError(t, err)
	assert.Equal(t, "empty", reason)

	total, err := f.GetCellValue(SheetSummary, "B4")
	require.NoError(t, err)
	assert.Equal(t, "2", total)
}

func TestBuildFleetPDF(t *testing.T) {
	list, summary := sampleReport()

	data, err := BuildFleetPDF(list, summary)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	empty, err := BuildFleetPDF(view.List{}, view.Summary{})
	require.NoError(t, err)
	assert.NotEmpty(t, empty)
}
