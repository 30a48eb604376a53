package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"fleet-dashboard-backend/internal/view"
)

// Sheet names of the XLSX report.
const (
	SheetSummary   = "resumo"
	SheetEquipment = "equipamentos"
	SheetFailures  = "falhas"
)

var equipmentHeader = []string{"ID", "Nome", "Modelo", "Estado", "Ganho/hora", "Latitude", "Longitude", "Última posição"}

// BuildFleetXLSX renders the fleet list and summary as a workbook.
func BuildFleetXLSX(list view.List, summary view.Summary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", SheetSummary)
	if _, err := f.NewSheet(SheetEquipment); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(SheetFailures); err != nil {
		return nil, err
	}

	_ = f.SetCellValue(SheetSummary, "A1", "Relatório da frota")
	_ = f.SetCellValue(SheetSummary, "A3", "Gerado em")
	_ = f.SetCellValue(SheetSummary, "B3", list.LoadedAt.Format(time.RFC3339))
	_ = f.SetCellValue(SheetSummary, "A4", "Equipamentos")
	_ = f.SetCellValue(SheetSummary, "B4", summary.Total)
	_ = f.SetCellValue(SheetSummary, "A5", "Falhas")
	_ = f.SetCellValue(SheetSummary, "B5", summary.Failed)
	_ = f.SetCellValue(SheetSummary, "A6", "Ganho/hora total")
	_ = f.SetCellValue(SheetSummary, "B6", summary.HourlyTotal.Value)
	for i, sc := range summary.ByState {
		row := i + 8
		_ = f.SetCellValue(SheetSummary, fmt.Sprintf("A%d", row), sc.State.Name)
		_ = f.SetCellValue(SheetSummary, fmt.Sprintf("B%d", row), sc.Count)
	}

	for i, h := range equipmentHeader {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		_ = f.SetCellValue(SheetEquipment, cell, h)
	}
	for i, item := range list.Items {
		row := i + 2
		_ = f.SetCellValue(SheetEquipment, fmt.Sprintf("A%d", row), item.ID)
		_ = f.SetCellValue(SheetEquipment, fmt.Sprintf("B%d", row), item.Name)
		_ = f.SetCellValue(SheetEquipment, fmt.Sprintf("C%d", row), item.Model.Name)
		_ = f.SetCellValue(SheetEquipment, fmt.Sprintf("D%d", row), item.CurrentState.Name)
		_ = f.SetCellValue(SheetEquipment, fmt.Sprintf("E%d", row), item.Earning.Value)
		_ = f.SetCellValue(SheetEquipment, fmt.Sprintf("F%d", row), item.CurrentPosition.Lat)
		_ = f.SetCellValue(SheetEquipment, fmt.Sprintf("G%d", row), item.CurrentPosition.Lon)
		_ = f.SetCellValue(SheetEquipment, fmt.Sprintf("H%d", row), item.CurrentPosition.DisplayDate)
	}

	_ = f.SetCellValue(SheetFailures, "A1", "ID")
	_ = f.SetCellValue(SheetFailures, "B1", "Nome")
	_ = f.SetCellValue(SheetFailures, "C1", "Motivo")
	_ = f.SetCellValue(SheetFailures, "D1", "Detalhe")
	for i, fail := range list.Failures {
		row := i + 2
		_ = f.SetCellValue(SheetFailures, fmt.Sprintf("A%d", row), fail.ID)
		_ = f.SetCellValue(SheetFailures, fmt.Sprintf("B%d", row), fail.Name)
		_ = f.SetCellValue(SheetFailures, fmt.Sprintf("C%d", row), fail.Reason)
		_ = f.SetCellValue(SheetFailures, fmt.Sprintf("D%d", row), fail.Message)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildFleetPDF renders a one-table fleet report.
func BuildFleetPDF(list view.List, summary view.Summary) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, tr("Relatório da frota"))
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Gerado em: %s", list.LoadedAt.Format(time.RFC3339)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Equipamentos: %d (falhas: %d)", summary.Total, summary.Failed))
	pdf.Ln(5)
	pdf.Cell(0, 6, tr("Ganho/hora total: "+summary.HourlyTotal.Display))
	pdf.Ln(8)

	widths := []float64{25, 45, 50, 35, 35, 30, 30}
	header := []string{"ID", "Nome", "Modelo", "Estado", "Ganho/hora", "Latitude", "Longitude"}
	pdf.SetFont("Arial", "B", 10)
	for i, h := range header {
		pdf.CellFormat(widths[i], 6, tr(h), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, item := range list.Items {
		pdf.CellFormat(widths[0], 6, tr(item.ID), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, tr(item.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, tr(item.Model.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 6, tr(item.CurrentState.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[4], 6, tr(item.Earning.Display), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[5], 6, fmt.Sprintf("%.6f", item.CurrentPosition.Lat), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[6], 6, fmt.Sprintf("%.6f", item.CurrentPosition.Lon), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	if len(list.Failures) > 0 {
		pdf.Ln(6)
		pdf.SetFont("Arial", "B", 10)
		pdf.Cell(0, 6, "Falhas")
		pdf.Ln(6)
		pdf.SetFont("Arial", "", 10)
		for _, fail := range list.Failures {
			pdf.Cell(0, 6, tr(fmt.Sprintf("%s (%s): %s", fail.ID, fail.Reason, fail.Message)))
			pdf.Ln(5)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
