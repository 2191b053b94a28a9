package settlement

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"forecourt/internal/models"
)

// BuildStatementPDF renders a day's settlement statement for printing or
// filing.
func BuildStatementPDF(stmt *models.Settlement, daily *models.DailySales) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Daily Settlement Statement")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Station: %s", stmt.StationID))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", stmt.Date))
	pdf.Ln(5)
	status := "draft"
	if stmt.IsFinal {
		status = "final"
	}
	pdf.Cell(0, 6, fmt.Sprintf("Status: %s", status))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", time.Now().UTC().Format(time.RFC3339)))
	pdf.Ln(5)
	if stmt.Notes != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Notes: %s", stmt.Notes))
		pdf.Ln(5)
	}
	pdf.Ln(4)

	// Reconciliation table
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(40, 6, "Channel", "1", 0, "C", false, 0, "")
	pdf.CellFormat(45, 6, "Expected", "1", 0, "C", false, 0, "")
	pdf.CellFormat(45, 6, "Actual", "1", 0, "C", false, 0, "")
	pdf.CellFormat(45, 6, "Variance", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	rows := []struct {
		name     string
		expected float64
		actual   float64
		variance float64
	}{
		{"Cash", stmt.Expected.Cash, stmt.Actual.Cash, stmt.Variance.Cash},
		{"Online", stmt.Expected.Online, stmt.Actual.Online, stmt.Variance.Online},
		{"Credit", stmt.Expected.Credit, stmt.Actual.Credit, stmt.Variance.Credit},
	}
	for _, row := range rows {
		pdf.CellFormat(40, 6, row.name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(45, 6, fmt.Sprintf("%.2f", row.expected), "1", 0, "R", false, 0, "")
		pdf.CellFormat(45, 6, fmt.Sprintf("%.2f", row.actual), "1", 0, "R", false, 0, "")
		pdf.CellFormat(45, 6, fmt.Sprintf("%.2f", row.variance), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	if daily != nil && len(daily.ByFuelType) > 0 {
		pdf.Ln(6)
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(60, 6, "Fuel Type", "1", 0, "C", false, 0, "")
		pdf.CellFormat(55, 6, "Litres", "1", 0, "C", false, 0, "")
		pdf.CellFormat(60, 6, "Sale Value", "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 10)
		for _, fuel := range daily.ByFuelType {
			pdf.CellFormat(60, 6, fuel.FuelType, "1", 0, "L", false, 0, "")
			pdf.CellFormat(55, 6, fmt.Sprintf("%.2f", fuel.Litres), "1", 0, "R", false, 0, "")
			pdf.CellFormat(60, 6, fmt.Sprintf("%.2f", fuel.Value), "1", 0, "R", false, 0, "")
			pdf.Ln(-1)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildStatementXLSX renders the same statement as a workbook with a
// summary sheet and a per-fuel sales sheet.
func BuildStatementXLSX(stmt *models.Settlement, daily *models.DailySales) ([]byte, error) {
	f := excelize.NewFile()
	summarySheet := "summary"
	salesSheet := "sales"
	f.SetSheetName("Sheet1", summarySheet)
	f.NewSheet(salesSheet)

	_ = f.SetCellValue(summarySheet, "A1", "Daily Settlement Statement")
	_ = f.SetCellValue(summarySheet, "A3", "Station")
	_ = f.SetCellValue(summarySheet, "B3", stmt.StationID)
	_ = f.SetCellValue(summarySheet, "A4", "Date")
	_ = f.SetCellValue(summarySheet, "B4", stmt.Date)
	_ = f.SetCellValue(summarySheet, "A5", "Final")
	_ = f.SetCellValue(summarySheet, "B5", stmt.IsFinal)
	_ = f.SetCellValue(summarySheet, "A6", "Notes")
	_ = f.SetCellValue(summarySheet, "B6", stmt.Notes)

	_ = f.SetCellValue(summarySheet, "A8", "Channel")
	_ = f.SetCellValue(summarySheet, "B8", "Expected")
	_ = f.SetCellValue(summarySheet, "C8", "Actual")
	_ = f.SetCellValue(summarySheet, "D8", "Variance")
	rows := [][]interface{}{
		{"Cash", stmt.Expected.Cash, stmt.Actual.Cash, stmt.Variance.Cash},
		{"Online", stmt.Expected.Online, stmt.Actual.Online, stmt.Variance.Online},
		{"Credit", stmt.Expected.Credit, stmt.Actual.Credit, stmt.Variance.Credit},
	}
	for i, row := range rows {
		n := 9 + i
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", n), row[0])
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", n), row[1])
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("C%d", n), row[2])
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("D%d", n), row[3])
	}

	_ = f.SetCellValue(salesSheet, "A1", "Fuel Type")
	_ = f.SetCellValue(salesSheet, "B1", "Litres")
	_ = f.SetCellValue(salesSheet, "C1", "Sale Value")
	if daily != nil {
		for i, fuel := range daily.ByFuelType {
			n := i + 2
			_ = f.SetCellValue(salesSheet, fmt.Sprintf("A%d", n), fuel.FuelType)
			_ = f.SetCellValue(salesSheet, fmt.Sprintf("B%d", n), fuel.Litres)
			_ = f.SetCellValue(salesSheet, fmt.Sprintf("C%d", n), fuel.Value)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
