package settlement

import (
	"bytes"
	"testing"
	"time"

	"forecourt/internal/models"
)

func statementFixture() (*models.Settlement, *models.DailySales) {
	stmt := &models.Settlement{
		ID:        "se-1",
		StationID: "st-1",
		Date:      "2026-08-29",
		Expected:  models.PaymentBreakdown{Cash: 3500, Online: 1000, Credit: 500},
		Actual:    models.PaymentBreakdown{Cash: 3400, Online: 1000, Credit: 500},
		Variance:  models.PaymentBreakdown{Cash: -100},
		Notes:     "till recount pending",
		IsFinal:   true,
		CreatedAt: time.Now(),
	}
	daily := &models.DailySales{
		StationID: "st-1",
		Date:      "2026-08-29",
		Litres:    55,
		SaleValue: 5000,
		ByFuelType: []models.FuelTypeSales{
			{FuelType: "Petrol", Litres: 40, Value: 4000},
			{FuelType: "Diesel", Litres: 15, Value: 1000},
		},
	}
	return stmt, daily
}

func TestBuildStatementPDF(t *testing.T) {
	stmt, daily := statementFixture()
	data, err := BuildStatementPDF(stmt, daily)
	if err != nil {
		t.Fatalf("build pdf: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output is not a pdf, starts with %q", data[:4])
	}
}

func TestBuildStatementXLSX(t *testing.T) {
	stmt, daily := statementFixture()
	data, err := BuildStatementXLSX(stmt, daily)
	if err != nil {
		t.Fatalf("build xlsx: %v", err)
	}
	// xlsx is a zip container
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Fatalf("output is not a workbook, starts with %q", data[:2])
	}
}

func TestBuildStatementPDFWithoutDailySales(t *testing.T) {
	stmt, _ := statementFixture()
	if _, err := BuildStatementPDF(stmt, nil); err != nil {
		t.Fatalf("build pdf without daily sales: %v", err)
	}
}
