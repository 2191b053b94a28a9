package sales

import (
	"testing"

	"forecourt/internal/models"
)

func testNozzles() map[string]models.Nozzle {
	return map[string]models.Nozzle{
		"nz-1": {ID: "nz-1", FuelType: "Petrol", InitialReading: 1000},
		"nz-2": {ID: "nz-2", FuelType: "Diesel", InitialReading: 2000},
		"nz-3": {ID: "nz-3", FuelType: "Petrol", InitialReading: 500},
	}
}

func testPrices() []models.FuelPrice {
	return []models.FuelPrice{
		{FuelType: "PETROL", Price: 100},
		{FuelType: "DIESEL", Price: 90},
	}
}

func TestSummarizeSumsOverallAndPerFuelType(t *testing.T) {
	entries := []Entry{
		{NozzleID: "nz-1", Value: "1050"},
		{NozzleID: "nz-2", Value: "2010"},
		{NozzleID: "nz-3", Value: "510"},
	}

	summary := Summarize(entries, testNozzles(), nil, testPrices())

	if !almostEqual(summary.TotalLitres, 70) {
		t.Fatalf("expected 70 litres, got %v", summary.TotalLitres)
	}
	if !almostEqual(summary.TotalSaleValue, 50*100+10*90+10*100) {
		t.Fatalf("unexpected total sale value %v", summary.TotalSaleValue)
	}
	petrol := summary.ByFuelType["PETROL"]
	if !almostEqual(petrol.Litres, 60) || !almostEqual(petrol.SaleValue, 6000) {
		t.Fatalf("unexpected petrol totals %+v", petrol)
	}
	diesel := summary.ByFuelType["DIESEL"]
	if !almostEqual(diesel.Litres, 10) || !almostEqual(diesel.SaleValue, 900) {
		t.Fatalf("unexpected diesel totals %+v", diesel)
	}
	if len(summary.Sales) != 3 {
		t.Fatalf("expected 3 surviving entries, got %d", len(summary.Sales))
	}
}

func TestSummarizeSkipsQualityCheckEntries(t *testing.T) {
	entries := []Entry{
		{NozzleID: "nz-1", Value: "1050", Kind: KindQualityCheck},
		{NozzleID: "nz-2", Value: "2010"},
	}

	summary := Summarize(entries, testNozzles(), nil, testPrices())

	if !almostEqual(summary.TotalSaleValue, 900) {
		t.Fatalf("quality-check entry leaked into total: %v", summary.TotalSaleValue)
	}
	if _, ok := summary.ByFuelType["PETROL"]; ok {
		t.Fatalf("quality-check entry leaked into byFuelType")
	}
}

func TestSummarizeFoldsFuelTypeCasingIntoOneBucket(t *testing.T) {
	nozzles := map[string]models.Nozzle{
		"nz-1": {ID: "nz-1", FuelType: "Petrol", InitialReading: 1000},
		"nz-2": {ID: "nz-2", FuelType: "PETROL", InitialReading: 500},
	}
	entries := []Entry{
		{NozzleID: "nz-1", Value: "1050"},
		{NozzleID: "nz-2", Value: "510"},
	}

	summary := Summarize(entries, nozzles, nil, testPrices())
	if len(summary.ByFuelType) != 1 {
		t.Fatalf("casing variants split the bucket: %v", summary.ByFuelType)
	}
	petrol := summary.ByFuelType["PETROL"]
	if !almostEqual(petrol.Litres, 60) || !almostEqual(petrol.SaleValue, 6000) {
		t.Fatalf("unexpected merged totals %+v", petrol)
	}
}

func TestSummarizeSkipsUnknownNozzleAndNonIncreasingReadings(t *testing.T) {
	entries := []Entry{
		{NozzleID: "nz-9", Value: "10"},   // nozzle not loaded
		{NozzleID: "nz-1", Value: "1000"}, // equal to comparison
		{NozzleID: "nz-2", Value: "1500"}, // rollback
		{NozzleID: "nz-3", Value: ""},     // blank
	}

	summary := Summarize(entries, testNozzles(), nil, testPrices())
	if summary.TotalSaleValue != 0 || len(summary.Sales) != 0 {
		t.Fatalf("expected empty summary, got %+v", summary)
	}
}

func TestSummarizePrefersFetchedLatestReading(t *testing.T) {
	entries := []Entry{{NozzleID: "nz-1", Value: "1050"}}
	latest := map[string]float64{"nz-1": 1040}

	summary := Summarize(entries, testNozzles(), latest, testPrices())
	if !almostEqual(summary.TotalLitres, 10) {
		t.Fatalf("expected 10 litres against fetched latest, got %v", summary.TotalLitres)
	}
}

func TestMissingPriceTypes(t *testing.T) {
	nozzles := testNozzles()
	nozzles["nz-4"] = models.Nozzle{ID: "nz-4", FuelType: "CNG", InitialReading: 0}
	entries := []Entry{
		{NozzleID: "nz-4", Value: "25"},
		{NozzleID: "nz-1", Value: "1050"},
		{NozzleID: "nz-4", Value: "30", Kind: KindQualityCheck},
	}

	missing := MissingPriceTypes(entries, nozzles, testPrices())
	if len(missing) != 1 || missing[0] != "CNG" {
		t.Fatalf("expected [CNG], got %v", missing)
	}
}

func TestRollbacksFlagged(t *testing.T) {
	entries := []Entry{
		{NozzleID: "nz-1", Value: "900"},
		{NozzleID: "nz-2", Value: "2010"},
	}

	ids := Rollbacks(entries, testNozzles(), nil)
	if len(ids) != 1 || ids[0] != "nz-1" {
		t.Fatalf("expected rollback on nz-1, got %v", ids)
	}
}

func TestRollbacksSkipQualityCheckEntries(t *testing.T) {
	entries := []Entry{
		{NozzleID: "nz-1", Value: "900", Kind: KindQualityCheck},
		{NozzleID: "nz-2", Value: "1500"},
	}

	ids := Rollbacks(entries, testNozzles(), nil)
	if len(ids) != 1 || ids[0] != "nz-2" {
		t.Fatalf("expected only the financial rollback, got %v", ids)
	}
}
