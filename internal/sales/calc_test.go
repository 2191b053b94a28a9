package sales

import (
	"math"
	"testing"

	"forecourt/internal/models"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCalcSaleBasic(t *testing.T) {
	sale := CalcSale(1000, "1050", 100)
	if !almostEqual(sale.Litres, 50) {
		t.Fatalf("expected 50 litres, got %v", sale.Litres)
	}
	if !almostEqual(sale.SaleValue, 5000) {
		t.Fatalf("expected sale value 5000, got %v", sale.SaleValue)
	}
}

func TestCalcSaleRollbackClampsToZero(t *testing.T) {
	sale := CalcSale(1000, "900", 100)
	if sale.Litres != 0 || sale.SaleValue != 0 {
		t.Fatalf("expected zero sale on rollback, got %+v", sale)
	}
}

func TestCalcSaleBlankAndGarbageInput(t *testing.T) {
	if sale := CalcSale(0, "", 100); sale.Litres != 0 {
		t.Fatalf("blank input should yield zero litres, got %v", sale.Litres)
	}
	if sale := CalcSale(0, "abc", 100); sale.Litres != 0 {
		t.Fatalf("garbage input should yield zero litres, got %v", sale.Litres)
	}
}

func TestComparisonReadingPrecedence(t *testing.T) {
	last := 300.0
	embedded := 200.0
	nozzle := models.Nozzle{InitialReading: 100, LastReading: &embedded}

	if got := ComparisonReading(&last, nozzle); got != 300 {
		t.Fatalf("fetched latest should win, got %v", got)
	}
	if got := ComparisonReading(nil, nozzle); got != 200 {
		t.Fatalf("embedded last reading should win over initial, got %v", got)
	}
	nozzle.LastReading = nil
	if got := ComparisonReading(nil, nozzle); got != 100 {
		t.Fatalf("initial reading should be the fallback, got %v", got)
	}
	nozzle.InitialReading = 0
	if got := ComparisonReading(nil, nozzle); got != 0 {
		t.Fatalf("expected zero fallback, got %v", got)
	}
}

func TestPriceForIsCaseInsensitive(t *testing.T) {
	prices := []models.FuelPrice{
		{FuelType: "Petrol", Price: 102.5},
		{FuelType: "DIESEL", Price: 89.0},
	}

	if price, ok := PriceFor("petrol", prices); !ok || price != 102.5 {
		t.Fatalf("expected petrol price 102.5, got %v ok=%v", price, ok)
	}
	if price, ok := PriceFor("diesel", prices); !ok || price != 89.0 {
		t.Fatalf("expected diesel price 89, got %v ok=%v", price, ok)
	}
	if _, ok := PriceFor("cng", prices); ok {
		t.Fatalf("expected missing price for cng")
	}
}

func TestRound2HalfAwayFromZero(t *testing.T) {
	cases := map[float64]float64{
		1.005:   1.01,
		2.675:   2.68,
		-1.005:  -1.01,
		33.3333: 33.33,
		0:       0,
	}
	for in, want := range cases {
		if got := Round2(in); got != want {
			t.Fatalf("Round2(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestParseReading(t *testing.T) {
	if got := ParseReading("  1050.25 "); got != 1050.25 {
		t.Fatalf("expected 1050.25, got %v", got)
	}
	if got := ParseReading("NaN"); got != 0 {
		t.Fatalf("NaN input should parse to zero, got %v", got)
	}
}
