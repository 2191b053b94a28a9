package sales

import (
	"strings"

	"forecourt/internal/models"
)

// Sale is the financial result of one closing reading.
type Sale struct {
	Litres    float64
	SaleValue float64
}

// CalcSale computes litres and value for an entered closing reading against
// a comparison reading. A negative delta (meter rollback) clamps to zero
// litres rather than erroring; callers surface rollbacks separately.
func CalcSale(comparison float64, entered string, price float64) Sale {
	value := ParseReading(entered)
	litres := value - comparison
	if litres < 0 {
		litres = 0
	}
	return Sale{
		Litres:    litres,
		SaleValue: litres * price,
	}
}

// ComparisonReading picks the opening meter value for a nozzle. Precedence:
// the fetched latest reading (authoritative), the nozzle's embedded last
// reading, its initial reading, then zero.
func ComparisonReading(latest *float64, nozzle models.Nozzle) float64 {
	if latest != nil {
		return *latest
	}
	if nozzle.LastReading != nil {
		return *nozzle.LastReading
	}
	return nozzle.InitialReading
}

// FoldFuelType normalizes a fuel type label for matching and grouping;
// "Petrol" and "PETROL" are the same fuel.
func FoldFuelType(fuelType string) string {
	return strings.ToUpper(strings.TrimSpace(fuelType))
}

// PriceFor looks up the effective price for a fuel type, matching
// case-insensitively. A missing price returns (0, false); callers must
// treat that as a blocking validation, not as a free sale.
func PriceFor(fuelType string, prices []models.FuelPrice) (float64, bool) {
	want := FoldFuelType(fuelType)
	for _, p := range prices {
		if FoldFuelType(p.FuelType) == want {
			return p.Price, true
		}
	}
	return 0, false
}
