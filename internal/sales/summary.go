package sales

import "forecourt/internal/models"

// EntryKind tags what a reading entry means financially.
type EntryKind int

const (
	// KindFinancial counts toward sale value and payment allocation.
	KindFinancial EntryKind = iota
	// KindQualityCheck records the meter value only; zero financial effect.
	KindQualityCheck
)

// Entry is one nozzle's in-progress reading entry. Value holds the raw
// operator input; it is parsed at calculation time. PaymentType is the
// operator's per-reading channel note (cash/online/credit); the money
// itself is carried by the day allocation, not by this label.
type Entry struct {
	NozzleID    string
	Value       string
	Kind        EntryKind
	PaymentType string
}

// IsSample reports whether the entry is a quality-check record.
func (e Entry) IsSample() bool { return e.Kind == KindQualityCheck }

// EntrySale is one entry's computed sale, retained in entry order so the
// payment distribution's last-item remainder rule is deterministic.
type EntrySale struct {
	NozzleID   string
	FuelType   string
	Comparison float64
	Entered    float64
	Litres     float64
	SaleValue  float64
}

// FuelTotals accumulates litres and value for one fuel type.
type FuelTotals struct {
	Litres    float64
	SaleValue float64
}

// Summary aggregates the entries that count toward the sale. ByFuelType is
// keyed by the folded fuel type label so casing variants share a bucket.
type Summary struct {
	TotalLitres    float64
	TotalSaleValue float64
	ByFuelType     map[string]FuelTotals
	Sales          []EntrySale
}

// Summarize folds the in-progress entries into a sale summary. An entry
// survives only when it has a non-empty value, belongs to a loaded nozzle,
// is financial, and its entered value strictly exceeds the comparison
// reading. Missing prices contribute zero value here; MissingPriceTypes
// flags them for blocking validation.
func Summarize(entries []Entry, nozzles map[string]models.Nozzle, latest map[string]float64, prices []models.FuelPrice) Summary {
	summary := Summary{ByFuelType: make(map[string]FuelTotals)}

	for _, entry := range entries {
		if entry.Value == "" || entry.IsSample() {
			continue
		}
		nozzle, ok := nozzles[entry.NozzleID]
		if !ok {
			continue
		}

		comparison := ComparisonReading(latestFor(latest, entry.NozzleID), nozzle)
		entered := ParseReading(entry.Value)
		if entered <= comparison {
			continue
		}

		price, _ := PriceFor(nozzle.FuelType, prices)
		sale := CalcSale(comparison, entry.Value, price)

		summary.TotalLitres += sale.Litres
		summary.TotalSaleValue += sale.SaleValue
		fuelKey := FoldFuelType(nozzle.FuelType)
		totals := summary.ByFuelType[fuelKey]
		totals.Litres += sale.Litres
		totals.SaleValue += sale.SaleValue
		summary.ByFuelType[fuelKey] = totals

		summary.Sales = append(summary.Sales, EntrySale{
			NozzleID:   entry.NozzleID,
			FuelType:   nozzle.FuelType,
			Comparison: comparison,
			Entered:    entered,
			Litres:     sale.Litres,
			SaleValue:  sale.SaleValue,
		})
	}

	return summary
}

// MissingPriceTypes returns the fuel types of entered financial readings
// that have no effective price. Any hit blocks submission.
func MissingPriceTypes(entries []Entry, nozzles map[string]models.Nozzle, prices []models.FuelPrice) []string {
	seen := make(map[string]bool)
	var missing []string
	for _, entry := range entries {
		if entry.Value == "" || entry.IsSample() {
			continue
		}
		nozzle, ok := nozzles[entry.NozzleID]
		if !ok {
			continue
		}
		if _, found := PriceFor(nozzle.FuelType, prices); found {
			continue
		}
		if !seen[nozzle.FuelType] {
			seen[nozzle.FuelType] = true
			missing = append(missing, nozzle.FuelType)
		}
	}
	return missing
}

// Rollbacks returns nozzle ids whose entered financial value is below the
// comparison reading. These are advisory findings: the entries contribute
// nothing. Quality-check entries are exempt; a sample drawn below the last
// meter value is not a rollback.
func Rollbacks(entries []Entry, nozzles map[string]models.Nozzle, latest map[string]float64) []string {
	var ids []string
	for _, entry := range entries {
		if entry.Value == "" || entry.IsSample() {
			continue
		}
		nozzle, ok := nozzles[entry.NozzleID]
		if !ok {
			continue
		}
		comparison := ComparisonReading(latestFor(latest, entry.NozzleID), nozzle)
		if ParseReading(entry.Value) < comparison {
			ids = append(ids, entry.NozzleID)
		}
	}
	return ids
}

func latestFor(latest map[string]float64, nozzleID string) *float64 {
	if latest == nil {
		return nil
	}
	if v, ok := latest[nozzleID]; ok {
		return &v
	}
	return nil
}
