package models

import "time"

// Settlement is a day's cash reconciliation record. The backend owns the
// Draft→Final transition and its one-final-per-station-date rule; the client
// only sets IsFinal on submission.
type Settlement struct {
	ID        string           `json:"id"`
	StationID string           `json:"stationId"`
	Date      string           `json:"date"`
	Expected  PaymentBreakdown `json:"expected"`
	Actual    PaymentBreakdown `json:"actual"`
	Variance  PaymentBreakdown `json:"variance"`
	Notes     string           `json:"notes,omitempty"`
	IsFinal   bool             `json:"isFinal"`
	CreatedAt time.Time        `json:"createdAt"`
}

type SettlementCreateRequest struct {
	Date       string           `json:"date"`
	ReadingIDs []string         `json:"readingIds"`
	Actual     PaymentBreakdown `json:"actual"`
	Expected   PaymentBreakdown `json:"expected"`
	Notes      string           `json:"notes,omitempty"`
	IsFinal    bool             `json:"isFinal"`
}

// SettlementReading is a recorded meter reading together with its parent
// transaction's payment breakdown. Several readings may share one
// transaction; expected totals must count that breakdown once.
type SettlementReading struct {
	ID            string           `json:"id"`
	NozzleID      string           `json:"nozzleId"`
	FuelType      string           `json:"fuelType"`
	Reading       float64          `json:"reading"`
	Litres        float64          `json:"litres"`
	SaleValue     float64          `json:"saleValue"`
	TransactionID string           `json:"transactionId"`
	Payment       PaymentBreakdown `json:"payment"`
	RecordedAt    time.Time        `json:"recordedAt"`
}

type SettlementReadingTotals struct {
	Litres    float64 `json:"litres"`
	SaleValue float64 `json:"saleValue"`
}

// ReadingsForSettlement groups a day's readings by whether a settlement
// already references them.
type ReadingsForSettlement struct {
	Unlinked struct {
		Readings []SettlementReading     `json:"readings"`
		Totals   SettlementReadingTotals `json:"totals"`
	} `json:"unlinked"`
	Linked struct {
		Readings []SettlementReading `json:"readings"`
	} `json:"linked"`
}

// FuelTypeSales is one fuel type's slice of a day's sales.
type FuelTypeSales struct {
	FuelType string  `json:"fuelType"`
	Litres   float64 `json:"litres"`
	Value    float64 `json:"value"`
}

// DailySales is the settlement page's aggregated day view.
type DailySales struct {
	StationID  string           `json:"stationId"`
	Date       string           `json:"date"`
	Litres     float64          `json:"litres"`
	SaleValue  float64          `json:"saleValue"`
	ByFuelType []FuelTypeSales  `json:"byFuelType"`
	ByPayment  PaymentBreakdown `json:"byPayment"`
}
