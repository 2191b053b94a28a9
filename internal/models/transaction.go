package models

import "time"

// PaymentBreakdown splits an amount across the three payment channels.
type PaymentBreakdown struct {
	Cash   float64 `json:"cash"`
	Online float64 `json:"online"`
	Credit float64 `json:"credit"`
}

// Total sums the three channels.
func (b PaymentBreakdown) Total() float64 {
	return b.Cash + b.Online + b.Credit
}

// CreditAllocation assigns part of a credit amount to one creditor.
type CreditAllocation struct {
	CreditorID string  `json:"creditorId"`
	Amount     float64 `json:"amount"`
}

// QuickEntryReading is one nozzle's closing reading plus its share of the
// payment allocation. Sample readings carry a meter value but no money.
// PaymentType is the operator's channel note for the reading; the amounts
// in Payment are authoritative.
type QuickEntryReading struct {
	NozzleID    string           `json:"nozzleId"`
	FuelType    string           `json:"fuelType"`
	Reading     float64          `json:"reading"`
	Litres      float64          `json:"litres"`
	SaleValue   float64          `json:"saleValue"`
	Sample      bool             `json:"isSample"`
	PaymentType string           `json:"paymentType,omitempty"`
	Payment     PaymentBreakdown `json:"payment"`
}

// QuickEntryRequest is the sole write path for reading+payment data.
type QuickEntryRequest struct {
	StationID         string              `json:"stationId"`
	TransactionDate   string              `json:"transactionDate"`
	Readings          []QuickEntryReading `json:"readings"`
	PaymentBreakdown  PaymentBreakdown    `json:"paymentBreakdown"`
	CreditAllocations []CreditAllocation  `json:"creditAllocations"`
	StationPrices     []FuelPrice         `json:"stationPrices"`
}

type QuickEntryResponse struct {
	TransactionID string `json:"transactionId"`
	ReadingCount  int    `json:"readingCount"`
}

// LatestReading is the backend's authoritative last meter value per nozzle,
// returned by the batched /readings/latest lookup keyed by nozzle id.
type LatestReading struct {
	NozzleID   string    `json:"nozzleId"`
	Reading    float64   `json:"reading"`
	RecordedAt time.Time `json:"recordedAt"`
}
