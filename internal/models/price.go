package models

import "time"

// FuelPrice is the effective per-litre price for a fuel type at a station.
// Lookups match FuelType case-insensitively.
type FuelPrice struct {
	ID            string    `json:"id,omitempty"`
	StationID     string    `json:"stationId,omitempty"`
	FuelType      string    `json:"fuelType"`
	Price         float64   `json:"price"`
	CostPrice     *float64  `json:"costPrice,omitempty"`
	EffectiveFrom time.Time `json:"effectiveFrom"`
}

type SavePricesRequest struct {
	Prices []FuelPrice `json:"prices"`
}
