package models

// Pump and nozzle status values used by the backend.
const (
	PumpStatusActive      = "active"
	PumpStatusInactive    = "inactive"
	PumpStatusMaintenance = "maintenance"
)

// Pump is a dispenser unit owning a sequence of nozzles.
type Pump struct {
	ID        string   `json:"id"`
	StationID string   `json:"stationId"`
	Number    int      `json:"number"`
	Name      string   `json:"name"`
	Status    string   `json:"status"`
	Nozzles   []Nozzle `json:"nozzles"`
}

// Nozzle anchors reading entry: its initial and last known meter values
// provide the comparison reading when no fresher value is fetched.
type Nozzle struct {
	ID             string   `json:"id"`
	PumpID         string   `json:"pumpId"`
	Number         int      `json:"number"`
	FuelType       string   `json:"fuelType"`
	Status         string   `json:"status"`
	InitialReading float64  `json:"initialReading"`
	LastReading    *float64 `json:"lastReading,omitempty"`
}

type PumpCreateRequest struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
	Status string `json:"status,omitempty"`
}

type PumpUpdateRequest struct {
	Number *int    `json:"number,omitempty"`
	Name   *string `json:"name,omitempty"`
	Status *string `json:"status,omitempty"`
}

type NozzleCreateRequest struct {
	Number         int     `json:"number"`
	FuelType       string  `json:"fuelType"`
	InitialReading float64 `json:"initialReading"`
}

type NozzleUpdateRequest struct {
	Number         *int     `json:"number,omitempty"`
	FuelType       *string  `json:"fuelType,omitempty"`
	Status         *string  `json:"status,omitempty"`
	InitialReading *float64 `json:"initialReading,omitempty"`
}
