package api

import (
	"context"
	"net/http"

	"forecourt/internal/models"
)

// ListStations returns every station visible to the caller.
func (c *Client) ListStations(ctx context.Context) ([]models.Station, error) {
	var stations []models.Station
	if err := c.do(ctx, http.MethodGet, "/stations", nil, nil, &stations); err != nil {
		return nil, err
	}
	return stations, nil
}

// GetStation fetches one station.
func (c *Client) GetStation(ctx context.Context, stationID string) (*models.Station, error) {
	var station models.Station
	if err := c.do(ctx, http.MethodGet, "/stations/"+stationID, nil, nil, &station); err != nil {
		return nil, err
	}
	return &station, nil
}

// CreateStation registers a new station.
func (c *Client) CreateStation(ctx context.Context, req models.StationCreateRequest) (*models.Station, error) {
	var station models.Station
	if err := c.do(ctx, http.MethodPost, "/stations", nil, req, &station); err != nil {
		return nil, err
	}
	return &station, nil
}

// UpdateStation patches station fields.
func (c *Client) UpdateStation(ctx context.Context, stationID string, req models.StationUpdateRequest) (*models.Station, error) {
	var station models.Station
	if err := c.do(ctx, http.MethodPut, "/stations/"+stationID, nil, req, &station); err != nil {
		return nil, err
	}
	return &station, nil
}

// DeleteStation removes a station.
func (c *Client) DeleteStation(ctx context.Context, stationID string) error {
	return c.do(ctx, http.MethodDelete, "/stations/"+stationID, nil, nil, nil)
}
