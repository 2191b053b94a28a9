package api

import (
	"context"
	"net/http"

	"forecourt/internal/models"
)

// ListPumps returns a station's pumps with their nozzles.
func (c *Client) ListPumps(ctx context.Context, stationID string) ([]models.Pump, error) {
	var pumps []models.Pump
	if err := c.do(ctx, http.MethodGet, "/stations/"+stationID+"/pumps", nil, nil, &pumps); err != nil {
		return nil, err
	}
	return pumps, nil
}

// CreatePump adds a pump to a station.
func (c *Client) CreatePump(ctx context.Context, stationID string, req models.PumpCreateRequest) (*models.Pump, error) {
	var pump models.Pump
	if err := c.do(ctx, http.MethodPost, "/stations/"+stationID+"/pumps", nil, req, &pump); err != nil {
		return nil, err
	}
	return &pump, nil
}

// UpdatePump patches pump fields.
func (c *Client) UpdatePump(ctx context.Context, pumpID string, req models.PumpUpdateRequest) (*models.Pump, error) {
	var pump models.Pump
	if err := c.do(ctx, http.MethodPut, "/stations/pumps/"+pumpID, nil, req, &pump); err != nil {
		return nil, err
	}
	return &pump, nil
}

// CreateNozzle adds a nozzle to a pump.
func (c *Client) CreateNozzle(ctx context.Context, pumpID string, req models.NozzleCreateRequest) (*models.Nozzle, error) {
	var nozzle models.Nozzle
	if err := c.do(ctx, http.MethodPost, "/stations/pumps/"+pumpID+"/nozzles", nil, req, &nozzle); err != nil {
		return nil, err
	}
	return &nozzle, nil
}

// UpdateNozzle patches nozzle fields.
func (c *Client) UpdateNozzle(ctx context.Context, nozzleID string, req models.NozzleUpdateRequest) (*models.Nozzle, error) {
	var nozzle models.Nozzle
	if err := c.do(ctx, http.MethodPut, "/stations/nozzles/"+nozzleID, nil, req, &nozzle); err != nil {
		return nil, err
	}
	return &nozzle, nil
}
