package api

import (
	"context"
	"net/http"

	"forecourt/internal/models"
)

// ListPrices returns the currently effective fuel prices for a station.
func (c *Client) ListPrices(ctx context.Context, stationID string) ([]models.FuelPrice, error) {
	var prices []models.FuelPrice
	if err := c.do(ctx, http.MethodGet, "/stations/"+stationID+"/prices", nil, nil, &prices); err != nil {
		return nil, err
	}
	return prices, nil
}

// SavePrices replaces the station's effective price list.
func (c *Client) SavePrices(ctx context.Context, stationID string, req models.SavePricesRequest) ([]models.FuelPrice, error) {
	var prices []models.FuelPrice
	if err := c.do(ctx, http.MethodPost, "/stations/"+stationID+"/prices", nil, req, &prices); err != nil {
		return nil, err
	}
	return prices, nil
}
