package api

import (
	"context"
	"net/http"
	"net/url"

	"forecourt/internal/models"
)

// DailySales returns the aggregated day totals used by the settlement page.
func (c *Client) DailySales(ctx context.Context, stationID, date string) (*models.DailySales, error) {
	query := url.Values{"date": []string{date}}
	var sales models.DailySales
	if err := c.do(ctx, http.MethodGet, "/stations/"+stationID+"/daily-sales", query, nil, &sales); err != nil {
		return nil, err
	}
	return &sales, nil
}

// ReadingsForSettlement returns a day's readings grouped by whether a
// settlement already references them.
func (c *Client) ReadingsForSettlement(ctx context.Context, stationID, date string) (*models.ReadingsForSettlement, error) {
	query := url.Values{"date": []string{date}}
	var readings models.ReadingsForSettlement
	if err := c.do(ctx, http.MethodGet, "/stations/"+stationID+"/readings-for-settlement", query, nil, &readings); err != nil {
		return nil, err
	}
	return &readings, nil
}

// CreateSettlement records a day's reconciliation. The backend recomputes
// the authoritative variance and enforces final-per-date uniqueness.
func (c *Client) CreateSettlement(ctx context.Context, stationID string, req models.SettlementCreateRequest) (*models.Settlement, error) {
	var settlement models.Settlement
	if err := c.do(ctx, http.MethodPost, "/stations/"+stationID+"/settlements", nil, req, &settlement); err != nil {
		return nil, err
	}
	return &settlement, nil
}

// ListSettlements returns a station's settlement history.
func (c *Client) ListSettlements(ctx context.Context, stationID string) ([]models.Settlement, error) {
	var settlements []models.Settlement
	if err := c.do(ctx, http.MethodGet, "/stations/"+stationID+"/settlements", nil, nil, &settlements); err != nil {
		return nil, err
	}
	return settlements, nil
}
