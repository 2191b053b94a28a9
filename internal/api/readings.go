package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"forecourt/internal/models"
)

// LatestReadings batch-fetches the last recorded meter value per nozzle.
// The response is keyed by nozzle id; nozzles without any recorded reading
// are simply absent.
func (c *Client) LatestReadings(ctx context.Context, nozzleIDs []string) (map[string]models.LatestReading, error) {
	if len(nozzleIDs) == 0 {
		return map[string]models.LatestReading{}, nil
	}
	query := url.Values{"ids": []string{strings.Join(nozzleIDs, ",")}}
	readings := make(map[string]models.LatestReading)
	if err := c.do(ctx, http.MethodGet, "/readings/latest", query, nil, &readings); err != nil {
		return nil, err
	}
	return readings, nil
}

// SubmitQuickEntry posts a day's readings with their payment allocation.
// This is the sole write path for reading+payment data.
func (c *Client) SubmitQuickEntry(ctx context.Context, req models.QuickEntryRequest) (*models.QuickEntryResponse, error) {
	var resp models.QuickEntryResponse
	if err := c.do(ctx, http.MethodPost, "/transactions/quick-entry", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
