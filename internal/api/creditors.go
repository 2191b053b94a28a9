package api

import (
	"context"
	"net/http"

	"forecourt/internal/models"
)

// ListCreditors returns the station's credit customers.
func (c *Client) ListCreditors(ctx context.Context, stationID string) ([]models.Creditor, error) {
	var creditors []models.Creditor
	if err := c.do(ctx, http.MethodGet, "/stations/"+stationID+"/creditors", nil, nil, &creditors); err != nil {
		return nil, err
	}
	return creditors, nil
}

// CreateCreditor registers a credit customer.
func (c *Client) CreateCreditor(ctx context.Context, stationID string, req models.CreditorCreateRequest) (*models.Creditor, error) {
	var creditor models.Creditor
	if err := c.do(ctx, http.MethodPost, "/stations/"+stationID+"/creditors", nil, req, &creditor); err != nil {
		return nil, err
	}
	return &creditor, nil
}
