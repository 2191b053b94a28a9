package settlement

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"forecourt/internal/models"
	"forecourt/internal/query"
	"forecourt/internal/sales"
	"forecourt/internal/session"
)

var (
	// ErrNoReadingsSelected blocks settlement with nothing selected.
	ErrNoReadingsSelected = errors.New("settlement: no readings selected")
	// ErrNoAmountsEntered blocks settlement when every actual amount is
	// zero.
	ErrNoAmountsEntered = errors.New("settlement: no actual amounts entered")
)

// Backend is the slice of the API client the review needs.
type Backend interface {
	DailySales(ctx context.Context, stationID, date string) (*models.DailySales, error)
	ReadingsForSettlement(ctx context.Context, stationID, date string) (*models.ReadingsForSettlement, error)
	CreateSettlement(ctx context.Context, stationID string, req models.SettlementCreateRequest) (*models.Settlement, error)
	ListSettlements(ctx context.Context, stationID string) ([]models.Settlement, error)
}

// Review is one station-day's settlement in progress: the manager selects
// the readings being reconciled, enters the physically collected amounts
// and submits. Expected totals and variance recompute from the selection.
type Review struct {
	backend Backend
	cache   query.Cache
	logger  *zap.Logger

	stationID string
	date      string

	daily    *models.DailySales
	readings models.ReadingsForSettlement
	selected map[string]bool
}

// NewReview builds a settlement review for a station and date (YYYY-MM-DD).
func NewReview(backend Backend, cache query.Cache, logger *zap.Logger, stationID, date string) *Review {
	return &Review{
		backend:   backend,
		cache:     cache,
		logger:    logger,
		stationID: stationID,
		date:      date,
		selected:  make(map[string]bool),
	}
}

// Load fetches the day's aggregates and settleable readings. Read failures
// degrade to an empty view and are only logged.
func (r *Review) Load(ctx context.Context) error {
	daily, err := r.backend.DailySales(ctx, r.stationID, r.date)
	if err != nil {
		r.logger.Warn("daily sales read failed, rendering empty", zap.Error(err))
		daily = &models.DailySales{StationID: r.stationID, Date: r.date}
	}
	r.daily = daily

	readings, err := r.backend.ReadingsForSettlement(ctx, r.stationID, r.date)
	if err != nil {
		r.logger.Warn("readings-for-settlement read failed, rendering empty", zap.Error(err))
		readings = &models.ReadingsForSettlement{}
	}
	r.readings = *readings
	return nil
}

// DailySales returns the loaded day aggregates.
func (r *Review) DailySales() *models.DailySales { return r.daily }

// UnlinkedReadings returns the readings not yet referenced by a settlement.
func (r *Review) UnlinkedReadings() []models.SettlementReading {
	return r.readings.Unlinked.Readings
}

// LinkedReadings returns readings an earlier settlement already covers.
func (r *Review) LinkedReadings() []models.SettlementReading {
	return r.readings.Linked.Readings
}

// ToggleReading flips a reading's selection.
func (r *Review) ToggleReading(readingID string) {
	r.selected[readingID] = !r.selected[readingID]
}

// SelectAll marks every unlinked reading selected.
func (r *Review) SelectAll() {
	for _, reading := range r.readings.Unlinked.Readings {
		r.selected[reading.ID] = true
	}
}

// Selected returns the selected readings in load order.
func (r *Review) Selected() []models.SettlementReading {
	var out []models.SettlementReading
	for _, reading := range r.readings.Unlinked.Readings {
		if r.selected[reading.ID] {
			out = append(out, reading)
		}
	}
	return out
}

// Expected recomputes the expected totals for the current selection.
func (r *Review) Expected() models.PaymentBreakdown {
	return ExpectedTotals(r.Selected())
}

// Submit validates and posts the settlement. A variance above WarnRatio on
// any channel needs confirm=true; the gate is advisory and the backend
// recomputes the authoritative figures either way. Finalizing requires a
// manager or owner operator when one is known.
func (r *Review) Submit(ctx context.Context, actual models.PaymentBreakdown, notes string, isFinal, confirm bool, op *session.Operator) (*models.Settlement, error) {
	selected := r.Selected()
	if len(selected) == 0 {
		return nil, ErrNoReadingsSelected
	}
	if actual.Total() == 0 {
		return nil, ErrNoAmountsEntered
	}
	if isFinal && op != nil && !op.CanFinalizeSettlement() {
		return nil, session.ErrFinalizeForbidden
	}

	expected := ExpectedTotals(selected)
	if channels := Warnings(actual, expected); len(channels) > 0 && !confirm {
		return nil, &VarianceError{Channels: channels}
	}

	readingIDs := make([]string, 0, len(selected))
	for _, reading := range selected {
		readingIDs = append(readingIDs, reading.ID)
	}

	req := models.SettlementCreateRequest{
		Date:       r.date,
		ReadingIDs: readingIDs,
		Actual: models.PaymentBreakdown{
			Cash:   sales.Round2(actual.Cash),
			Online: sales.Round2(actual.Online),
			Credit: sales.Round2(actual.Credit),
		},
		Expected: models.PaymentBreakdown{
			Cash:   sales.Round2(expected.Cash),
			Online: sales.Round2(expected.Online),
			Credit: sales.Round2(expected.Credit),
		},
		Notes:   notes,
		IsFinal: isFinal,
	}

	settlement, err := r.backend.CreateSettlement(ctx, r.stationID, req)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Invalidate(ctx, query.StationPrefix(r.stationID)); err != nil {
		r.logger.Warn("cache invalidation failed", zap.Error(err))
	}

	r.logger.Info("settlement submitted",
		zap.String("station_id", r.stationID),
		zap.String("date", r.date),
		zap.Bool("final", isFinal),
		zap.Int("readings", len(readingIDs)))

	return settlement, nil
}
