package entry

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"forecourt/internal/models"
	"forecourt/internal/query"
	"forecourt/internal/sales"
)

var (
	// ErrNothingToSubmit is returned when no entered reading survives
	// validation.
	ErrNothingToSubmit = errors.New("entry: no readings to submit")
	// ErrMissingPrice blocks submission when an entered fuel type has no
	// effective price. A zero price is never a free sale.
	ErrMissingPrice = errors.New("entry: missing fuel price")
)

// Backend is the slice of the API client the entry session needs.
type Backend interface {
	ListPumps(ctx context.Context, stationID string) ([]models.Pump, error)
	ListPrices(ctx context.Context, stationID string) ([]models.FuelPrice, error)
	ListCreditors(ctx context.Context, stationID string) ([]models.Creditor, error)
	LatestReadings(ctx context.Context, nozzleIDs []string) (map[string]models.LatestReading, error)
	SubmitQuickEntry(ctx context.Context, req models.QuickEntryRequest) (*models.QuickEntryResponse, error)
}

// Session is one station-day's reading entry in progress. All derived
// values (summary, allocation) are recomputed from state on demand; the
// allocation rebalance runs on explicit reading events, never as a side
// effect of rendering.
type Session struct {
	backend  Backend
	cache    query.Cache
	cacheTTL time.Duration
	logger   *zap.Logger

	stationID string
	date      string

	pumps     []models.Pump
	nozzles   map[string]models.Nozzle
	order     []string
	prices    []models.FuelPrice
	creditors []models.Creditor
	latest    map[string]float64

	entries   map[string]sales.Entry
	alloc     sales.Allocation
	prevTotal float64
	editing   bool
}

// NewSession builds an entry session for a station and transaction date
// (YYYY-MM-DD).
func NewSession(backend Backend, cache query.Cache, cacheTTL time.Duration, logger *zap.Logger, stationID, date string) *Session {
	return &Session{
		backend:   backend,
		cache:     cache,
		cacheTTL:  cacheTTL,
		logger:    logger,
		stationID: stationID,
		date:      date,
		nozzles:   make(map[string]models.Nozzle),
		latest:    make(map[string]float64),
		entries:   make(map[string]sales.Entry),
	}
}

// Load fetches pumps, prices, creditors and the latest readings. List reads
// degrade to empty on failure: the session renders a no-data state and the
// error is only logged, matching the read-side policy.
func (s *Session) Load(ctx context.Context) error {
	if !s.loadCached(ctx, query.PumpsKey(s.stationID), &s.pumps, func(ctx context.Context) (interface{}, error) {
		return s.backend.ListPumps(ctx, s.stationID)
	}) {
		s.pumps = nil
	}

	s.nozzles = make(map[string]models.Nozzle)
	s.order = s.order[:0]
	for _, pump := range s.pumps {
		for _, nozzle := range pump.Nozzles {
			s.nozzles[nozzle.ID] = nozzle
			s.order = append(s.order, nozzle.ID)
		}
	}

	if !s.loadCached(ctx, query.PricesKey(s.stationID), &s.prices, func(ctx context.Context) (interface{}, error) {
		return s.backend.ListPrices(ctx, s.stationID)
	}) {
		s.prices = nil
	}
	if !s.loadCached(ctx, query.CreditorsKey(s.stationID), &s.creditors, func(ctx context.Context) (interface{}, error) {
		return s.backend.ListCreditors(ctx, s.stationID)
	}) {
		s.creditors = nil
	}

	s.latest = make(map[string]float64)
	var fetched map[string]models.LatestReading
	if s.loadCached(ctx, query.LatestKey(s.stationID), &fetched, func(ctx context.Context) (interface{}, error) {
		return s.backend.LatestReadings(ctx, s.order)
	}) {
		for id, reading := range fetched {
			s.latest[id] = reading.Reading
		}
	}

	return nil
}

// loadCached reads through the cache into out; a fetch failure logs and
// reports false so the caller can fall back to an empty view.
func (s *Session) loadCached(ctx context.Context, key string, out interface{}, fetch func(ctx context.Context) (interface{}, error)) bool {
	if hit, err := query.GetJSON(ctx, s.cache, key, out); err != nil {
		s.logger.Warn("query cache read failed", zap.String("key", key), zap.Error(err))
	} else if hit {
		return true
	}

	value, err := fetch(ctx)
	if err != nil {
		s.logger.Warn("backend read failed, rendering empty", zap.String("key", key), zap.Error(err))
		return false
	}
	if err := query.SetJSON(ctx, s.cache, key, value, s.cacheTTL); err != nil {
		s.logger.Warn("query cache write failed", zap.String("key", key), zap.Error(err))
	}

	if err := assignJSON(value, out); err != nil {
		s.logger.Warn("decode fetched value failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// assignJSON copies a fetched value into the typed destination via a JSON
// round trip, the same shape the cache path decodes from.
func assignJSON(value, out interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

// Pumps returns the loaded pump set.
func (s *Session) Pumps() []models.Pump { return s.pumps }

// Prices returns the loaded price list.
func (s *Session) Prices() []models.FuelPrice { return s.prices }

// Creditors returns the loaded creditor list.
func (s *Session) Creditors() []models.Creditor { return s.creditors }

// Nozzle looks up a loaded nozzle.
func (s *Session) Nozzle(id string) (models.Nozzle, bool) {
	n, ok := s.nozzles[id]
	return n, ok
}

// Comparison returns the opening reading the given nozzle is measured
// against.
func (s *Session) Comparison(nozzleID string) float64 {
	nozzle, ok := s.nozzles[nozzleID]
	if !ok {
		return 0
	}
	var latest *float64
	if v, ok := s.latest[nozzleID]; ok {
		latest = &v
	}
	return sales.ComparisonReading(latest, nozzle)
}

// SetReading records an entered closing value for a nozzle and rebalances
// the payment allocation against the new sale total.
func (s *Session) SetReading(nozzleID, value string) {
	entry := s.entries[nozzleID]
	entry.NozzleID = nozzleID
	entry.Value = strings.TrimSpace(value)
	s.entries[nozzleID] = entry
	s.recalc()
}

// SetPaymentType records the operator's channel note for a nozzle's
// reading. It is carried through to the submitted payload untouched; the
// allocation still owns the amounts, so no rebalance runs.
func (s *Session) SetPaymentType(nozzleID, paymentType string) {
	entry := s.entries[nozzleID]
	entry.NozzleID = nozzleID
	entry.PaymentType = strings.ToLower(strings.TrimSpace(paymentType))
	s.entries[nozzleID] = entry
}

// MarkQualityCheck toggles an entry between financial and quality-check.
func (s *Session) MarkQualityCheck(nozzleID string, qualityCheck bool) {
	entry := s.entries[nozzleID]
	entry.NozzleID = nozzleID
	if qualityCheck {
		entry.Kind = sales.KindQualityCheck
	} else {
		entry.Kind = sales.KindFinancial
	}
	s.entries[nozzleID] = entry
	s.recalc()
}

// SetAllocation replaces the payment allocation with an operator-edited
// one. While an edit is in progress the rebalancer keeps its hands off.
func (s *Session) SetAllocation(alloc sales.Allocation) {
	s.alloc = alloc
	s.editing = true
}

// FinishAllocationEdit re-enables automatic rebalancing on later sale-value
// increases.
func (s *Session) FinishAllocationEdit() {
	s.editing = false
	s.prevTotal = s.Summary().TotalSaleValue
}

func (s *Session) recalc() {
	total := s.Summary().TotalSaleValue
	s.alloc = sales.Rebalance(s.alloc, s.prevTotal, total, s.editing)
	s.prevTotal = total
}

// Allocation returns the current payment allocation.
func (s *Session) Allocation() sales.Allocation { return s.alloc }

// Summary recomputes the sale summary from current entries.
func (s *Session) Summary() sales.Summary {
	return sales.Summarize(s.orderedEntries(), s.nozzles, s.latest, s.prices)
}

func (s *Session) orderedEntries() []sales.Entry {
	entries := make([]sales.Entry, 0, len(s.entries))
	for _, id := range s.order {
		if entry, ok := s.entries[id]; ok && entry.Value != "" {
			entries = append(entries, entry)
		}
	}
	return entries
}
