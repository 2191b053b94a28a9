package entry

import (
	"context"

	"go.uber.org/zap"

	"forecourt/internal/models"
	"forecourt/internal/query"
	"forecourt/internal/sales"
)

// Submit validates, distributes the payment allocation across entries and
// posts the quick-entry transaction. On success the station's cached reads
// are invalidated and the session's entries are cleared; the entered data
// exists nowhere else, so a failed submit leaves everything in place for a
// retry.
func (s *Session) Submit(ctx context.Context) (*models.QuickEntryResponse, error) {
	findings := s.Validate()
	if err := findings.Blocking(); err != nil {
		return nil, err
	}

	summary := s.Summary()
	payments := make(map[string]sales.EntryPayment, len(summary.Sales))
	for _, p := range sales.Distribute(summary.Sales, s.alloc) {
		payments[p.NozzleID] = p
	}

	var readings []models.QuickEntryReading
	for _, entry := range s.orderedEntries() {
		nozzle, ok := s.nozzles[entry.NozzleID]
		if !ok {
			continue
		}

		reading := models.QuickEntryReading{
			NozzleID:    entry.NozzleID,
			FuelType:    nozzle.FuelType,
			Reading:     sales.ParseReading(entry.Value),
			Sample:      entry.IsSample(),
			PaymentType: entry.PaymentType,
		}
		if !entry.IsSample() {
			price, _ := sales.PriceFor(nozzle.FuelType, s.prices)
			sale := sales.CalcSale(s.Comparison(entry.NozzleID), entry.Value, price)
			reading.Litres = sale.Litres
			reading.SaleValue = sale.SaleValue
			if p, ok := payments[entry.NozzleID]; ok {
				reading.Payment = models.PaymentBreakdown{
					Cash:   p.Cash,
					Online: p.Online,
					Credit: sales.Round2(p.CreditTotal()),
				}
			}
		}
		readings = append(readings, reading)
	}

	var creditAllocations []models.CreditAllocation
	for _, line := range s.alloc.Credits {
		if line.Amount > 0 {
			creditAllocations = append(creditAllocations, models.CreditAllocation{
				CreditorID: line.CreditorID,
				Amount:     sales.Round2(line.Amount),
			})
		}
	}

	req := models.QuickEntryRequest{
		StationID:       s.stationID,
		TransactionDate: s.date,
		Readings:        readings,
		PaymentBreakdown: models.PaymentBreakdown{
			Cash:   sales.Round2(s.alloc.Cash),
			Online: sales.Round2(s.alloc.Online),
			Credit: sales.Round2(s.alloc.CreditTotal()),
		},
		CreditAllocations: creditAllocations,
		StationPrices:     s.prices,
	}

	resp, err := s.backend.SubmitQuickEntry(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Invalidate(ctx, query.StationPrefix(s.stationID)); err != nil {
		s.logger.Warn("cache invalidation failed", zap.Error(err))
	}
	if err := s.cache.Invalidate(ctx, query.StationsKey()); err != nil {
		s.logger.Warn("cache invalidation failed", zap.Error(err))
	}

	s.logger.Info("quick entry submitted",
		zap.String("station_id", s.stationID),
		zap.String("date", s.date),
		zap.Int("readings", len(readings)),
		zap.Float64("sale_value", summary.TotalSaleValue))

	s.entries = make(map[string]sales.Entry)
	s.alloc = sales.Allocation{}
	s.prevTotal = 0
	s.editing = false

	return resp, nil
}
