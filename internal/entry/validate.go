package entry

import (
	"fmt"
	"strings"

	"forecourt/internal/sales"
)

// Findings is what validation has to say about the session. Blocking
// findings stop submission before any network call; rollbacks are advisory
// markers for the entry list.
type Findings struct {
	NoReadings    bool
	MissingPrices []string
	AllocationErr error
	Rollbacks     []string
}

// Blocking returns the first blocking finding as an error, or nil when
// submission may proceed.
func (f Findings) Blocking() error {
	if f.NoReadings {
		return ErrNothingToSubmit
	}
	if len(f.MissingPrices) > 0 {
		return fmt.Errorf("%w for %s", ErrMissingPrice, strings.Join(f.MissingPrices, ", "))
	}
	return f.AllocationErr
}

// Validate inspects the current entries and allocation.
func (s *Session) Validate() Findings {
	entries := s.orderedEntries()
	summary := s.Summary()

	return Findings{
		NoReadings:    len(entries) == 0,
		MissingPrices: sales.MissingPriceTypes(entries, s.nozzles, s.prices),
		AllocationErr: sales.Validate(s.alloc, summary.TotalSaleValue),
		Rollbacks:     sales.Rollbacks(entries, s.nozzles, s.latest),
	}
}
