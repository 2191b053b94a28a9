package sales

import "errors"

// MatchTolerance is how far the allocated total may drift from the sale
// value before submission is blocked.
const MatchTolerance = 0.01

var (
	// ErrAllocationMismatch is returned when cash+online+credit does not
	// match the sale value within MatchTolerance.
	ErrAllocationMismatch = errors.New("sales: allocation must match sale value")
	// ErrNothingAllocated is returned when a positive sale has a zero
	// allocation.
	ErrNothingAllocated = errors.New("sales: nothing allocated against sale value")
	// ErrCreditorRequired is returned when a funded credit line has no
	// creditor selected.
	ErrCreditorRequired = errors.New("sales: credit line requires a creditor")
)

// CreditLine is one creditor's share of the credit allocation.
type CreditLine struct {
	CreditorID string
	Amount     float64
}

// Allocation is the operator's split of the sale total across payment
// channels.
type Allocation struct {
	Cash    float64
	Online  float64
	Credits []CreditLine
}

// CreditTotal sums the credit lines.
func (a Allocation) CreditTotal() float64 {
	var total float64
	for _, line := range a.Credits {
		total += line.Amount
	}
	return total
}

// Total is the full allocated amount.
func (a Allocation) Total() float64 {
	return a.Cash + a.Online + a.CreditTotal()
}

// IsZero reports whether nothing has been allocated yet.
func (a Allocation) IsZero() bool {
	return a.Total() == 0
}

// Rebalance adjusts an allocation for a changed sale total. Cash is the
// default sink: a first non-zero total seeds cash, and a later increase
// rescales every component proportionally with the rounding remainder
// absorbed into cash. Decreases and operator-edited allocations are left
// untouched; the operator resolves those explicitly.
func Rebalance(a Allocation, prevTotal, newTotal float64, editing bool) Allocation {
	if editing {
		return a
	}
	if newTotal <= 0 {
		return a
	}
	if a.IsZero() {
		a.Cash = Round2(newTotal)
		return a
	}
	if newTotal <= prevTotal {
		return a
	}

	factor := newTotal / a.Total()
	rebalanced := Allocation{
		Online:  Round2(a.Online * factor),
		Credits: make([]CreditLine, len(a.Credits)),
	}
	creditSum := 0.0
	for i, line := range a.Credits {
		line.Amount = Round2(line.Amount * factor)
		rebalanced.Credits[i] = line
		creditSum += line.Amount
	}
	rebalanced.Cash = Round2(newTotal - rebalanced.Online - creditSum)
	return rebalanced
}

// Validate blocks submission until the allocation reconciles with the sale
// value: the totals must agree within MatchTolerance, something must be
// allocated whenever there is a sale, and every funded credit line needs a
// creditor.
func Validate(a Allocation, saleTotal float64) error {
	allocated := a.Total()
	if saleTotal > 0 && allocated <= 0 {
		return ErrNothingAllocated
	}
	diff := allocated - saleTotal
	if diff < 0 {
		diff = -diff
	}
	if diff > MatchTolerance {
		return ErrAllocationMismatch
	}
	for _, line := range a.Credits {
		if line.Amount > 0 && line.CreditorID == "" {
			return ErrCreditorRequired
		}
	}
	return nil
}
