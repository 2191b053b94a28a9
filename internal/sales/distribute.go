package sales

// EntryPayment is one reading's share of the aggregate payment allocation.
type EntryPayment struct {
	NozzleID string
	Cash     float64
	Online   float64
	Credits  []CreditLine
}

// CreditTotal sums this entry's per-creditor shares.
func (p EntryPayment) CreditTotal() float64 {
	var total float64
	for _, line := range p.Credits {
		total += line.Amount
	}
	return total
}

// Distribute splits the aggregate allocation across entries in proportion
// to each entry's sale value. Every entry but the last rounds to two
// decimals; the last takes the remainder so the per-entry amounts sum to
// the allocated total despite rounding. Credit is split the same way,
// independently per creditor line.
func Distribute(entrySales []EntrySale, alloc Allocation) []EntryPayment {
	n := len(entrySales)
	if n == 0 {
		return nil
	}

	var totalSale float64
	for _, s := range entrySales {
		totalSale += s.SaleValue
	}

	payments := make([]EntryPayment, n)
	for i, s := range entrySales {
		payments[i].NozzleID = s.NozzleID
	}

	assign := func(methodTotal float64, set func(i int, amount float64)) {
		if methodTotal == 0 {
			return
		}
		ratio := 0.0
		if totalSale > 0 {
			ratio = methodTotal / totalSale
		}
		var distributed float64
		for i, s := range entrySales {
			if i == n-1 {
				set(i, Round2(methodTotal-distributed))
				return
			}
			amount := Round2(s.SaleValue * ratio)
			distributed += amount
			set(i, amount)
		}
	}

	assign(alloc.Cash, func(i int, amount float64) { payments[i].Cash = amount })
	assign(alloc.Online, func(i int, amount float64) { payments[i].Online = amount })

	for _, line := range alloc.Credits {
		line := line
		assign(line.Amount, func(i int, amount float64) {
			payments[i].Credits = append(payments[i].Credits, CreditLine{
				CreditorID: line.CreditorID,
				Amount:     amount,
			})
		})
	}

	return payments
}
