package sales

import (
	"math"
	"testing"
)

func entriesWithValues(values ...float64) []EntrySale {
	sales := make([]EntrySale, len(values))
	for i, v := range values {
		sales[i] = EntrySale{NozzleID: string(rune('a' + i)), SaleValue: v}
	}
	return sales
}

func TestDistributeSumsExactlyToAllocation(t *testing.T) {
	// values chosen to force non-terminating ratios
	entries := entriesWithValues(33.33, 33.33, 33.34)
	alloc := Allocation{
		Cash:   60,
		Online: 40,
	}

	payments := Distribute(entries, alloc)
	if len(payments) != 3 {
		t.Fatalf("expected 3 payments, got %d", len(payments))
	}

	var cash, online float64
	for _, p := range payments {
		cash += p.Cash
		online += p.Online
	}
	if math.Abs(cash-60) > 1e-9 {
		t.Fatalf("cash distributed %v != 60", cash)
	}
	if math.Abs(online-40) > 1e-9 {
		t.Fatalf("online distributed %v != 40", online)
	}
}

func TestDistributeCreditPerCreditorLine(t *testing.T) {
	entries := entriesWithValues(50, 30, 20)
	alloc := Allocation{
		Credits: []CreditLine{
			{CreditorID: "cr-1", Amount: 70},
			{CreditorID: "cr-2", Amount: 30},
		},
	}

	payments := Distribute(entries, alloc)

	perCreditor := map[string]float64{}
	for _, p := range payments {
		for _, line := range p.Credits {
			perCreditor[line.CreditorID] += line.Amount
		}
	}
	if math.Abs(perCreditor["cr-1"]-70) > 1e-9 {
		t.Fatalf("cr-1 distributed %v != 70", perCreditor["cr-1"])
	}
	if math.Abs(perCreditor["cr-2"]-30) > 1e-9 {
		t.Fatalf("cr-2 distributed %v != 30", perCreditor["cr-2"])
	}

	// proportional shares for the non-last entries
	if payments[0].Credits[0].Amount != 35 {
		t.Fatalf("expected first entry cr-1 share 35, got %v", payments[0].Credits[0].Amount)
	}
}

func TestDistributeProportionalShares(t *testing.T) {
	entries := entriesWithValues(75, 25)
	alloc := Allocation{Cash: 100}

	payments := Distribute(entries, alloc)
	if payments[0].Cash != 75 {
		t.Fatalf("expected 75 for first entry, got %v", payments[0].Cash)
	}
	if payments[1].Cash != 25 {
		t.Fatalf("expected 25 remainder for last entry, got %v", payments[1].Cash)
	}
}

func TestDistributeSingleEntryTakesEverything(t *testing.T) {
	payments := Distribute(entriesWithValues(123.45), Allocation{Cash: 100, Online: 23.45})
	if payments[0].Cash != 100 || payments[0].Online != 23.45 {
		t.Fatalf("single entry should absorb the full allocation, got %+v", payments[0])
	}
}

func TestDistributeNoEntries(t *testing.T) {
	if payments := Distribute(nil, Allocation{Cash: 100}); payments != nil {
		t.Fatalf("expected nil payments for no entries, got %v", payments)
	}
}
