package settlement

import (
	"fmt"
	"math"
	"strings"

	"forecourt/internal/models"
)

// WarnRatio is the variance-to-expected ratio above which a channel needs
// explicit confirmation before submission.
const WarnRatio = 0.05

// ExpectedTotals sums the payment breakdown of each distinct parent
// transaction exactly once. Several readings routinely share one
// transaction; double counting its breakdown would inflate the expected
// side of the reconciliation.
func ExpectedTotals(readings []models.SettlementReading) models.PaymentBreakdown {
	var expected models.PaymentBreakdown
	seen := make(map[string]bool, len(readings))
	for _, reading := range readings {
		if reading.TransactionID == "" || seen[reading.TransactionID] {
			continue
		}
		seen[reading.TransactionID] = true
		expected.Cash += reading.Payment.Cash
		expected.Online += reading.Payment.Online
		expected.Credit += reading.Payment.Credit
	}
	return expected
}

// Variance is actual minus expected per channel. The client's value is
// advisory; the backend recomputes the authoritative one.
func Variance(actual, expected models.PaymentBreakdown) models.PaymentBreakdown {
	return models.PaymentBreakdown{
		Cash:   actual.Cash - expected.Cash,
		Online: actual.Online - expected.Online,
		Credit: actual.Credit - expected.Credit,
	}
}

// Warnings lists the channels whose variance exceeds WarnRatio of the
// expected value. A channel with zero expected warns only when the actual
// amount is non-zero.
func Warnings(actual, expected models.PaymentBreakdown) []string {
	var channels []string
	check := func(name string, act, exp float64) {
		if exp == 0 {
			if act != 0 {
				channels = append(channels, name)
			}
			return
		}
		if math.Abs(act-exp)/math.Abs(exp) > WarnRatio {
			channels = append(channels, name)
		}
	}
	check("cash", actual.Cash, expected.Cash)
	check("online", actual.Online, expected.Online)
	check("credit", actual.Credit, expected.Credit)
	return channels
}

// VarianceError asks the caller to confirm an out-of-band variance before
// resubmitting with confirmation.
type VarianceError struct {
	Channels []string
}

func (e *VarianceError) Error() string {
	return fmt.Sprintf("settlement: variance above %.0f%% on %s, confirmation required",
		WarnRatio*100, strings.Join(e.Channels, ", "))
}
