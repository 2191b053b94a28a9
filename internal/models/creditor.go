package models

// Creditor is a credit customer the station sells fuel to on account.
type Creditor struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Phone          string  `json:"phone,omitempty"`
	CreditLimit    float64 `json:"creditLimit"`
	CurrentBalance float64 `json:"currentBalance"`
}

// AvailableCredit returns the remaining headroom under the credit limit.
func (c Creditor) AvailableCredit() float64 {
	return c.CreditLimit - c.CurrentBalance
}

type CreditorCreateRequest struct {
	Name        string  `json:"name"`
	Phone       string  `json:"phone,omitempty"`
	CreditLimit float64 `json:"creditLimit"`
}
