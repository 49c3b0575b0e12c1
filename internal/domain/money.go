package domain

import "fmt"

// Money is an amount in minor currency units (cents) plus an ISO currency code.
// All arithmetic on Money is integer arithmetic; division happens only when
// formatting for display, never while accumulating.
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

func NewMoney(amount int64, currency string) Money {
	return Money{Amount: amount, Currency: currency}
}

func (m Money) IsZero() bool {
	return m.Amount == 0
}

// SameCurrency reports whether two amounts can be summed. A zero amount with an
// empty currency code is treated as compatible with anything, since optional
// surcharges are often stored as empty Money values.
func (m Money) SameCurrency(other Money) bool {
	if m.Currency == "" || other.Currency == "" {
		return true
	}
	return m.Currency == other.Currency
}

func (m Money) String() string {
	return fmt.Sprintf("%d %s", m.Amount, m.Currency)
}
