// README: Common money value object used across modules.
package types

import "github.com/shopspring/decimal"

const DefaultCurrency = "USD"

type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// NewMoney rounds v to cents, half away from zero.
func NewMoney(v float64, currency string) Money {
	if currency == "" {
		currency = DefaultCurrency
	}
	return Money{Amount: decimal.NewFromFloat(v).Round(2), Currency: currency}
}

func (m Money) Float64() float64 {
	return m.Amount.InexactFloat64()
}

// RoundCents rounds a raw price to two decimal places.
func RoundCents(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
