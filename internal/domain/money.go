package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

func NewMoney(amount decimal.Decimal, unit currency.Unit) Money {
	return Money{Amount: amount, Currency: unit}
}

func USD(amount string) Money {
	return Money{Amount: decimal.RequireFromString(amount), Currency: currency.USD}
}

func (m Money) Mul(n int) Money {
	return Money{Amount: m.Amount.Mul(decimal.NewFromInt(int64(n))), Currency: m.Currency}
}

func (m Money) IsNegative() bool {
	return m.Amount.IsNegative()
}

// Display renders the amount with two decimals, "$140.00" for USD and
// "EUR 12.50" for any other currency.
func (m Money) Display() string {
	if m.Currency == currency.USD {
		return "$" + m.Amount.StringFixed(2)
	}
	return m.Currency.String() + " " + m.Amount.StringFixed(2)
}

// WireString is the shortest decimal form of the amount ("140", "15.5").
func (m Money) WireString() string {
	return m.Amount.String()
}
