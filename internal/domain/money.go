package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Currency.String(), m.Amount.StringFixed(2))
}

// RoundPrice rounds half to even at two decimal places.
func RoundPrice(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(2)
}
