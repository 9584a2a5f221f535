package dto

import "github.com/shopspring/decimal"

// moneyPlaces is the number of decimal places every amount and percentage is rendered with.
const moneyPlaces = 2

func money(d decimal.Decimal) string {
	return d.StringFixed(moneyPlaces)
}
