package entity

import "github.com/shopspring/decimal"

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// MoneyPlaces is the number of decimal places kept on money and quantities
const MoneyPlaces = 2

// Round2 rounds a money amount to two decimal places
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// LineTotal computes price x quantity rounded to two places
func LineTotal(price, quantity decimal.Decimal) decimal.Decimal {
	return Round2(price.Mul(quantity))
}

func cloneDecimalPtr(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}

func cloneStringPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
