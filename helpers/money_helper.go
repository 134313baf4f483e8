package helpers

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RoundCurrency rounds an amount to currency precision (2 decimal places,
// half away from zero). Intermediate engine math stays at full precision;
// this is applied only when a record is finalized.
func RoundCurrency(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ClampDecimal bounds v to [min, max]; nil bounds are open.
func ClampDecimal(v decimal.Decimal, min, max *decimal.Decimal) decimal.Decimal {
	if min != nil && v.LessThan(*min) {
		return *min
	}
	if max != nil && v.GreaterThan(*max) {
		return *max
	}
	return v
}

// FormatMoney formats an amount as a currency string for log output
func FormatMoney(d decimal.Decimal, currency string) string {
	return fmt.Sprintf("%s%s", getCurrencySymbol(currency), d.StringFixed(2))
}

// getCurrencySymbol returns the symbol for a given currency code
func getCurrencySymbol(currency string) string {
	symbols := map[string]string{
		"USD": "$",
		"EUR": "€",
		"GBP": "£",
		"CAD": "C$",
	}
	if symbol, ok := symbols[currency]; ok {
		return symbol
	}
	return currency + " "
}

// DecimalPtr returns a pointer to d, for optional rule fields.
func DecimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

// IntPtr returns a pointer to i, for optional rule fields.
func IntPtr(i int) *int {
	return &i
}
