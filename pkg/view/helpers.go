package view

import "github.com/shopspring/decimal"

// MoneyFromCents converts cents to a human-readable currency string.
// E.g., 1000 EUR -> "€10.00"
func MoneyFromCents(cents int, currency string) string {
	return currencySymbol(currency) + AmountFromCents(cents)
}

// AmountFromCents formats cents as a plain decimal amount, e.g. 1999 -> "19.99".
func AmountFromCents(cents int) string {
	return decimal.New(int64(cents), -2).StringFixed(2)
}

func currencySymbol(code string) string {
	switch code {
	case "EUR":
		return "€"
	case "USD":
		return "$"
	case "GBP":
		return "£"
	case "JPY":
		return "¥"
	case "TRY":
		return "₺"
	default:
		return code + " "
	}
}
