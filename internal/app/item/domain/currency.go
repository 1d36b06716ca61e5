package domain

import "fmt"

// Currency is the closed set of currencies the catalog prices items in.
type Currency int

const (
	CurrencyEur Currency = iota
	CurrencyGbp
	CurrencyUsd
	CurrencyAud
	CurrencyCad
	CurrencyNzd
)

// AllCurrencies lists every supported currency in a fixed order.
func AllCurrencies() []Currency {
	return []Currency{CurrencyEur, CurrencyGbp, CurrencyUsd, CurrencyAud, CurrencyCad, CurrencyNzd}
}

// Code returns the ISO 4217 code.
func (c Currency) Code() string {
	switch c {
	case CurrencyEur:
		return "EUR"
	case CurrencyGbp:
		return "GBP"
	case CurrencyUsd:
		return "USD"
	case CurrencyAud:
		return "AUD"
	case CurrencyCad:
		return "CAD"
	case CurrencyNzd:
		return "NZD"
	default:
		return "UNKNOWN"
	}
}

func (c Currency) String() string { return c.Code() }

// ParseCurrency maps an ISO 4217 code onto a Currency.
func ParseCurrency(code string) (Currency, error) {
	switch code {
	case "EUR":
		return CurrencyEur, nil
	case "GBP":
		return CurrencyGbp, nil
	case "USD":
		return CurrencyUsd, nil
	case "AUD":
		return CurrencyAud, nil
	case "CAD":
		return CurrencyCad, nil
	case "NZD":
		return CurrencyNzd, nil
	default:
		return 0, fmt.Errorf("unsupported currency code %q", code)
	}
}
