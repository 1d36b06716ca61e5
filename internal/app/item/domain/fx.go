package domain

import (
	"fmt"
	"math/bits"
)

// fxScale is the fixed-point scale of exchange rates: a stored rate of
// 1_083_000 means 1.083.
const fxScale uint64 = 1_000_000

// FxRate converts monetary amounts between currencies.
type FxRate interface {
	// Exchange converts amount from one currency into another,
	// rounding half-up. It fails with a *MonetaryAmountOverflowError
	// when the scaled product is not representable.
	Exchange(from, to Currency, amount MonetaryAmount) (MonetaryAmount, error)

	// ExchangeAll converts amount into every supported currency,
	// short-circuiting on the first overflow.
	ExchangeAll(from Currency, amount MonetaryAmount) (map[Currency]MonetaryAmount, error)
}

// FixedFxRate is an FxRate backed by a static rate table. Rates are a
// snapshot, not fetched live; drift between observations is accepted.
type FixedFxRate struct {
	rates map[Currency]map[Currency]uint64
}

// NewFixedFxRate returns the FxRate used across the catalog.
func NewFixedFxRate() *FixedFxRate {
	return &FixedFxRate{rates: map[Currency]map[Currency]uint64{
		CurrencyEur: {CurrencyGbp: 856_000, CurrencyUsd: 1_083_000, CurrencyAud: 1_652_000, CurrencyCad: 1_472_000, CurrencyNzd: 1_787_000},
		CurrencyGbp: {CurrencyEur: 1_168_000, CurrencyUsd: 1_265_000, CurrencyAud: 1_930_000, CurrencyCad: 1_720_000, CurrencyNzd: 2_088_000},
		CurrencyUsd: {CurrencyEur: 923_000, CurrencyGbp: 790_000, CurrencyAud: 1_525_000, CurrencyCad: 1_359_000, CurrencyNzd: 1_650_000},
		CurrencyAud: {CurrencyEur: 605_000, CurrencyGbp: 518_000, CurrencyUsd: 656_000, CurrencyCad: 891_000, CurrencyNzd: 1_082_000},
		CurrencyCad: {CurrencyEur: 679_000, CurrencyGbp: 581_000, CurrencyUsd: 736_000, CurrencyAud: 1_122_000, CurrencyNzd: 1_214_000},
		CurrencyNzd: {CurrencyEur: 560_000, CurrencyGbp: 479_000, CurrencyUsd: 606_000, CurrencyAud: 924_000, CurrencyCad: 824_000},
	}}
}

// Exchange implements FxRate.
func (f *FixedFxRate) Exchange(from, to Currency, amount MonetaryAmount) (MonetaryAmount, error) {
	if from == to {
		return amount, nil
	}
	rate, ok := f.rates[from][to]
	if !ok {
		return 0, fmt.Errorf("no exchange rate from %s to %s", from, to)
	}
	return applyRate(amount, rate)
}

// ExchangeAll implements FxRate.
func (f *FixedFxRate) ExchangeAll(from Currency, amount MonetaryAmount) (map[Currency]MonetaryAmount, error) {
	out := make(map[Currency]MonetaryAmount, len(AllCurrencies()))
	for _, to := range AllCurrencies() {
		converted, err := f.Exchange(from, to, amount)
		if err != nil {
			return nil, err
		}
		out[to] = converted
	}
	return out, nil
}

// applyRate computes amount*rate/fxScale exactly in 128 bits, rounding
// half-up. The division cannot lose the high word unless the quotient
// itself exceeds uint64, which is reported as overflow.
func applyRate(amount MonetaryAmount, rate uint64) (MonetaryAmount, error) {
	hi, lo := bits.Mul64(uint64(amount), rate)
	lo, carry := bits.Add64(lo, fxScale/2, 0)
	hi += carry
	if hi >= fxScale {
		return 0, &MonetaryAmountOverflowError{}
	}
	quot, _ := bits.Div64(hi, lo, fxScale)
	return MonetaryAmount(quot), nil
}
