package domain

import "fmt"

// MonetaryAmount is a non-negative count of minor currency units (cents).
// Arithmetic on it never wraps: subtraction below zero and multiplication
// beyond uint64 fail with typed errors.
type MonetaryAmount uint64

// Add returns the sum, failing on uint64 overflow.
func (a MonetaryAmount) Add(other MonetaryAmount) (MonetaryAmount, error) {
	sum := a + other
	if sum < a {
		return 0, &MonetaryAmountOverflowError{}
	}
	return sum, nil
}

// Sub returns the difference, failing instead of wrapping when the
// result would be negative.
func (a MonetaryAmount) Sub(other MonetaryAmount) (MonetaryAmount, error) {
	if other > a {
		return 0, &NegativeMonetaryAmountError{}
	}
	return a - other, nil
}

// NegativeMonetaryAmountError signals an operation that would have
// produced a negative amount of money.
type NegativeMonetaryAmountError struct{}

func (e *NegativeMonetaryAmountError) Error() string {
	return "monetary amount must not be negative"
}

// MonetaryAmountOverflowError signals an arithmetic result that no
// longer fits a MonetaryAmount.
type MonetaryAmountOverflowError struct{}

func (e *MonetaryAmountOverflowError) Error() string {
	return "monetary amount overflow"
}

// Price is an amount of money tagged with its currency. It is a value:
// converting the currency yields a new Price, never an in-place change.
type Price struct {
	Amount   MonetaryAmount
	Currency Currency
}

// NewPrice builds a Price.
func NewPrice(amount MonetaryAmount, currency Currency) Price {
	return Price{Amount: amount, Currency: currency}
}

// Exchanged returns this price converted into the target currency at the
// given rates.
func (p Price) Exchanged(fx FxRate, target Currency) (Price, error) {
	amount, err := fx.Exchange(p.Currency, target, p.Amount)
	if err != nil {
		return Price{}, err
	}
	return Price{Amount: amount, Currency: target}, nil
}

func (p Price) String() string {
	return fmt.Sprintf("%d %s", p.Amount, p.Currency)
}
