package m_item

import (
	"github.com/itemhive/catalog/internal/app/item/domain"
)

// PriceRecord is the stored/wire representation of a price: the currency
// code plus an unscaled integer amount in minor units.
type PriceRecord struct {
	Currency string `dynamodbav:"currency" json:"currency"`
	Amount   uint64 `dynamodbav:"amount" json:"amount"`
}

// NewPriceRecord converts a domain price.
func NewPriceRecord(p domain.Price) PriceRecord {
	return PriceRecord{Currency: p.Currency.Code(), Amount: uint64(p.Amount)}
}

// ToDomain parses the record back into a domain price.
func (r PriceRecord) ToDomain() (domain.Price, error) {
	currency, err := domain.ParseCurrency(r.Currency)
	if err != nil {
		return domain.Price{}, err
	}
	return domain.NewPrice(domain.MonetaryAmount(r.Amount), currency), nil
}

// TextRecord is the stored representation of localized display text.
type TextRecord struct {
	Language string `dynamodbav:"language" json:"language"`
	Text     string `dynamodbav:"text" json:"text"`
}

// NewTextRecord converts domain localized text.
func NewTextRecord(t domain.LocalizedText) TextRecord {
	return TextRecord{Language: t.Language.String(), Text: t.Text}
}

// ToDomain parses the record back into domain localized text.
func (r TextRecord) ToDomain() (domain.LocalizedText, error) {
	language, err := domain.ParseLanguage(r.Language)
	if err != nil {
		return domain.LocalizedText{}, err
	}
	return domain.LocalizedText{Language: language, Text: r.Text}, nil
}

// splitOtherPrices flattens the per-currency map into one column per
// supported currency, keeping the snapshot row queryable by
// single-currency projections.
func splitOtherPrices(prices map[domain.Currency]domain.MonetaryAmount) (eur, gbp, usd, aud, cad, nzd *uint64) {
	pick := func(c domain.Currency) *uint64 {
		if amount, ok := prices[c]; ok {
			v := uint64(amount)
			return &v
		}
		return nil
	}
	return pick(domain.CurrencyEur), pick(domain.CurrencyGbp), pick(domain.CurrencyUsd),
		pick(domain.CurrencyAud), pick(domain.CurrencyCad), pick(domain.CurrencyNzd)
}

// mergeOtherPrices is the inverse of splitOtherPrices.
func mergeOtherPrices(eur, gbp, usd, aud, cad, nzd *uint64) map[domain.Currency]domain.MonetaryAmount {
	out := make(map[domain.Currency]domain.MonetaryAmount, 6)
	put := func(c domain.Currency, v *uint64) {
		if v != nil {
			out[c] = domain.MonetaryAmount(*v)
		}
	}
	put(domain.CurrencyEur, eur)
	put(domain.CurrencyGbp, gbp)
	put(domain.CurrencyUsd, usd)
	put(domain.CurrencyAud, aud)
	put(domain.CurrencyCad, cad)
	put(domain.CurrencyNzd, nzd)
	return out
}
