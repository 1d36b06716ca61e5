// Package queue adapts SQS-delivered messages onto the item use cases.
// Handlers report partial failure through batch item failures so the
// queue redelivers only the failed messages.
package queue

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/itemhive/catalog/internal/app/item/contracts"
	"github.com/itemhive/catalog/internal/app/item/domain"
)

// PriceData is the wire form of a price: ISO 4217 currency code and the
// amount in minor units.
type PriceData struct {
	Currency string `json:"currency"`
	Amount   uint64 `json:"amount"`
}

// NewPriceDataFromMajor builds PriceData from a major-unit amount, e.g.
// 37.69 EUR -> 3769. Fractions beyond the minor unit are truncated.
func NewPriceDataFromMajor(currency string, major float64) (PriceData, error) {
	if major < 0 {
		return PriceData{}, &domain.NegativeMonetaryAmountError{}
	}
	minor := decimal.NewFromFloat(major).Shift(2).Truncate(0)
	return PriceData{Currency: currency, Amount: uint64(minor.IntPart())}, nil
}

// ToDomain parses the wire price into a domain price.
func (d PriceData) ToDomain() (domain.Price, error) {
	currency, err := domain.ParseCurrency(d.Currency)
	if err != nil {
		return domain.Price{}, err
	}
	return domain.Price{
		Amount:   domain.MonetaryAmount(d.Amount),
		Currency: currency,
	}, nil
}

// CreateItemCommandData is the wire form of a create command. Title and
// description are keyed by ISO 639-1 language code.
type CreateItemCommandData struct {
	ShopID      string            `json:"shop_id"`
	ShopsItemID string            `json:"shops_item_id"`
	ShopName    string            `json:"shop_name"`
	Title       map[string]string `json:"title,omitempty"`
	Description map[string]string `json:"description,omitempty"`
	Price       *PriceData        `json:"price,omitempty"`
	State       string            `json:"state"`
	URL         string            `json:"url"`
	Images      []string          `json:"images,omitempty"`
}

// Key returns the item key the command addresses.
func (d CreateItemCommandData) Key() domain.ItemKey {
	return domain.ItemKey{
		ShopID:      domain.ShopID(d.ShopID),
		ShopsItemID: domain.ShopsItemID(d.ShopsItemID),
	}
}

// ToCommand parses the wire command into the application command.
func (d CreateItemCommandData) ToCommand() (contracts.CreateItemCommand, error) {
	state, err := domain.ParseItemState(d.State)
	if err != nil {
		return contracts.CreateItemCommand{}, err
	}

	var price *domain.Price
	if d.Price != nil {
		parsed, err := d.Price.ToDomain()
		if err != nil {
			return contracts.CreateItemCommand{}, err
		}
		price = &parsed
	}

	nativeTitle, otherTitles, err := splitLocalizedData(d.Title)
	if err != nil {
		return contracts.CreateItemCommand{}, fmt.Errorf("title: %w", err)
	}
	nativeDescription, otherDescriptions, err := splitLocalizedData(d.Description)
	if err != nil {
		return contracts.CreateItemCommand{}, fmt.Errorf("description: %w", err)
	}

	command := contracts.CreateItemCommand{
		ShopID:            domain.ShopID(d.ShopID),
		ShopsItemID:       domain.ShopsItemID(d.ShopsItemID),
		ShopName:          d.ShopName,
		OtherTitles:       otherTitles,
		NativeDescription: nativeDescription,
		OtherDescriptions: otherDescriptions,
		Price:             price,
		State:             state,
		URL:               d.URL,
		Images:            d.Images,
	}
	if nativeTitle != nil {
		command.NativeTitle = *nativeTitle
	}
	return command, nil
}

// UpdateItemCommandData is the wire form of an update command. Absent
// fields were not observed by the scraper.
type UpdateItemCommandData struct {
	ShopID      string     `json:"shop_id"`
	ShopsItemID string     `json:"shops_item_id"`
	Price       *PriceData `json:"price,omitempty"`
	State       *string    `json:"state,omitempty"`
}

// Key returns the item key the command addresses.
func (d UpdateItemCommandData) Key() domain.ItemKey {
	return domain.ItemKey{
		ShopID:      domain.ShopID(d.ShopID),
		ShopsItemID: domain.ShopsItemID(d.ShopsItemID),
	}
}

// ToCommand parses the wire command into the application command.
func (d UpdateItemCommandData) ToCommand() (contracts.UpdateItemCommand, error) {
	var command contracts.UpdateItemCommand
	if d.Price != nil {
		price, err := d.Price.ToDomain()
		if err != nil {
			return contracts.UpdateItemCommand{}, err
		}
		command.Price = &price
	}
	if d.State != nil {
		state, err := domain.ParseItemState(*d.State)
		if err != nil {
			return contracts.UpdateItemCommand{}, err
		}
		command.State = &state
	}
	return command, nil
}

// splitLocalizedData separates the shop's native text from the
// translated ones. German shops dominate the catalog, so German is the
// native pick when present, English otherwise.
func splitLocalizedData(texts map[string]string) (*domain.LocalizedText, map[domain.Language]string, error) {
	if len(texts) == 0 {
		return nil, nil, nil
	}

	parsed := make(map[domain.Language]string, len(texts))
	for code, text := range texts {
		language, err := domain.ParseLanguage(code)
		if err != nil {
			return nil, nil, err
		}
		parsed[language] = text
	}

	for _, language := range []domain.Language{domain.LanguageDe, domain.LanguageEn} {
		if text, ok := parsed[language]; ok {
			delete(parsed, language)
			if len(parsed) == 0 {
				parsed = nil
			}
			return &domain.LocalizedText{Language: language, Text: text}, parsed, nil
		}
	}
	return nil, parsed, nil
}
