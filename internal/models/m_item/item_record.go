package m_item

import (
	"fmt"
	"time"

	"github.com/itemhive/catalog/internal/app/item/domain"
)

// ItemRecord is the materialized snapshot row of an item: the projection
// of its event history the read side serves from.
type ItemRecord struct {
	PK                string       `dynamodbav:"pk" json:"pk"`
	SK                string       `dynamodbav:"sk" json:"sk"`
	ItemID            string       `dynamodbav:"item_id" json:"itemId"`
	EventID           string       `dynamodbav:"event_id" json:"eventId"`
	ShopID            string       `dynamodbav:"shop_id" json:"shopId"`
	ShopsItemID       string       `dynamodbav:"shops_item_id" json:"shopsItemId"`
	ShopName          string       `dynamodbav:"shop_name" json:"shopName"`
	TitleNative       TextRecord   `dynamodbav:"title_native" json:"titleNative"`
	TitleDe           *string      `dynamodbav:"title_de,omitempty" json:"titleDe,omitempty"`
	TitleEn           *string      `dynamodbav:"title_en,omitempty" json:"titleEn,omitempty"`
	DescriptionNative *TextRecord  `dynamodbav:"description_native,omitempty" json:"descriptionNative,omitempty"`
	DescriptionDe     *string      `dynamodbav:"description_de,omitempty" json:"descriptionDe,omitempty"`
	DescriptionEn     *string      `dynamodbav:"description_en,omitempty" json:"descriptionEn,omitempty"`
	PriceNative       *PriceRecord `dynamodbav:"price_native,omitempty" json:"priceNative,omitempty"`
	PriceEur          *uint64      `dynamodbav:"price_eur,omitempty" json:"priceEur,omitempty"`
	PriceGbp          *uint64      `dynamodbav:"price_gbp,omitempty" json:"priceGbp,omitempty"`
	PriceUsd          *uint64      `dynamodbav:"price_usd,omitempty" json:"priceUsd,omitempty"`
	PriceAud          *uint64      `dynamodbav:"price_aud,omitempty" json:"priceAud,omitempty"`
	PriceCad          *uint64      `dynamodbav:"price_cad,omitempty" json:"priceCad,omitempty"`
	PriceNzd          *uint64      `dynamodbav:"price_nzd,omitempty" json:"priceNzd,omitempty"`
	State             string       `dynamodbav:"state" json:"state"`
	URL               string       `dynamodbav:"url" json:"url"`
	Images            []string     `dynamodbav:"images,omitempty" json:"images,omitempty"`
	Hash              string       `dynamodbav:"hash" json:"hash"`
	Created           time.Time    `dynamodbav:"created" json:"created"`
	Updated           time.Time    `dynamodbav:"updated" json:"updated"`
}

// Key returns the item key of the record.
func (r ItemRecord) Key() domain.ItemKey {
	return domain.NewItemKey(domain.ShopID(r.ShopID), domain.ShopsItemID(r.ShopsItemID))
}

// NewItemRecord projects a Created event record into the initial snapshot.
func NewItemRecord(event ItemEventRecord) (ItemRecord, error) {
	if event.EventType != string(domain.ItemEventCreated) {
		return ItemRecord{}, fmt.Errorf("cannot build snapshot from %s event", event.EventType)
	}
	if event.ShopName == nil || event.TitleNative == nil || event.State == nil || event.URL == nil {
		return ItemRecord{}, fmt.Errorf("created event record for %s is missing snapshot fields", event.Key())
	}
	return ItemRecord{
		PK:                event.PK,
		SK:                MaterializedSK,
		ItemID:            event.ItemID,
		EventID:           event.EventID,
		ShopID:            event.ShopID,
		ShopsItemID:       event.ShopsItemID,
		ShopName:          *event.ShopName,
		TitleNative:       *event.TitleNative,
		TitleDe:           event.TitleDe,
		TitleEn:           event.TitleEn,
		DescriptionNative: event.DescriptionNative,
		DescriptionDe:     event.DescriptionDe,
		DescriptionEn:     event.DescriptionEn,
		PriceNative:       event.PriceNative,
		PriceEur:          event.PriceEur,
		PriceGbp:          event.PriceGbp,
		PriceUsd:          event.PriceUsd,
		PriceAud:          event.PriceAud,
		PriceCad:          event.PriceCad,
		PriceNzd:          event.PriceNzd,
		State:             *event.State,
		URL:               *event.URL,
		Images:            event.Images,
		Hash:              event.Hash,
		Created:           event.Timestamp,
		Updated:           event.Timestamp,
	}, nil
}

// ToDomain reconstructs the domain aggregate from the snapshot.
func (r ItemRecord) ToDomain() (*domain.Item, error) {
	itemID, err := domain.ParseItemID(r.ItemID)
	if err != nil {
		return nil, err
	}
	eventID, err := domain.ParseEventID(r.EventID)
	if err != nil {
		return nil, err
	}
	nativeTitle, err := r.TitleNative.ToDomain()
	if err != nil {
		return nil, err
	}
	var nativeDescription *domain.LocalizedText
	if r.DescriptionNative != nil {
		description, err := r.DescriptionNative.ToDomain()
		if err != nil {
			return nil, err
		}
		nativeDescription = &description
	}
	var nativePrice *domain.Price
	if r.PriceNative != nil {
		price, err := r.PriceNative.ToDomain()
		if err != nil {
			return nil, err
		}
		nativePrice = &price
	}
	state, err := domain.ParseItemState(r.State)
	if err != nil {
		return nil, err
	}
	hash, err := domain.ParseItemHash(r.Hash)
	if err != nil {
		return nil, err
	}

	return domain.ReconstructItem(
		itemID,
		eventID,
		domain.ShopID(r.ShopID),
		domain.ShopsItemID(r.ShopsItemID),
		r.ShopName,
		nativeTitle,
		mergeLocalized(r.TitleDe, r.TitleEn),
		nativeDescription,
		mergeLocalized(r.DescriptionDe, r.DescriptionEn),
		nativePrice,
		mergeOtherPrices(r.PriceEur, r.PriceGbp, r.PriceUsd, r.PriceAud, r.PriceCad, r.PriceNzd),
		state,
		r.URL,
		r.Images,
		hash,
		r.Created,
		r.Updated,
	), nil
}

func mergeLocalized(de, en *string) map[domain.Language]string {
	out := make(map[domain.Language]string, 2)
	if de != nil {
		out[domain.LanguageDe] = *de
	}
	if en != nil {
		out[domain.LanguageEn] = *en
	}
	return out
}
