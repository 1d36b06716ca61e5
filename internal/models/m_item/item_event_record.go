package m_item

import (
	"fmt"
	"time"

	"github.com/itemhive/catalog/internal/app/item/domain"
)

// ItemEventRecord is the persisted form of one domain event: an append-only
// row keyed by the item and the event timestamp. Only the fields the
// payload variant carries are set; the rest stay absent in storage.
type ItemEventRecord struct {
	PK                string       `dynamodbav:"pk" json:"pk"`
	SK                string       `dynamodbav:"sk" json:"sk"`
	ItemID            string       `dynamodbav:"item_id" json:"itemId"`
	EventID           string       `dynamodbav:"event_id" json:"eventId"`
	EventType         string       `dynamodbav:"event_type" json:"eventType"`
	ShopID            string       `dynamodbav:"shop_id" json:"shopId"`
	ShopsItemID       string       `dynamodbav:"shops_item_id" json:"shopsItemId"`
	ShopName          *string      `dynamodbav:"shop_name,omitempty" json:"shopName,omitempty"`
	TitleNative       *TextRecord  `dynamodbav:"title_native,omitempty" json:"titleNative,omitempty"`
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
	State             *string      `dynamodbav:"state,omitempty" json:"state,omitempty"`
	URL               *string      `dynamodbav:"url,omitempty" json:"url,omitempty"`
	Images            []string     `dynamodbav:"images,omitempty" json:"images,omitempty"`
	Hash              string       `dynamodbav:"hash" json:"hash"`
	Timestamp         time.Time    `dynamodbav:"timestamp" json:"timestamp"`
}

// Key returns the item key of the record.
func (r ItemEventRecord) Key() domain.ItemKey {
	return domain.NewItemKey(domain.ShopID(r.ShopID), domain.ShopsItemID(r.ShopsItemID))
}

// NewItemEventRecord converts a domain event into its persisted form.
func NewItemEventRecord(event domain.ItemEvent) (ItemEventRecord, error) {
	if event.Timestamp.IsZero() {
		return ItemEventRecord{}, fmt.Errorf("event %s has no timestamp", event.EventID)
	}

	key := event.Key()
	record := ItemEventRecord{
		PK:          ItemPK(key),
		SK:          EventSK(event.Timestamp, event.EventID.String()),
		ItemID:      event.AggregateID.String(),
		EventID:     event.EventID.String(),
		EventType:   string(event.Payload.EventType()),
		ShopID:      key.ShopID.String(),
		ShopsItemID: key.ShopsItemID.String(),
		Hash:        event.Payload.ItemHash().String(),
		Timestamp:   event.Timestamp.UTC(),
	}

	switch payload := event.Payload.(type) {
	case domain.ItemCreatedPayload:
		record.ShopName = &payload.ShopName
		nativeTitle := NewTextRecord(payload.NativeTitle)
		record.TitleNative = &nativeTitle
		record.TitleDe, record.TitleEn = splitLocalized(payload.OtherTitles)
		if payload.NativeDescription != nil {
			nativeDescription := NewTextRecord(*payload.NativeDescription)
			record.DescriptionNative = &nativeDescription
		}
		record.DescriptionDe, record.DescriptionEn = splitLocalized(payload.OtherDescriptions)
		if payload.NativePrice != nil {
			price := NewPriceRecord(*payload.NativePrice)
			record.PriceNative = &price
		}
		record.PriceEur, record.PriceGbp, record.PriceUsd, record.PriceAud, record.PriceCad, record.PriceNzd = splitOtherPrices(payload.OtherPrices)
		state := payload.State.String()
		record.State = &state
		record.URL = &payload.URL
		record.Images = payload.Images
	case domain.ItemStateChangedPayload:
		state := payload.State.String()
		record.State = &state
	case domain.ItemPriceChangedPayload:
		price := NewPriceRecord(payload.Price)
		record.PriceNative = &price
		record.PriceEur, record.PriceGbp, record.PriceUsd, record.PriceAud, record.PriceCad, record.PriceNzd = splitOtherPrices(payload.OtherPrices)
	default:
		return ItemEventRecord{}, fmt.Errorf("%w: %T", domain.ErrUnknownEventType, event.Payload)
	}

	return record, nil
}

func splitLocalized(texts map[domain.Language]string) (de, en *string) {
	if text, ok := texts[domain.LanguageDe]; ok {
		de = &text
	}
	if text, ok := texts[domain.LanguageEn]; ok {
		en = &text
	}
	return de, en
}
