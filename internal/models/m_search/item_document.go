package m_search

import (
	"fmt"
	"time"

	"github.com/itemhive/catalog/internal/app/item/domain"
	"github.com/itemhive/catalog/internal/models/m_item"
)

// IndexName is the search index item documents live in.
const IndexName = "items"

// ItemDocument is the full search document of an item, created when its
// Created event is materialized. Documents are keyed by item id.
type ItemDocument struct {
	ItemID            string    `json:"itemId"`
	EventID           string    `json:"eventId"`
	ShopID            string    `json:"shopId"`
	ShopsItemID       string    `json:"shopsItemId"`
	ShopName          string    `json:"shopName"`
	TitleDe           *string   `json:"titleDe,omitempty"`
	TitleEn           *string   `json:"titleEn,omitempty"`
	DescriptionDe     *string   `json:"descriptionDe,omitempty"`
	DescriptionEn     *string   `json:"descriptionEn,omitempty"`
	PriceEur          *uint64   `json:"priceEur,omitempty"`
	PriceGbp          *uint64   `json:"priceGbp,omitempty"`
	PriceUsd          *uint64   `json:"priceUsd,omitempty"`
	PriceAud          *uint64   `json:"priceAud,omitempty"`
	PriceCad          *uint64   `json:"priceCad,omitempty"`
	PriceNzd          *uint64   `json:"priceNzd,omitempty"`
	State             string    `json:"state"`
	URL               string    `json:"url"`
	Images            []string  `json:"images,omitempty"`
	Hash              string    `json:"hash"`
	Created           time.Time `json:"created"`
	Updated           time.Time `json:"updated"`
}

// NewItemDocument projects a Created event record into a search document.
func NewItemDocument(event m_item.ItemEventRecord) (ItemDocument, error) {
	if event.EventType != string(domain.ItemEventCreated) {
		return ItemDocument{}, fmt.Errorf("cannot build search document from %s event", event.EventType)
	}
	if event.ShopName == nil || event.State == nil || event.URL == nil {
		return ItemDocument{}, fmt.Errorf("created event record for %s is missing document fields", event.Key())
	}
	return ItemDocument{
		ItemID:        event.ItemID,
		EventID:       event.EventID,
		ShopID:        event.ShopID,
		ShopsItemID:   event.ShopsItemID,
		ShopName:      *event.ShopName,
		TitleDe:       event.TitleDe,
		TitleEn:       event.TitleEn,
		DescriptionDe: event.DescriptionDe,
		DescriptionEn: event.DescriptionEn,
		PriceEur:      event.PriceEur,
		PriceGbp:      event.PriceGbp,
		PriceUsd:      event.PriceUsd,
		PriceAud:      event.PriceAud,
		PriceCad:      event.PriceCad,
		PriceNzd:      event.PriceNzd,
		State:         *event.State,
		URL:           *event.URL,
		Images:        event.Images,
		Hash:          event.Hash,
		Created:       event.Timestamp,
		Updated:       event.Timestamp,
	}, nil
}

// ItemDocumentUpdate is the partial document a state or price event
// materializes into the index.
type ItemDocumentUpdate struct {
	ItemID   string    `json:"-"`
	EventID  string    `json:"eventId"`
	PriceEur *uint64   `json:"priceEur,omitempty"`
	PriceGbp *uint64   `json:"priceGbp,omitempty"`
	PriceUsd *uint64   `json:"priceUsd,omitempty"`
	PriceAud *uint64   `json:"priceAud,omitempty"`
	PriceCad *uint64   `json:"priceCad,omitempty"`
	PriceNzd *uint64   `json:"priceNzd,omitempty"`
	State    *string   `json:"state,omitempty"`
	Hash     string    `json:"hash"`
	Updated  time.Time `json:"updated"`
}

// NewItemDocumentUpdate projects a state or price event record into a
// partial document update.
func NewItemDocumentUpdate(event m_item.ItemEventRecord) (ItemDocumentUpdate, error) {
	update := ItemDocumentUpdate{
		ItemID:  event.ItemID,
		EventID: event.EventID,
		Hash:    event.Hash,
		Updated: event.Timestamp,
	}

	switch domain.ItemEventType(event.EventType) {
	case domain.ItemEventStateListed, domain.ItemEventStateAvailable,
		domain.ItemEventStateReserved, domain.ItemEventStateSold,
		domain.ItemEventStateRemoved:
		update.State = event.State
	case domain.ItemEventPriceDiscovered, domain.ItemEventPriceIncreased,
		domain.ItemEventPriceDropped:
		update.PriceEur = event.PriceEur
		update.PriceGbp = event.PriceGbp
		update.PriceUsd = event.PriceUsd
		update.PriceAud = event.PriceAud
		update.PriceCad = event.PriceCad
		update.PriceNzd = event.PriceNzd
	case domain.ItemEventCreated:
		return ItemDocumentUpdate{}, fmt.Errorf("created events materialize a full document, not an update")
	default:
		return ItemDocumentUpdate{}, fmt.Errorf("%w: %q", domain.ErrUnknownEventType, event.EventType)
	}

	return update, nil
}
