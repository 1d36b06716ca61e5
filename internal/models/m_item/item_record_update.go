package m_item

import (
	"fmt"
	"time"

	"github.com/itemhive/catalog/internal/app/item/domain"
)

// ItemRecordUpdate holds the snapshot attributes a non-Created event
// touches. Nil fields are left untouched in storage.
type ItemRecordUpdate struct {
	EventID     string       `dynamodbav:"event_id"`
	PriceNative *PriceRecord `dynamodbav:"price_native,omitempty"`
	PriceEur    *uint64      `dynamodbav:"price_eur,omitempty"`
	PriceGbp    *uint64      `dynamodbav:"price_gbp,omitempty"`
	PriceUsd    *uint64      `dynamodbav:"price_usd,omitempty"`
	PriceAud    *uint64      `dynamodbav:"price_aud,omitempty"`
	PriceCad    *uint64      `dynamodbav:"price_cad,omitempty"`
	PriceNzd    *uint64      `dynamodbav:"price_nzd,omitempty"`
	State       *string      `dynamodbav:"state,omitempty"`
	Hash        string       `dynamodbav:"hash"`
	Updated     time.Time    `dynamodbav:"updated"`
}

// NewItemRecordUpdate projects a state or price event record into a
// partial snapshot update.
func NewItemRecordUpdate(event ItemEventRecord) (ItemRecordUpdate, error) {
	update := ItemRecordUpdate{
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
		update.PriceNative = event.PriceNative
		update.PriceEur = event.PriceEur
		update.PriceGbp = event.PriceGbp
		update.PriceUsd = event.PriceUsd
		update.PriceAud = event.PriceAud
		update.PriceCad = event.PriceCad
		update.PriceNzd = event.PriceNzd
	case domain.ItemEventCreated:
		return ItemRecordUpdate{}, fmt.Errorf("created events materialize a full snapshot, not an update")
	default:
		return ItemRecordUpdate{}, fmt.Errorf("%w: %q", domain.ErrUnknownEventType, event.EventType)
	}

	return update, nil
}
