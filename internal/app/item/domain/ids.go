package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// ItemID identifies an item aggregate across the whole catalog.
// It is a time-ordered UUIDv7 so event queries by item sort naturally.
type ItemID string

// NewItemID creates a new time-ordered ItemID.
func NewItemID() ItemID {
	return ItemID(uuid.Must(uuid.NewV7()).String())
}

// ParseItemID validates a string as an ItemID.
func ParseItemID(s string) (ItemID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid item id %q: %w", s, err)
	}
	return ItemID(id.String()), nil
}

func (id ItemID) String() string { return string(id) }

// EventID is the globally unique identifier of a single domain event.
type EventID string

// NewEventID creates a new random EventID.
func NewEventID() EventID {
	return EventID(uuid.New().String())
}

// ParseEventID validates a string as an EventID.
func ParseEventID(s string) (EventID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid event id %q: %w", s, err)
	}
	return EventID(id.String()), nil
}

func (id EventID) String() string { return string(id) }

// ShopID identifies the external shop an item was scraped from.
type ShopID string

func (id ShopID) String() string { return string(id) }

// ShopsItemID is the item identifier within its shop, assigned by the shop.
type ShopsItemID string

func (id ShopsItemID) String() string { return string(id) }

// ItemKey is the catalog-wide unique identifier of an item,
// stable across the item's lifetime. It is the map key for all
// failure and retry bookkeeping.
type ItemKey struct {
	ShopID      ShopID
	ShopsItemID ShopsItemID
}

// NewItemKey builds an ItemKey.
func NewItemKey(shopID ShopID, shopsItemID ShopsItemID) ItemKey {
	return ItemKey{ShopID: shopID, ShopsItemID: shopsItemID}
}

func (k ItemKey) String() string {
	return fmt.Sprintf("%s#%s", k.ShopID, k.ShopsItemID)
}
