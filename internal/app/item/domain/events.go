package domain

import "time"

// ItemEventType discriminates the payload variants of an ItemEvent.
// The set is closed; consumers switch over it exhaustively so a new
// transition is a compile-time-visible change everywhere it matters.
type ItemEventType string

const (
	ItemEventCreated         ItemEventType = "CREATED"
	ItemEventStateListed     ItemEventType = "STATE_LISTED"
	ItemEventStateAvailable  ItemEventType = "STATE_AVAILABLE"
	ItemEventStateReserved   ItemEventType = "STATE_RESERVED"
	ItemEventStateSold       ItemEventType = "STATE_SOLD"
	ItemEventStateRemoved    ItemEventType = "STATE_REMOVED"
	ItemEventPriceDiscovered ItemEventType = "PRICE_DISCOVERED"
	ItemEventPriceIncreased  ItemEventType = "PRICE_INCREASED"
	ItemEventPriceDropped    ItemEventType = "PRICE_DROPPED"
)

// ItemEvent is the envelope every item domain event travels in.
type ItemEvent struct {
	AggregateID ItemID
	EventID     EventID
	Timestamp   time.Time
	Payload     ItemEventPayload
}

// Key returns the item key of the event's payload.
func (e ItemEvent) Key() ItemKey { return e.Payload.Key() }

// ItemEventPayload is implemented by every payload variant. Each variant
// carries the shop/item key and the post-transition hash so downstream
// consumers can materialize without re-fetching the aggregate.
type ItemEventPayload interface {
	EventType() ItemEventType
	Key() ItemKey
	ItemHash() ItemHash
}

// ItemCreatedPayload carries the full initial snapshot of a new item.
type ItemCreatedPayload struct {
	ShopID            ShopID
	ShopsItemID       ShopsItemID
	ShopName          string
	NativeTitle       LocalizedText
	OtherTitles       map[Language]string
	NativeDescription *LocalizedText
	OtherDescriptions map[Language]string
	NativePrice       *Price
	OtherPrices       map[Currency]MonetaryAmount
	State             ItemState
	URL               string
	Images            []string
	Hash              ItemHash
}

func (p ItemCreatedPayload) EventType() ItemEventType { return ItemEventCreated }
func (p ItemCreatedPayload) Key() ItemKey             { return NewItemKey(p.ShopID, p.ShopsItemID) }
func (p ItemCreatedPayload) ItemHash() ItemHash       { return p.Hash }

// ItemStateChangedPayload records a transition into State. The event type
// is selected by the target state.
type ItemStateChangedPayload struct {
	ShopID      ShopID
	ShopsItemID ShopsItemID
	State       ItemState
	Hash        ItemHash
}

func (p ItemStateChangedPayload) EventType() ItemEventType {
	switch p.State {
	case ItemStateListed:
		return ItemEventStateListed
	case ItemStateAvailable:
		return ItemEventStateAvailable
	case ItemStateReserved:
		return ItemEventStateReserved
	case ItemStateSold:
		return ItemEventStateSold
	case ItemStateRemoved:
		return ItemEventStateRemoved
	default:
		panic("state change event for unknown state")
	}
}

func (p ItemStateChangedPayload) Key() ItemKey       { return NewItemKey(p.ShopID, p.ShopsItemID) }
func (p ItemStateChangedPayload) ItemHash() ItemHash { return p.Hash }

// PriceChangeKind distinguishes the direction of a price change event.
type PriceChangeKind int

const (
	PriceDiscovered PriceChangeKind = iota
	PriceIncreased
	PriceDropped
)

// ItemPriceChangedPayload records a new native price together with its
// conversions into every supported currency.
type ItemPriceChangedPayload struct {
	ShopID      ShopID
	ShopsItemID ShopsItemID
	Kind        PriceChangeKind
	Price       Price
	OtherPrices map[Currency]MonetaryAmount
	Hash        ItemHash
}

func (p ItemPriceChangedPayload) EventType() ItemEventType {
	switch p.Kind {
	case PriceDiscovered:
		return ItemEventPriceDiscovered
	case PriceIncreased:
		return ItemEventPriceIncreased
	case PriceDropped:
		return ItemEventPriceDropped
	default:
		panic("price change event of unknown kind")
	}
}

func (p ItemPriceChangedPayload) Key() ItemKey       { return NewItemKey(p.ShopID, p.ShopsItemID) }
func (p ItemPriceChangedPayload) ItemHash() ItemHash { return p.Hash }
