package domain

import "time"

// Item is the aggregate root of the catalog: one marketplace listing
// scraped from an external shop. Its hash and per-currency price map are
// derived fields, recomputed on every mutation and never set directly.
//
// An item is created exactly once per (ShopID, ShopsItemID) and then only
// mutated through ChangePrice and ChangeState. It is never deleted;
// removal is the state transition into ItemStateRemoved, and nothing
// forbids a Removed item from becoming Available again.
type Item struct {
	id                ItemID
	eventID           EventID
	shopID            ShopID
	shopsItemID       ShopsItemID
	shopName          string
	nativeTitle       LocalizedText
	otherTitles       map[Language]string
	nativeDescription *LocalizedText
	otherDescriptions map[Language]string
	nativePrice       *Price
	otherPrices       map[Currency]MonetaryAmount
	state             ItemState
	url               string
	images            []string
	hash              ItemHash
	created           time.Time
	updated           time.Time
}

// NewItem carries the initial snapshot for CreateItem.
type NewItem struct {
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
}

// CreateItem builds the Created event for a never-seen item. It always
// succeeds: there is no prior state to compare against.
func CreateItem(n NewItem, now time.Time) ItemEvent {
	hash := NewItemHash(n.NativePrice, n.State)
	return ItemEvent{
		AggregateID: NewItemID(),
		EventID:     NewEventID(),
		Timestamp:   now,
		Payload: ItemCreatedPayload{
			ShopID:            n.ShopID,
			ShopsItemID:       n.ShopsItemID,
			ShopName:          n.ShopName,
			NativeTitle:       n.NativeTitle,
			OtherTitles:       n.OtherTitles,
			NativeDescription: n.NativeDescription,
			OtherDescriptions: n.OtherDescriptions,
			NativePrice:       n.NativePrice,
			OtherPrices:       n.OtherPrices,
			State:             n.State,
			URL:               n.URL,
			Images:            n.Images,
			Hash:              hash,
		},
	}
}

// ReconstructItem reconstitutes an Item loaded from storage.
func ReconstructItem(
	id ItemID,
	eventID EventID,
	shopID ShopID,
	shopsItemID ShopsItemID,
	shopName string,
	nativeTitle LocalizedText,
	otherTitles map[Language]string,
	nativeDescription *LocalizedText,
	otherDescriptions map[Language]string,
	nativePrice *Price,
	otherPrices map[Currency]MonetaryAmount,
	state ItemState,
	url string,
	images []string,
	hash ItemHash,
	created, updated time.Time,
) *Item {
	return &Item{
		id:                id,
		eventID:           eventID,
		shopID:            shopID,
		shopsItemID:       shopsItemID,
		shopName:          shopName,
		nativeTitle:       nativeTitle,
		otherTitles:       otherTitles,
		nativeDescription: nativeDescription,
		otherDescriptions: otherDescriptions,
		nativePrice:       nativePrice,
		otherPrices:       otherPrices,
		state:             state,
		url:               url,
		images:            images,
		hash:              hash,
		created:           created,
		updated:           updated,
	}
}

// Getters
func (i *Item) ID() ItemID                             { return i.id }
func (i *Item) EventID() EventID                       { return i.eventID }
func (i *Item) ShopID() ShopID                         { return i.shopID }
func (i *Item) ShopsItemID() ShopsItemID               { return i.shopsItemID }
func (i *Item) ShopName() string                       { return i.shopName }
func (i *Item) NativeTitle() LocalizedText             { return i.nativeTitle }
func (i *Item) OtherTitles() map[Language]string       { return i.otherTitles }
func (i *Item) NativeDescription() *LocalizedText      { return i.nativeDescription }
func (i *Item) OtherDescriptions() map[Language]string { return i.otherDescriptions }
func (i *Item) NativePrice() *Price                    { return i.nativePrice }
func (i *Item) OtherPrices() map[Currency]MonetaryAmount {
	return i.otherPrices
}
func (i *Item) State() ItemState     { return i.state }
func (i *Item) URL() string          { return i.url }
func (i *Item) Images() []string     { return i.images }
func (i *Item) Hash() ItemHash       { return i.hash }
func (i *Item) CreatedAt() time.Time { return i.created }
func (i *Item) UpdatedAt() time.Time { return i.updated }

// Key returns the catalog-wide key of this item.
func (i *Item) Key() ItemKey {
	return NewItemKey(i.shopID, i.shopsItemID)
}

// ChangeState transitions the item into newState. It returns nil when the
// state is unchanged; otherwise it mutates, recomputes the hash, and
// returns an event whose variant is selected by the target state.
func (i *Item) ChangeState(newState ItemState, now time.Time) *ItemEvent {
	if i.state == newState {
		return nil
	}
	i.state = newState
	i.rehash()
	i.updated = now
	return &ItemEvent{
		AggregateID: i.id,
		EventID:     NewEventID(),
		Timestamp:   now,
		Payload: ItemStateChangedPayload{
			ShopID:      i.shopID,
			ShopsItemID: i.shopsItemID,
			State:       newState,
			Hash:        i.hash,
		},
	}
}

// ChangePrice replaces the native price and the derived per-currency map,
// recomputes the hash, and classifies the change: no previous price means
// PriceDiscovered; otherwise the old price is converted into the new
// price's currency (falling back to the unconverted old price when the
// conversion overflows) and compared by amount. Equal converted amounts
// yield no event even when the currency tag changed.
func (i *Item) ChangePrice(newPrice Price, fx FxRate, now time.Time) *ItemEvent {
	oldPrice := i.nativePrice

	otherPrices, err := fx.ExchangeAll(newPrice.Currency, newPrice.Amount)
	if err != nil {
		otherPrices = nil
	}
	i.nativePrice = &newPrice
	i.otherPrices = otherPrices
	i.rehash()
	i.updated = now

	payload := ItemPriceChangedPayload{
		ShopID:      i.shopID,
		ShopsItemID: i.shopsItemID,
		Price:       newPrice,
		OtherPrices: otherPrices,
		Hash:        i.hash,
	}

	switch {
	case oldPrice == nil:
		payload.Kind = PriceDiscovered
	default:
		oldForNewCurrency, err := oldPrice.Exchanged(fx, newPrice.Currency)
		if err != nil {
			oldForNewCurrency = *oldPrice
		}
		switch {
		case oldForNewCurrency.Amount < newPrice.Amount:
			payload.Kind = PriceIncreased
		case oldForNewCurrency.Amount > newPrice.Amount:
			payload.Kind = PriceDropped
		default:
			return nil
		}
	}

	return &ItemEvent{
		AggregateID: i.id,
		EventID:     NewEventID(),
		Timestamp:   now,
		Payload:     payload,
	}
}

func (i *Item) rehash() {
	i.hash = NewItemHash(i.nativePrice, i.state)
}
