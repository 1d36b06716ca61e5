package domain

import "fmt"

// ItemState is the listing state of an item as last observed in its shop.
// There is no transition graph: any state may move to any other distinct
// state, and equality of old and new state is the only no-op guard.
type ItemState int

const (
	ItemStateListed ItemState = iota
	ItemStateAvailable
	ItemStateReserved
	ItemStateSold
	ItemStateRemoved
)

// AllItemStates lists every state in a fixed order.
func AllItemStates() []ItemState {
	return []ItemState{ItemStateListed, ItemStateAvailable, ItemStateReserved, ItemStateSold, ItemStateRemoved}
}

func (s ItemState) String() string {
	switch s {
	case ItemStateListed:
		return "LISTED"
	case ItemStateAvailable:
		return "AVAILABLE"
	case ItemStateReserved:
		return "RESERVED"
	case ItemStateSold:
		return "SOLD"
	case ItemStateRemoved:
		return "REMOVED"
	default:
		return "UNKNOWN"
	}
}

// ParseItemState maps the storage/wire representation onto an ItemState.
func ParseItemState(s string) (ItemState, error) {
	switch s {
	case "LISTED":
		return ItemStateListed, nil
	case "AVAILABLE":
		return ItemStateAvailable, nil
	case "RESERVED":
		return ItemStateReserved, nil
	case "SOLD":
		return ItemStateSold, nil
	case "REMOVED":
		return ItemStateRemoved, nil
	default:
		return 0, fmt.Errorf("unknown item state %q", s)
	}
}
