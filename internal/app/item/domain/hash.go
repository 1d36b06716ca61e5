package domain

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"lukechampine.com/blake3"
)

// ItemHash is the change-detection fingerprint of an item: a BLAKE3 hash
// over a canonical concatenation of fixed contribution strings for the
// (price, state) pair. Records persisted by earlier builds carry these
// hashes, so the contribution strings and the hash algorithm are a
// byte-exact contract and must never change.
type ItemHash [32]byte

// NewItemHash computes the hash for a price (possibly absent) and state.
// It is a pure function: equal inputs always produce equal hashes.
func NewItemHash(price *Price, state ItemState) ItemHash {
	contribution := priceContribution(price) + stateContribution(state)
	return ItemHash(blake3.Sum256([]byte(contribution)))
}

// ParseItemHash reads a 64-character hex string produced by String.
func ParseItemHash(s string) (ItemHash, error) {
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != 32 {
		return ItemHash{}, fmt.Errorf("invalid item hash %q", s)
	}
	var h ItemHash
	copy(h[:], raw)
	return h, nil
}

func (h ItemHash) String() string {
	return hex.EncodeToString(h[:])
}

func priceContribution(price *Price) string {
	if price == nil {
		return ""
	}
	return strconv.FormatUint(uint64(price.Amount), 10) + currencyContribution(price.Currency)
}

// The contribution strings mirror the variant names of the first
// implementation of this hash; they are frozen.
func currencyContribution(c Currency) string {
	switch c {
	case CurrencyEur:
		return "Currency::Eur"
	case CurrencyGbp:
		return "Currency::Gbp"
	case CurrencyUsd:
		return "Currency::Usd"
	case CurrencyAud:
		return "Currency::Aud"
	case CurrencyCad:
		return "Currency::Cad"
	case CurrencyNzd:
		return "Currency::Nzd"
	default:
		panic(fmt.Sprintf("no hash contribution for currency %d", c))
	}
}

func stateContribution(s ItemState) string {
	switch s {
	case ItemStateListed:
		return "ItemState::Listed"
	case ItemStateAvailable:
		return "ItemState::Available"
	case ItemStateReserved:
		return "ItemState::Reserved"
	case ItemStateSold:
		return "ItemState::Sold"
	case ItemStateRemoved:
		return "ItemState::Removed"
	default:
		panic(fmt.Sprintf("no hash contribution for state %d", s))
	}
}
