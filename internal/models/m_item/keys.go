package m_item

import (
	"fmt"
	"strings"
	"time"

	"github.com/itemhive/catalog/internal/app/item/domain"
)

// MaterializedSK is the sort key of the single materialized snapshot row
// of an item; event rows sort behind it by timestamp.
const MaterializedSK = "item#materialized"

// ItemPK builds the partition key all rows of one item share.
func ItemPK(key domain.ItemKey) string {
	return fmt.Sprintf("item#shop_id#%s#shops_item_id#%s", key.ShopID, key.ShopsItemID)
}

// eventSKTimeLayout keeps a fixed-width fraction so event rows sort
// chronologically as strings.
const eventSKTimeLayout = "2006-01-02T15:04:05.000000000Z"

// EventSK builds the sort key of an event row. The event id breaks ties
// between events written in the same instant; without it the later row
// would replace the earlier one.
func EventSK(timestamp time.Time, eventID string) string {
	return fmt.Sprintf("item#event#%s#%s", timestamp.UTC().Format(eventSKTimeLayout), eventID)
}

// ParseItemPK recovers the item key from a partition key string.
func ParseItemPK(pk string) (domain.ItemKey, error) {
	rest, ok := strings.CutPrefix(pk, "item#shop_id#")
	if !ok {
		return domain.ItemKey{}, fmt.Errorf("malformed item pk: %q", pk)
	}
	shopID, shopsItemID, ok := strings.Cut(rest, "#shops_item_id#")
	if !ok || shopID == "" || shopsItemID == "" {
		return domain.ItemKey{}, fmt.Errorf("malformed item pk: %q", pk)
	}
	return domain.ItemKey{
		ShopID:      domain.ShopID(shopID),
		ShopsItemID: domain.ShopsItemID(shopsItemID),
	}, nil
}
