package contracts

import "github.com/itemhive/catalog/internal/app/item/domain"

// CreateItemCommand asks the catalog to register a freshly scraped item.
type CreateItemCommand struct {
	ShopID            domain.ShopID
	ShopsItemID       domain.ShopsItemID
	ShopName          string
	NativeTitle       domain.LocalizedText
	OtherTitles       map[domain.Language]string
	NativeDescription *domain.LocalizedText
	OtherDescriptions map[domain.Language]string
	Price             *domain.Price
	State             domain.ItemState
	URL               string
	Images            []string
}

// Key returns the item key the command addresses.
func (c CreateItemCommand) Key() domain.ItemKey {
	return domain.NewItemKey(c.ShopID, c.ShopsItemID)
}

// UpdateItemCommand carries the observed changes for an existing item.
// Nil fields were not observed and stay untouched.
type UpdateItemCommand struct {
	Price *domain.Price
	State *domain.ItemState
}
