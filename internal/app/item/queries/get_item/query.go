package get_item

import (
	"context"

	"github.com/itemhive/catalog/internal/app/item/contracts"
	"github.com/itemhive/catalog/internal/app/item/domain"
)

// Request contains the key of the item to retrieve.
type Request struct {
	ShopID      string
	ShopsItemID string
}

// Query handles the get item query use case.
type Query struct {
	items contracts.ItemReadRepository
}

// NewQuery creates a new get item query.
func NewQuery(items contracts.ItemReadRepository) *Query {
	return &Query{
		items: items,
	}
}

// Execute retrieves the materialized item for a shop key. It returns
// domain.ErrItemNotFound when no snapshot exists.
func (q *Query) Execute(ctx context.Context, req *Request) (*domain.Item, error) {
	key := domain.ItemKey{
		ShopID:      domain.ShopID(req.ShopID),
		ShopsItemID: domain.ShopsItemID(req.ShopsItemID),
	}
	item, err := q.items.GetItem(ctx, key)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	return item, nil
}
