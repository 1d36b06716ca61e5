package contracts

import (
	"context"

	"github.com/itemhive/catalog/internal/app/item/domain"
	"github.com/itemhive/catalog/internal/models/m_item"
	"github.com/itemhive/catalog/internal/pkg/batch"
)

// BatchGetResult is the outcome of a batched read. Unprocessed carries the
// keys the store itself could not serve in this call; it must be surfaced
// to the caller, never silently dropped.
type BatchGetResult[T any] struct {
	Items       []T
	Unprocessed []domain.ItemKey
}

// ItemReadRepository is the read port of the command pipeline.
type ItemReadRepository interface {
	// GetItem loads the materialized snapshot of one item.
	// It returns (nil, nil) when the item does not exist.
	GetItem(ctx context.Context, key domain.ItemKey) (*domain.Item, error)

	// GetItems loads the materialized snapshots for up to batch.ReadLimit keys.
	GetItems(ctx context.Context, keys batch.Batch[domain.ItemKey]) (BatchGetResult[*domain.Item], error)

	// ExistItems reports which of up to batch.ReadLimit keys already exist.
	ExistItems(ctx context.Context, keys batch.Batch[domain.ItemKey]) (BatchGetResult[domain.ItemKey], error)
}

// ItemEventWriteRepository is the write port of the command pipeline.
type ItemEventWriteRepository interface {
	// PutItemEventRecords persists up to batch.WriteLimit event records and
	// returns the keys of records the store reported as unprocessed. A
	// returned error means the whole call failed and every key in the
	// batch must be treated as failed.
	PutItemEventRecords(ctx context.Context, records batch.Batch[m_item.ItemEventRecord]) ([]domain.ItemKey, error)
}

// ItemSnapshotWriteRepository persists materialized snapshots, downstream
// of the event log.
type ItemSnapshotWriteRepository interface {
	// PutItemRecord writes the full snapshot row of a freshly created item.
	PutItemRecord(ctx context.Context, record m_item.ItemRecord) error

	// UpdateItemRecord applies a partial update to an existing snapshot row.
	UpdateItemRecord(ctx context.Context, key domain.ItemKey, update m_item.ItemRecordUpdate) error
}
