// Package materialize_snapshot applies persisted item events to the
// materialized snapshot rows.
package materialize_snapshot

import (
	"context"
	"log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/itemhive/catalog/internal/app/item/contracts"
	"github.com/itemhive/catalog/internal/app/item/domain"
	"github.com/itemhive/catalog/internal/models/m_item"
)

// Interactor materializes item event records into snapshot rows.
type Interactor struct {
	snapshots contracts.ItemSnapshotWriteRepository
	tracer    trace.Tracer
}

// NewInteractor creates a new snapshot materialization interactor.
func NewInteractor(snapshots contracts.ItemSnapshotWriteRepository) *Interactor {
	return &Interactor{
		snapshots: snapshots,
		tracer:    otel.Tracer("itemhive/catalog/materialize_snapshot"),
	}
}

// Execute applies every record and returns the keys that failed.
// A Created event writes the full snapshot row; every other event applies
// a partial update. Success is an empty return.
func (i *Interactor) Execute(ctx context.Context, records []m_item.ItemEventRecord) []domain.ItemKey {
	ctx, span := i.tracer.Start(ctx, "materialize_snapshot.execute",
		trace.WithAttributes(attribute.Int("event.count", len(records))),
	)
	defer span.End()

	var failures []domain.ItemKey
	for _, record := range records {
		if err := i.materialize(ctx, record); err != nil {
			log.Printf("failed materializing item event into snapshot eventId=%s error=%v", record.EventID, err)
			failures = append(failures, record.Key())
		}
	}

	span.SetAttributes(attribute.Int("event.failed", len(failures)))
	log.Printf("materialized item events into snapshots successful=%d failures=%d",
		len(records)-len(failures), len(failures))
	return failures
}

func (i *Interactor) materialize(ctx context.Context, record m_item.ItemEventRecord) error {
	if domain.ItemEventType(record.EventType) == domain.ItemEventCreated {
		itemRecord, err := m_item.NewItemRecord(record)
		if err != nil {
			return err
		}
		return i.snapshots.PutItemRecord(ctx, itemRecord)
	}

	update, err := m_item.NewItemRecordUpdate(record)
	if err != nil {
		return err
	}
	return i.snapshots.UpdateItemRecord(ctx, record.Key(), update)
}
