// Package ingest_items turns batches of inbound create/update commands
// into persisted item events, with at-least-once delivery semantics and
// per-key failure reporting. The caller re-drives failed keys; nothing in
// here raises on partial failure.
package ingest_items

import (
	"context"
	"log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/itemhive/catalog/internal/app/item/contracts"
	"github.com/itemhive/catalog/internal/app/item/domain"
	"github.com/itemhive/catalog/internal/models/m_item"
	"github.com/itemhive/catalog/internal/pkg/batch"
	"github.com/itemhive/catalog/internal/pkg/clock"
)

// Interactor handles the command-to-event pipeline for item ingestion.
type Interactor struct {
	items  contracts.ItemReadRepository
	events contracts.ItemEventWriteRepository
	fx     domain.FxRate
	clock  clock.Clock
	tracer trace.Tracer
}

// NewInteractor creates a new ingest interactor.
func NewInteractor(
	items contracts.ItemReadRepository,
	events contracts.ItemEventWriteRepository,
	fx domain.FxRate,
	clk clock.Clock,
) *Interactor {
	return &Interactor{
		items:  items,
		events: events,
		fx:     fx,
		clock:  clk,
		tracer: otel.Tracer("itemhive/catalog/ingest_items"),
	}
}

// HandleCreateItems processes create commands in chunks of batch.ReadLimit
// and returns the keys that failed. Keys whose item already exists are
// skipped, which is not a failure. Success is an empty return.
func (i *Interactor) HandleCreateItems(ctx context.Context, commands []contracts.CreateItemCommand) []domain.ItemKey {
	ctx, span := i.tracer.Start(ctx, "ingest_items.create",
		trace.WithAttributes(attribute.Int("command.count", len(commands))),
	)
	defer span.End()

	var failures []domain.ItemKey
	var skipped int
	for _, chunk := range batch.Chunked(commands, batch.ReadLimit) {
		i.handleCreateChunk(ctx, chunk, &failures, &skipped)
	}

	span.SetAttributes(
		attribute.Int("command.failed", len(failures)),
		attribute.Int("command.skipped", skipped),
	)
	log.Printf("handled create item commands successful=%d failures=%d skipped=%d",
		len(commands)-len(failures)-skipped, len(failures), skipped)
	return failures
}

// HandleUpdateItems processes update commands in chunks of batch.ReadLimit
// and returns the keys that failed. A key with no existing item is a
// failure; a command that changes nothing is a skip.
func (i *Interactor) HandleUpdateItems(ctx context.Context, commands map[domain.ItemKey]contracts.UpdateItemCommand) []domain.ItemKey {
	ctx, span := i.tracer.Start(ctx, "ingest_items.update",
		trace.WithAttributes(attribute.Int("command.count", len(commands))),
	)
	defer span.End()

	keys := make([]domain.ItemKey, 0, len(commands))
	for key := range commands {
		keys = append(keys, key)
	}

	var failures []domain.ItemKey
	var skipped int
	for _, chunk := range batch.Chunked(keys, batch.ReadLimit) {
		i.handleUpdateChunk(ctx, chunk, commands, &failures, &skipped)
	}

	span.SetAttributes(
		attribute.Int("command.failed", len(failures)),
		attribute.Int("command.skipped", skipped),
	)
	log.Printf("handled update item commands successful=%d failures=%d skipped=%d",
		len(commands)-len(failures)-skipped, len(failures), skipped)
	return failures
}

func (i *Interactor) handleCreateChunk(
	ctx context.Context,
	chunk batch.Batch[contracts.CreateItemCommand],
	failures *[]domain.ItemKey,
	skipped *int,
) {
	keys := make([]domain.ItemKey, 0, chunk.Len())
	for _, cmd := range chunk.Items() {
		keys = append(keys, cmd.Key())
	}
	keyBatch, err := batch.TryFrom(keys, batch.ReadLimit)
	if err != nil {
		// Unreachable: Chunked never exceeds the read limit.
		log.Printf("invalid create key batch error=%v", err)
		*failures = append(*failures, keys...)
		return
	}

	existing, err := i.items.ExistItems(ctx, keyBatch)
	if err != nil {
		log.Printf("existence check failed for whole chunk error=%v", err)
		*failures = append(*failures, keys...)
		return
	}

	// Keys the store could not check have unknown existence: fail them
	// now rather than risk a duplicate create.
	unprocessed := keySet(existing.Unprocessed)
	if len(existing.Unprocessed) > 0 {
		log.Printf("existence check left keys unprocessed count=%d", len(existing.Unprocessed))
		*failures = append(*failures, existing.Unprocessed...)
	}
	exists := keySet(existing.Items)

	records := make([]m_item.ItemEventRecord, 0, chunk.Len())
	for _, cmd := range chunk.Items() {
		key := cmd.Key()
		if _, ok := unprocessed[key]; ok {
			continue
		}
		if _, ok := exists[key]; ok {
			log.Printf("cannot create item because it already exists shopId=%s shopsItemId=%s", key.ShopID, key.ShopsItemID)
			*skipped++
			continue
		}

		var otherPrices map[domain.Currency]domain.MonetaryAmount
		if cmd.Price != nil {
			if converted, err := i.fx.ExchangeAll(cmd.Price.Currency, cmd.Price.Amount); err == nil {
				otherPrices = converted
			}
		}
		event := domain.CreateItem(domain.NewItem{
			ShopID:            cmd.ShopID,
			ShopsItemID:       cmd.ShopsItemID,
			ShopName:          cmd.ShopName,
			NativeTitle:       cmd.NativeTitle,
			OtherTitles:       cmd.OtherTitles,
			NativeDescription: cmd.NativeDescription,
			OtherDescriptions: cmd.OtherDescriptions,
			NativePrice:       cmd.Price,
			OtherPrices:       otherPrices,
			State:             cmd.State,
			URL:               cmd.URL,
			Images:            cmd.Images,
		}, i.clock.Now())

		record, err := m_item.NewItemEventRecord(event)
		if err != nil {
			log.Printf("failed converting item event to record error=%v", err)
			*failures = append(*failures, key)
			continue
		}
		records = append(records, record)
	}

	i.persistEventRecords(ctx, records, failures)
}

func (i *Interactor) handleUpdateChunk(
	ctx context.Context,
	chunk batch.Batch[domain.ItemKey],
	commands map[domain.ItemKey]contracts.UpdateItemCommand,
	failures *[]domain.ItemKey,
	skipped *int,
) {
	loaded, err := i.items.GetItems(ctx, chunk)
	if err != nil {
		log.Printf("batch read failed for whole chunk error=%v", err)
		*failures = append(*failures, chunk.Items()...)
		return
	}

	if len(loaded.Unprocessed) > 0 {
		log.Printf("batch read left keys unprocessed count=%d", len(loaded.Unprocessed))
		*failures = append(*failures, loaded.Unprocessed...)
	}
	unprocessed := keySet(loaded.Unprocessed)

	events := i.determineUpdateEvents(chunk, commands, loaded.Items, unprocessed, failures, skipped)

	records := make([]m_item.ItemEventRecord, 0, len(events))
	for _, event := range events {
		record, err := m_item.NewItemEventRecord(event)
		if err != nil {
			log.Printf("failed converting item event to record error=%v", err)
			*failures = append(*failures, event.Key())
			continue
		}
		records = append(records, record)
	}

	i.persistEventRecords(ctx, records, failures)
}

// determineUpdateEvents applies the commanded changes to every loaded
// aggregate. Keys in the chunk with no loaded aggregate failed to resolve:
// updating something that does not exist is a failure, not a skip.
func (i *Interactor) determineUpdateEvents(
	chunk batch.Batch[domain.ItemKey],
	commands map[domain.ItemKey]contracts.UpdateItemCommand,
	items []*domain.Item,
	unprocessed map[domain.ItemKey]struct{},
	failures *[]domain.ItemKey,
	skipped *int,
) []domain.ItemEvent {
	found := make(map[domain.ItemKey]struct{}, len(items))
	events := make([]domain.ItemEvent, 0, len(items))

	for _, item := range items {
		key := item.Key()
		found[key] = struct{}{}
		cmd, ok := commands[key]
		if !ok {
			continue
		}

		anyChanges := false
		if cmd.Price != nil {
			if event := item.ChangePrice(*cmd.Price, i.fx, i.clock.Now()); event != nil {
				events = append(events, *event)
				anyChanges = true
			}
		}
		if cmd.State != nil {
			if event := item.ChangeState(*cmd.State, i.clock.Now()); event != nil {
				events = append(events, *event)
				anyChanges = true
			}
		}
		if !anyChanges {
			log.Printf("update command had no actual changes shopId=%s shopsItemId=%s", key.ShopID, key.ShopsItemID)
			*skipped++
		}
	}

	for _, key := range chunk.Items() {
		if _, ok := found[key]; ok {
			continue
		}
		if _, ok := unprocessed[key]; ok {
			continue
		}
		log.Printf("cannot update item because it doesn't exist shopId=%s shopsItemId=%s", key.ShopID, key.ShopsItemID)
		*failures = append(*failures, key)
	}

	return events
}

// persistEventRecords writes the records in sub-chunks of batch.WriteLimit.
// A failed call fails every key in that call; a partial response fails
// only the unprocessed keys.
func (i *Interactor) persistEventRecords(ctx context.Context, records []m_item.ItemEventRecord, failures *[]domain.ItemKey) {
	for _, sub := range batch.Chunked(records, batch.WriteLimit) {
		unprocessed, err := i.events.PutItemEventRecords(ctx, sub)
		if err != nil {
			log.Printf("failed writing entire item event record batch error=%v", err)
			for _, record := range sub.Items() {
				*failures = append(*failures, record.Key())
			}
			continue
		}
		if len(unprocessed) > 0 {
			log.Printf("batch write left records unprocessed count=%d", len(unprocessed))
			*failures = append(*failures, unprocessed...)
		}
	}
}

func keySet(keys []domain.ItemKey) map[domain.ItemKey]struct{} {
	set := make(map[domain.ItemKey]struct{}, len(keys))
	for _, key := range keys {
		set[key] = struct{}{}
	}
	return set
}
