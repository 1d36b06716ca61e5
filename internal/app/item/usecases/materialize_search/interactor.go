// Package materialize_search projects persisted item events into the
// search index.
package materialize_search

import (
	"context"
	"log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/itemhive/catalog/internal/app/item/contracts"
	"github.com/itemhive/catalog/internal/app/item/domain"
	"github.com/itemhive/catalog/internal/models/m_item"
	"github.com/itemhive/catalog/internal/models/m_search"
)

// Interactor materializes item event records into search documents.
type Interactor struct {
	search contracts.SearchIndexRepository
	tracer trace.Tracer
}

// NewInteractor creates a new search materialization interactor.
func NewInteractor(search contracts.SearchIndexRepository) *Interactor {
	return &Interactor{
		search: search,
		tracer: otel.Tracer("itemhive/catalog/materialize_search"),
	}
}

// Execute projects every record and returns the keys that failed.
// Created events become full documents, everything else a partial update.
// Success is an empty return.
func (i *Interactor) Execute(ctx context.Context, records []m_item.ItemEventRecord) []domain.ItemKey {
	ctx, span := i.tracer.Start(ctx, "materialize_search.execute",
		trace.WithAttributes(attribute.Int("event.count", len(records))),
	)
	defer span.End()

	var failures []domain.ItemKey
	keysByItemID := make(map[string]domain.ItemKey, len(records))

	var documents []m_search.ItemDocument
	var updates []m_search.ItemDocumentUpdate
	for _, record := range records {
		keysByItemID[record.ItemID] = record.Key()
		if domain.ItemEventType(record.EventType) == domain.ItemEventCreated {
			document, err := m_search.NewItemDocument(record)
			if err != nil {
				log.Printf("failed building search document eventId=%s error=%v", record.EventID, err)
				failures = append(failures, record.Key())
				continue
			}
			documents = append(documents, document)
			continue
		}
		update, err := m_search.NewItemDocumentUpdate(record)
		if err != nil {
			log.Printf("failed building search document update eventId=%s error=%v", record.EventID, err)
			failures = append(failures, record.Key())
			continue
		}
		updates = append(updates, update)
	}

	if len(documents) > 0 {
		result, err := i.search.BulkPutDocuments(ctx, documents)
		if err != nil {
			log.Printf("failed indexing search documents error=%v", err)
			for _, document := range documents {
				failures = append(failures, keysByItemID[document.ItemID])
			}
		} else {
			failures = append(failures, failedKeys(result, keysByItemID)...)
		}
	}
	if len(updates) > 0 {
		result, err := i.search.BulkUpdateDocuments(ctx, updates)
		if err != nil {
			log.Printf("failed updating search documents error=%v", err)
			for _, update := range updates {
				failures = append(failures, keysByItemID[update.ItemID])
			}
		} else {
			failures = append(failures, failedKeys(result, keysByItemID)...)
		}
	}

	span.SetAttributes(attribute.Int("event.failed", len(failures)))
	log.Printf("materialized item events into search index successful=%d failures=%d",
		len(records)-len(failures), len(failures))
	return failures
}

func failedKeys(result contracts.BulkIndexResult, keysByItemID map[string]domain.ItemKey) []domain.ItemKey {
	keys := make([]domain.ItemKey, 0, len(result.FailedIDs))
	for _, id := range result.FailedIDs {
		key, ok := keysByItemID[id]
		if !ok {
			log.Printf("search engine reported unknown failed document id=%s", id)
			continue
		}
		keys = append(keys, key)
	}
	return keys
}
