package queue

import (
	"context"
	"encoding/json"
	"log"

	"github.com/aws/aws-lambda-go/events"

	"github.com/itemhive/catalog/internal/app/item/contracts"
	"github.com/itemhive/catalog/internal/app/item/domain"
	"github.com/itemhive/catalog/internal/app/item/usecases/ingest_items"
	"github.com/itemhive/catalog/internal/app/item/usecases/materialize_search"
	"github.com/itemhive/catalog/internal/app/item/usecases/materialize_snapshot"
	"github.com/itemhive/catalog/internal/models/m_item"
)

// SQSHandler is the signature aws-lambda-go expects for queue handlers
// with partial batch responses.
type SQSHandler func(ctx context.Context, event events.SQSEvent) (events.SQSEventResponse, error)

// NewCreateItemsHandler handles messages carrying CreateItemCommandData.
func NewCreateItemsHandler(interactor *ingest_items.Interactor) SQSHandler {
	return func(ctx context.Context, event events.SQSEvent) (events.SQSEventResponse, error) {
		total := len(event.Records)
		log.Printf("create items handler invoked total=%d", total)

		var failedMessageIDs []string
		var skipped int
		commands := make([]contracts.CreateItemCommand, 0, total)
		messageIDs := make(map[domain.ItemKey][]string, total)

		for _, message := range event.Records {
			var data CreateItemCommandData
			if !decodeMessage(message, &data, &failedMessageIDs, &skipped) {
				continue
			}
			command, err := data.ToCommand()
			if err != nil {
				log.Printf("failed parsing create item command messageId=%s error=%v", message.MessageId, err)
				failedMessageIDs = append(failedMessageIDs, message.MessageId)
				continue
			}
			key := command.Key()
			messageIDs[key] = append(messageIDs[key], message.MessageId)
			commands = append(commands, command)
		}

		failedKeys := interactor.HandleCreateItems(ctx, commands)
		failedMessageIDs = append(failedMessageIDs, resolveMessageIDs(failedKeys, messageIDs)...)

		log.Printf("create items handler finished successful=%d failures=%d skipped=%d",
			total-len(failedMessageIDs)-skipped, len(failedMessageIDs), skipped)
		return batchResponse(failedMessageIDs), nil
	}
}

// NewUpdateItemsHandler handles messages carrying UpdateItemCommandData.
func NewUpdateItemsHandler(interactor *ingest_items.Interactor) SQSHandler {
	return func(ctx context.Context, event events.SQSEvent) (events.SQSEventResponse, error) {
		total := len(event.Records)
		log.Printf("update items handler invoked total=%d", total)

		var failedMessageIDs []string
		var skipped int
		commands := make(map[domain.ItemKey]contracts.UpdateItemCommand, total)
		messageIDs := make(map[domain.ItemKey][]string, total)

		for _, message := range event.Records {
			var data UpdateItemCommandData
			if !decodeMessage(message, &data, &failedMessageIDs, &skipped) {
				continue
			}
			command, err := data.ToCommand()
			if err != nil {
				log.Printf("failed parsing update item command messageId=%s error=%v", message.MessageId, err)
				failedMessageIDs = append(failedMessageIDs, message.MessageId)
				continue
			}
			messageIDs[data.Key()] = append(messageIDs[data.Key()], message.MessageId)
			commands[data.Key()] = command
		}

		failedKeys := interactor.HandleUpdateItems(ctx, commands)
		failedMessageIDs = append(failedMessageIDs, resolveMessageIDs(failedKeys, messageIDs)...)

		log.Printf("update items handler finished successful=%d failures=%d skipped=%d",
			total-len(failedMessageIDs)-skipped, len(failedMessageIDs), skipped)
		return batchResponse(failedMessageIDs), nil
	}
}

// NewMaterializeSnapshotHandler handles messages carrying persisted item
// event records and applies them to the snapshot rows.
func NewMaterializeSnapshotHandler(interactor *materialize_snapshot.Interactor) SQSHandler {
	return newMaterializeHandler("materialize snapshot", interactor.Execute)
}

// NewMaterializeSearchHandler handles messages carrying persisted item
// event records and projects them into the search index.
func NewMaterializeSearchHandler(interactor *materialize_search.Interactor) SQSHandler {
	return newMaterializeHandler("materialize search", interactor.Execute)
}

func newMaterializeHandler(
	name string,
	execute func(ctx context.Context, records []m_item.ItemEventRecord) []domain.ItemKey,
) SQSHandler {
	return func(ctx context.Context, event events.SQSEvent) (events.SQSEventResponse, error) {
		total := len(event.Records)
		log.Printf("%s handler invoked total=%d", name, total)

		var failedMessageIDs []string
		var skipped int
		records := make([]m_item.ItemEventRecord, 0, total)
		messageIDs := make(map[domain.ItemKey][]string, total)

		for _, message := range event.Records {
			var record m_item.ItemEventRecord
			if !decodeMessage(message, &record, &failedMessageIDs, &skipped) {
				continue
			}
			messageIDs[record.Key()] = append(messageIDs[record.Key()], message.MessageId)
			records = append(records, record)
		}

		failedKeys := execute(ctx, records)
		failedMessageIDs = append(failedMessageIDs, resolveMessageIDs(failedKeys, messageIDs)...)

		log.Printf("%s handler finished successful=%d failures=%d skipped=%d",
			name, total-len(failedMessageIDs)-skipped, len(failedMessageIDs), skipped)
		return batchResponse(failedMessageIDs), nil
	}
}

// decodeMessage parses a message body. An empty body is a skip, a body
// that does not parse fails the message.
func decodeMessage(message events.SQSMessage, target any, failedMessageIDs *[]string, skipped *int) bool {
	if message.Body == "" {
		log.Printf("received empty body, skipping message messageId=%s", message.MessageId)
		*skipped++
		return false
	}
	if err := json.Unmarshal([]byte(message.Body), target); err != nil {
		log.Printf("failed deserializing message body messageId=%s error=%v", message.MessageId, err)
		*failedMessageIDs = append(*failedMessageIDs, message.MessageId)
		return false
	}
	return true
}

// resolveMessageIDs maps failed keys back onto message ids. Several
// messages of one batch may carry the same key; a failed key fails all
// of them so none is acknowledged unretried. A key without a message id
// is logged and dropped, it cannot be redelivered.
func resolveMessageIDs(failedKeys []domain.ItemKey, messageIDs map[domain.ItemKey][]string) []string {
	ids := make([]string, 0, len(failedKeys))
	for _, key := range failedKeys {
		resolved, ok := messageIDs[key]
		if !ok {
			log.Printf("no message ids for failed key itemKey=%s", key)
			continue
		}
		delete(messageIDs, key)
		ids = append(ids, resolved...)
	}
	return ids
}

func batchResponse(failedMessageIDs []string) events.SQSEventResponse {
	failures := make([]events.SQSBatchItemFailure, 0, len(failedMessageIDs))
	for _, id := range failedMessageIDs {
		failures = append(failures, events.SQSBatchItemFailure{ItemIdentifier: id})
	}
	return events.SQSEventResponse{BatchItemFailures: failures}
}
