package repo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/itemhive/catalog/internal/app/item/contracts"
	"github.com/itemhive/catalog/internal/app/item/domain"
	"github.com/itemhive/catalog/internal/models/m_item"
	"github.com/itemhive/catalog/internal/pkg/batch"
)

// ItemEventRepo implements ItemEventWriteRepository for DynamoDB.
type ItemEventRepo struct {
	client DynamoDBClient
	table  string
}

// NewItemEventRepo creates a new ItemEventRepo.
func NewItemEventRepo(client DynamoDBClient, table string) contracts.ItemEventWriteRepository {
	return &ItemEventRepo{client: client, table: table}
}

// PutItemEventRecords writes the batch and returns the keys of records
// the store reported back as unprocessed.
func (r *ItemEventRepo) PutItemEventRecords(ctx context.Context, records batch.Batch[m_item.ItemEventRecord]) ([]domain.ItemKey, error) {
	requests := make([]types.WriteRequest, 0, records.Len())
	for _, record := range records.Items() {
		row, err := attributevalue.MarshalMap(record)
		if err != nil {
			return nil, fmt.Errorf("marshal item event record %s: %w", record.Key(), err)
		}
		requests = append(requests, types.WriteRequest{
			PutRequest: &types.PutRequest{Item: row},
		})
	}

	out, err := r.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
		RequestItems: map[string][]types.WriteRequest{r.table: requests},
	})
	if err != nil {
		return nil, fmt.Errorf("batch write item event records: %w", err)
	}

	remaining := out.UnprocessedItems[r.table]
	if len(remaining) == 0 {
		return nil, nil
	}
	unprocessed := make([]domain.ItemKey, 0, len(remaining))
	for _, request := range remaining {
		if request.PutRequest == nil {
			continue
		}
		pk, ok := request.PutRequest.Item[m_item.PK].(*types.AttributeValueMemberS)
		if !ok {
			return nil, fmt.Errorf("unprocessed record misses string attribute %q", m_item.PK)
		}
		key, err := m_item.ParseItemPK(pk.Value)
		if err != nil {
			return nil, err
		}
		unprocessed = append(unprocessed, key)
	}
	return unprocessed, nil
}
