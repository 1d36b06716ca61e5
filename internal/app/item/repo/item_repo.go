// Package repo implements the item storage ports on DynamoDB and the
// search port on OpenSearch.
package repo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/itemhive/catalog/internal/app/item/contracts"
	"github.com/itemhive/catalog/internal/app/item/domain"
	"github.com/itemhive/catalog/internal/models/m_item"
	"github.com/itemhive/catalog/internal/pkg/batch"
)

// DynamoDBClient is the subset of the DynamoDB API the item repos use.
type DynamoDBClient interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	BatchGetItem(ctx context.Context, params *dynamodb.BatchGetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchGetItemOutput, error)
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
}

// ItemRepo implements ItemReadRepository for DynamoDB.
type ItemRepo struct {
	client DynamoDBClient
	table  string
}

// NewItemRepo creates a new ItemRepo.
func NewItemRepo(client DynamoDBClient, table string) contracts.ItemReadRepository {
	return &ItemRepo{client: client, table: table}
}

// GetItem loads the materialized snapshot of one item.
func (r *ItemRepo) GetItem(ctx context.Context, key domain.ItemKey) (*domain.Item, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key:       snapshotKey(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get item %s: %w", key, err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}

	var record m_item.ItemRecord
	if err := attributevalue.UnmarshalMap(out.Item, &record); err != nil {
		return nil, fmt.Errorf("unmarshal item record %s: %w", key, err)
	}
	return record.ToDomain()
}

// GetItems loads the materialized snapshots for a batch of keys.
func (r *ItemRepo) GetItems(ctx context.Context, keys batch.Batch[domain.ItemKey]) (contracts.BatchGetResult[*domain.Item], error) {
	out, err := r.batchGet(ctx, keys, nil, nil)
	if err != nil {
		return contracts.BatchGetResult[*domain.Item]{}, err
	}

	items := make([]*domain.Item, 0, len(out.Responses[r.table]))
	for _, row := range out.Responses[r.table] {
		var record m_item.ItemRecord
		if err := attributevalue.UnmarshalMap(row, &record); err != nil {
			return contracts.BatchGetResult[*domain.Item]{}, fmt.Errorf("unmarshal item record: %w", err)
		}
		item, err := record.ToDomain()
		if err != nil {
			return contracts.BatchGetResult[*domain.Item]{}, err
		}
		items = append(items, item)
	}

	unprocessed, err := unprocessedItemKeys(out.UnprocessedKeys[r.table])
	if err != nil {
		return contracts.BatchGetResult[*domain.Item]{}, err
	}
	return contracts.BatchGetResult[*domain.Item]{Items: items, Unprocessed: unprocessed}, nil
}

// ExistItems reports which of the keys already have a snapshot row. Only
// the key attributes are fetched.
func (r *ItemRepo) ExistItems(ctx context.Context, keys batch.Batch[domain.ItemKey]) (contracts.BatchGetResult[domain.ItemKey], error) {
	projection := aws.String("#shop_id, #shops_item_id")
	names := map[string]string{
		"#shop_id":       m_item.ShopID,
		"#shops_item_id": m_item.ShopsItemID,
	}
	out, err := r.batchGet(ctx, keys, projection, names)
	if err != nil {
		return contracts.BatchGetResult[domain.ItemKey]{}, err
	}

	existing := make([]domain.ItemKey, 0, len(out.Responses[r.table]))
	for _, row := range out.Responses[r.table] {
		var record struct {
			ShopID      string `dynamodbav:"shop_id"`
			ShopsItemID string `dynamodbav:"shops_item_id"`
		}
		if err := attributevalue.UnmarshalMap(row, &record); err != nil {
			return contracts.BatchGetResult[domain.ItemKey]{}, fmt.Errorf("unmarshal item key: %w", err)
		}
		existing = append(existing, domain.ItemKey{
			ShopID:      domain.ShopID(record.ShopID),
			ShopsItemID: domain.ShopsItemID(record.ShopsItemID),
		})
	}

	unprocessed, err := unprocessedItemKeys(out.UnprocessedKeys[r.table])
	if err != nil {
		return contracts.BatchGetResult[domain.ItemKey]{}, err
	}
	return contracts.BatchGetResult[domain.ItemKey]{Items: existing, Unprocessed: unprocessed}, nil
}

func (r *ItemRepo) batchGet(
	ctx context.Context,
	keys batch.Batch[domain.ItemKey],
	projection *string,
	names map[string]string,
) (*dynamodb.BatchGetItemOutput, error) {
	requestKeys := make([]map[string]types.AttributeValue, 0, keys.Len())
	for _, key := range keys.Items() {
		requestKeys = append(requestKeys, snapshotKey(key))
	}

	out, err := r.client.BatchGetItem(ctx, &dynamodb.BatchGetItemInput{
		RequestItems: map[string]types.KeysAndAttributes{
			r.table: {
				Keys:                     requestKeys,
				ProjectionExpression:     projection,
				ExpressionAttributeNames: names,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("batch get items: %w", err)
	}
	return out, nil
}

func snapshotKey(key domain.ItemKey) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		m_item.PK: &types.AttributeValueMemberS{Value: m_item.ItemPK(key)},
		m_item.SK: &types.AttributeValueMemberS{Value: m_item.MaterializedSK},
	}
}

func unprocessedItemKeys(remaining types.KeysAndAttributes) ([]domain.ItemKey, error) {
	if len(remaining.Keys) == 0 {
		return nil, nil
	}
	keys := make([]domain.ItemKey, 0, len(remaining.Keys))
	for _, row := range remaining.Keys {
		pk, ok := row[m_item.PK].(*types.AttributeValueMemberS)
		if !ok {
			return nil, fmt.Errorf("unprocessed key misses string attribute %q", m_item.PK)
		}
		key, err := m_item.ParseItemPK(pk.Value)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}
