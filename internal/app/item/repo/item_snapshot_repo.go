package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/itemhive/catalog/internal/app/item/contracts"
	"github.com/itemhive/catalog/internal/app/item/domain"
	"github.com/itemhive/catalog/internal/models/m_item"
	"github.com/itemhive/catalog/internal/pkg/expr"
)

// ItemSnapshotRepo implements ItemSnapshotWriteRepository for DynamoDB.
type ItemSnapshotRepo struct {
	client DynamoDBClient
	table  string
}

// NewItemSnapshotRepo creates a new ItemSnapshotRepo.
func NewItemSnapshotRepo(client DynamoDBClient, table string) contracts.ItemSnapshotWriteRepository {
	return &ItemSnapshotRepo{client: client, table: table}
}

// PutItemRecord writes the full snapshot row of a freshly created item.
func (r *ItemSnapshotRepo) PutItemRecord(ctx context.Context, record m_item.ItemRecord) error {
	row, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("marshal item record %s: %w", record.Key(), err)
	}
	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      row,
	}); err != nil {
		return fmt.Errorf("put item record %s: %w", record.Key(), err)
	}
	return nil
}

// UpdateItemRecord applies a partial update to an existing snapshot row.
// It fails when the row is missing so events cannot materialize a torso
// snapshot out of order.
func (r *ItemSnapshotRepo) UpdateItemRecord(ctx context.Context, key domain.ItemKey, update m_item.ItemRecordUpdate) error {
	row, err := attributevalue.MarshalMap(update)
	if err != nil {
		return fmt.Errorf("marshal item record update %s: %w", key, err)
	}

	expression, err := expr.Update().SetAll(row, m_item.PK, m_item.SK).Build()
	if err != nil {
		return fmt.Errorf("build update expression %s: %w", key, err)
	}

	if _, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.table),
		Key:                       snapshotKey(key),
		UpdateExpression:          aws.String(expression.Update),
		ExpressionAttributeNames:  expression.Names,
		ExpressionAttributeValues: expression.Values,
		ConditionExpression:       aws.String("attribute_exists(" + m_item.PK + ")"),
	}); err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return fmt.Errorf("update item record %s: %w", key, domain.ErrItemNotFound)
		}
		return fmt.Errorf("update item record %s: %w", key, err)
	}
	return nil
}
