package services

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/opensearch-project/opensearch-go/v2"

	"github.com/itemhive/catalog/internal/app/item/domain"
	"github.com/itemhive/catalog/internal/app/item/queries/get_item"
	"github.com/itemhive/catalog/internal/app/item/repo"
	"github.com/itemhive/catalog/internal/app/item/usecases/ingest_items"
	"github.com/itemhive/catalog/internal/app/item/usecases/materialize_search"
	"github.com/itemhive/catalog/internal/app/item/usecases/materialize_snapshot"
	"github.com/itemhive/catalog/internal/config"
	"github.com/itemhive/catalog/internal/pkg/clock"
	"github.com/itemhive/catalog/internal/transport/queue"
)

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	DynamoDBClient *dynamodb.Client
	SearchClient   *opensearch.Client

	IngestInteractor              *ingest_items.Interactor
	MaterializeSnapshotInteractor *materialize_snapshot.Interactor
	MaterializeSearchInteractor   *materialize_search.Interactor
	GetItemQuery                  *get_item.Query

	CreateItemsHandler         queue.SQSHandler
	UpdateItemsHandler         queue.SQSHandler
	MaterializeSnapshotHandler queue.SQSHandler
	MaterializeSearchHandler   queue.SQSHandler
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, cfg *config.Config) (*ServiceOptions, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	dynamoClient := dynamodb.NewFromConfig(awsCfg)

	searchClient, err := opensearch.NewClient(opensearch.Config{
		Addresses: []string{cfg.Search.Endpoint},
		Username:  cfg.Search.Username,
		Password:  cfg.Search.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create search client: %w", err)
	}

	clk := clock.NewRealClock()
	fx := domain.NewFixedFxRate()

	itemRepo := repo.NewItemRepo(dynamoClient, cfg.Items.TableName)
	eventRepo := repo.NewItemEventRepo(dynamoClient, cfg.Items.TableName)
	snapshotRepo := repo.NewItemSnapshotRepo(dynamoClient, cfg.Items.TableName)
	searchRepo := repo.NewSearchRepo(searchClient, cfg.Search.IndexName)

	ingestInteractor := ingest_items.NewInteractor(itemRepo, eventRepo, fx, clk)
	snapshotInteractor := materialize_snapshot.NewInteractor(snapshotRepo)
	searchInteractor := materialize_search.NewInteractor(searchRepo)
	getItemQuery := get_item.NewQuery(itemRepo)

	return &ServiceOptions{
		DynamoDBClient: dynamoClient,
		SearchClient:   searchClient,

		IngestInteractor:              ingestInteractor,
		MaterializeSnapshotInteractor: snapshotInteractor,
		MaterializeSearchInteractor:   searchInteractor,
		GetItemQuery:                  getItemQuery,

		CreateItemsHandler:         queue.NewCreateItemsHandler(ingestInteractor),
		UpdateItemsHandler:         queue.NewUpdateItemsHandler(ingestInteractor),
		MaterializeSnapshotHandler: queue.NewMaterializeSnapshotHandler(snapshotInteractor),
		MaterializeSearchHandler:   queue.NewMaterializeSearchHandler(searchInteractor),
	}, nil
}
