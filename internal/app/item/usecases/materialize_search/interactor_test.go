package materialize_search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itemhive/catalog/internal/app/item/contracts"
	"github.com/itemhive/catalog/internal/app/item/domain"
	"github.com/itemhive/catalog/internal/models/m_item"
	"github.com/itemhive/catalog/internal/models/m_search"
)

type fakeSearchRepo struct {
	failedIDs []string
	err       error

	documents []m_search.ItemDocument
	updates   []m_search.ItemDocumentUpdate
}

func (f *fakeSearchRepo) BulkPutDocuments(_ context.Context, documents []m_search.ItemDocument) (contracts.BulkIndexResult, error) {
	if f.err != nil {
		return contracts.BulkIndexResult{}, f.err
	}
	f.documents = append(f.documents, documents...)
	return contracts.BulkIndexResult{FailedIDs: f.failedIDs}, nil
}

func (f *fakeSearchRepo) BulkUpdateDocuments(_ context.Context, updates []m_search.ItemDocumentUpdate) (contracts.BulkIndexResult, error) {
	if f.err != nil {
		return contracts.BulkIndexResult{}, f.err
	}
	f.updates = append(f.updates, updates...)
	return contracts.BulkIndexResult{}, nil
}

func testRecords(t *testing.T) (created m_item.ItemEventRecord, updated m_item.ItemEventRecord) {
	t.Helper()
	now := time.Date(2024, 5, 2, 8, 30, 0, 0, time.UTC)

	createEvent := domain.CreateItem(domain.NewItem{
		ShopID:      "shop-1",
		ShopsItemID: "article-1",
		ShopName:    "Second Hand Hans",
		NativeTitle: domain.LocalizedText{Language: domain.LanguageDe, Text: "Kommode"},
		State:       domain.ItemStateListed,
		URL:         "https://shop.example/article-1",
	}, now)
	created, err := m_item.NewItemEventRecord(createEvent)
	require.NoError(t, err)

	item := domain.ReconstructItem(
		domain.NewItemID(), domain.NewEventID(),
		"shop-1", "article-2", "Second Hand Hans",
		domain.LocalizedText{Language: domain.LanguageDe, Text: "Kommode"},
		nil, nil, nil, nil, nil,
		domain.ItemStateListed, "https://shop.example/article-2", nil,
		domain.NewItemHash(nil, domain.ItemStateListed),
		now, now,
	)
	stateEvent := item.ChangeState(domain.ItemStateSold, now)
	require.NotNil(t, stateEvent)
	updated, err = m_item.NewItemEventRecord(*stateEvent)
	require.NoError(t, err)

	return created, updated
}

func TestInteractor_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("routes created events to puts and the rest to updates", func(t *testing.T) {
		created, updated := testRecords(t)
		search := &fakeSearchRepo{}
		interactor := NewInteractor(search)

		failed := interactor.Execute(ctx, []m_item.ItemEventRecord{created, updated})

		assert.Empty(t, failed)
		require.Len(t, search.documents, 1)
		assert.Equal(t, created.ItemID, search.documents[0].ItemID)
		require.Len(t, search.updates, 1)
		assert.Equal(t, updated.ItemID, search.updates[0].ItemID)
	})

	t.Run("ids the engine rejects map back to their keys", func(t *testing.T) {
		created, _ := testRecords(t)
		search := &fakeSearchRepo{failedIDs: []string{created.ItemID}}
		interactor := NewInteractor(search)

		failed := interactor.Execute(ctx, []m_item.ItemEventRecord{created})

		assert.Equal(t, []domain.ItemKey{created.Key()}, failed)
	})

	t.Run("a failed bulk call fails every document in it", func(t *testing.T) {
		created, updated := testRecords(t)
		search := &fakeSearchRepo{err: errors.New("search down")}
		interactor := NewInteractor(search)

		failed := interactor.Execute(ctx, []m_item.ItemEventRecord{created, updated})

		assert.ElementsMatch(t, []domain.ItemKey{created.Key(), updated.Key()}, failed)
	})

	t.Run("a record that fits no projection fails its key", func(t *testing.T) {
		created, _ := testRecords(t)
		created.EventType = "UNKNOWN_EVENT"
		search := &fakeSearchRepo{}
		interactor := NewInteractor(search)

		failed := interactor.Execute(ctx, []m_item.ItemEventRecord{created})

		assert.Equal(t, []domain.ItemKey{created.Key()}, failed)
	})
}
