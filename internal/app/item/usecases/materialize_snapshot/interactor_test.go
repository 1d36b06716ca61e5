package materialize_snapshot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itemhive/catalog/internal/app/item/domain"
	"github.com/itemhive/catalog/internal/models/m_item"
)

type fakeSnapshotRepo struct {
	puts    []m_item.ItemRecord
	updates []m_item.ItemRecordUpdate
	err     error
}

func (f *fakeSnapshotRepo) PutItemRecord(_ context.Context, record m_item.ItemRecord) error {
	if f.err != nil {
		return f.err
	}
	f.puts = append(f.puts, record)
	return nil
}

func (f *fakeSnapshotRepo) UpdateItemRecord(_ context.Context, _ domain.ItemKey, update m_item.ItemRecordUpdate) error {
	if f.err != nil {
		return f.err
	}
	f.updates = append(f.updates, update)
	return nil
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

	t.Run("created events become full rows, the rest partial updates", func(t *testing.T) {
		created, updated := testRecords(t)
		snapshots := &fakeSnapshotRepo{}
		interactor := NewInteractor(snapshots)

		failed := interactor.Execute(ctx, []m_item.ItemEventRecord{created, updated})

		assert.Empty(t, failed)
		require.Len(t, snapshots.puts, 1)
		assert.Equal(t, m_item.MaterializedSK, snapshots.puts[0].SK)
		require.Len(t, snapshots.updates, 1)
		require.NotNil(t, snapshots.updates[0].State)
		assert.Equal(t, "SOLD", *snapshots.updates[0].State)
	})

	t.Run("a failing write fails that record's key", func(t *testing.T) {
		created, _ := testRecords(t)
		snapshots := &fakeSnapshotRepo{err: errors.New("store down")}
		interactor := NewInteractor(snapshots)

		failed := interactor.Execute(ctx, []m_item.ItemEventRecord{created})

		assert.Equal(t, []domain.ItemKey{created.Key()}, failed)
	})

	t.Run("an unknown event type fails its key", func(t *testing.T) {
		created, _ := testRecords(t)
		created.EventType = "UNKNOWN_EVENT"
		snapshots := &fakeSnapshotRepo{}
		interactor := NewInteractor(snapshots)

		failed := interactor.Execute(ctx, []m_item.ItemEventRecord{created})

		assert.Equal(t, []domain.ItemKey{created.Key()}, failed)
		assert.Empty(t, snapshots.puts)
	})
}
