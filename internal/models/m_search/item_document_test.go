package m_search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itemhive/catalog/internal/app/item/domain"
	"github.com/itemhive/catalog/internal/models/m_item"
)

func eventRecord(t *testing.T, event domain.ItemEvent) m_item.ItemEventRecord {
	t.Helper()
	record, err := m_item.NewItemEventRecord(event)
	require.NoError(t, err)
	return record
}

func TestNewItemDocument(t *testing.T) {
	now := time.Date(2024, 5, 2, 8, 30, 0, 0, time.UTC)
	price := domain.NewPrice(4200, domain.CurrencyEur)

	created := domain.CreateItem(domain.NewItem{
		ShopID:      "shop-1",
		ShopsItemID: "article-9",
		ShopName:    "Second Hand Hans",
		NativeTitle: domain.LocalizedText{Language: domain.LanguageDe, Text: "Kommode"},
		OtherTitles: map[domain.Language]string{domain.LanguageEn: "Dresser"},
		NativePrice: &price,
		OtherPrices: map[domain.Currency]domain.MonetaryAmount{domain.CurrencyEur: 4200},
		State:       domain.ItemStateListed,
		URL:         "https://shop.example/article-9",
	}, now)

	t.Run("projects a created event into a full document", func(t *testing.T) {
		record := eventRecord(t, created)

		document, err := NewItemDocument(record)
		require.NoError(t, err)

		assert.Equal(t, record.ItemID, document.ItemID)
		assert.Equal(t, "Second Hand Hans", document.ShopName)
		require.NotNil(t, document.TitleEn)
		assert.Equal(t, "Dresser", *document.TitleEn)
		require.NotNil(t, document.PriceEur)
		assert.Equal(t, uint64(4200), *document.PriceEur)
		assert.Equal(t, "LISTED", document.State)
		assert.Equal(t, now, document.Created)
	})

	t.Run("rejects non-created events", func(t *testing.T) {
		item := domain.ReconstructItem(
			domain.NewItemID(), domain.NewEventID(),
			"shop-1", "article-9", "Second Hand Hans",
			domain.LocalizedText{Language: domain.LanguageDe, Text: "Kommode"},
			nil, nil, nil, nil, nil,
			domain.ItemStateListed, "https://shop.example/article-9", nil,
			domain.NewItemHash(nil, domain.ItemStateListed),
			now, now,
		)
		event := item.ChangeState(domain.ItemStateSold, now)
		require.NotNil(t, event)

		_, err := NewItemDocument(eventRecord(t, *event))
		assert.Error(t, err)
	})
}

func TestNewItemDocumentUpdate(t *testing.T) {
	now := time.Date(2024, 5, 2, 8, 30, 0, 0, time.UTC)
	item := domain.ReconstructItem(
		domain.NewItemID(), domain.NewEventID(),
		"shop-1", "article-9", "Second Hand Hans",
		domain.LocalizedText{Language: domain.LanguageDe, Text: "Kommode"},
		nil, nil, nil, nil, nil,
		domain.ItemStateListed, "https://shop.example/article-9", nil,
		domain.NewItemHash(nil, domain.ItemStateListed),
		now, now,
	)

	t.Run("state event updates only the state", func(t *testing.T) {
		fresh := *item
		event := fresh.ChangeState(domain.ItemStateRemoved, now)
		require.NotNil(t, event)

		update, err := NewItemDocumentUpdate(eventRecord(t, *event))
		require.NoError(t, err)

		require.NotNil(t, update.State)
		assert.Equal(t, "REMOVED", *update.State)
		assert.Nil(t, update.PriceEur)
	})

	t.Run("price event updates the price columns", func(t *testing.T) {
		fresh := *item
		event := fresh.ChangePrice(domain.NewPrice(100, domain.CurrencyEur), domain.NewFixedFxRate(), now)
		require.NotNil(t, event)

		update, err := NewItemDocumentUpdate(eventRecord(t, *event))
		require.NoError(t, err)

		require.NotNil(t, update.PriceEur)
		assert.Nil(t, update.State)
	})
}
