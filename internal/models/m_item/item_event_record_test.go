package m_item

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itemhive/catalog/internal/app/item/domain"
)

func createdEvent(t *testing.T, now time.Time) domain.ItemEvent {
	t.Helper()
	price := domain.NewPrice(4200, domain.CurrencyEur)
	other, err := domain.NewFixedFxRate().ExchangeAll(price.Currency, price.Amount)
	require.NoError(t, err)

	return domain.CreateItem(domain.NewItem{
		ShopID:      "shop-1",
		ShopsItemID: "article-9",
		ShopName:    "Second Hand Hans",
		NativeTitle: domain.LocalizedText{Language: domain.LanguageDe, Text: "Kommode"},
		OtherTitles: map[domain.Language]string{domain.LanguageEn: "Dresser"},
		NativePrice: &price,
		OtherPrices: other,
		State:       domain.ItemStateListed,
		URL:         "https://shop.example/article-9",
		Images:      []string{"https://img.example/1.jpg"},
	}, now)
}

func TestNewItemEventRecord(t *testing.T) {
	now := time.Date(2024, 5, 2, 8, 30, 0, 0, time.UTC)

	t.Run("created event carries the full snapshot", func(t *testing.T) {
		event := createdEvent(t, now)

		record, err := NewItemEventRecord(event)
		require.NoError(t, err)

		assert.Equal(t, "item#shop_id#shop-1#shops_item_id#article-9", record.PK)
		assert.Equal(t, "item#event#2024-05-02T08:30:00.000000000Z#"+record.EventID, record.SK)
		assert.Equal(t, "CREATED", record.EventType)
		assert.Equal(t, "shop-1", record.ShopID)
		assert.Equal(t, "article-9", record.ShopsItemID)
		require.NotNil(t, record.TitleNative)
		assert.Equal(t, TextRecord{Language: "de", Text: "Kommode"}, *record.TitleNative)
		require.NotNil(t, record.TitleEn)
		assert.Equal(t, "Dresser", *record.TitleEn)
		require.NotNil(t, record.PriceNative)
		assert.Equal(t, PriceRecord{Currency: "EUR", Amount: 4200}, *record.PriceNative)
		require.NotNil(t, record.PriceUsd)
		assert.Equal(t, uint64(4549), *record.PriceUsd)
		require.NotNil(t, record.State)
		assert.Equal(t, "LISTED", *record.State)
		assert.Len(t, record.Hash, 64)
		assert.Equal(t, now, record.Timestamp)
	})

	t.Run("state event carries only the state", func(t *testing.T) {
		item := reconstructed(t, now)
		event := item.ChangeState(domain.ItemStateSold, now)
		require.NotNil(t, event)

		record, err := NewItemEventRecord(*event)
		require.NoError(t, err)

		assert.Equal(t, "STATE_SOLD", record.EventType)
		require.NotNil(t, record.State)
		assert.Equal(t, "SOLD", *record.State)
		assert.Nil(t, record.ShopName)
		assert.Nil(t, record.PriceNative)
		assert.Nil(t, record.TitleNative)
	})

	t.Run("price event carries the price columns", func(t *testing.T) {
		item := reconstructed(t, now)
		event := item.ChangePrice(domain.NewPrice(100, domain.CurrencyGbp), domain.NewFixedFxRate(), now)
		require.NotNil(t, event)

		record, err := NewItemEventRecord(*event)
		require.NoError(t, err)

		assert.Equal(t, "PRICE_DISCOVERED", record.EventType)
		require.NotNil(t, record.PriceNative)
		assert.Equal(t, PriceRecord{Currency: "GBP", Amount: 100}, *record.PriceNative)
		require.NotNil(t, record.PriceEur)
		assert.Nil(t, record.State)
	})

	t.Run("events in the same instant get distinct sort keys", func(t *testing.T) {
		item := reconstructed(t, now)
		priceEvent := item.ChangePrice(domain.NewPrice(100, domain.CurrencyGbp), domain.NewFixedFxRate(), now)
		require.NotNil(t, priceEvent)
		stateEvent := item.ChangeState(domain.ItemStateSold, now)
		require.NotNil(t, stateEvent)

		priceRecord, err := NewItemEventRecord(*priceEvent)
		require.NoError(t, err)
		stateRecord, err := NewItemEventRecord(*stateEvent)
		require.NoError(t, err)

		assert.Equal(t, priceRecord.PK, stateRecord.PK)
		assert.NotEqual(t, priceRecord.SK, stateRecord.SK)
	})

	t.Run("sort keys order sub-second events chronologically", func(t *testing.T) {
		earlier := EventSK(now, "a")
		later := EventSK(now.Add(300*time.Millisecond), "a")
		assert.Less(t, earlier, later)
	})

	t.Run("rejects events without a timestamp", func(t *testing.T) {
		event := createdEvent(t, now)
		event.Timestamp = time.Time{}

		_, err := NewItemEventRecord(event)
		assert.Error(t, err)
	})
}

func reconstructed(t *testing.T, now time.Time) *domain.Item {
	t.Helper()
	return domain.ReconstructItem(
		domain.NewItemID(),
		domain.NewEventID(),
		"shop-1",
		"article-9",
		"Second Hand Hans",
		domain.LocalizedText{Language: domain.LanguageDe, Text: "Kommode"},
		nil, nil, nil, nil, nil,
		domain.ItemStateListed,
		"https://shop.example/article-9",
		nil,
		domain.NewItemHash(nil, domain.ItemStateListed),
		now, now,
	)
}

func TestItemPKRoundTrip(t *testing.T) {
	key := domain.NewItemKey("shop-1", "article-9")
	parsed, err := ParseItemPK(ItemPK(key))
	require.NoError(t, err)
	assert.Equal(t, key, parsed)

	_, err = ParseItemPK("order#shop_id#x")
	assert.Error(t, err)
}
