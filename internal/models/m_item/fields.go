package m_item

// Attribute name constants for the items table.
// These provide type-safe attribute references and prevent typos.
const (
	TableName = "items"

	PK                = "pk"
	SK                = "sk"
	ItemID            = "item_id"
	EventID           = "event_id"
	EventType         = "event_type"
	ShopID            = "shop_id"
	ShopsItemID       = "shops_item_id"
	ShopName          = "shop_name"
	TitleNative       = "title_native"
	TitleDe           = "title_de"
	TitleEn           = "title_en"
	DescriptionNative = "description_native"
	DescriptionDe     = "description_de"
	DescriptionEn     = "description_en"
	PriceNative       = "price_native"
	PriceEur          = "price_eur"
	PriceGbp          = "price_gbp"
	PriceUsd          = "price_usd"
	PriceAud          = "price_aud"
	PriceCad          = "price_cad"
	PriceNzd          = "price_nzd"
	State             = "state"
	URL               = "url"
	Images            = "images"
	Hash              = "hash"
	Timestamp         = "timestamp"
	Created           = "created"
	Updated           = "updated"
)
