package contracts

import (
	"context"

	"github.com/itemhive/catalog/internal/models/m_search"
)

// BulkIndexResult reports per-document outcomes of a bulk index call.
// FailedIDs holds the document ids the engine rejected; the caller maps
// them back to source keys.
type BulkIndexResult struct {
	FailedIDs []string
}

// SearchIndexRepository is the materialization sink towards the search
// engine.
type SearchIndexRepository interface {
	// BulkPutDocuments indexes full documents, overwriting existing ones.
	BulkPutDocuments(ctx context.Context, documents []m_search.ItemDocument) (BulkIndexResult, error)

	// BulkUpdateDocuments applies partial document updates.
	BulkUpdateDocuments(ctx context.Context, updates []m_search.ItemDocumentUpdate) (BulkIndexResult, error)
}
