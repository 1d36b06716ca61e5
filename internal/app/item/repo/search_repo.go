package repo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"

	"github.com/itemhive/catalog/internal/app/item/contracts"
	"github.com/itemhive/catalog/internal/models/m_search"
)

// SearchTransport executes OpenSearch requests. *opensearch.Client
// satisfies it.
type SearchTransport interface {
	Perform(req *http.Request) (*http.Response, error)
}

// SearchRepo implements SearchIndexRepository for OpenSearch.
type SearchRepo struct {
	transport SearchTransport
	index     string
}

// NewSearchRepo creates a new SearchRepo.
func NewSearchRepo(transport SearchTransport, index string) contracts.SearchIndexRepository {
	return &SearchRepo{transport: transport, index: index}
}

// BulkPutDocuments indexes full documents, overwriting existing ones.
func (r *SearchRepo) BulkPutDocuments(ctx context.Context, documents []m_search.ItemDocument) (contracts.BulkIndexResult, error) {
	var body bytes.Buffer
	for _, document := range documents {
		if err := writeBulkLine(&body, bulkAction{Index: &bulkActionMeta{ID: document.ItemID}}); err != nil {
			return contracts.BulkIndexResult{}, err
		}
		if err := writeBulkLine(&body, document); err != nil {
			return contracts.BulkIndexResult{}, err
		}
	}
	return r.execute(ctx, &body)
}

// BulkUpdateDocuments applies partial document updates.
func (r *SearchRepo) BulkUpdateDocuments(ctx context.Context, updates []m_search.ItemDocumentUpdate) (contracts.BulkIndexResult, error) {
	var body bytes.Buffer
	for _, update := range updates {
		if err := writeBulkLine(&body, bulkAction{Update: &bulkActionMeta{ID: update.ItemID}}); err != nil {
			return contracts.BulkIndexResult{}, err
		}
		if err := writeBulkLine(&body, bulkDoc{Doc: update}); err != nil {
			return contracts.BulkIndexResult{}, err
		}
	}
	return r.execute(ctx, &body)
}

func (r *SearchRepo) execute(ctx context.Context, body io.Reader) (contracts.BulkIndexResult, error) {
	req := opensearchapi.BulkRequest{
		Index: r.index,
		Body:  body,
	}
	res, err := req.Do(ctx, r.transport)
	if err != nil {
		return contracts.BulkIndexResult{}, fmt.Errorf("bulk index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return contracts.BulkIndexResult{}, fmt.Errorf("bulk index: %s", res.String())
	}

	var response m_search.BulkResponse
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return contracts.BulkIndexResult{}, fmt.Errorf("decode bulk response: %w", err)
	}
	return contracts.BulkIndexResult{FailedIDs: response.FailedIDs()}, nil
}

type bulkAction struct {
	Index  *bulkActionMeta `json:"index,omitempty"`
	Update *bulkActionMeta `json:"update,omitempty"`
}

type bulkActionMeta struct {
	ID string `json:"_id"`
}

type bulkDoc struct {
	Doc any `json:"doc"`
}

func writeBulkLine(body *bytes.Buffer, line any) error {
	payload, err := json.Marshal(line)
	if err != nil {
		return fmt.Errorf("marshal bulk line: %w", err)
	}
	body.Write(payload)
	body.WriteByte('\n')
	return nil
}
