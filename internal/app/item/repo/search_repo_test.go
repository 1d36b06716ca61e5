package repo

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itemhive/catalog/internal/models/m_search"
)

type stubSearchTransport struct {
	request *http.Request
	status  int
	body    string
	err     error
}

func (s *stubSearchTransport) Perform(req *http.Request) (*http.Response, error) {
	s.request = req
	if s.err != nil {
		return nil, s.err
	}
	return &http.Response{
		StatusCode: s.status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(s.body)),
	}, nil
}

func TestSearchRepo_BulkPutDocuments(t *testing.T) {
	ctx := context.Background()

	t.Run("sends index actions and surfaces failed ids", func(t *testing.T) {
		transport := &stubSearchTransport{
			status: http.StatusOK,
			body: `{"took": 5, "errors": true, "items": [
				{"index": {"_id": "id-1", "status": 201}},
				{"index": {"_id": "id-2", "status": 400, "error": {"type": "x", "reason": "y"}}}
			]}`,
		}
		search := NewSearchRepo(transport, "items")

		result, err := search.BulkPutDocuments(ctx, []m_search.ItemDocument{
			{ItemID: "id-1", State: "LISTED"},
			{ItemID: "id-2", State: "LISTED"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"id-2"}, result.FailedIDs)

		require.NotNil(t, transport.request)
		payload, err := io.ReadAll(transport.request.Body)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(payload)), "\n")
		require.Len(t, lines, 4)
		assert.JSONEq(t, `{"index": {"_id": "id-1"}}`, lines[0])
		assert.Contains(t, transport.request.URL.Path, "items")
	})

	t.Run("an engine-level error fails the whole call", func(t *testing.T) {
		transport := &stubSearchTransport{status: http.StatusServiceUnavailable, body: `{"error": "unavailable"}`}
		search := NewSearchRepo(transport, "items")

		_, err := search.BulkPutDocuments(ctx, []m_search.ItemDocument{{ItemID: "id-1"}})
		assert.Error(t, err)
	})
}

func TestSearchRepo_BulkUpdateDocuments(t *testing.T) {
	ctx := context.Background()

	transport := &stubSearchTransport{
		status: http.StatusOK,
		body:   `{"took": 5, "errors": false, "items": [{"update": {"_id": "id-1", "status": 200}}]}`,
	}
	search := NewSearchRepo(transport, "items")

	state := "SOLD"
	result, err := search.BulkUpdateDocuments(ctx, []m_search.ItemDocumentUpdate{
		{ItemID: "id-1", State: &state},
	})
	require.NoError(t, err)
	assert.Empty(t, result.FailedIDs)

	payload, err := io.ReadAll(transport.request.Body)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(payload)), "\n")
	require.Len(t, lines, 2)
	assert.JSONEq(t, `{"update": {"_id": "id-1"}}`, lines[0])
	// Partial updates travel inside a doc wrapper without the id.
	assert.Contains(t, lines[1], `"doc"`)
	assert.NotContains(t, lines[1], `"id-1"`)
}
