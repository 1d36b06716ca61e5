package m_search

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulkResponse_FailedIDs(t *testing.T) {
	t.Run("collects ids of rejected documents", func(t *testing.T) {
		payload := `{
			"took": 30,
			"errors": true,
			"items": [
				{"index": {"_id": "a", "status": 201}},
				{"index": {"_id": "b", "status": 400, "error": {"type": "mapper_parsing_exception", "reason": "bad field"}}},
				{"update": {"_id": "c", "status": 404, "error": {"type": "document_missing_exception", "reason": "missing"}}},
				{"update": {"_id": "d", "status": 200}}
			]
		}`

		var response BulkResponse
		require.NoError(t, json.Unmarshal([]byte(payload), &response))

		assert.True(t, response.Errors)
		assert.ElementsMatch(t, []string{"b", "c"}, response.FailedIDs())
	})

	t.Run("no errors yields no failed ids", func(t *testing.T) {
		payload := `{"took": 3, "errors": false, "items": [{"index": {"_id": "a", "status": 200}}]}`

		var response BulkResponse
		require.NoError(t, json.Unmarshal([]byte(payload), &response))

		assert.Empty(t, response.FailedIDs())
	})

	t.Run("status at or above 300 is a failure even without an error body", func(t *testing.T) {
		payload := `{"took": 3, "errors": true, "items": [{"index": {"_id": "a", "status": 503}}]}`

		var response BulkResponse
		require.NoError(t, json.Unmarshal([]byte(payload), &response))

		assert.Equal(t, []string{"a"}, response.FailedIDs())
	})
}
