package m_search

// BulkResponse is the search engine's answer to a bulk request. Each item
// is independently success or failure; the caller maps failures back to
// source keys via the document id.
type BulkResponse struct {
	Took   int                `json:"took"`
	Errors bool               `json:"errors"`
	Items  []BulkResponseItem `json:"items"`
}

// BulkResponseItem wraps the per-action result; exactly one of the fields
// is set, matching the action that produced it.
type BulkResponseItem struct {
	Index  *BulkItemResult `json:"index,omitempty"`
	Create *BulkItemResult `json:"create,omitempty"`
	Update *BulkItemResult `json:"update,omitempty"`
}

// Result returns whichever action result is present.
func (i BulkResponseItem) Result() *BulkItemResult {
	switch {
	case i.Index != nil:
		return i.Index
	case i.Create != nil:
		return i.Create
	default:
		return i.Update
	}
}

// BulkItemResult is the outcome for one document.
type BulkItemResult struct {
	ID     string         `json:"_id"`
	Status int            `json:"status"`
	Error  *BulkItemError `json:"error,omitempty"`
}

// Failed reports whether the document was rejected.
func (r *BulkItemResult) Failed() bool {
	return r == nil || r.Error != nil || r.Status >= 300
}

// BulkItemError carries the engine's failure reason.
type BulkItemError struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

// FailedIDs collects the ids of all rejected documents.
func (r BulkResponse) FailedIDs() []string {
	if !r.Errors {
		return nil
	}
	var failed []string
	for _, item := range r.Items {
		result := item.Result()
		if result != nil && result.Failed() {
			failed = append(failed, result.ID)
		}
	}
	return failed
}
