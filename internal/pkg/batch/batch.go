// Package batch provides a size-bounded, non-empty sequence type used for
// every batched call against the external stores. The bound is part of the
// type's construction contract instead of an ad hoc length assertion at
// each call site: a Batch can only be obtained through TryFrom or Chunked,
// and neither can produce an empty batch or one over its limit.
package batch

import (
	"errors"
	"fmt"
)

// The two independent external call limits this repository has to respect.
const (
	// WriteLimit is the per-call record cap of the store's batch write.
	WriteLimit = 25
	// ReadLimit is the per-call key cap of the store's batch read.
	ReadLimit = 100
)

// ErrBatchEmpty rejects construction from an empty input.
var ErrBatchEmpty = errors.New("batch must not be empty")

// SizeExceededError rejects construction from an input longer than the
// batch's limit.
type SizeExceededError struct {
	Size int
	Max  int
}

func (e *SizeExceededError) Error() string {
	return fmt.Sprintf("batch size exceeded: got %d, max is %d", e.Size, e.Max)
}

// Batch is a non-empty sequence of at most Max elements.
type Batch[T any] struct {
	items []T
	max   int
}

// TryFrom builds a Batch from items, failing with ErrBatchEmpty or a
// *SizeExceededError when the input violates the bound.
func TryFrom[T any](items []T, max int) (Batch[T], error) {
	switch {
	case len(items) == 0:
		return Batch[T]{}, ErrBatchEmpty
	case len(items) > max:
		return Batch[T]{}, &SizeExceededError{Size: len(items), Max: max}
	default:
		return Batch[T]{items: items, max: max}, nil
	}
}

// Chunked splits items into consecutive batches of at most max elements.
// An empty input yields no batches; no produced batch is ever empty or
// over the limit.
func Chunked[T any](items []T, max int) []Batch[T] {
	if len(items) == 0 {
		return nil
	}
	out := make([]Batch[T], 0, (len(items)+max-1)/max)
	for start := 0; start < len(items); start += max {
		end := min(start+max, len(items))
		out = append(out, Batch[T]{items: items[start:end], max: max})
	}
	return out
}

// Items returns the underlying elements. Callers must not grow the slice.
func (b Batch[T]) Items() []T { return b.items }

// Len returns the number of elements.
func (b Batch[T]) Len() int { return len(b.items) }

// Max returns the batch's size limit.
func (b Batch[T]) Max() int { return b.max }
