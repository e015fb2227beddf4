// Package stream contains the lazy evaluation paths of the engine: restartable
// iter.Seq sequences, short-circuit scans (first-n, exists, count), fixed-size
// chunking and channel-based asynchronous filtering.
package stream

import (
	"context"
	"iter"

	"github.com/mcabreradev/filter-sub003/domain"
)

// Streamer runs a compiled predicate over collections and channels without
// materializing intermediate results.
type Streamer struct{}

// NewStreamer returns a new Streamer.
func NewStreamer() *Streamer {
	return &Streamer{}
}

// Lazy returns a forward-only sequence of matches in source order. The
// sequence is restartable: each range re-runs the predicate from the start, so
// two consumers of the same sequence observe the same items.
func (s *Streamer) Lazy(collection []any, pred domain.Predicate) iter.Seq[any] {
	return func(yield func(any) bool) {
		for index, item := range collection {
			if !pred(item, index, collection) {
				continue
			}
			if !yield(item) {
				return
			}
		}
	}
}

// First returns up to n matches, scanning no further than needed. A
// non-positive n yields an empty result.
func (s *Streamer) First(collection []any, pred domain.Predicate, n int) []any {
	if n <= 0 {
		return []any{}
	}
	res := make([]any, 0, n)
	for index, item := range collection {
		if !pred(item, index, collection) {
			continue
		}
		res = append(res, item)
		if len(res) == n {
			break
		}
	}
	return res
}

// Exists reports whether any item matches, stopping at the first hit.
func (s *Streamer) Exists(collection []any, pred domain.Predicate) bool {
	for index, item := range collection {
		if pred(item, index, collection) {
			return true
		}
	}
	return false
}

// Count returns the number of matches without allocating a result collection.
func (s *Streamer) Count(collection []any, pred domain.Predicate) int {
	var n int
	for index, item := range collection {
		if pred(item, index, collection) {
			n++
		}
	}
	return n
}

// Chunk splits items into consecutive batches of the given size. The last
// batch may be shorter; a non-positive size returns a single batch.
func (s *Streamer) Chunk(items []any, size int) [][]any {
	if size <= 0 {
		if len(items) == 0 {
			return [][]any{}
		}
		return [][]any{items}
	}
	chunks := make([][]any, 0, (len(items)+size-1)/size)
	for len(items) > size {
		chunks = append(chunks, items[:size:size])
		items = items[size:]
	}
	if len(items) > 0 {
		chunks = append(chunks, items)
	}
	return chunks
}

// LazyChunks returns a lazy sequence of match batches, accumulating matches
// until each batch fills. The trailing partial batch is yielded last.
func (s *Streamer) LazyChunks(collection []any, pred domain.Predicate, size int) iter.Seq[[]any] {
	return func(yield func([]any) bool) {
		if size <= 0 {
			size = len(collection)
			if size == 0 {
				return
			}
		}
		batch := make([]any, 0, size)
		for index, item := range collection {
			if !pred(item, index, collection) {
				continue
			}
			batch = append(batch, item)
			if len(batch) == size {
				if !yield(batch) {
					return
				}
				batch = make([]any, 0, size)
			}
		}
		if len(batch) > 0 {
			yield(batch)
		}
	}
}

// Channel filters an asynchronous source. The returned channel closes when
// the source closes or ctx is canceled; it suspends only between source
// items, never inside predicate evaluation. Item indexes follow arrival
// order, and the collection argument of externally supplied predicates is nil
// on this path.
func (s *Streamer) Channel(ctx context.Context, source <-chan any, pred domain.Predicate) <-chan any {
	out := make(chan any)
	go func() {
		defer close(out)
		var index int
		for {
			select {
			case <-ctx.Done():
				return
			case item, ok := <-source:
				if !ok {
					return
				}
				if pred(item, index, nil) {
					select {
					case out <- item:
					case <-ctx.Done():
						return
					}
				}
				index++
			}
		}
	}()
	return out
}
