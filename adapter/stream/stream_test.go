package stream

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evens(item any, _ int, _ []any) bool {
	n, ok := item.(int)
	return ok && n%2 == 0
}

func collection() []any {
	return []any{1, 2, 3, 4, 5, 6, 7, 8}
}

func TestLazyYieldsInSourceOrder(t *testing.T) {
	s := NewStreamer()
	var got []any
	for v := range s.Lazy(collection(), evens) {
		got = append(got, v)
	}
	assert.Equal(t, []any{2, 4, 6, 8}, got)
}

func TestLazyIsRestartable(t *testing.T) {
	s := NewStreamer()
	seq := s.Lazy(collection(), evens)

	var first, second []any
	for v := range seq {
		first = append(first, v)
	}
	for v := range seq {
		second = append(second, v)
	}
	assert.Equal(t, first, second)
}

func TestLazyStopsOnBreak(t *testing.T) {
	s := NewStreamer()
	var got []any
	for v := range s.Lazy(collection(), evens) {
		got = append(got, v)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []any{2, 4}, got)
}

func TestFirst(t *testing.T) {
	s := NewStreamer()
	assert.Equal(t, []any{2, 4}, s.First(collection(), evens, 2))
	assert.Equal(t, []any{2, 4, 6, 8}, s.First(collection(), evens, 99))
	assert.Empty(t, s.First(collection(), evens, 0))
	assert.Empty(t, s.First(collection(), evens, -1))
}

func TestExistsAndCount(t *testing.T) {
	s := NewStreamer()
	assert.True(t, s.Exists(collection(), evens))
	assert.False(t, s.Exists([]any{1, 3, 5}, evens))
	assert.Equal(t, 4, s.Count(collection(), evens))
	assert.Zero(t, s.Count(nil, evens))
}

func TestChunk(t *testing.T) {
	s := NewStreamer()
	chunks := s.Chunk([]any{1, 2, 3, 4, 5}, 2)
	assert.Equal(t, [][]any{{1, 2}, {3, 4}, {5}}, chunks)

	assert.Equal(t, [][]any{{1, 2}}, s.Chunk([]any{1, 2}, 2))
	assert.Equal(t, [][]any{{1, 2}}, s.Chunk([]any{1, 2}, 0))
	assert.Empty(t, s.Chunk(nil, 2))
}

func TestLazyChunks(t *testing.T) {
	s := NewStreamer()
	var got [][]any
	for batch := range s.LazyChunks(collection(), evens, 3) {
		got = append(got, batch)
	}
	assert.Equal(t, [][]any{{2, 4, 6}, {8}}, got)
}

func TestLazyChunksStopOnBreak(t *testing.T) {
	s := NewStreamer()
	var batches int
	for range s.LazyChunks(collection(), evens, 1) {
		batches++
		if batches == 2 {
			break
		}
	}
	assert.Equal(t, 2, batches)
}

func TestChannelFiltersInArrivalOrder(t *testing.T) {
	s := NewStreamer()
	source := make(chan any)
	go func() {
		defer close(source)
		for _, v := range collection() {
			source <- v
		}
	}()

	out := s.Channel(context.Background(), source, evens)
	var got []any
	for v := range out {
		got = append(got, v)
	}
	assert.Equal(t, []any{2, 4, 6, 8}, got)
}

func TestChannelStopsOnCancel(t *testing.T) {
	s := NewStreamer()
	ctx, cancel := context.WithCancel(context.Background())
	source := make(chan any)

	out := s.Channel(ctx, source, evens)
	source <- 2
	require.Equal(t, 2, <-out)

	cancel()
	select {
	case _, open := <-out:
		assert.False(t, open, "output closes after cancellation")
	case <-time.After(time.Second):
		t.Fatal("output channel did not close")
	}
}
