package memo

import (
	"time"

	"github.com/mcabreradev/filter-sub003/domain"
)

// Option is an option for [NewMemoizer].
type Option func(*Memoizer)

// WithHasher sets the expression hasher.
func WithHasher(h domain.Hasher) Option {
	return func(m *Memoizer) { m.hasher = h }
}

// WithTimeGetter sets the clock used for predicate aging.
func WithTimeGetter(clock domain.TimeGetter) Option {
	return func(m *Memoizer) { m.clock = clock }
}

// WithPredicateCapacity bounds the compiled-predicate tier.
func WithPredicateCapacity(n int) Option {
	return func(m *Memoizer) { m.predicateCapacity = n }
}

// WithPredicateTTL ages compiled predicates out of the cache. Zero disables
// aging.
func WithPredicateTTL(ttl time.Duration) Option {
	return func(m *Memoizer) { m.predicateTTL = ttl }
}

// WithResultCapacity bounds the per-collection result tier.
func WithResultCapacity(n int) Option {
	return func(m *Memoizer) { m.resultCapacity = n }
}
