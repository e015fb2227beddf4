// Package filter is a declarative filtering engine for in-memory collections.
// Expressions written as plain Go values - object maps with operator keys,
// wildcard strings, primitives or predicate functions - compile once into
// reusable predicates, with memoization across calls.
//
// The package-level functions run on a shared default engine. Call [New] for
// an engine with its own configuration and isolated caches.
package filter

import (
	"context"
	"iter"
	"sync"

	"github.com/mcabreradev/filter-sub003/adapter/engine"
	"github.com/mcabreradev/filter-sub003/domain"
)

// Shorthands for the domain types used in expressions and results.
type (
	// M is a generic object expression or item.
	M = domain.M
	// A is a generic list.
	A = domain.A
	// Config controls a single filter call.
	Config = domain.Config
	// SortKey is one normalized ordering criterion.
	SortKey = domain.SortKey
	// GeoPoint is a WGS84 coordinate pair.
	GeoPoint = domain.GeoPoint
	// BoundingBox is a geographic rectangle, possibly wrapping the
	// antimeridian.
	BoundingBox = domain.BoundingBox
	// PolygonQuery is a closed polygon given as a vertex ring.
	PolygonQuery = domain.PolygonQuery
	// NearQuery is the argument of the $near operator.
	NearQuery = domain.NearQuery
	// FilterOption configures a single filter call.
	FilterOption = domain.FilterOption
	// Predicate is a compiled, reusable matcher.
	Predicate = domain.Predicate
	// CacheStats carries cache sizes and hit/miss counters.
	CacheStats = domain.CacheStats
	// Engine is the filtering engine interface.
	Engine = domain.Engine
)

// Structural errors surfaced at compile time.
var (
	// ErrMixedOperators reports operator keys mixed with plain field keys
	// in one operator map.
	ErrMixedOperators = domain.ErrMixedOperators
	// ErrNoFieldName reports an empty segment in a dot-notation address.
	ErrNoFieldName = domain.ErrNoFieldName
)

// New returns an engine with its own caches and defaults.
func New(options ...engine.Option) Engine {
	return engine.NewEngine(options...)
}

var defaultEngine = sync.OnceValue(func() Engine {
	return engine.NewEngine()
})

// Default returns the process-wide shared engine backing the package-level
// functions.
func Default() Engine {
	return defaultEngine()
}

// WithCaseSensitive makes string matching, wildcard patterns and string
// ordering case sensitive.
func WithCaseSensitive() FilterOption { return domain.WithCaseSensitive() }

// WithMaxDepth bounds recursive descent into nested objects and arrays.
// Valid values are 1 through 10; the default is 6.
func WithMaxDepth(depth int) FilterOption { return domain.WithMaxDepth(depth) }

// WithCache enables or disables the predicate and result cache tiers for
// this call.
func WithCache(enabled bool) FilterOption { return domain.WithCache(enabled) }

// WithoutCache bypasses the predicate and result cache tiers for this call.
// Results are unaffected, only timing.
func WithoutCache() FilterOption { return domain.WithoutCache() }

// WithComparator overrides the default primitive comparison used during deep
// structural matching.
func WithComparator(fn func(a, b any) bool) FilterOption { return domain.WithComparator(fn) }

// WithOrderBy sets the sort specification for the eager path. Each spec may be
// a bare field name, a field name with a leading '-' for descending order, or
// a [SortKey].
func WithOrderBy(specs ...any) FilterOption { return domain.WithOrderBy(specs...) }

// WithLimit truncates the eager result set after sorting.
func WithLimit(n int) FilterOption { return domain.WithLimit(n) }

// Filter returns the items matching expr, ordered and truncated according to
// the call options. The input collection is never mutated.
func Filter(collection []any, expr any, opts ...FilterOption) ([]any, error) {
	return Default().Filter(collection, expr, opts...)
}

// FilterLazy returns a restartable, forward-only sequence of matches in source
// order. Ordering and limit options do not apply on this path.
func FilterLazy(collection []any, expr any, opts ...FilterOption) (iter.Seq[any], error) {
	return Default().FilterLazy(collection, expr, opts...)
}

// FilterFirst returns the first n matches, scanning no further than needed.
func FilterFirst(collection []any, expr any, n int, opts ...FilterOption) ([]any, error) {
	return Default().FilterFirst(collection, expr, n, opts...)
}

// Exists reports whether at least one item matches, stopping at the first
// match.
func Exists(collection []any, expr any, opts ...FilterOption) (bool, error) {
	return Default().Exists(collection, expr, opts...)
}

// Count returns the number of matching items without allocating a result
// collection.
func Count(collection []any, expr any, opts ...FilterOption) (int, error) {
	return Default().Count(collection, expr, opts...)
}

// FilterChunked groups the eager matches into fixed-size batches.
func FilterChunked(collection []any, expr any, size int, opts ...FilterOption) ([][]any, error) {
	return Default().FilterChunked(collection, expr, size, opts...)
}

// FilterLazyChunked returns a lazy sequence of fixed-size match batches.
func FilterLazyChunked(collection []any, expr any, size int, opts ...FilterOption) (iter.Seq[[]any], error) {
	return Default().FilterLazyChunked(collection, expr, size, opts...)
}

// FilterStream filters an asynchronous source, yielding matches in arrival
// order until the source closes or ctx is canceled.
func FilterStream(ctx context.Context, source <-chan any, expr any, opts ...FilterOption) (<-chan any, error) {
	return Default().FilterStream(ctx, source, expr, opts...)
}

// ClearCache empties the default engine's caches.
func ClearCache() {
	Default().ClearCache()
}

// Stats reports the default engine's cache sizes and counters.
func Stats() CacheStats {
	return Default().CacheStats()
}
