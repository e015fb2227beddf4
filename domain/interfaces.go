// Package domain contains domain-specific interfaces and option types for the
// filter engine.
//
// This package defines the core interfaces that must be implemented by
// adapters, as well as functional options for configuring individual filter
// calls and shared value types such as [Config], [GeoPoint] and [SortKey].
package domain

import (
	"context"
	"iter"
	"time"
)

// Predicate is a compiled, reusable matcher over a single collection item.
// Index and collection give externally supplied predicate functions access to
// their position; compiled expression predicates ignore them. A Predicate is
// a pure function of the expression and config it was compiled from and never
// mutates the item.
type Predicate func(item any, index int, collection []any) bool

// Comparer provides ordering and comparison operations for primitive values.
type Comparer interface {
	// Compare returns -1, 0, or 1 based on the comparison of two values.
	Compare(any, any) (int, error)
	// Comparable returns true if two values can be compared.
	Comparable(any, any) bool
}

// DeepComparer performs recursive structural matching of an actual value
// against an expected literal, honoring negation markers, array any-element
// semantics and the configured depth limit. It fails closed: any per-item
// problem resolves the branch to non-matching.
type DeepComparer interface {
	// Match reports whether actual matches expected at the given depth.
	Match(actual, expected any, cfg Config, depth int) bool
	// Search behaves like Match but additionally lets a primitive expected
	// value match any non-operator field of an object ("match against any
	// field" mode, used by whole-item string searches).
	Search(actual, expected any, cfg Config, depth int) bool
}

// TextMatcher matches a prepared string pattern against candidate strings.
type TextMatcher interface {
	// MatchString reports whether s matches the pattern.
	MatchString(s string) bool
}

// PatternCompiler translates wildcard/negation string patterns and raw
// regular expressions into text matchers.
type PatternCompiler interface {
	// Compile translates a wildcard pattern. Patterns without wildcard
	// markers degenerate to substring or equality matching depending on
	// opts.
	Compile(pattern string, opts PatternOptions) (TextMatcher, error)
	// CompileRegex compiles a raw regular expression. Malformed patterns
	// return an error; they are the one structural failure that
	// propagates to the caller.
	CompileRegex(expr string, caseSensitive bool) (TextMatcher, error)
}

// Getter represents a value that can be treated as undefined. If an address
// points to an unset key in an object, or an out of bounds index in an array
// or any address within a primitive value, it counts as undefined. An
// explicit nil value still counts as defined.
type Getter interface {
	Get() (value any, defined bool)
}

// FieldNavigator provides field access operations with dot notation support.
type FieldNavigator interface {
	// GetAddress extracts the nested path from a string address using dot
	// notation.
	GetAddress(field string) ([]string, error)
	// GetField extracts values from nested items, following path parts.
	// The second return reports whether an intermediate array was
	// expanded along the way.
	GetField(item any, addr ...string) ([]Getter, bool)
}

// Hasher generates stable hash values for expressions and configs. Hashes of
// semantically equal object expressions are identical regardless of key
// insertion order.
type Hasher interface {
	Hash(any) (uint64, error)
}

// TimeGetter provides current time for relative-time operators and cache
// aging.
type TimeGetter interface {
	GetTime() time.Time
}

// Compiler builds a reusable predicate from an expression and a config.
type Compiler interface {
	Compile(expr any, cfg Config) (Predicate, error)
}

// CollectionID identifies a source collection by reference, not contents.
// If the caller mutates the backing array in place, stale cached results are
// possible by design.
type CollectionID struct {
	Ptr uintptr
	Len int
}

// Memoizer is the layered cache service: compiled predicates (bounded, aged),
// compiled patterns (process lifetime) and per-collection results (bounded
// side table). It is constructor-injected, never ambient.
type Memoizer interface {
	// Key computes the cache key for an expression/config pair. ok is
	// false for unhashable expressions (externally supplied functions),
	// which always bypass the caches.
	Key(expr any, cfg Config) (key string, ok bool)
	// Predicate returns a cached compiled predicate, if present and not
	// expired.
	Predicate(key string) (Predicate, bool)
	// CompileOnce compiles through a single-flight group so concurrent
	// callers of the same key share one compilation.
	CompileOnce(key string, compile func() (Predicate, error)) (Predicate, error)
	// Pattern returns a cached compiled text matcher.
	Pattern(key string) (TextMatcher, bool)
	// SetPattern stores a compiled text matcher.
	SetPattern(key string, m TextMatcher)
	// Results returns cached filter results for a collection identity and
	// expression key.
	Results(src CollectionID, key string) ([]any, bool)
	// SetResults stores filter results for a collection identity and
	// expression key.
	SetResults(src CollectionID, key string, res []any)
	// Clear empties every cache tier.
	Clear()
	// Stats reports cache sizes and hit/miss counters.
	Stats() CacheStats
}

// Engine is the main interface of the filtering engine. A single engine owns
// its cache service; independent engines share nothing.
type Engine interface {
	// Filter returns the items matching expr, ordered and truncated
	// according to the call config. The input collection is never
	// mutated.
	Filter(collection []any, expr any, opts ...FilterOption) ([]any, error)

	// FilterLazy returns a restartable, forward-only sequence of matches
	// in source order. OrderBy and Limit are ignored on the lazy path.
	FilterLazy(collection []any, expr any, opts ...FilterOption) (iter.Seq[any], error)

	// FilterFirst returns the first n matches, scanning no further than
	// needed.
	FilterFirst(collection []any, expr any, n int, opts ...FilterOption) ([]any, error)

	// Exists reports whether at least one item matches, stopping at the
	// first match.
	Exists(collection []any, expr any, opts ...FilterOption) (bool, error)

	// Count returns the number of matching items without allocating a
	// result collection.
	Count(collection []any, expr any, opts ...FilterOption) (int, error)

	// FilterChunked groups the eager matches into fixed-size batches.
	FilterChunked(collection []any, expr any, size int, opts ...FilterOption) ([][]any, error)

	// FilterLazyChunked returns a lazy sequence of fixed-size batches.
	FilterLazyChunked(collection []any, expr any, size int, opts ...FilterOption) (iter.Seq[[]any], error)

	// FilterStream filters an asynchronous source. It suspends only
	// between source items, never inside predicate evaluation, and stops
	// when the source closes or ctx is canceled. Yielded order equals
	// source order filtered through the predicate.
	FilterStream(ctx context.Context, source <-chan any, expr any, opts ...FilterOption) (<-chan any, error)

	// ClearCache empties the engine's caches.
	ClearCache()

	// CacheStats reports the engine's cache sizes and counters.
	CacheStats() CacheStats
}

// PatternOptions controls how a wildcard pattern degenerates when it carries
// no wildcard markers.
type PatternOptions struct {
	CaseSensitive bool
	// Substring makes a marker-free pattern match as substring
	// containment instead of whole-string equality.
	Substring bool
}

// CacheStats carries cache sizes and hit/miss counters for introspection.
type CacheStats struct {
	PredicateCacheSize int
	PatternCacheSize   int
	ResultCacheSize    int
	Hits               int64
	Misses             int64
}
