// Package engine contains the default [domain.Engine] implementation, the
// orchestrator behind the package-level filtering API. It normalizes per-call
// configs, resolves predicates through the cache tiers, runs the eager or lazy
// evaluation path and applies post-processing.
package engine

import (
	"context"
	"iter"
	"reflect"

	"dario.cat/mergo"
	"github.com/apex/log"
	"github.com/google/uuid"

	"github.com/mcabreradev/filter-sub003/adapter/compiler"
	"github.com/mcabreradev/filter-sub003/adapter/memo"
	"github.com/mcabreradev/filter-sub003/adapter/operator"
	"github.com/mcabreradev/filter-sub003/adapter/pattern"
	"github.com/mcabreradev/filter-sub003/adapter/sorter"
	"github.com/mcabreradev/filter-sub003/adapter/stream"
	"github.com/mcabreradev/filter-sub003/domain"
)

// Engine implements [domain.Engine]. Each engine owns its cache service;
// independent engines share nothing.
type Engine struct {
	compiler domain.Compiler
	memo     domain.Memoizer
	sorter   *sorter.Sorter
	stream   *stream.Streamer
	defaults domain.Config
	log      log.Interface
}

// NewEngine returns a new implementation of [domain.Engine]. Unless overridden
// by options, the pattern cache tier is shared between the compiler and the
// memoizer, so wildcard matchers compiled for one expression serve every later
// expression using the same pattern.
func NewEngine(options ...Option) *Engine {
	e := &Engine{
		defaults: domain.Config{MaxDepth: 6},
	}
	for _, option := range options {
		option(e)
	}
	if e.memo == nil {
		e.memo = memo.NewMemoizer()
	}
	if e.compiler == nil {
		patterns := pattern.NewCompiler(pattern.WithCache(e.memo))
		eval := operator.NewEvaluator(operator.WithPatternCompiler(patterns))
		e.compiler = compiler.NewCompiler(compiler.WithEvaluator(eval))
	}
	if e.sorter == nil {
		e.sorter = sorter.NewSorter()
	}
	if e.stream == nil {
		e.stream = stream.NewStreamer()
	}
	if e.log == nil {
		e.log = log.WithField("engine", uuid.NewString())
	}
	return e
}

// Filter implements domain.Engine.
func (e *Engine) Filter(collection []any, expr any, opts ...domain.FilterOption) ([]any, error) {
	cfg, err := e.config(opts...)
	if err != nil {
		return nil, err
	}
	pred, key, cacheable, err := e.predicate(expr, cfg)
	if err != nil {
		return nil, err
	}

	src, identified := collectionID(collection)
	cacheable = cacheable && identified
	if cacheable {
		if res, ok := e.memo.Results(src, key); ok {
			e.log.WithField("key", key).Debug("result cache hit")
			return res, nil
		}
	}

	res := make([]any, 0, len(collection))
	for index, item := range collection {
		if pred(item, index, collection) {
			res = append(res, item)
		}
	}
	res = e.sorter.Apply(res, cfg)

	if cacheable {
		e.memo.SetResults(src, key, res)
	}
	return res, nil
}

// FilterLazy implements domain.Engine. OrderBy and Limit do not apply on the
// lazy path.
func (e *Engine) FilterLazy(collection []any, expr any, opts ...domain.FilterOption) (iter.Seq[any], error) {
	pred, err := e.compile(expr, opts...)
	if err != nil {
		return nil, err
	}
	return e.stream.Lazy(collection, pred), nil
}

// FilterFirst implements domain.Engine.
func (e *Engine) FilterFirst(collection []any, expr any, n int, opts ...domain.FilterOption) ([]any, error) {
	pred, err := e.compile(expr, opts...)
	if err != nil {
		return nil, err
	}
	return e.stream.First(collection, pred, n), nil
}

// Exists implements domain.Engine.
func (e *Engine) Exists(collection []any, expr any, opts ...domain.FilterOption) (bool, error) {
	pred, err := e.compile(expr, opts...)
	if err != nil {
		return false, err
	}
	return e.stream.Exists(collection, pred), nil
}

// Count implements domain.Engine.
func (e *Engine) Count(collection []any, expr any, opts ...domain.FilterOption) (int, error) {
	pred, err := e.compile(expr, opts...)
	if err != nil {
		return 0, err
	}
	return e.stream.Count(collection, pred), nil
}

// FilterChunked implements domain.Engine. Chunking happens after ordering and
// truncation.
func (e *Engine) FilterChunked(collection []any, expr any, size int, opts ...domain.FilterOption) ([][]any, error) {
	res, err := e.Filter(collection, expr, opts...)
	if err != nil {
		return nil, err
	}
	return e.stream.Chunk(res, size), nil
}

// FilterLazyChunked implements domain.Engine.
func (e *Engine) FilterLazyChunked(collection []any, expr any, size int, opts ...domain.FilterOption) (iter.Seq[[]any], error) {
	pred, err := e.compile(expr, opts...)
	if err != nil {
		return nil, err
	}
	return e.stream.LazyChunks(collection, pred, size), nil
}

// FilterStream implements domain.Engine.
func (e *Engine) FilterStream(ctx context.Context, source <-chan any, expr any, opts ...domain.FilterOption) (<-chan any, error) {
	pred, err := e.compile(expr, opts...)
	if err != nil {
		return nil, err
	}
	return e.stream.Channel(ctx, source, pred), nil
}

// ClearCache implements domain.Engine.
func (e *Engine) ClearCache() {
	e.memo.Clear()
}

// CacheStats implements domain.Engine.
func (e *Engine) CacheStats() domain.CacheStats {
	return e.memo.Stats()
}

// config builds the call config: functional options over the zero value,
// engine defaults merged into whatever stayed zero, then validation.
func (e *Engine) config(opts ...domain.FilterOption) (domain.Config, error) {
	var cfg domain.Config
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := mergo.Merge(&cfg, e.defaults); err != nil {
		return cfg, err
	}
	if cfg.MaxDepth < 1 || cfg.MaxDepth > 10 {
		return cfg, domain.ErrConfiguration{Field: "MaxDepth", Value: cfg.MaxDepth}
	}
	return cfg, nil
}

// compile resolves the predicate for the short-circuit and lazy paths, where
// no result tier applies.
func (e *Engine) compile(expr any, opts ...domain.FilterOption) (domain.Predicate, error) {
	cfg, err := e.config(opts...)
	if err != nil {
		return nil, err
	}
	pred, _, _, err := e.predicate(expr, cfg)
	return pred, err
}

// predicate resolves a compiled predicate through the cache tiers. cacheable
// is false for unhashable expressions and cache-bypassing configs.
func (e *Engine) predicate(expr any, cfg domain.Config) (pred domain.Predicate, key string, cacheable bool, err error) {
	key, hashable := e.memo.Key(expr, cfg)
	if cfg.DisableCache || !hashable {
		pred, err = e.compiler.Compile(expr, cfg)
		return pred, "", false, err
	}

	if pred, ok := e.memo.Predicate(key); ok {
		return pred, key, true, nil
	}
	e.log.WithField("key", key).Debug("compiling expression")
	pred, err = e.memo.CompileOnce(key, func() (domain.Predicate, error) {
		return e.compiler.Compile(expr, cfg)
	})
	return pred, key, true, err
}

// collectionID identifies a collection by backing-array reference and length.
// Empty and nil collections carry no identity.
func collectionID(collection []any) (domain.CollectionID, bool) {
	if len(collection) == 0 {
		return domain.CollectionID{}, false
	}
	return domain.CollectionID{
		Ptr: reflect.ValueOf(collection).Pointer(),
		Len: len(collection),
	}, true
}
