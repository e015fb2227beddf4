package engine

import (
	"github.com/apex/log"

	"github.com/mcabreradev/filter-sub003/adapter/sorter"
	"github.com/mcabreradev/filter-sub003/adapter/stream"
	"github.com/mcabreradev/filter-sub003/domain"
)

// Option is an option for [NewEngine].
type Option func(*Engine)

// WithCompiler sets the expression compiler.
func WithCompiler(c domain.Compiler) Option {
	return func(e *Engine) { e.compiler = c }
}

// WithMemoizer sets the cache service.
func WithMemoizer(m domain.Memoizer) Option {
	return func(e *Engine) { e.memo = m }
}

// WithSorter sets the result post-processor.
func WithSorter(s *sorter.Sorter) Option {
	return func(e *Engine) { e.sorter = s }
}

// WithStreamer sets the lazy evaluation backend.
func WithStreamer(s *stream.Streamer) Option {
	return func(e *Engine) { e.stream = s }
}

// WithLogger sets the structured logger.
func WithLogger(l log.Interface) Option {
	return func(e *Engine) { e.log = l }
}

// WithDefaults sets the engine-level config defaults merged into every call.
func WithDefaults(cfg domain.Config) Option {
	return func(e *Engine) { e.defaults = cfg }
}
