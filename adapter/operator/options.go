package operator

import "github.com/mcabreradev/filter-sub003/domain"

// WithComparer sets the comparer implementation for value comparisons.
func WithComparer(c domain.Comparer) Option {
	return func(e *Evaluator) {
		e.comparer = c
	}
}

// WithDeepComparer sets the deep structural comparator used by equality
// operators.
func WithDeepComparer(d domain.DeepComparer) Option {
	return func(e *Evaluator) {
		e.deep = d
	}
}

// WithPatternCompiler sets the pattern compiler used by string operators.
func WithPatternCompiler(p domain.PatternCompiler) Option {
	return func(e *Evaluator) {
		e.patterns = p
	}
}

// WithTimeGetter sets the time source for relative-time operators.
func WithTimeGetter(t domain.TimeGetter) Option {
	return func(e *Evaluator) {
		e.clock = t
	}
}

// Option configures evaluator behavior through the functional options
// pattern.
type Option func(*Evaluator)
