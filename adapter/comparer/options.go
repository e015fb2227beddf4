package comparer

import "github.com/mcabreradev/filter-sub003/domain"

// WithComparer sets the primitive comparer used for leaf comparisons.
func WithComparer(c domain.Comparer) DeepOption {
	return func(d *Deep) {
		d.comparer = c
	}
}

// WithPatternCompiler sets the pattern compiler used for string leaf
// comparisons, so wildcard literals share the engine's pattern cache.
func WithPatternCompiler(p domain.PatternCompiler) DeepOption {
	return func(d *Deep) {
		d.patterns = p
	}
}

// DeepOption configures deep comparator behavior through the functional
// options pattern.
type DeepOption func(*Deep)
