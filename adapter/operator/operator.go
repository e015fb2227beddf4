// Package operator contains the pure evaluation functions behind the
// comparison, array, string, geospatial and relative-time operators.
//
// Every evaluator is fail-closed: a type mismatch, an invalid coordinate or
// an unparseable date makes the operator evaluate to non-matching for that
// item. A single malformed record never aborts a scan. Argument parsing, by
// contrast, happens once at compile time and does return errors.
package operator

import (
	"github.com/mcabreradev/filter-sub003/adapter/comparer"
	"github.com/mcabreradev/filter-sub003/adapter/pattern"
	"github.com/mcabreradev/filter-sub003/adapter/timegetter"
	"github.com/mcabreradev/filter-sub003/domain"
)

// Evaluator bundles the dependencies shared by the operator categories.
type Evaluator struct {
	comparer domain.Comparer
	deep     domain.DeepComparer
	patterns domain.PatternCompiler
	clock    domain.TimeGetter
}

// NewEvaluator returns a new Evaluator with default collaborators.
func NewEvaluator(options ...Option) *Evaluator {
	e := &Evaluator{
		comparer: comparer.NewComparer(),
		patterns: pattern.NewCompiler(),
		clock:    timegetter.NewTimeGetter(),
	}
	for _, option := range options {
		option(e)
	}
	if e.deep == nil {
		e.deep = comparer.NewDeep(
			comparer.WithComparer(e.comparer),
			comparer.WithPatternCompiler(e.patterns),
		)
	}
	return e
}

// Deep exposes the deep structural comparator wired into this evaluator.
func (e *Evaluator) Deep() domain.DeepComparer { return e.deep }

// Patterns exposes the pattern compiler wired into this evaluator.
func (e *Evaluator) Patterns() domain.PatternCompiler { return e.patterns }

// Clock exposes the time source wired into this evaluator.
func (e *Evaluator) Clock() domain.TimeGetter { return e.clock }
