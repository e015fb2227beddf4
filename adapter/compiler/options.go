package compiler

import (
	"github.com/mcabreradev/filter-sub003/adapter/operator"
	"github.com/mcabreradev/filter-sub003/domain"
)

// Option is an option for [NewCompiler].
type Option func(*Compiler)

// WithFieldNavigator sets the navigator used to resolve field addresses.
func WithFieldNavigator(nav domain.FieldNavigator) Option {
	return func(c *Compiler) { c.nav = nav }
}

// WithDeepComparer sets the comparer used for whole-item search and literal
// field values.
func WithDeepComparer(deep domain.DeepComparer) Option {
	return func(c *Compiler) { c.deep = deep }
}

// WithEvaluator sets the operator evaluator compiled conditions run against.
func WithEvaluator(eval *operator.Evaluator) Option {
	return func(c *Compiler) { c.eval = eval }
}
