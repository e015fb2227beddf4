package operator

import (
	"github.com/mcabreradev/filter-sub003/pkg/structure"
)

// Eq reports strict equality between the value and the operator argument.
// Array-valued fields match existentially: the argument equals any element.
func (e *Evaluator) Eq(value, arg any) bool {
	if items, ok := listItems(value); ok {
		for _, item := range items {
			if e.equal(item, arg) {
				return true
			}
		}
		return false
	}
	return e.equal(value, arg)
}

// Ne reports strict inequality. Non-comparable pairs evaluate to false, not
// true: an apples-to-oranges comparison fails closed in both directions.
func (e *Evaluator) Ne(value, arg any) bool {
	if items, ok := listItems(value); ok {
		for _, item := range items {
			if e.equal(item, arg) {
				return false
			}
		}
		return true
	}
	if !e.comparer.Comparable(value, arg) {
		return false
	}
	return !e.equal(value, arg)
}

// Gt reports value > arg under numeric or date-like ordering. Array values
// pass if any element does.
func (e *Evaluator) Gt(value, arg any) bool {
	return e.ordered(value, arg, func(c int) bool { return c > 0 })
}

// Gte reports value >= arg.
func (e *Evaluator) Gte(value, arg any) bool {
	return e.ordered(value, arg, func(c int) bool { return c >= 0 })
}

// Lt reports value < arg.
func (e *Evaluator) Lt(value, arg any) bool {
	return e.ordered(value, arg, func(c int) bool { return c < 0 })
}

// Lte reports value <= arg.
func (e *Evaluator) Lte(value, arg any) bool {
	return e.ordered(value, arg, func(c int) bool { return c <= 0 })
}

// Between reports lo <= value <= hi, both bounds inclusive.
func (e *Evaluator) Between(value, lo, hi any) bool {
	return e.Gte(value, lo) && e.Lte(value, hi)
}

func (e *Evaluator) ordered(value, arg any, pass func(int) bool) bool {
	if items, ok := listItems(value); ok {
		for _, item := range items {
			if e.orderedScalar(item, arg, pass) {
				return true
			}
		}
		return false
	}
	return e.orderedScalar(value, arg, pass)
}

func (e *Evaluator) orderedScalar(value, arg any, pass func(int) bool) bool {
	if !e.comparer.Comparable(value, arg) {
		return false
	}
	c, err := e.comparer.Compare(value, arg)
	if err != nil {
		return false
	}
	return pass(c)
}

func (e *Evaluator) equal(value, arg any) bool {
	if !e.comparer.Comparable(value, arg) {
		return false
	}
	c, err := e.comparer.Compare(value, arg)
	return err == nil && c == 0
}

// listItems treats slices and arrays as lists; strings are not lists.
func listItems(v any) ([]any, bool) {
	if _, isStr := v.(string); isStr {
		return nil, false
	}
	return structure.Items(v)
}
