// Package comparer contains the default [domain.Comparer] implementation and
// the deep structural comparator used for literal matching.
package comparer

import (
	"cmp"
	"math/big"
	"slices"
	"time"

	"github.com/mcabreradev/filter-sub003/domain"
	"github.com/mcabreradev/filter-sub003/pkg/structure"
)

// Comparer implements [domain.Comparer]. Values of different categories order
// as: nil < numbers < times < strings < booleans < arrays < objects. Concrete
// time values are the exception: they compare in date terms with anything
// date-coercible on the other side.
type Comparer struct{}

// NewComparer returns a new implementation of [domain.Comparer].
func NewComparer() domain.Comparer {
	return &Comparer{}
}

// Comparable implements [domain.Comparer]. Two values are comparable when
// they belong to the same category. Operator evaluators use this to fail
// closed instead of relying on cross-category ordering.
func (c *Comparer) Comparable(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if _, ok := asTimeStrict(a); ok {
		_, ok = structure.AsTime(b)
		return ok
	}
	if _, ok := asTimeStrict(b); ok {
		_, ok = structure.AsTime(a)
		return ok
	}
	if _, ok := asNumber(a); ok {
		_, ok = asNumber(b)
		return ok
	}
	switch a.(type) {
	case string:
		_, ok := b.(string)
		return ok
	case bool:
		_, ok := b.(bool)
		return ok
	}
	if _, ok := structure.Items(a); ok {
		_, ok = structure.Items(b)
		return ok
	}
	if _, _, err := structure.Seq2(a); err == nil {
		_, _, err = structure.Seq2(b)
		return err == nil
	}
	return false
}

// Compare implements [domain.Comparer].
func (c *Comparer) Compare(a any, b any) (int, error) {

	// nil (undefined/null)
	if a == nil {
		if b == nil {
			return 0, nil
		}
		return -1, nil
	}
	if b == nil {
		return 1, nil
	}

	// Times. A concrete time value on either side pulls the other side
	// through date coercion: RFC3339(Nano) strings and Unix-second numbers
	// compare in date terms. Two strings never land here, so RFC3339
	// strings among themselves keep plain string ordering.
	if at, ok := asTimeStrict(a); ok {
		if bt, ok := structure.AsTime(b); ok {
			return at.Compare(bt), nil
		}
	}
	if bt, ok := asTimeStrict(b); ok {
		if at, ok := structure.AsTime(a); ok {
			return at.Compare(bt), nil
		}
	}

	// Numbers. big.Float safely compares float64 and int64 without
	// precision loss.
	if an, ok := asNumber(a); ok {
		if bn, ok := asNumber(b); ok {
			return an.Cmp(bn), nil
		}
		return -1, nil
	}
	if _, ok := asNumber(b); ok {
		return 1, nil
	}

	// Non-coercible values against a time fall back to category ordering.
	if _, ok := asTimeStrict(a); ok {
		return -1, nil
	}
	if _, ok := asTimeStrict(b); ok {
		return 1, nil
	}

	// Strings
	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			return cmp.Compare(as, bs), nil
		}
		return -1, nil
	}
	if _, ok := b.(string); ok {
		return 1, nil
	}

	// Booleans, false < true
	if ab, ok := a.(bool); ok {
		if bb, ok := b.(bool); ok {
			return compareBool(ab, bb), nil
		}
		return -1, nil
	}
	if _, ok := b.(bool); ok {
		return 1, nil
	}

	// Arrays
	if aa, ok := structure.Items(a); ok {
		if ba, ok := structure.Items(b); ok {
			return c.compareArray(aa, ba)
		}
		return -1, nil
	}
	if _, ok := structure.Items(b); ok {
		return 1, nil
	}

	return c.compareObject(a, b)
}

func (c *Comparer) compareObject(a, b any) (int, error) {
	am, err := collect(a)
	if err != nil {
		return 0, domain.ErrCannotCompare{A: a, B: b}
	}
	bm, err := collect(b)
	if err != nil {
		return 0, domain.ErrCannotCompare{A: a, B: b}
	}

	aKeys := sortedKeys(am)
	bKeys := sortedKeys(bm)

	for i := range min(len(aKeys), len(bKeys)) {
		if comp := cmp.Compare(aKeys[i], bKeys[i]); comp != 0 {
			return comp, nil
		}
		comp, err := c.Compare(am[aKeys[i]], bm[bKeys[i]])
		if err != nil {
			return 0, err
		}
		if comp != 0 {
			return comp, nil
		}
	}
	return cmp.Compare(len(aKeys), len(bKeys)), nil
}

func (c *Comparer) compareArray(a, b []any) (int, error) {
	for i := range min(len(a), len(b)) {
		comp, err := c.Compare(a[i], b[i])
		if err != nil {
			return 0, err
		}
		if comp != 0 {
			return comp, nil
		}
	}

	// Common section was identical, longest one wins
	return cmp.Compare(len(a), len(b)), nil
}

func compareBool(a, b bool) int {
	if a == b {
		return 0
	}
	if a {
		return 1
	}
	return -1
}

func collect(obj any) (map[string]any, error) {
	i, l, err := structure.Seq2(obj)
	if err != nil {
		return nil, err
	}
	m := make(map[string]any, l)
	for k, v := range i {
		m[k] = v
	}
	return m, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// asTimeStrict accepts only concrete time values, not coercible strings or
// numbers, so that strings and numbers keep their own ordering category.
func asTimeStrict(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, true
	}
	return time.Time{}, false
}

func asNumber(v any) (*big.Float, bool) {
	r := big.NewFloat(0)
	switch n := v.(type) {
	case int:
		r.SetInt64(int64(n))
	case int8:
		r.SetInt64(int64(n))
	case int16:
		r.SetInt64(int64(n))
	case int32:
		r.SetInt64(int64(n))
	case int64:
		r.SetInt64(n)
	case uint:
		r.SetUint64(uint64(n))
	case uint8:
		r.SetUint64(uint64(n))
	case uint16:
		r.SetUint64(uint64(n))
	case uint32:
		r.SetUint64(uint64(n))
	case uint64:
		r.SetUint64(n)
	case float32:
		r.SetFloat64(float64(n))
	case float64:
		r.SetFloat64(n)
	default:
		return nil, false
	}
	return r, true
}
