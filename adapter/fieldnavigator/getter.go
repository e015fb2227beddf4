package fieldnavigator

import "github.com/mcabreradev/filter-sub003/domain"

// ValueGetter is a [domain.Getter] wrapping a resolved, defined value.
type ValueGetter struct {
	V any
}

// NewValueGetter returns a new [domain.Getter] for a defined value.
func NewValueGetter(v any) domain.Getter {
	return ValueGetter{V: v}
}

// Get implements [domain.Getter].
func (g ValueGetter) Get() (any, bool) { return g.V, true }

// EmptyGetter is a [domain.Getter] for an undefined value.
type EmptyGetter struct{}

// NewEmptyGetter returns a new [domain.Getter] of an undefined value.
func NewEmptyGetter() domain.Getter {
	return EmptyGetter{}
}

// Get implements [domain.Getter].
func (g EmptyGetter) Get() (any, bool) { return nil, false }
