package sorter

import "github.com/mcabreradev/filter-sub003/domain"

// Option is an option for [NewSorter].
type Option func(*Sorter)

// WithFieldNavigator sets the navigator used to resolve sort key addresses.
func WithFieldNavigator(nav domain.FieldNavigator) Option {
	return func(s *Sorter) { s.nav = nav }
}

// WithComparer sets the value comparer used for non-string keys.
func WithComparer(cmp domain.Comparer) Option {
	return func(s *Sorter) { s.cmp = cmp }
}
