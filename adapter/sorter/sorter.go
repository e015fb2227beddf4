// Package sorter contains the post-processing stage applied to eager filter
// results: a stable multi-key sort driven by [domain.SortKey] specs, followed
// by limit truncation. Sorting never mutates the caller's slice.
package sorter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mcabreradev/filter-sub003/adapter/comparer"
	"github.com/mcabreradev/filter-sub003/adapter/fieldnavigator"
	"github.com/mcabreradev/filter-sub003/domain"
)

// Sorter orders and truncates result collections.
type Sorter struct {
	nav domain.FieldNavigator
	cmp domain.Comparer
}

// NewSorter returns a new Sorter.
func NewSorter(options ...Option) *Sorter {
	s := &Sorter{}
	for _, option := range options {
		option(s)
	}
	if s.nav == nil {
		s.nav = fieldnavigator.NewFieldNavigator()
	}
	if s.cmp == nil {
		s.cmp = comparer.NewComparer()
	}
	return s
}

// Apply sorts items by cfg.OrderBy and truncates them to cfg.Limit. When
// OrderBy is empty the source order is preserved. The returned slice is a
// fresh copy whenever sorting happens.
func (s *Sorter) Apply(items []any, cfg domain.Config) []any {
	if len(cfg.OrderBy) > 0 && len(items) > 1 {
		items = s.Sort(items, cfg.OrderBy, cfg.CaseSensitive)
	}
	if cfg.Limit > 0 && len(items) > cfg.Limit {
		items = items[:cfg.Limit]
	}
	return items
}

// Sort returns a sorted copy of items. Keys apply left to right; ties on one
// key fall through to the next, and the sort is stable, so items equal on all
// keys keep their source order. Undefined and nil key values order last
// regardless of direction.
func (s *Sorter) Sort(items []any, keys []domain.SortKey, caseSensitive bool) []any {
	sorted := make([]any, len(items))
	copy(sorted, items)

	addrs := make([][]string, len(keys))
	for n, key := range keys {
		addr, err := s.nav.GetAddress(key.Field)
		if err != nil {
			continue
		}
		addrs[n] = addr
	}

	slices.SortStableFunc(sorted, func(a, b any) int {
		for n, key := range keys {
			if addrs[n] == nil {
				continue
			}
			if r := s.compareKey(a, b, addrs[n], key.Desc, caseSensitive); r != 0 {
				return r
			}
		}
		return 0
	})
	return sorted
}

// compareKey compares two items on one key. The Desc flip applies only to
// defined values; nils sink to the end either way.
func (s *Sorter) compareKey(a, b any, addr []string, desc, caseSensitive bool) int {
	av, aok := s.fieldValue(a, addr)
	bv, bok := s.fieldValue(b, addr)

	aNil := !aok || av == nil
	bNil := !bok || bv == nil
	switch {
	case aNil && bNil:
		return 0
	case aNil:
		return 1
	case bNil:
		return -1
	}

	r := s.compareValues(av, bv, caseSensitive)
	if desc {
		return -r
	}
	return r
}

func (s *Sorter) compareValues(av, bv any, caseSensitive bool) int {
	if as, ok := av.(string); ok {
		if bs, ok := bv.(string); ok {
			if !caseSensitive {
				return strings.Compare(strings.ToLower(as), strings.ToLower(bs))
			}
			return strings.Compare(as, bs)
		}
	}

	if s.cmp.Comparable(av, bv) {
		if r, err := s.cmp.Compare(av, bv); err == nil {
			return r
		}
	}
	return strings.Compare(fmt.Sprint(av), fmt.Sprint(bv))
}

func (s *Sorter) fieldValue(item any, addr []string) (any, bool) {
	getters, _ := s.nav.GetField(item, addr...)
	for _, g := range getters {
		if v, ok := g.Get(); ok {
			return v, true
		}
	}
	return nil, false
}
