package sorter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcabreradev/filter-sub003/domain"
)

func cities() []any {
	return []any{
		domain.M{"name": "Berlin", "pop": 3600000},
		domain.M{"name": "lisbon", "pop": 500000},
		domain.M{"name": "Prague", "pop": 1300000},
	}
}

func names(items []any) []string {
	res := make([]string, len(items))
	for n, item := range items {
		res[n] = item.(domain.M)["name"].(string)
	}
	return res
}

func TestSortAscending(t *testing.T) {
	s := NewSorter()
	sorted := s.Sort(cities(), []domain.SortKey{{Field: "pop"}}, false)
	assert.Equal(t, []string{"lisbon", "Prague", "Berlin"}, names(sorted))
}

func TestSortDescending(t *testing.T) {
	s := NewSorter()
	sorted := s.Sort(cities(), []domain.SortKey{{Field: "pop", Desc: true}}, false)
	assert.Equal(t, []string{"Berlin", "Prague", "lisbon"}, names(sorted))
}

func TestSortStringsFoldByDefault(t *testing.T) {
	s := NewSorter()
	sorted := s.Sort(cities(), []domain.SortKey{{Field: "name"}}, false)
	assert.Equal(t, []string{"Berlin", "lisbon", "Prague"}, names(sorted))

	// Case sensitive: uppercase letters order before lowercase.
	sorted = s.Sort(cities(), []domain.SortKey{{Field: "name"}}, true)
	assert.Equal(t, []string{"Berlin", "Prague", "lisbon"}, names(sorted))
}

func TestSortMultiKey(t *testing.T) {
	s := NewSorter()
	items := []any{
		domain.M{"name": "b", "group": 1},
		domain.M{"name": "a", "group": 2},
		domain.M{"name": "c", "group": 1},
	}
	sorted := s.Sort(items, []domain.SortKey{{Field: "group"}, {Field: "name"}}, false)
	assert.Equal(t, []string{"b", "c", "a"}, names(sorted))
}

func TestSortIsStable(t *testing.T) {
	s := NewSorter()
	items := []any{
		domain.M{"name": "first", "group": 1},
		domain.M{"name": "second", "group": 1},
		domain.M{"name": "third", "group": 1},
	}
	sorted := s.Sort(items, []domain.SortKey{{Field: "group"}}, false)
	assert.Equal(t, []string{"first", "second", "third"}, names(sorted))
}

func TestSortNilsSinkLast(t *testing.T) {
	s := NewSorter()
	items := []any{
		domain.M{"name": "noval"},
		domain.M{"name": "small", "pop": 1},
		domain.M{"name": "nil", "pop": nil},
		domain.M{"name": "big", "pop": 2},
	}
	sorted := s.Sort(items, []domain.SortKey{{Field: "pop"}}, false)
	assert.Equal(t, []string{"small", "big", "noval", "nil"}, names(sorted))

	sorted = s.Sort(items, []domain.SortKey{{Field: "pop", Desc: true}}, false)
	assert.Equal(t, []string{"big", "small", "noval", "nil"}, names(sorted))
}

func TestSortDoesNotMutateInput(t *testing.T) {
	s := NewSorter()
	items := cities()
	_ = s.Sort(items, []domain.SortKey{{Field: "pop"}}, false)
	assert.Equal(t, []string{"Berlin", "lisbon", "Prague"}, names(items))
}

func TestSortDotNotationKey(t *testing.T) {
	s := NewSorter()
	items := []any{
		domain.M{"name": "b", "addr": domain.M{"zip": "2"}},
		domain.M{"name": "a", "addr": domain.M{"zip": "1"}},
	}
	sorted := s.Sort(items, []domain.SortKey{{Field: "addr.zip"}}, false)
	assert.Equal(t, []string{"a", "b"}, names(sorted))
}

func TestApplySortsThenTruncates(t *testing.T) {
	s := NewSorter()
	cfg := domain.Config{
		OrderBy: []domain.SortKey{{Field: "pop", Desc: true}},
		Limit:   2,
	}
	res := s.Apply(cities(), cfg)
	assert.Equal(t, []string{"Berlin", "Prague"}, names(res))
}

func TestApplyLimitWithoutOrder(t *testing.T) {
	s := NewSorter()
	res := s.Apply(cities(), domain.Config{Limit: 1})
	assert.Equal(t, []string{"Berlin"}, names(res))

	res = s.Apply(cities(), domain.Config{Limit: 99})
	assert.Len(t, res, 3)

	res = s.Apply(cities(), domain.Config{})
	assert.Len(t, res, 3)
}
