// Package fieldnavigator contains the default [domain.FieldNavigator]
// implementation with dot notation support over maps, structs and slices.
package fieldnavigator

import (
	"strconv"
	"strings"

	"github.com/mcabreradev/filter-sub003/domain"
	"github.com/mcabreradev/filter-sub003/pkg/structure"
)

// FieldNavigator implements [domain.FieldNavigator].
type FieldNavigator struct{}

// NewFieldNavigator returns a new implementation of [domain.FieldNavigator].
func NewFieldNavigator() domain.FieldNavigator {
	return &FieldNavigator{}
}

// GetAddress implements [domain.FieldNavigator].
func (f *FieldNavigator) GetAddress(field string) ([]string, error) {
	if field == "" {
		return nil, domain.ErrNoFieldName
	}
	parts := strings.Split(field, ".")
	for _, part := range parts {
		if part == "" {
			return nil, domain.ErrNoFieldName
		}
	}
	return parts, nil
}

// GetField implements [domain.FieldNavigator]. Intermediate arrays expand:
// each element contributes its own resolution of the remaining path, and the
// second return reports that expansion happened. Unresolvable steps yield
// undefined getters rather than errors.
func (f *FieldNavigator) GetField(item any, addr ...string) ([]domain.Getter, bool) {
	current := []domain.Getter{NewValueGetter(item)}
	expanded := false

	for _, part := range addr {
		next := make([]domain.Getter, 0, len(current))
		for _, g := range current {
			v, defined := g.Get()
			if !defined || v == nil {
				next = append(next, NewEmptyGetter())
				continue
			}

			if _, isStr := v.(string); !isStr {
				if items, isList := structure.Items(v); isList {
					if idx, err := strconv.Atoi(part); err == nil {
						if idx >= 0 && idx < len(items) {
							next = append(next, NewValueGetter(items[idx]))
						} else {
							next = append(next, NewEmptyGetter())
						}
						continue
					}
					expanded = true
					for _, el := range items {
						next = append(next, fieldOf(el, part))
					}
					continue
				}
			}

			next = append(next, fieldOf(v, part))
		}
		current = next
	}
	return current, expanded
}

func fieldOf(obj any, key string) domain.Getter {
	i, _, err := structure.Seq2(obj)
	if err != nil {
		return NewEmptyGetter()
	}
	for k, v := range i {
		if k == key {
			return NewValueGetter(v)
		}
	}
	return NewEmptyGetter()
}
