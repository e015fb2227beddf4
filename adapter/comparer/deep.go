package comparer

import (
	"fmt"
	"strings"

	"github.com/mcabreradev/filter-sub003/adapter/pattern"
	"github.com/mcabreradev/filter-sub003/domain"
	"github.com/mcabreradev/filter-sub003/pkg/structure"
)

// Deep implements [domain.DeepComparer]. Matching is fail-closed: type
// mismatches, missing fields and exhausted depth all resolve the branch to
// non-matching, never to an error.
type Deep struct {
	comparer domain.Comparer
	patterns domain.PatternCompiler
}

// NewDeep returns a new implementation of [domain.DeepComparer].
func NewDeep(options ...DeepOption) domain.DeepComparer {
	d := &Deep{
		comparer: NewComparer(),
		patterns: pattern.NewCompiler(),
	}
	for _, option := range options {
		option(d)
	}
	return d
}

// Match implements [domain.DeepComparer].
func (d *Deep) Match(actual, expected any, cfg domain.Config, depth int) bool {
	return d.match(actual, expected, cfg, depth, false)
}

// Search implements [domain.DeepComparer].
func (d *Deep) Search(actual, expected any, cfg domain.Config, depth int) bool {
	return d.match(actual, expected, cfg, depth, true)
}

// match applies the recursion rules in order: negation, array any-element,
// object-vs-object, any-field search, leaf comparison.
func (d *Deep) match(actual, expected any, cfg domain.Config, depth int, anyField bool) bool {
	if s, ok := expected.(string); ok && strings.HasPrefix(s, "!") {
		return !d.match(actual, s[1:], cfg, depth, anyField)
	}

	if _, isStr := actual.(string); !isStr {
		if items, ok := structure.Items(actual); ok {
			if depth >= cfg.MaxDepth {
				return false
			}
			for _, el := range items {
				if d.match(el, expected, cfg, depth+1, anyField) {
					return true
				}
			}
			return false
		}
	}

	eIter, _, eErr := structure.Seq2(expected)
	aIter, _, aErr := structure.Seq2(actual)

	if aErr == nil && eErr == nil {
		fields := make(map[string]any)
		for k, v := range aIter {
			fields[k] = v
		}
		for k, ev := range eIter {
			if isFunc(ev) {
				// A function value cannot itself be matched; it
				// signals "don't constrain this field".
				continue
			}
			av, ok := fields[k]
			if !ok {
				return false
			}
			// The depth gate fires on descent, so an expected object
			// with no constraints matches even at the boundary.
			if depth >= cfg.MaxDepth {
				return false
			}
			if !d.match(av, ev, cfg, depth+1, false) {
				return false
			}
		}
		return true
	}

	if aErr == nil && eErr != nil && anyField {
		if depth >= cfg.MaxDepth {
			return false
		}
		for k, av := range aIter {
			if strings.HasPrefix(k, "$") {
				continue
			}
			if d.match(av, expected, cfg, depth+1, true) {
				return true
			}
		}
		return false
	}

	return d.leaf(actual, expected, cfg)
}

func (d *Deep) leaf(actual, expected any, cfg domain.Config) bool {
	if cfg.Comparator != nil {
		return cfg.Comparator(actual, expected)
	}

	if es, ok := expected.(string); ok {
		as, ok := actual.(string)
		if !ok {
			if actual == nil {
				return false
			}
			// Stringification fallback for primitive actuals.
			if _, isNum := structure.AsFloat64(actual); !isNum {
				if _, isBool := actual.(bool); !isBool {
					return false
				}
			}
			as = fmt.Sprint(actual)
		}
		m, err := d.patterns.Compile(es, domain.PatternOptions{
			CaseSensitive: cfg.CaseSensitive,
			Substring:     true,
		})
		if err != nil {
			return false
		}
		return m.MatchString(as)
	}

	if !d.comparer.Comparable(actual, expected) {
		return false
	}
	c, err := d.comparer.Compare(actual, expected)
	return err == nil && c == 0
}

func isFunc(v any) bool {
	switch v.(type) {
	case func(any) bool, func(any) (bool, error), domain.Predicate:
		return true
	default:
		return false
	}
}
