package operator

import (
	"strings"

	"github.com/mcabreradev/filter-sub003/domain"
)

// StartsWith reports whether the string value begins with the prefix.
// Non-string values fail closed.
func (e *Evaluator) StartsWith(value any, prefix string, caseSensitive bool) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	if !caseSensitive {
		return strings.HasPrefix(strings.ToLower(s), strings.ToLower(prefix))
	}
	return strings.HasPrefix(s, prefix)
}

// EndsWith reports whether the string value ends with the suffix.
func (e *Evaluator) EndsWith(value any, suffix string, caseSensitive bool) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	if !caseSensitive {
		return strings.HasSuffix(strings.ToLower(s), strings.ToLower(suffix))
	}
	return strings.HasSuffix(s, suffix)
}

// ContainsStr reports substring containment on a string value.
func (e *Evaluator) ContainsStr(value any, sub string, caseSensitive bool) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	if !caseSensitive {
		return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
	}
	return strings.Contains(s, sub)
}

// MatchText applies a prepared text matcher to a string value.
func (e *Evaluator) MatchText(value any, m domain.TextMatcher) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	return m.MatchString(s)
}
