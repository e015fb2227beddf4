// Package pattern contains the default [domain.PatternCompiler] implementation
// translating SQL-LIKE-style wildcard patterns ('%' for any run of characters,
// '_' for exactly one) with a leading '!' negation marker into anchored text
// matchers.
package pattern

import (
	"regexp"
	"strings"

	"github.com/mcabreradev/filter-sub003/domain"
)

// Cache is the slice of the memoization service the compiler uses. Compiled
// matchers are shared per (pattern, flags) for the process lifetime.
type Cache interface {
	Pattern(key string) (domain.TextMatcher, bool)
	SetPattern(key string, m domain.TextMatcher)
}

var wildcardReplacer = strings.NewReplacer("%", "(?s:.*)", "_", "(?s:.)")

// Compiler implements [domain.PatternCompiler].
type Compiler struct {
	cache Cache
}

// NewCompiler returns a new implementation of [domain.PatternCompiler].
func NewCompiler(options ...Option) *Compiler {
	c := &Compiler{}
	for _, option := range options {
		option(c)
	}
	return c
}

// HasWildcard reports whether the pattern carries wildcard markers after the
// optional negation prefix.
func HasWildcard(pattern string) bool {
	return strings.ContainsAny(strings.TrimPrefix(pattern, "!"), "%_")
}

// Compile implements [domain.PatternCompiler]. All characters other than the
// wildcard markers are escaped before substitution, so a literal '.' in a
// pattern matches only a dot.
func (c *Compiler) Compile(pattern string, opts domain.PatternOptions) (domain.TextMatcher, error) {
	negate := false
	if strings.HasPrefix(pattern, "!") {
		negate = true
		pattern = pattern[1:]
	}

	key := cacheKey(pattern, flags(opts))
	if m, ok := c.lookup(key); ok {
		return negated(m, negate), nil
	}

	var m domain.TextMatcher
	if strings.ContainsAny(pattern, "%_") {
		expr := "^" + wildcardReplacer.Replace(regexp.QuoteMeta(pattern)) + "$"
		if !opts.CaseSensitive {
			expr = "(?i)" + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, domain.ErrBadPattern{Pattern: pattern, Err: err}
		}
		m = regexMatcher{re: re}
	} else if opts.Substring {
		m = substringMatcher{want: pattern, fold: !opts.CaseSensitive}
	} else {
		m = equalMatcher{want: pattern, fold: !opts.CaseSensitive}
	}

	c.store(key, m)
	return negated(m, negate), nil
}

// CompileRegex implements [domain.PatternCompiler].
func (c *Compiler) CompileRegex(expr string, caseSensitive bool) (domain.TextMatcher, error) {
	src := expr
	if !caseSensitive {
		src = "(?i)" + src
	}

	key := cacheKey(src, "rx")
	if m, ok := c.lookup(key); ok {
		return m, nil
	}

	re, err := regexp.Compile(src)
	if err != nil {
		return nil, domain.ErrBadPattern{Pattern: expr, Err: err}
	}
	m := regexMatcher{re: re}
	c.store(key, m)
	return m, nil
}

func (c *Compiler) lookup(key string) (domain.TextMatcher, bool) {
	if c.cache == nil {
		return nil, false
	}
	return c.cache.Pattern(key)
}

func (c *Compiler) store(key string, m domain.TextMatcher) {
	if c.cache != nil {
		c.cache.SetPattern(key, m)
	}
}

func cacheKey(pattern, flags string) string {
	return pattern + "\x00" + flags
}

func flags(opts domain.PatternOptions) string {
	var b strings.Builder
	if opts.CaseSensitive {
		b.WriteByte('c')
	}
	if opts.Substring {
		b.WriteByte('s')
	}
	return b.String()
}

func negated(m domain.TextMatcher, negate bool) domain.TextMatcher {
	if !negate {
		return m
	}
	return notMatcher{inner: m}
}

// FromRegexp wraps an already compiled regular expression as a
// [domain.TextMatcher].
func FromRegexp(re *regexp.Regexp) domain.TextMatcher {
	return regexMatcher{re: re}
}

type regexMatcher struct {
	re *regexp.Regexp
}

func (m regexMatcher) MatchString(s string) bool {
	return m.re.MatchString(s)
}

type equalMatcher struct {
	want string
	fold bool
}

func (m equalMatcher) MatchString(s string) bool {
	if m.fold {
		return strings.EqualFold(s, m.want)
	}
	return s == m.want
}

type substringMatcher struct {
	want string
	fold bool
}

func (m substringMatcher) MatchString(s string) bool {
	if m.fold {
		return strings.Contains(strings.ToLower(s), strings.ToLower(m.want))
	}
	return strings.Contains(s, m.want)
}

type notMatcher struct {
	inner domain.TextMatcher
}

func (m notMatcher) MatchString(s string) bool {
	return !m.inner.MatchString(s)
}
