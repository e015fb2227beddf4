package memo

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/mcabreradev/filter-sub003/adapter/timegetter"
	"github.com/mcabreradev/filter-sub003/domain"
)

const (
	defaultPredicateCapacity = 512
	defaultPredicateTTL      = 5 * time.Minute
	defaultResultCapacity    = 128
)

type resultKey struct {
	src domain.CollectionID
	key string
}

// Memoizer implements [domain.Memoizer].
type Memoizer struct {
	hasher domain.Hasher
	clock  domain.TimeGetter

	predicateCapacity int
	predicateTTL      time.Duration
	resultCapacity    int

	predicates *lru[string, domain.Predicate]
	results    *lru[resultKey, []any]

	patternMu sync.RWMutex
	patterns  map[string]domain.TextMatcher

	group  singleflight.Group
	hits   atomic.Int64
	misses atomic.Int64
}

// NewMemoizer returns a new implementation of [domain.Memoizer].
func NewMemoizer(options ...Option) *Memoizer {
	m := &Memoizer{
		predicateCapacity: defaultPredicateCapacity,
		predicateTTL:      defaultPredicateTTL,
		resultCapacity:    defaultResultCapacity,
	}
	for _, option := range options {
		option(m)
	}
	if m.hasher == nil {
		m.hasher = NewHasher()
	}
	if m.clock == nil {
		m.clock = timegetter.NewTimeGetter()
	}
	m.predicates = newLRU[string, domain.Predicate](m.predicateCapacity, m.predicateTTL, m.clock)
	m.results = newLRU[resultKey, []any](m.resultCapacity, 0, m.clock)
	m.patterns = make(map[string]domain.TextMatcher)
	return m
}

// Key implements domain.Memoizer. The key covers the expression hash and the
// config fields that change predicate semantics or post-processing. A custom
// comparator makes the pair unhashable.
func (m *Memoizer) Key(expr any, cfg domain.Config) (string, bool) {
	if cfg.Comparator != nil {
		return "", false
	}
	h, err := m.hasher.Hash(expr)
	if err != nil {
		return "", false
	}

	var b strings.Builder
	b.WriteString(strconv.FormatUint(h, 16))
	fmt.Fprintf(&b, "|cs=%t|d=%d|l=%d", cfg.CaseSensitive, cfg.MaxDepth, cfg.Limit)
	for _, k := range cfg.OrderBy {
		fmt.Fprintf(&b, "|o=%s,%t", k.Field, k.Desc)
	}
	return b.String(), true
}

// Predicate implements domain.Memoizer.
func (m *Memoizer) Predicate(key string) (domain.Predicate, bool) {
	p, ok := m.predicates.get(key)
	if ok {
		m.hits.Add(1)
	} else {
		m.misses.Add(1)
	}
	return p, ok
}

// CompileOnce implements domain.Memoizer. Concurrent callers with the same key
// share a single compilation; the result is stored on success.
func (m *Memoizer) CompileOnce(key string, compile func() (domain.Predicate, error)) (domain.Predicate, error) {
	v, err, _ := m.group.Do(key, func() (any, error) {
		p, err := compile()
		if err != nil {
			return nil, err
		}
		m.predicates.set(key, p)
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(domain.Predicate), nil
}

// Pattern implements domain.Memoizer.
func (m *Memoizer) Pattern(key string) (domain.TextMatcher, bool) {
	m.patternMu.RLock()
	defer m.patternMu.RUnlock()
	matcher, ok := m.patterns[key]
	return matcher, ok
}

// SetPattern implements domain.Memoizer.
func (m *Memoizer) SetPattern(key string, matcher domain.TextMatcher) {
	m.patternMu.Lock()
	defer m.patternMu.Unlock()
	m.patterns[key] = matcher
}

// Results implements domain.Memoizer.
func (m *Memoizer) Results(src domain.CollectionID, key string) ([]any, bool) {
	res, ok := m.results.get(resultKey{src: src, key: key})
	if ok {
		m.hits.Add(1)
	} else {
		m.misses.Add(1)
	}
	return res, ok
}

// SetResults implements domain.Memoizer.
func (m *Memoizer) SetResults(src domain.CollectionID, key string, res []any) {
	m.results.set(resultKey{src: src, key: key}, res)
}

// Clear implements domain.Memoizer. Counters reset along with the tiers.
func (m *Memoizer) Clear() {
	m.predicates.clear()
	m.results.clear()
	m.patternMu.Lock()
	m.patterns = make(map[string]domain.TextMatcher)
	m.patternMu.Unlock()
	m.hits.Store(0)
	m.misses.Store(0)
}

// Stats implements domain.Memoizer.
func (m *Memoizer) Stats() domain.CacheStats {
	m.patternMu.RLock()
	patterns := len(m.patterns)
	m.patternMu.RUnlock()
	return domain.CacheStats{
		PredicateCacheSize: m.predicates.len(),
		PatternCacheSize:   patterns,
		ResultCacheSize:    m.results.len(),
		Hits:               m.hits.Load(),
		Misses:             m.misses.Load(),
	}
}
