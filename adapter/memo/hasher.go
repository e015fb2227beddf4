// Package memo contains the default [domain.Memoizer] implementation: a
// canonical-JSON fnv-1a expression hasher plus three cache tiers. Compiled
// predicates live in a bounded, aged LRU; compiled text matchers live for the
// process lifetime; filter results live in a small LRU side table keyed by
// collection identity. Expressions carrying function values cannot be hashed
// and bypass every tier.
package memo

import (
	"bytes"
	"encoding/json"
	"errors"
	"hash/fnv"
	"slices"
	"time"

	"github.com/mcabreradev/filter-sub003/domain"
	"github.com/mcabreradev/filter-sub003/pkg/structure"
)

var errUnhashable = errors.New("memo: expression is not hashable")

// Hasher implements [domain.Hasher]. Object keys are serialized in sorted
// order, so two expressions that differ only in key insertion order hash
// identically.
type Hasher struct{}

// NewHasher returns a new implementation of [domain.Hasher].
func NewHasher() domain.Hasher {
	return &Hasher{}
}

// Hash implements domain.Hasher.
func (h *Hasher) Hash(value any) (uint64, error) {
	canonical, err := h.canonicalize(value)
	if err != nil {
		return 0, err
	}

	b, err := json.Marshal(canonical)
	if err != nil {
		return 0, err
	}

	hasher := fnv.New64a()

	_, _ = hasher.Write(b) // fnv.sum64a.Write never returns error

	return hasher.Sum64(), nil
}

func (h *Hasher) canonicalize(a any) (any, error) {
	if h.straightforward(a) {
		return a, nil
	}

	if items, ok := structure.Items(a); ok {
		res := make([]any, len(items))
		for n, v := range items {
			c, err := h.canonicalize(v)
			if err != nil {
				return nil, err
			}
			res[n] = c
		}
		return res, nil
	}

	if i, l, err := structure.Seq2(a); err == nil {
		pairs := make(object, 0, l)
		for k, v := range i {
			c, err := h.canonicalize(v)
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, keyValuePair{key: k, val: c})
		}
		return pairs, nil
	}

	// Anything left is a function, channel or other opaque value; hashing
	// it by pointer would make equal-looking expressions unequal, so it is
	// rejected instead.
	return nil, errUnhashable
}

func (h *Hasher) straightforward(a any) bool {
	if a == nil {
		return true
	}
	switch a.(type) {
	case
		bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64,
		time.Time:
		return true
	default:
		return false
	}
}

type keyValuePair struct {
	key string
	val any
}

type object []keyValuePair

func (o object) MarshalJSON() (r []byte, err error) {
	buf := bytes.NewBuffer(append(make([]byte, 0, 1024), '{'))

	keys := make([]string, len(o))
	kvals := make(map[string]any, len(o))

	for n, item := range o {
		keys[n] = item.key
		kvals[item.key] = item.val
	}
	slices.Sort(keys)

	for n, key := range keys {
		b, _ := json.Marshal(key)
		_, _ = buf.Write(b)
		_, _ = buf.WriteRune(':')
		v, err := json.Marshal(kvals[key])
		if err != nil {
			return nil, err
		}
		_, _ = buf.Write(v)

		if n < len(keys)-1 {
			_, _ = buf.WriteRune(',')
		}
	}
	_, _ = buf.WriteRune('}')

	return buf.Bytes(), nil
}
