package memo

import (
	"container/list"
	"sync"
	"time"

	"github.com/mcabreradev/filter-sub003/domain"
)

// lru is a mutex-guarded LRU with optional per-entry aging. A zero ttl means
// entries never expire.
type lru[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	clock    domain.TimeGetter

	items     map[K]*list.Element
	evictList *list.List
}

type lruEntry[K comparable, V any] struct {
	key      K
	value    V
	storedAt time.Time
}

func newLRU[K comparable, V any](capacity int, ttl time.Duration, clock domain.TimeGetter) *lru[K, V] {
	return &lru[K, V]{
		capacity:  capacity,
		ttl:       ttl,
		clock:     clock,
		items:     make(map[K]*list.Element),
		evictList: list.New(),
	}
}

func (c *lru[K, V]) get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	element, ok := c.items[key]
	if !ok {
		return zero, false
	}
	ent := element.Value.(*lruEntry[K, V])
	if c.expired(ent) {
		c.removeElement(element)
		return zero, false
	}
	c.evictList.MoveToFront(element)
	return ent.value, true
}

func (c *lru[K, V]) set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if element, ok := c.items[key]; ok {
		ent := element.Value.(*lruEntry[K, V])
		ent.value = value
		ent.storedAt = c.clock.GetTime()
		c.evictList.MoveToFront(element)
		return
	}

	for c.evictList.Len() >= c.capacity {
		back := c.evictList.Back()
		if back == nil {
			break
		}
		c.removeElement(back)
	}

	ent := &lruEntry[K, V]{key: key, value: value, storedAt: c.clock.GetTime()}
	c.items[key] = c.evictList.PushFront(ent)
}

func (c *lru[K, V]) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictList.Len()
}

func (c *lru[K, V]) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[K]*list.Element)
	c.evictList.Init()
}

func (c *lru[K, V]) expired(ent *lruEntry[K, V]) bool {
	return c.ttl > 0 && c.clock.GetTime().Sub(ent.storedAt) > c.ttl
}

func (c *lru[K, V]) removeElement(element *list.Element) {
	c.evictList.Remove(element)
	ent := element.Value.(*lruEntry[K, V])
	delete(c.items, ent.key)
}
