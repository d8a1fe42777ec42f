package cache

import (
	"sync"
	"time"
)

type entry struct {
	v   any
	exp time.Time
}

// TTLCache is a passive time-to-live memo: entries lapse purely by age, there
// is no size bound and no LRU policy.
type TTLCache struct {
	mu    sync.RWMutex
	m     map[string]entry
	locks map[string]*sync.Mutex
}

func NewTTLCache() *TTLCache {
	return &TTLCache{m: make(map[string]entry), locks: make(map[string]*sync.Mutex)}
}

func (c *TTLCache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.m[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !e.exp.IsZero() && time.Now().After(e.exp) {
		c.mu.Lock()
		delete(c.m, key)
		c.mu.Unlock()
		return nil, false
	}
	return e.v, true
}

func (c *TTLCache) Set(key string, v any, ttl time.Duration) {
	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	c.mu.Lock()
	c.m[key] = entry{v: v, exp: exp}
	c.mu.Unlock()
}

// KeyLock returns the fill lock for key. Callers hold it across a
// check-then-fill so concurrent requests for an absent or expired key
// dispatch at most one underlying fetch.
func (c *TTLCache) KeyLock(key string) *sync.Mutex {
	c.mu.Lock()
	l, ok := c.locks[key]
	if !ok {
		l = &sync.Mutex{}
		c.locks[key] = l
	}
	c.mu.Unlock()
	return l
}
