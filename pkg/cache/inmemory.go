package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value   V
	lastSet time.Time
}

// InMemory is a TTL map cache. Expired entries are collected lazily by a
// goroutine scheduled per Set, so an idle cache holds no timers.
type InMemory[V any] struct {
	storage map[string]entry[V]

	mx sync.RWMutex
}

func NewInMemory[V any]() *InMemory[V] {
	return &InMemory[V]{
		storage: make(map[string]entry[V], 100),
	}
}

func (c *InMemory[V]) Get(key string) (V, bool) {
	c.mx.RLock()
	defer c.mx.RUnlock()

	e, ok := c.storage[key]
	return e.value, ok
}

func (c *InMemory[V]) Set(key string, value V, ttl time.Duration) {
	c.mx.Lock()
	defer c.mx.Unlock()
	c.storage[key] = entry[V]{value: value, lastSet: time.Now()}

	go func() {
		time.Sleep(ttl + time.Minute) // extra minute of slack
		c.mx.Lock()
		defer c.mx.Unlock()
		e, ok := c.storage[key]
		if !ok {
			return
		}
		if time.Since(e.lastSet) > ttl {
			delete(c.storage, key)
		}
	}()
}
