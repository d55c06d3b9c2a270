package cache

import (
	"container/list"
	"sync"
)

// LRU is a fixed-capacity least-recently-used cache. It is safe for
// concurrent use.
type LRU struct {
	capacity int
	items    map[string]*list.Element
	queue    *list.List
	mutex    sync.Mutex
}

type entry struct {
	key   string
	value interface{}
}

// NewLRU creates an LRU cache with the given capacity. A capacity of zero
// or less disables caching entirely.
func NewLRU(capacity int) *LRU {
	return &LRU{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		queue:    list.New(),
	}
}

// Set adds or updates a key-value pair, evicting the least recently used
// entry when over capacity.
func (c *LRU) Set(key string, value interface{}) {
	if c.capacity <= 0 {
		return
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if element, exists := c.items[key]; exists {
		c.queue.MoveToFront(element)
		element.Value.(*entry).value = value
		return
	}

	c.items[key] = c.queue.PushFront(&entry{key: key, value: value})

	if c.queue.Len() > c.capacity {
		oldest := c.queue.Back()
		if oldest == nil {
			return
		}
		c.queue.Remove(oldest)
		delete(c.items, oldest.Value.(*entry).key)
	}
}

// Get retrieves a value and marks it as recently used.
func (c *LRU) Get(key string) (interface{}, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	element, exists := c.items[key]
	if !exists {
		return nil, false
	}

	c.queue.MoveToFront(element)
	return element.Value.(*entry).value, true
}

// Remove deletes a key from the cache.
func (c *LRU) Remove(key string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if element, exists := c.items[key]; exists {
		c.queue.Remove(element)
		delete(c.items, key)
	}
}

// Len returns the current number of cached entries.
func (c *LRU) Len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.queue.Len()
}
