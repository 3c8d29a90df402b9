package cache

import "sync"

// Cache is a generic LRU cache with a soft limit.
//
// Insertions never evict. Entries above the soft limit are evicted by
// Trim, least recently used first, so values handed out during one unit
// of work stay alive until the caller decides it is safe to drop them.
//
// Cache is safe for concurrent use.
// Cache must not be copied after creation (has mutex).
type Cache[K comparable, V any] struct {
	mu        sync.Mutex
	entries   map[K]*cacheEntry[K, V]
	lru       *lruList[K]
	softLimit int
	onEvict   func(K, V)
}

// cacheEntry holds a cached value with its position in the LRU list.
type cacheEntry[K comparable, V any] struct {
	value V
	node  *lruNode[K]
}

// New creates a new cache with the given soft limit.
// A softLimit of 0 means unlimited. onEvict, if non-nil, is called for
// every entry removed by Trim or Purge.
func New[K comparable, V any](softLimit int, onEvict func(K, V)) *Cache[K, V] {
	return &Cache[K, V]{
		entries:   make(map[K]*cacheEntry[K, V]),
		lru:       newLRUList[K](),
		softLimit: softLimit,
		onEvict:   onEvict,
	}
}

// Get retrieves a value from the cache and marks it recently used.
// Returns (value, true) if found, (zero, false) otherwise.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.lru.MoveToFront(entry.node)
	return entry.value, true
}

// GetOrCreate returns cached value or creates it.
// create is called under lock to prevent duplicate creation and must not
// call back into the cache.
func (c *Cache[K, V]) GetOrCreate(key K, create func() V) V {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries[key]; ok {
		c.lru.MoveToFront(entry.node)
		return entry.value
	}

	value := create()
	c.entries[key] = &cacheEntry[K, V]{
		value: value,
		node:  c.lru.PushFront(key),
	}
	return value
}

// Delete removes an entry without calling onEvict.
// Returns true if the entry was found and removed.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return false
	}
	c.lru.Remove(entry.node)
	delete(c.entries, key)
	return true
}

// Trim evicts least recently used entries until the cache is within its
// soft limit. It returns the number of evicted entries.
func (c *Cache[K, V]) Trim() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.softLimit <= 0 {
		return 0
	}
	n := 0
	for len(c.entries) > c.softLimit {
		c.evictOldest()
		n++
	}
	return n
}

// Purge evicts every entry.
func (c *Cache[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for len(c.entries) > 0 {
		c.evictOldest()
	}
	c.lru.Clear()
}

// Len returns the number of entries in the cache.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Capacity returns the soft limit of the cache.
func (c *Cache[K, V]) Capacity() int {
	return c.softLimit
}

// evictOldest removes the least recently used entry.
// Caller must hold c.mu.
func (c *Cache[K, V]) evictOldest() {
	key, ok := c.lru.RemoveOldest()
	if !ok {
		return
	}
	entry := c.entries[key]
	delete(c.entries, key)
	if c.onEvict != nil {
		c.onEvict(key, entry.value)
	}
}
