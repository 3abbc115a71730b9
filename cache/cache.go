package libpack_cache

import (
	"hash/fnv"
	"sync"
	"time"
)

type CacheEntry[V any] struct {
	ExpiresAt time.Time
	Value     V
}

const shardCount = 64 // Must be power of 2

type shard[V any] struct {
	entries map[string]CacheEntry[V]
	sync.RWMutex
}

// Cache is a sharded TTL map. Expired entries are dropped lazily on Get and
// periodically by a cleanup goroutine that runs until Stop is called.
type Cache[V any] struct {
	stop      chan struct{}
	shards    [shardCount]*shard[V]
	globalTTL time.Duration
	stopOnce  sync.Once
}

func (c *Cache[V]) getShard(key string) *shard[V] {
	hash := fnv.New32a()
	hash.Write([]byte(key))
	return c.shards[hash.Sum32()&(shardCount-1)]
}

func New[V any](globalTTL time.Duration) *Cache[V] {
	if globalTTL <= 0 {
		globalTTL = time.Minute
	}
	cache := &Cache[V]{
		globalTTL: globalTTL,
		stop:      make(chan struct{}),
	}

	for i := 0; i < shardCount; i++ {
		cache.shards[i] = &shard[V]{
			entries: make(map[string]CacheEntry[V]),
		}
	}

	go cache.cleanupRoutine()
	return cache
}

func (c *Cache[V]) cleanupRoutine() {
	ticker := time.NewTicker(c.globalTTL / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.CleanExpiredEntries()
		case <-c.stop:
			return
		}
	}
}

// Set stores value under key. A non-positive ttl falls back to the cache's global TTL.
func (c *Cache[V]) Set(key string, value V, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.globalTTL
	}
	shard := c.getShard(key)
	shard.Lock()
	shard.entries[key] = CacheEntry[V]{
		Value:     value,
		ExpiresAt: time.Now().Add(ttl),
	}
	shard.Unlock()
}

func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	shard := c.getShard(key)
	shard.RLock()
	entry, ok := shard.entries[key]
	shard.RUnlock()
	if !ok {
		return zero, false
	}

	if entry.ExpiresAt.Before(time.Now()) {
		shard.Lock()
		// A Set may have replaced the entry since the read lock was released.
		if current, ok := shard.entries[key]; ok && current.ExpiresAt.Before(time.Now()) {
			delete(shard.entries, key)
		}
		shard.Unlock()
		return zero, false
	}
	return entry.Value, true
}

func (c *Cache[V]) Delete(key string) {
	shard := c.getShard(key)
	shard.Lock()
	delete(shard.entries, key)
	shard.Unlock()
}

func (c *Cache[V]) Len() int {
	total := 0
	for _, shard := range c.shards {
		shard.RLock()
		total += len(shard.entries)
		shard.RUnlock()
	}
	return total
}

func (c *Cache[V]) CleanExpiredEntries() {
	now := time.Now()
	for _, shard := range c.shards {
		shard.Lock()
		for key, entry := range shard.entries {
			if entry.ExpiresAt.Before(now) {
				delete(shard.entries, key)
			}
		}
		shard.Unlock()
	}
}

// Stop terminates the cleanup goroutine. It is safe to call more than once.
func (c *Cache[V]) Stop() {
	c.stopOnce.Do(func() {
		close(c.stop)
	})
}
