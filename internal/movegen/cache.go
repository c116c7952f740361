package movegen

import (
	"sync"
	"sync/atomic"
)

// Number of shards for cache locking (power of 2 for fast modulo)
const cacheShardCount = 256
const cacheShardMask = cacheShardCount - 1

// cacheEntry is a stored subtree count.
type cacheEntry struct {
	key   uint64 // Full Zobrist hash for verification
	depth int32
	nodes uint64
}

// Cache stores perft subtree counts by Zobrist hash and depth.
// Uses sharded locking so parallel perft workers can share it.
type Cache struct {
	entries []cacheEntry
	shards  [cacheShardCount]sync.RWMutex
	mask    uint64

	hits   atomic.Uint64
	probes atomic.Uint64
}

// NewCache creates a cache with the given size in MB.
func NewCache(sizeMB int) *Cache {
	entrySize := uint64(24)
	numEntries := (uint64(sizeMB) * 1024 * 1024) / entrySize
	numEntries = max(roundDownToPowerOf2(numEntries), cacheShardCount)

	return &Cache{
		entries: make([]cacheEntry, numEntries),
		mask:    numEntries - 1,
	}
}

// roundDownToPowerOf2 rounds n down to the nearest power of 2.
func roundDownToPowerOf2(n uint64) uint64 {
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

// Probe returns the stored node count for a hash at a given depth.
func (c *Cache) Probe(hash uint64, depth int) (uint64, bool) {
	c.probes.Add(1)

	idx := hash & c.mask
	shard := idx & cacheShardMask

	c.shards[shard].RLock()
	entry := c.entries[idx]
	c.shards[shard].RUnlock()

	if entry.key == hash && entry.depth == int32(depth) && entry.nodes > 0 {
		c.hits.Add(1)
		return entry.nodes, true
	}
	return 0, false
}

// Store records the node count of a subtree. Deeper entries are kept
// over shallower ones in the same slot.
func (c *Cache) Store(hash uint64, depth int, nodes uint64) {
	idx := hash & c.mask
	shard := idx & cacheShardMask

	c.shards[shard].Lock()
	entry := &c.entries[idx]
	if entry.nodes == 0 || int32(depth) >= entry.depth {
		entry.key = hash
		entry.depth = int32(depth)
		entry.nodes = nodes
	}
	c.shards[shard].Unlock()
}

// HitRate returns the cache hit rate as a percentage.
func (c *Cache) HitRate() float64 {
	probes := c.probes.Load()
	if probes == 0 {
		return 0
	}
	return float64(c.hits.Load()) / float64(probes) * 100
}

// Clear empties the cache and resets its statistics.
func (c *Cache) Clear() {
	for i := range c.shards {
		c.shards[i].Lock()
	}
	clear(c.entries)
	for i := range c.shards {
		c.shards[i].Unlock()
	}
	c.hits.Store(0)
	c.probes.Store(0)
}
