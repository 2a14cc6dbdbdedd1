package suggest

import (
	"encoding/binary"
	"math"
	"slices"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/log"
)

// ResultCache keeps the ranked results of recent queries, keyed by the whole
// Query value. Any insert into the phrase book invalidates it. A nil
// *ResultCache is a valid, always empty cache.
type ResultCache struct {
	entries     map[uint64]*cacheEntry
	accessCount int64
	maxEntries  int
	hits        int
	misses      int
	mu          sync.Mutex
}

type cacheEntry struct {
	query      Query
	results    []Suggestion
	accessTime int64
}

// NewResultCache returns a cache holding up to maxEntries results, or nil
// when maxEntries <= 0.
func NewResultCache(maxEntries int) *ResultCache {
	if maxEntries <= 0 {
		return nil
	}
	return &ResultCache{
		entries:    make(map[uint64]*cacheEntry, maxEntries),
		maxEntries: maxEntries,
	}
}

func cacheKey(q Query) uint64 {
	var buf [9]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(q.Limit))
	if q.Fuzzy {
		buf[8] |= 1
	}
	if q.StrictCase {
		buf[8] |= 2
	}
	if q.SmartCase {
		buf[8] |= 4
	}

	d := xxhash.New()
	_, _ = d.WriteString(q.Text)
	_, _ = d.Write(buf[:])
	return d.Sum64()
}

// Get returns a copy of the cached results for q.
func (rc *ResultCache) Get(q Query) ([]Suggestion, bool) {
	if rc == nil {
		return nil, false
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()

	entry, ok := rc.entries[cacheKey(q)]
	if !ok || entry.query != q {
		rc.misses++
		return nil, false
	}
	rc.hits++
	entry.accessTime = rc.getNextAccessTime()
	return slices.Clone(entry.results), true
}

// Put stores a copy of results for q, evicting the least recently used entry
// when full.
func (rc *ResultCache) Put(q Query, results []Suggestion) {
	if rc == nil {
		return
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()

	key := cacheKey(q)
	if _, exists := rc.entries[key]; !exists && len(rc.entries) >= rc.maxEntries {
		rc.evictLRU()
	}
	rc.entries[key] = &cacheEntry{
		query:      q,
		results:    slices.Clone(results),
		accessTime: rc.getNextAccessTime(),
	}
}

// Reset drops every entry.
func (rc *ResultCache) Reset() {
	if rc == nil {
		return
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()
	clear(rc.entries)
}

// Stats returns entry and hit counters.
func (rc *ResultCache) Stats() map[string]int {
	if rc == nil {
		return map[string]int{"cacheEntries": 0, "maxCacheEntries": 0, "cacheHits": 0, "cacheMisses": 0}
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()

	return map[string]int{
		"cacheEntries":    len(rc.entries),
		"maxCacheEntries": rc.maxEntries,
		"cacheHits":       rc.hits,
		"cacheMisses":     rc.misses,
	}
}

func (rc *ResultCache) getNextAccessTime() int64 {
	rc.accessCount++
	return rc.accessCount
}

func (rc *ResultCache) evictLRU() {
	var oldestKey uint64
	var oldestTime int64 = math.MaxInt64
	found := false

	for key, entry := range rc.entries {
		if entry.accessTime < oldestTime {
			oldestTime = entry.accessTime
			oldestKey = key
			found = true
		}
	}

	if found {
		log.Debugf("Evicted query '%s' from result cache", rc.entries[oldestKey].query.Text)
		delete(rc.entries, oldestKey)
	}
}
