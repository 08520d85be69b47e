package enrichment

import (
	"container/list"
	"sync"

	"github.com/raviX007/resume-tailor/internal/types"
)

// analysisCache is a bounded content-hash cache of resume analyses. The
// same resume submitted against a different job description skips the model
// call. Eviction is oldest-insertion-first.
type analysisCache struct {
	mu      sync.Mutex
	max     int
	order   *list.List
	entries map[string]*list.Element
}

type cacheEntry struct {
	hash     string
	analysis *types.ResumeAnalysis
}

func newAnalysisCache(max int) *analysisCache {
	return &analysisCache{
		max:     max,
		order:   list.New(),
		entries: make(map[string]*list.Element),
	}
}

func (c *analysisCache) get(hash string) (*types.ResumeAnalysis, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[hash]
	if !ok {
		return nil, false
	}
	return elem.Value.(*cacheEntry).analysis, true
}

func (c *analysisCache) put(hash string, analysis *types.ResumeAnalysis) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[hash]; ok {
		elem.Value.(*cacheEntry).analysis = analysis
		return
	}

	if c.order.Len() >= c.max {
		oldest := c.order.Front()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).hash)
	}

	c.entries[hash] = c.order.PushBack(&cacheEntry{hash: hash, analysis: analysis})
}

func (c *analysisCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
