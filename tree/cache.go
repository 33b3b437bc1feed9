package tree

import "sync"

type cacheKey struct {
	path       string
	name       string
	resultType ResultTag
}

// resultCache memoizes [Descriptor] results for one [Handle] tree. Only
// object-typed results are ever stored in it (see [Handle.Access]) — every
// other result type is already backed by the node store's own O(1)
// memoization, so caching it again here would just spend memory for no
// benefit.
type resultCache struct {
	mu sync.Mutex
	m  map[cacheKey]any
}

func newResultCache() *resultCache {
	return &resultCache{m: make(map[cacheKey]any)}
}

func (c *resultCache) get(key cacheKey) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.m[key]

	return v, ok
}

func (c *resultCache) put(key cacheKey, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.m[key] = v
}
