package framework

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// CachedFitness memoizes scores by Genome.Key for a limited time. It is safe
// for concurrent use.
type CachedFitness struct {
	inner FitnessFunction
	cache *gocache.Cache
}

var _ FitnessFunction = &CachedFitness{}

// NewCachedFitness wraps inner. Entries expire after ttl and are purged
// every 2*ttl.
func NewCachedFitness(inner FitnessFunction, ttl time.Duration) *CachedFitness {
	return &CachedFitness{
		inner: inner,
		cache: gocache.New(ttl, 2*ttl),
	}
}

func (c *CachedFitness) Score(g Genome) float64 {
	key := g.Key()
	if v, ok := c.cache.Get(key); ok {
		return v.(float64)
	}
	score := c.inner.Score(g)
	c.cache.SetDefault(key, score)
	return score
}

func (c *CachedFitness) MaxFitness() (float64, bool) {
	return c.inner.MaxFitness()
}

// Len returns the number of cached entries, expired ones included.
func (c *CachedFitness) Len() int {
	return c.cache.ItemCount()
}

// Flush drops every cached score.
func (c *CachedFitness) Flush() {
	c.cache.Flush()
}
