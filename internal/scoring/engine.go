package scoring

import (
	"log/slog"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/mitchellh/hashstructure/v2"
)

const (
	DefaultCacheSize = 256
	DefaultCacheTTL  = 10 * time.Minute
)

// Engine memoizes Analyze keyed on the content of the criteria and tools.
// Callers recompute on every weight or candidate change, and most of those
// calls repeat a snapshot that was already analyzed.
//
// Returned values are shared with the cache and must be treated as read-only.
type Engine struct {
	cache *expirable.LRU[uint64, Analysis]
}

// NewEngine creates an Engine. Non-positive arguments fall back to the
// defaults.
func NewEngine(size int, ttl time.Duration) *Engine {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Engine{cache: expirable.NewLRU[uint64, Analysis](size, nil, ttl)}
}

type cacheKey struct {
	Tools    []Tool
	Criteria []Criterion
	TopN     int
}

// Analyze returns the memoized result of the package-level Analyze.
func (e *Engine) Analyze(tools []Tool, criteria []Criterion, topN int) Analysis {
	if topN <= 0 {
		topN = DefaultTopTradeoffs
	}

	key, err := hashstructure.Hash(cacheKey{Tools: tools, Criteria: criteria, TopN: topN}, hashstructure.FormatV2, nil)
	if err != nil {
		slog.Debug("scoring: cache key", "error", err)
		return Analyze(tools, criteria, topN)
	}

	if a, ok := e.cache.Get(key); ok {
		return a
	}
	a := Analyze(tools, criteria, topN)
	e.cache.Add(key, a)
	return a
}

// Rank returns the memoized ranking.
func (e *Engine) Rank(tools []Tool, criteria []Criterion) []RankedTool {
	return e.Analyze(tools, criteria, DefaultTopTradeoffs).Ranking
}

// Len reports how many snapshots are cached.
func (e *Engine) Len() int {
	return e.cache.Len()
}

// Purge drops every cached analysis.
func (e *Engine) Purge() {
	e.cache.Purge()
}
