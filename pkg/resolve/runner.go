package resolve

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackorder/pkg/cache"
	"github.com/matzehuels/stackorder/pkg/graph"
	"github.com/matzehuels/stackorder/pkg/manifest"
	"github.com/matzehuels/stackorder/pkg/observability"
)

const cacheKeyType = "order"

// Runner resolves manifests with caching.
//
// The Runner is stateless except for the cache and logger, so multiple
// goroutines can safely share one Runner.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// ResolveFiles loads the manifests at paths, in order, and resolves them.
func (r *Runner) ResolveFiles(ctx context.Context, paths []string, opts Options) (*Result, error) {
	ms, err := manifest.LoadAll(paths...)
	if err != nil {
		return nil, err
	}
	return r.Resolve(ctx, ms, opts)
}

// Resolve applies manifests to a fresh builder, in order, and sorts it.
//
// Errors from the builder (unknown references, cycles) are returned
// unchanged so their codes survive. Cache failures are logged and never
// fail the resolution.
func (r *Runner) Resolve(ctx context.Context, manifests []*manifest.Manifest, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	start := time.Now()

	key, err := r.cacheKey(manifests, opts)
	if err != nil {
		r.Logger.Warn("cannot fingerprint manifests, skipping cache", "err", err)
	}

	if key != "" && !opts.Refresh {
		if res, ok := r.lookup(ctx, key, manifests); ok {
			res.CacheHit = true
			res.Duration = time.Since(start)
			r.Logger.Debug("order cache hit", "key", key, "elements", len(res.Order))
			return res, nil
		}
	}

	res, err := r.sort(ctx, manifests, opts.Strategy)
	if err != nil {
		return nil, err
	}
	res.Duration = time.Since(start)

	r.Logger.Info("resolved order",
		"elements", len(res.Order),
		"edges", len(res.Edges),
		"strategy", res.Strategy,
		"duration", res.Duration)

	if key != "" {
		r.store(ctx, key, res)
	}
	return res, nil
}

func (r *Runner) sort(ctx context.Context, manifests []*manifest.Manifest, strategy string) (*Result, error) {
	factory, err := graph.FactoryFor[manifest.Entry](strategy)
	if err != nil {
		return nil, err
	}

	elements := manifest.Count(manifests...)
	hooks := observability.Resolve()
	hooks.OnResolveStart(ctx, strategy, elements)
	start := time.Now()

	b := manifest.NewBuilder(factory, manifests...)
	edges, err := b.Edges()
	var order []manifest.Entry
	if err == nil {
		order, err = b.Sort()
	}
	hooks.OnResolveComplete(ctx, strategy, b.Len(), len(edges), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Order:    order,
		Edges:    make([]Edge, len(edges)),
		Strategy: strategy,
	}
	for i, e := range edges {
		res.Edges[i] = Edge{From: e.From.ID, To: e.To.ID}
	}
	return res, nil
}

func (r *Runner) cacheKey(manifests []*manifest.Manifest, opts Options) (string, error) {
	fp, err := cache.Fingerprint(manifests)
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}
	return r.Keyer.OrderKey(fp, cache.OrderKeyOpts{Strategy: opts.Strategy}), nil
}

// cachedOrder is the cache representation of a Result. Entries are not
// stored; they are rebuilt from the manifests the key was derived from, so a
// cache hit returns the same payloads as a fresh resolution.
type cachedOrder struct {
	Order    []string `json:"order"`
	Edges    []Edge   `json:"edges"`
	Strategy string   `json:"strategy"`
}

func (r *Runner) lookup(ctx context.Context, key string, manifests []*manifest.Manifest) (*Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache get failed", "key", key, "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
		return nil, false
	}
	var cached cachedOrder
	if err := json.Unmarshal(data, &cached); err != nil {
		r.Logger.Warn("discarding unreadable cache entry", "key", key, "err", err)
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
		return nil, false
	}
	res, err := rehydrate(cached, manifests)
	if err != nil {
		r.Logger.Warn("discarding stale cache entry", "key", key, "err", err)
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, cacheKeyType)
	return res, true
}

// rehydrate maps cached IDs back to the entries registered for them. The
// first entry declared for an ID wins, as in the builder.
func rehydrate(cached cachedOrder, manifests []*manifest.Manifest) (*Result, error) {
	entries := make(map[string]manifest.Entry)
	for _, m := range manifests {
		if m == nil {
			continue
		}
		for _, e := range m.Elements {
			if _, ok := entries[e.ID]; !ok {
				entries[e.ID] = e
			}
		}
	}
	if len(cached.Order) != len(entries) {
		return nil, fmt.Errorf("cached order has %d elements, manifests declare %d", len(cached.Order), len(entries))
	}

	res := &Result{
		Order:    make([]manifest.Entry, len(cached.Order)),
		Edges:    cached.Edges,
		Strategy: cached.Strategy,
	}
	for i, id := range cached.Order {
		e, ok := entries[id]
		if !ok {
			return nil, fmt.Errorf("cached element %q is not declared", id)
		}
		res.Order[i] = e
	}
	return res, nil
}

func (r *Runner) store(ctx context.Context, key string, res *Result) {
	data, err := json.Marshal(cachedOrder{
		Order:    res.IDs(),
		Edges:    res.Edges,
		Strategy: res.Strategy,
	})
	if err != nil {
		r.Logger.Warn("cannot encode result for cache", "err", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, cache.TTLOrder); err != nil {
		r.Logger.Warn("cache set failed", "key", key, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, cacheKeyType, len(data))
}
