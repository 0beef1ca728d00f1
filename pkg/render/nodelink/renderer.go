package nodelink

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tldrviz/pkg/cache"
	"github.com/matzehuels/tldrviz/pkg/graph"
	"github.com/matzehuels/tldrviz/pkg/observability"
)

const cacheKeyType = "render"

// Renderer renders graphs to SVG through a cache.
type Renderer struct {
	cache  cache.Cache
	ttl    time.Duration
	logger *log.Logger
}

// NewRenderer creates a renderer. A nil cache disables caching; a nil
// logger means log.Default().
func NewRenderer(c cache.Cache, ttl time.Duration, logger *log.Logger) *Renderer {
	if c == nil {
		c = cache.Disabled
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Renderer{cache: c, ttl: ttl, logger: logger}
}

// Render returns the SVG for g and whether it came from the cache.
func (r *Renderer) Render(ctx context.Context, g graph.Graph, opts Options) ([]byte, bool, error) {
	return r.RenderDOT(ctx, ToDOT(g, opts))
}

// RenderDOT renders DOT source, consulting the cache first. Cache
// failures are logged and do not fail the render.
func (r *Renderer) RenderDOT(ctx context.Context, dot string) ([]byte, bool, error) {
	hooks := observability.Cache()
	key := cache.RenderKey([]byte(dot), "svg")

	data, ok, err := r.cache.Get(ctx, key)
	if err != nil {
		r.logger.Warn("render cache read failed", "err", err)
	}
	if ok {
		hooks.OnCacheHit(ctx, cacheKeyType)
		return data, true, nil
	}
	hooks.OnCacheMiss(ctx, cacheKeyType)

	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, false, err
	}
	if err := r.cache.Set(ctx, key, svg, r.ttl); err != nil {
		r.logger.Warn("render cache write failed", "err", err)
	} else {
		hooks.OnCacheSet(ctx, cacheKeyType, len(svg))
	}
	return svg, false, nil
}
