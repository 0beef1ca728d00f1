// Package observability provides instrumentation hooks.
//
// Library packages report graph transforms, classification runs and cache
// traffic through hook interfaces without depending on a metrics backend.
// Every hook starts as a no-op; the HTTP server registers a Prometheus
// implementation at startup and the CLI keeps the defaults.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetTransformHooks(&myTransformHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Transform().OnTransformStart(ctx, "calls")
//	// ... build the graph ...
//	observability.Transform().OnTransformComplete(ctx, "calls", nodes, edges, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Transform Hooks
// =============================================================================

// TransformHooks receives events from view transforms.
type TransformHooks interface {
	OnTransformStart(ctx context.Context, view string)
	OnTransformComplete(ctx context.Context, view string, nodes, edges int, duration time.Duration, err error)
}

// =============================================================================
// Classify Hooks
// =============================================================================

// ClassifyHooks receives events from entry point classification.
type ClassifyHooks interface {
	// OnClassifyStart records a request to the model provider.
	OnClassifyStart(ctx context.Context, provider string, entries int)

	// OnClassifyComplete records the outcome of a classification run.
	OnClassifyComplete(ctx context.Context, provider string, classifications int, duration time.Duration, err error)

	// OnPersist records a background write of classification results.
	OnPersist(ctx context.Context, backend string, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopTransformHooks is a no-op implementation of TransformHooks.
type NoopTransformHooks struct{}

func (NoopTransformHooks) OnTransformStart(context.Context, string) {}
func (NoopTransformHooks) OnTransformComplete(context.Context, string, int, int, time.Duration, error) {
}

// NoopClassifyHooks is a no-op implementation of ClassifyHooks.
type NoopClassifyHooks struct{}

func (NoopClassifyHooks) OnClassifyStart(context.Context, string, int) {}
func (NoopClassifyHooks) OnClassifyComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopClassifyHooks) OnPersist(context.Context, string, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	transformHooks TransformHooks = NoopTransformHooks{}
	classifyHooks  ClassifyHooks  = NoopClassifyHooks{}
	cacheHooks     CacheHooks     = NoopCacheHooks{}
	hooksMu        sync.RWMutex
)

// SetTransformHooks registers custom transform hooks.
// This should be called once at application startup.
func SetTransformHooks(h TransformHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		transformHooks = h
	}
}

// SetClassifyHooks registers custom classification hooks.
// This should be called once at application startup.
func SetClassifyHooks(h ClassifyHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		classifyHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Transform returns the registered transform hooks.
func Transform() TransformHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return transformHooks
}

// Classify returns the registered classification hooks.
func Classify() ClassifyHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return classifyHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	transformHooks = NoopTransformHooks{}
	classifyHooks = NoopClassifyHooks{}
	cacheHooks = NoopCacheHooks{}
}
