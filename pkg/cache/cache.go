// Package cache stores rendered artifacts keyed by content hash.
//
// Graphs themselves are never cached: they are cheap to rebuild and must
// reflect the current options. What is expensive is running Graphviz over a
// large DOT document, so the render path keys its output by the hash of the
// DOT text plus the output format.
//
// Three backends are provided:
//   - [Disabled] never stores anything (used with --no-cache)
//   - [FileCache] persists entries on disk for the CLI
//   - [MemoryCache] is a bounded LRU for the HTTP server
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored value and whether it was found. A miss is not
	// an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Disabled is a Cache that never stores anything.
var Disabled Cache = disabled{}

type disabled struct{}

func (disabled) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (disabled) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (disabled) Delete(context.Context, string) error                     { return nil }
func (disabled) Close() error                                             { return nil }
