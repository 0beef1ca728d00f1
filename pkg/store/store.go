// Package store persists entry point classification results.
//
// Only the latest result is kept. Backends:
//   - file: <data-dir>/classifications.json, pretty-printed (the default)
//   - redis: a single key holding the JSON document
//   - mongo: a single document with _id "latest"
//   - memory: process-local, for tests and --no-save runs
//
// Load returns nil, nil when nothing has been stored yet.
package store

import (
	"context"
	"strings"
	"time"

	errs "github.com/matzehuels/tldrviz/pkg/errors"
	"github.com/matzehuels/tldrviz/pkg/model"
)

// Store is a classification result backend.
type Store interface {
	// Name identifies the backend in logs and metrics.
	Name() string

	// Load returns the stored result, or nil, nil if there is none.
	Load(ctx context.Context) (*model.ClassificationsData, error)

	// Save replaces the stored result.
	Save(ctx context.Context, data *model.ClassificationsData) error

	// Close releases backend connections.
	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Config selects and configures a backend.
type Config struct {
	Backend string

	DataDir string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisKey      string

	MongoURI      string
	MongoDatabase string

	// Timeout bounds connection checks. Defaults to 5s.
	Timeout time.Duration
}

// Open creates the backend named by cfg.Backend. An empty name selects the
// file backend.
func Open(ctx context.Context, cfg Config) (Store, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	switch strings.ToLower(cfg.Backend) {
	case "", BackendFile:
		return NewFileStore(cfg.DataDir)
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendRedis:
		return NewRedisStore(ctx, RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Key:      cfg.RedisKey,
			Timeout:  cfg.Timeout,
		})
	case BackendMongo:
		return NewMongoStore(ctx, MongoConfig{
			URI:      cfg.MongoURI,
			Database: cfg.MongoDatabase,
			Timeout:  cfg.Timeout,
		})
	default:
		return nil, errs.New(errs.ErrCodeUnsupported, "unknown store backend %q (want file, memory, redis or mongo)", cfg.Backend)
	}
}
