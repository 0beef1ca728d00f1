// Package config loads tldrviz settings.
//
// Sources are applied in order, later ones winning:
//
//  1. built-in defaults ([Default])
//  2. a TOML file: tldrviz.toml in the working directory, or an explicit path
//  3. a .env file in the working directory (never overrides the real environment)
//  4. environment variables (see the Env* constants)
//
// Command-line flags are applied on top by the CLI.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/tldrviz/pkg/cache"
	"github.com/matzehuels/tldrviz/pkg/classify"
	errs "github.com/matzehuels/tldrviz/pkg/errors"
	"github.com/matzehuels/tldrviz/pkg/store"
)

const (
	// AppName is used for the cache directory.
	AppName = "tldrviz"

	// DefaultFile is the config file looked up in the working directory.
	DefaultFile = "tldrviz.toml"

	// DefaultEnvFile is the dotenv file looked up in the working directory.
	DefaultEnvFile = ".env"

	DefaultAddr           = "localhost:8080"
	DefaultDataDir        = "."
	DefaultTimeoutSeconds = 120
	DefaultCacheTTLHours  = 24 * 7
)

// Environment overrides.
const (
	EnvDataDir       = "TLDRVIZ_DATA_DIR"
	EnvAddr          = "TLDRVIZ_ADDR"
	EnvProvider      = "TLDRVIZ_PROVIDER"
	EnvModel         = "TLDRVIZ_MODEL"
	EnvStore         = "TLDRVIZ_STORE"
	EnvRedisAddr     = "TLDRVIZ_REDIS_ADDR"
	EnvRedisPassword = "TLDRVIZ_REDIS_PASSWORD"
	EnvMongoURI      = "TLDRVIZ_MONGO_URI"
	EnvCacheDir      = "TLDRVIZ_CACHE_DIR"
	EnvOpenRouterKey = "OPENROUTER_API_KEY"
	EnvGeminiKey     = "GEMINI_API_KEY"
)

// Config is the merged configuration.
type Config struct {
	DataDir  string         `toml:"data_dir"`
	Addr     string         `toml:"addr"`
	Classify ClassifyConfig `toml:"classify"`
	Store    StoreConfig    `toml:"store"`
	Cache    CacheConfig    `toml:"cache"`

	// Source is the TOML file that was read, if any.
	Source string `toml:"-"`
}

// ClassifyConfig selects the LLM backend.
type ClassifyConfig struct {
	Provider       string `toml:"provider"`
	Model          string `toml:"model"`
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`

	// API keys come from the environment only.
	OpenRouterAPIKey string `toml:"-"`
	GeminiAPIKey     string `toml:"-"`
}

// StoreConfig selects the classification store.
type StoreConfig struct {
	Backend       string `toml:"backend"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"-"`
	RedisDB       int    `toml:"redis_db"`
	RedisKey      string `toml:"redis_key"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// CacheConfig configures render caches.
type CacheConfig struct {
	Dir           string `toml:"dir"`
	TTLHours      int    `toml:"ttl_hours"`
	MemoryEntries int    `toml:"memory_entries"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DataDir: DefaultDataDir,
		Addr:    DefaultAddr,
		Classify: ClassifyConfig{
			Provider:       classify.ProviderOpenRouter,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		Store: StoreConfig{Backend: store.BackendFile},
		Cache: CacheConfig{
			TTLHours:      DefaultCacheTTLHours,
			MemoryEntries: cache.DefaultMemoryEntries,
		},
	}
}

// Load merges defaults, the TOML file, .env and the environment. An empty
// path reads DefaultFile if it exists; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	file, required := path, true
	if file == "" {
		file, required = DefaultFile, false
	}
	if err := cfg.readFile(file, required); err != nil {
		return nil, err
	}

	if err := godotenv.Load(DefaultEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "read %s", DefaultEnvFile)
	}
	cfg.applyEnv(os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			return errs.Wrap(errs.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return errs.Wrap(errs.ErrCodeInvalidPath, err, "read config file %s", path)
	}
	if _, err := toml.Decode(string(data), c); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "parse config file %s", path)
	}
	c.Source = path
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	str(EnvDataDir, &c.DataDir)
	str(EnvAddr, &c.Addr)
	str(EnvProvider, &c.Classify.Provider)
	str(EnvModel, &c.Classify.Model)
	str(EnvOpenRouterKey, &c.Classify.OpenRouterAPIKey)
	str(EnvGeminiKey, &c.Classify.GeminiAPIKey)
	str(EnvStore, &c.Store.Backend)
	str(EnvRedisAddr, &c.Store.RedisAddr)
	str(EnvRedisPassword, &c.Store.RedisPassword)
	str(EnvMongoURI, &c.Store.MongoURI)
	str(EnvCacheDir, &c.Cache.Dir)
}

// Validate rejects values the rest of the program cannot use.
func (c *Config) Validate() error {
	switch c.Classify.Provider {
	case classify.ProviderOpenRouter, classify.ProviderGemini:
	default:
		return errs.New(errs.ErrCodeInvalidInput, "unknown classify provider %q (want %s or %s)",
			c.Classify.Provider, classify.ProviderOpenRouter, classify.ProviderGemini)
	}
	if c.Classify.TimeoutSeconds <= 0 {
		return errs.New(errs.ErrCodeInvalidInput, "classify.timeout_seconds must be positive, got %d", c.Classify.TimeoutSeconds)
	}
	if c.Cache.TTLHours < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "cache.ttl_hours must not be negative")
	}
	return nil
}

// Timeout is the classification timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Classify.TimeoutSeconds) * time.Second
}

// CacheTTL is the render cache lifetime.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLHours) * time.Hour
}

// APIKey returns the key for the configured provider.
func (c *Config) APIKey() string {
	if c.Classify.Provider == classify.ProviderGemini {
		return c.Classify.GeminiAPIKey
	}
	return c.Classify.OpenRouterAPIKey
}

// StoreOptions converts the store section for [store.Open].
func (c *Config) StoreOptions() store.Config {
	return store.Config{
		Backend:       c.Store.Backend,
		DataDir:       c.DataDir,
		RedisAddr:     c.Store.RedisAddr,
		RedisPassword: c.Store.RedisPassword,
		RedisDB:       c.Store.RedisDB,
		RedisKey:      c.Store.RedisKey,
		MongoURI:      c.Store.MongoURI,
		MongoDatabase: c.Store.MongoDatabase,
	}
}

// CacheDir returns the render cache directory: the configured one, else
// $XDG_CACHE_HOME/tldrviz, else ~/.cache/tldrviz.
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}
