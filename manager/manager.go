// Package manager provides a caching registry: named values memoized over
// an expiring cache, with optional key generation for anonymous entries.
// It is the composition layer over package cache; records, query results,
// or any other value can be parked here under a TTL.
package manager

import (
	"log/slog"
	"time"

	"github.com/objbase/objbase/cache"
)

// DefaultTTL is the registry's default time-to-live for registered values.
const DefaultTTL = time.Hour

// Manager memoizes values by key with time-based expiry.
//
// Like the underlying cache, a Manager is not safe for concurrent use
// without external synchronization.
type Manager struct {
	cache *cache.Cache
	log   *slog.Logger
	keys  KeyGenerator
}

// Option configures a Manager.
type Option func(*config)

type config struct {
	ttl    time.Duration
	clock  cache.Clock
	logger *slog.Logger
	keys   KeyGenerator
}

// WithTTL overrides the default time-to-live for registered values.
func WithTTL(ttl time.Duration) Option {
	return func(c *config) {
		c.ttl = ttl
	}
}

// WithClock injects the time source used for expiry.
func WithClock(clock cache.Clock) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// WithLogger injects the logging collaborator. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithKeyGenerator replaces the UUIDv7 generator used for anonymous
// registrations.
func WithKeyGenerator(g KeyGenerator) Option {
	return func(c *config) {
		c.keys = g
	}
}

// New creates a Manager with the default TTL, wall clock, process logger,
// and UUIDv7 key generation unless overridden.
func New(opts ...Option) *Manager {
	cfg := config{
		ttl:    DefaultTTL,
		clock:  cache.SystemClock(),
		logger: slog.Default(),
		keys:   UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Manager{
		cache: cache.New(cfg.ttl, cache.WithClock(cfg.clock)),
		log:   cfg.logger,
		keys:  cfg.keys,
	}
}

// Register memoizes a value under key with the default TTL, replacing any
// existing entry.
func (m *Manager) Register(key string, value any) {
	m.cache.Add(key, value)
	m.log.Debug("manager: registered", "key", key)
}

// RegisterTTL memoizes a value with an explicit TTL.
func (m *Manager) RegisterTTL(key string, value any, ttl time.Duration) {
	m.cache.AddTTL(key, value, ttl)
	m.log.Debug("manager: registered", "key", key, "ttl", ttl)
}

// RegisterAnonymous memoizes a value under a generated key and returns the
// key.
func (m *Manager) RegisterAnonymous(value any) string {
	key := m.keys.Generate()
	m.Register(key, value)
	return key
}

// Lookup returns the value for key if a valid entry exists; expired
// entries are misses.
func (m *Manager) Lookup(key string) (any, bool) {
	return m.cache.Get(key)
}

// Contains reports whether key holds a valid entry.
func (m *Manager) Contains(key string) bool {
	return m.cache.Contains(key)
}

// Forget removes one entry regardless of validity.
func (m *Manager) Forget(key string) {
	m.cache.Delete(key)
	m.log.Debug("manager: forgot", "key", key)
}

// Reset empties the registry.
func (m *Manager) Reset() {
	m.cache.Clear()
	m.log.Debug("manager: reset")
}

// Size counts the currently valid entries.
func (m *Manager) Size() int {
	return m.cache.Len()
}

// Keys returns the keys of all valid entries, sorted.
func (m *Manager) Keys() []string {
	return m.cache.Keys()
}

// Sweep physically removes expired entries and returns how many were
// dropped.
func (m *Manager) Sweep() int {
	n := m.cache.Sweep()
	if n > 0 {
		m.log.Debug("manager: swept expired entries", "count", n)
	}
	return n
}
