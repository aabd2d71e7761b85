package cache

import (
	"sort"
	"time"
)

// entry is one stored value with its creation timestamp and effective TTL.
// An entry whose TTL has elapsed is logically absent even while still
// physically stored; Sweep removes such entries in bulk.
type entry struct {
	value     any
	createdAt time.Time
	ttl       time.Duration
}

// Cache is a key/value store with per-entry time-based expiry.
//
// Not safe for concurrent use: callers sharing a Cache across goroutines
// must provide their own synchronization (or use one cache per worker).
type Cache struct {
	entries    map[string]entry
	defaultTTL time.Duration
	clock      Clock
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock replaces the wall clock, typically with a manual clock in
// tests.
func WithClock(c Clock) Option {
	return func(ca *Cache) {
		ca.clock = c
	}
}

// New creates a cache whose entries expire defaultTTL after creation
// unless a per-entry TTL overrides it.
func New(defaultTTL time.Duration, opts ...Option) *Cache {
	c := &Cache{
		entries:    make(map[string]entry),
		defaultTTL: defaultTTL,
		clock:      SystemClock(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Add stores a value under key with the cache's default TTL, replacing any
// existing entry unconditionally and restarting its lifetime.
func (c *Cache) Add(key string, value any) {
	c.AddTTL(key, value, c.defaultTTL)
}

// AddTTL stores a value with an explicit TTL. A zero or negative TTL
// produces an entry that is already expired.
func (c *Cache) AddTTL(key string, value any, ttl time.Duration) {
	c.entries[key] = entry{
		value:     value,
		createdAt: c.clock.Now(),
		ttl:       ttl,
	}
}

// Get returns the value for key if a valid entry exists. An expired entry
// is a miss; it is evicted on the read that observes the expiry, which
// never changes observable behavior.
func (c *Cache) Get(key string) (any, bool) {
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !c.valid(e) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Contains reports whether key holds a valid entry. Same liveness test as
// Get, without returning the value.
func (c *Cache) Contains(key string) bool {
	return c.IsValid(key)
}

// IsValid reports whether key holds an entry whose TTL has not elapsed.
func (c *Cache) IsValid(key string) bool {
	e, ok := c.entries[key]
	return ok && c.valid(e)
}

// Delete removes one entry regardless of validity.
func (c *Cache) Delete(key string) {
	delete(c.entries, key)
}

// Clear removes all entries regardless of validity.
func (c *Cache) Clear() {
	c.entries = make(map[string]entry)
}

// Sweep physically removes every expired entry and returns how many were
// dropped. Purely an optimization; Get and Contains behave identically
// whether or not Sweep ever runs.
func (c *Cache) Sweep() int {
	n := 0
	for k, e := range c.entries {
		if !c.valid(e) {
			delete(c.entries, k)
			n++
		}
	}
	return n
}

// Len counts the currently valid entries.
func (c *Cache) Len() int {
	n := 0
	for _, e := range c.entries {
		if c.valid(e) {
			n++
		}
	}
	return n
}

// Keys returns the keys of all valid entries, sorted for determinism.
func (c *Cache) Keys() []string {
	keys := make([]string, 0, len(c.entries))
	for k, e := range c.entries {
		if c.valid(e) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func (c *Cache) valid(e entry) bool {
	return c.clock.Now().Sub(e.createdAt) < e.ttl
}
