// Package cache implements an in-memory key/value store with time-based
// expiry. Entries carry a creation timestamp and a time-to-live; an entry
// is valid iff now - createdAt < ttl, and an expired entry behaves exactly
// like an absent one whether or not it has been physically removed yet.
//
// The clock is injectable so tests can simulate elapsed time without
// sleeping. The cache performs no locking of its own; callers sharing one
// instance across goroutines must synchronize externally.
package cache
