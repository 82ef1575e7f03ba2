package port

import (
	"context"
	"time"
)

// Cache defines the minimal contract for a key-value cache used by the
// application; the session store is its main consumer. Implementations must
// be concurrency-safe and context-aware so callers can drive timeouts and
// cancellation.
//
// Values are stored as strings to keep the port free of serialization
// concerns; adapters may add helpers in their own packages.
type Cache interface {
	// Get fetches the value for key. A missing key is reported as ErrMiss;
	// a non-nil error other than ErrMiss means a transport or server failure.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value at key with the provided TTL. Zero or negative TTL
	// means no expiration (persist until evicted).
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	// Del removes one or more keys and returns the number of keys removed.
	Del(ctx context.Context, keys ...string) (int64, error)

	// Ping verifies connectivity with the cache backend.
	Ping(ctx context.Context) error

	// Close releases any resources held by the cache.
	Close() error
}

// ErrMiss signals a cache miss in a typed way so callers can differentiate
// misses from transport errors.
var ErrMiss = errMiss{}

type errMiss struct{}

func (e errMiss) Error() string { return "cache: miss" }
