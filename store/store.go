// Package store defines the byte-store abstraction behind the term cache.
//
// Implementations MUST be byte-for-byte transparent: Get must return exactly
// the same []byte that was previously passed to Set for a key (no prepended
// metadata, no re-encoding, no mutation). Set replaces the whole value for a
// key in one shot; the cache always rewrites a full table, never appends.
//
// Stores may be durable (filesystem, Redis) or ephemeral (BigCache,
// Ristretto). Ephemeral stores are safe because every cached term value is a
// pure function of its key (a lost table is simply recomputed), but they
// forfeit the cross-run reuse that motivates the cache in the first place.
//
// Concurrent writers to the same key are last-writer-wins. Values are
// deterministic per key, so a lost race discards work but never corrupts.
package store

import "context"

// Store is a minimal byte store keyed by table identity.
type Store interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	// If an IO/remote error happens, return (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set atomically replaces the value stored at key. Readers must observe
	// either the previous value or the new one, never a partial write.
	Set(ctx context.Context, key string, value []byte) error

	// Close releases resources.
	Close(ctx context.Context) error
}
