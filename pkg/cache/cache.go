// Package cache stores computed layouts so repeated runs over unchanged
// input return immediately.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: a shared Redis instance for teams running the tool in CI
//   - [NullCache]: caching disabled
//
// # Keys
//
// Keys are derived by a [Keyer] from a hash of the input dataset and the
// layout options, so any change to either produces a fresh entry.
// [ScopedKeyer] prefixes keys to keep several catalogs apart in one backend.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the stored value and true, or false on a miss.
	// Expired entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts identifies the settings a layout was computed with. Settings
// must be JSON-serializable; it is hashed, never stored.
type LayoutKeyOpts struct {
	Strategy string `json:"strategy"`
	Settings any    `json:"settings"`
}

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey returns the key for a layout of the dataset with the given
	// content hash.
	LayoutKey(datasetHash string, opts LayoutKeyOpts) string
}

// DefaultKeyer produces keys of the form "layout:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements [Keyer].
func (DefaultKeyer) LayoutKey(datasetHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", datasetHash, opts)
}
