// Package store provides the key-value persistence boundary. Values are
// opaque JSON snapshots written in full on every mutation; there are no
// incremental writes.
package store

import "context"

// KV is the minimal surface the ledger and catalogs persist through.
type KV interface {
	// Get returns the value stored under key, or ok=false when the key
	// has never been written.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set writes the value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
}
