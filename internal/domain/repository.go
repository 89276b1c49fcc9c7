package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// RecordStore defines the interface for loading source record collections and
// persisting the merged catalog. Implementations own all I/O; the merge
// engine itself never touches the filesystem.
type RecordStore interface {
	// LoadRecords returns one ordered, source-tagged stream of raw records.
	// The order is part of the contract: it decides first-wins ties.
	LoadRecords(ctx context.Context) ([]RawRecord, error)

	// SaveCanonical persists the merged catalog, round-tripping every
	// record field without loss.
	SaveCanonical(ctx context.Context, records []CanonicalRecord) error
}
