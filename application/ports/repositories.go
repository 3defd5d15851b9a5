package ports

import (
	"context"

	"consolidator-backend/domain/core/entities"
)

// RecordStore defines the interface for the external record store
// This is a port in hexagonal architecture - the domain doesn't know about the implementation
type RecordStore interface {
	// Ping verifies the store is reachable
	Ping(ctx context.Context) error

	// ListCollections returns the names of all known collections
	ListCollections(ctx context.Context) ([]string, error)

	// CollectionExists checks whether a collection is registered
	CollectionExists(ctx context.Context, collection string) (bool, error)

	// FetchRecords pages through a collection until completion or the
	// configured maximum item count, merging fragments of one logical file
	// into a single record. A missing collection is a NotFoundError carrying
	// the available alternatives, never an empty success.
	FetchRecords(ctx context.Context, collection string, limit int) ([]*entities.Record, error)
}

// Cache defines the interface for caching fetch and query results
type Cache interface {
	// Get retrieves a value from cache
	Get(ctx context.Context, key string) (interface{}, bool)

	// Set stores a value in cache with TTL in seconds
	Set(ctx context.Context, key string, value interface{}, ttl int) error

	// Delete removes a value from cache
	Delete(ctx context.Context, key string) error

	// Clear removes all values from cache
	Clear(ctx context.Context) error
}
