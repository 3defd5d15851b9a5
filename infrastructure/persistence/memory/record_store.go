package memory

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"

	"consolidator-backend/domain/config"
	"consolidator-backend/domain/core/entities"
	"consolidator-backend/domain/services"
	pkgerrors "consolidator-backend/pkg/errors"
)

// RecordStore is an in-memory record store backing tests and local
// development. Collections hold raw payload maps so the same extraction and
// fragment-merge path runs as against the production store.
type RecordStore struct {
	mu          sync.RWMutex
	collections map[string][]map[string]interface{}
	builder     services.RecordBuilder
	config      *config.AnalysisConfig
}

// NewRecordStore creates an empty in-memory store
func NewRecordStore(cfg *config.AnalysisConfig, builder services.RecordBuilder, logger *zap.Logger) *RecordStore {
	if cfg == nil {
		cfg = config.DefaultAnalysisConfig()
	}
	if builder == nil {
		builder = services.NewDefaultRecordBuilder(nil, logger)
	}

	return &RecordStore{
		collections: make(map[string][]map[string]interface{}),
		builder:     builder,
		config:      cfg,
	}
}

// Seed registers a collection with raw payloads, replacing existing content
func (s *RecordStore) Seed(collection string, payloads []map[string]interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[collection] = payloads
}

// Ping always succeeds for the in-memory store
func (s *RecordStore) Ping(ctx context.Context) error {
	return nil
}

// ListCollections returns registered collection names sorted for stable output
func (s *RecordStore) ListCollections(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.collections))
	for name := range s.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// CollectionExists checks whether a collection was seeded
func (s *RecordStore) CollectionExists(ctx context.Context, collection string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.collections[collection]
	return exists, nil
}

// FetchRecords builds merged records from the seeded payloads. A missing
// collection is a NotFoundError carrying the available alternatives.
func (s *RecordStore) FetchRecords(ctx context.Context, collection string, limit int) ([]*entities.Record, error) {
	s.mu.RLock()
	payloads, exists := s.collections[collection]
	s.mu.RUnlock()

	if !exists {
		available, _ := s.ListCollections(ctx)
		return nil, pkgerrors.NewCollectionNotFoundError(collection, available)
	}
	if len(payloads) == 0 {
		return nil, pkgerrors.NewEmptyCollectionError(collection)
	}

	if limit <= 0 || limit > s.config.MaxFetchItems {
		limit = s.config.MaxFetchItems
	}
	if len(payloads) > limit {
		payloads = payloads[:limit]
	}

	return s.builder.Build(payloads), nil
}
