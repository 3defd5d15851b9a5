package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	pkgerrors "consolidator-backend/pkg/errors"
)

func TestRecordStore_FetchMergesFragments(t *testing.T) {
	store := NewRecordStore(nil, nil, zap.NewNop())
	store.Seed("notes", []map[string]interface{}{
		{"id": "frag-1", "fileName": "alpha.md", "keywords": []interface{}{"one"}},
		{"id": "frag-2", "fileName": "alpha.md", "keywords": []interface{}{"two"}},
	})

	records, err := store.FetchRecords(context.Background(), "notes", 0)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 2, records[0].FragmentCount())
}

func TestRecordStore_EmptyCollectionIsTypedError(t *testing.T) {
	store := NewRecordStore(nil, nil, zap.NewNop())
	store.Seed("empty", []map[string]interface{}{})

	records, err := store.FetchRecords(context.Background(), "empty", 0)

	require.Error(t, err)
	assert.Nil(t, records)
	assert.True(t, pkgerrors.IsEmptyCollection(err))
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestRecordStore_MissingCollectionCarriesAlternatives(t *testing.T) {
	store := NewRecordStore(nil, nil, zap.NewNop())
	store.Seed("known", []map[string]interface{}{{"id": "rec-1"}})

	_, err := store.FetchRecords(context.Background(), "unknown", 0)

	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
	assert.False(t, pkgerrors.IsEmptyCollection(err))

	appErr := pkgerrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Contains(t, appErr.Details, "available_collections")
}
