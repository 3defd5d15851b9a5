package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	err := NewValidationError("keywords must be an array")
	assert.Equal(t, "VALIDATION: keywords must be an array", err.Error())

	cause := errors.New("connection refused")
	withCause := NewConnectivityError("dynamodb", cause)
	assert.Contains(t, withCause.Error(), "CONNECTIVITY")
	assert.Contains(t, withCause.Error(), "connection refused")
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("dial tcp: i/o timeout")
	err := NewConnectivityError("dynamodb", cause)

	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestNewCollectionNotFoundError(t *testing.T) {
	err := NewCollectionNotFoundError("knowledge_consolidator", []string{"kc_v1", "kc_v2"})

	require.Equal(t, ErrorTypeNotFound, err.Type)
	assert.Equal(t, http.StatusNotFound, err.HTTPStatus)
	assert.Contains(t, err.Message, "knowledge_consolidator")
	assert.Equal(t, []string{"kc_v1", "kc_v2"}, err.Details["available_collections"])
}

func TestNewCollectionNotFoundError_NoAlternatives(t *testing.T) {
	err := NewCollectionNotFoundError("missing", nil)
	assert.Nil(t, err.Details)
}

func TestNewComputationError(t *testing.T) {
	err := NewComputationError("layout", "radial angle is not finite")

	assert.Equal(t, ErrorTypeComputation, err.Type)
	assert.Equal(t, http.StatusUnprocessableEntity, err.HTTPStatus)
	assert.Contains(t, err.Message, "layout")
	assert.True(t, IsComputation(err))
}

func TestTypePredicates(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"not found", NewNotFoundError("record"), IsNotFound},
		{"validation", NewValidationError("bad input"), IsValidation},
		{"connectivity", NewConnectivityError("store", nil), IsConnectivity},
		{"computation", NewComputationError("scoring", "NaN"), IsComputation},
		{"unauthorized", NewUnauthorizedError(""), IsUnauthorized},
		{"internal", NewInternalError("boom"), IsInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))
			assert.False(t, tt.check(errors.New("plain")))
		})
	}
}

func TestTypePredicates_WrappedChain(t *testing.T) {
	inner := NewConnectivityError("dynamodb", errors.New("timeout"))
	wrapped := fmt.Errorf("fetch records: %w", inner)

	assert.True(t, IsConnectivity(wrapped))
	assert.Equal(t, inner, GetAppError(wrapped))
}

func TestWrap(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, "context"))
	})

	t.Run("app error keeps its type", func(t *testing.T) {
		err := Wrap(NewNotFoundError("collection"), "analysis pass")
		require.True(t, IsNotFound(err))
		assert.Contains(t, err.Error(), "analysis pass")
	})

	t.Run("plain error becomes internal", func(t *testing.T) {
		err := Wrap(errors.New("boom"), "analysis pass")
		require.True(t, IsInternal(err))
		assert.True(t, errors.Is(err, GetAppError(err).Cause))
	})
}

func TestBuilders(t *testing.T) {
	err := NewInternalError("scoring failed").
		WithCode("SCORE_001").
		WithTitle("Scoring Pass Failed").
		WithDetail("pair", "a-b")

	assert.Equal(t, "SCORE_001", err.Code)
	assert.Equal(t, "Scoring Pass Failed", err.Title)
	assert.Equal(t, "a-b", err.Details["pair"])
	assert.NotEmpty(t, err.StackTrace)
}
