package common

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPaginationParams_Defaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v2/collections", nil)

	params := ExtractPaginationParams(r)

	assert.Equal(t, 1, params.Page)
	assert.Equal(t, DefaultPageSize, params.PageSize)
}

func TestExtractPaginationParams_ClampsAndIgnoresMalformed(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v2/collections?page=3&page_size=500", nil)
	params := ExtractPaginationParams(r)
	assert.Equal(t, 3, params.Page)
	assert.Equal(t, MaxPageSize, params.PageSize)

	r = httptest.NewRequest("GET", "/api/v2/collections?page=zero&page_size=-4", nil)
	params = ExtractPaginationParams(r)
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, DefaultPageSize, params.PageSize)
}

func TestCalculateTotalPages(t *testing.T) {
	assert.Equal(t, 0, CalculateTotalPages(10, 0))
	assert.Equal(t, 0, CalculateTotalPages(0, 25))
	assert.Equal(t, 1, CalculateTotalPages(25, 25))
	assert.Equal(t, 2, CalculateTotalPages(26, 25))
}

func TestBuildPaginationMeta_Bounds(t *testing.T) {
	meta := BuildPaginationMeta(1, 25, 60)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasNext)
	assert.False(t, meta.HasPrev)

	meta = BuildPaginationMeta(3, 25, 60)
	assert.False(t, meta.HasNext)
	assert.True(t, meta.HasPrev)
}
