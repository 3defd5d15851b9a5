package common

import (
	"net/http"
	"strconv"
)

const (
	// DefaultPageSize is sized for the collection registry, which rarely
	// holds more than a few dozen entries
	DefaultPageSize = 25
	// MaxPageSize caps page_size so a listing request cannot ask for the
	// whole registry in one oversized page
	MaxPageSize = 100
)

// PaginationParams selects a page of the collection registry. Listings are
// always ordered by collection name, so there are no sort parameters.
type PaginationParams struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// DefaultPaginationParams returns the first page at the registry default size
func DefaultPaginationParams() PaginationParams {
	return PaginationParams{Page: 1, PageSize: DefaultPageSize}
}

// ExtractPaginationParams reads page and page_size query parameters,
// ignoring malformed or non-positive values and clamping to MaxPageSize
func ExtractPaginationParams(r *http.Request) PaginationParams {
	params := DefaultPaginationParams()

	if raw := r.URL.Query().Get("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil && page > 0 {
			params.Page = page
		}
	}

	if raw := r.URL.Query().Get("page_size"); raw != "" {
		if size, err := strconv.Atoi(raw); err == nil && size > 0 {
			if size > MaxPageSize {
				size = MaxPageSize
			}
			params.PageSize = size
		}
	}

	return params
}

// CalculateTotalPages returns how many pages a listing of total entries spans
func CalculateTotalPages(total, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// BuildPaginationMeta builds the pagination block of a listing response
func BuildPaginationMeta(page, pageSize, total int) *PaginationInfo {
	totalPages := CalculateTotalPages(total, pageSize)
	return &PaginationInfo{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
