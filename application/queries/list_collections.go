package queries

import (
	"consolidator-backend/pkg/utils"
)

// ListCollectionsQuery lists the collections registered in the record store
type ListCollectionsQuery struct {
	Page     int `json:"page" validate:"gte=0"`
	PageSize int `json:"page_size" validate:"gte=0,lte=100"`
}

// Validate validates the query
func (q ListCollectionsQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// CollectionInfo describes one registered collection
type CollectionInfo struct {
	Name string `json:"name"`
}

// ListCollectionsResult is the paginated collection listing
type ListCollectionsResult struct {
	Collections []CollectionInfo `json:"collections"`
	Total       int              `json:"total"`
	Page        int              `json:"page"`
	PageSize    int              `json:"page_size"`
	TotalPages  int              `json:"total_pages"`
}
