package queries

import (
	"consolidator-backend/pkg/utils"
)

// AnalyzeClustersQuery requests only the convergence clustering stage over
// one collection, without scoring or layout
type AnalyzeClustersQuery struct {
	Collection string `json:"collection" validate:"required"`
	Limit      int    `json:"limit,omitempty" validate:"gte=0"`
}

// Validate validates the query
func (q AnalyzeClustersQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// ClustersResult is the clustering-only result
type ClustersResult struct {
	Collection  string           `json:"collection"`
	RecordCount int              `json:"record_count"`
	Clusters    []ClusterSummary `json:"clusters"`
}
