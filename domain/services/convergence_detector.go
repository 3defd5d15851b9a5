package services

import (
	"sort"
	"strings"

	"consolidator-backend/domain/config"
	"consolidator-backend/domain/core/entities"
)

// ConvergenceDetector groups convergence chain annotations by theme
// This is a domain service that encapsulates cluster aggregation
type ConvergenceDetector interface {
	// DetectConvergences aggregates all records' chains into theme clusters,
	// sorted descending by participant count
	DetectConvergences(records []*entities.Record) []*entities.ConvergenceCluster
}

// DefaultConvergenceDetector provides the default clustering implementation
type DefaultConvergenceDetector struct {
	config *config.AnalysisConfig
}

// NewDefaultConvergenceDetector creates a new convergence detector
func NewDefaultConvergenceDetector(cfg *config.AnalysisConfig) *DefaultConvergenceDetector {
	if cfg == nil {
		cfg = config.DefaultAnalysisConfig()
	}
	return &DefaultConvergenceDetector{config: cfg}
}

// DetectConvergences aggregates convergence chains across records.
// Themes are normalized (lower-cased, trimmed) as grouping keys; the
// participant set unions chain participants and, when SeedOwnerFileName is
// enabled, the owning record's file name. Zero clusters is a valid result.
func (cd *DefaultConvergenceDetector) DetectConvergences(records []*entities.Record) []*entities.ConvergenceCluster {
	clusters := make(map[string]*entities.ConvergenceCluster)
	order := make([]string, 0)

	for _, record := range records {
		if record == nil {
			continue
		}
		for _, chain := range record.ConvergenceChains() {
			theme := strings.ToLower(strings.TrimSpace(chain.Theme))
			if theme == "" {
				continue
			}

			cluster, exists := clusters[theme]
			if !exists {
				cluster = entities.NewConvergenceCluster(theme)
				clusters[theme] = cluster
				order = append(order, theme)
			}

			for _, participant := range chain.Participants {
				cluster.AddParticipant(participant)
			}
			if cd.config.SeedOwnerFileName {
				cluster.AddParticipant(record.FileName())
			}
			cluster.AddChainStrength(chain.Strength)
		}
	}

	// First-seen order, then a stable sort, gives the tie-break for equal
	// participant counts
	result := make([]*entities.ConvergenceCluster, 0, len(order))
	for _, theme := range order {
		result = append(result, clusters[theme])
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count() > result[j].Count()
	})

	return result
}
