package services

import (
	"sort"

	"go.uber.org/zap"

	"consolidator-backend/domain/config"
	"consolidator-backend/domain/core/entities"
)

// RankingResult carries the ranked suggestions plus pass statistics
type RankingResult struct {
	Suggestions     []entities.ConnectionSuggestion
	Comparisons     int
	BudgetExhausted bool
}

// SuggestionRanker runs the scorer over all record pairs under a hard
// comparison budget and returns the top suggestions
type SuggestionRanker interface {
	Rank(records []*entities.Record) RankingResult
}

// DefaultSuggestionRanker provides the default ranking implementation
type DefaultSuggestionRanker struct {
	config *config.AnalysisConfig
	scorer ConnectionScorer
	logger *zap.Logger
}

// NewDefaultSuggestionRanker creates a new suggestion ranker
func NewDefaultSuggestionRanker(cfg *config.AnalysisConfig, scorer ConnectionScorer, logger *zap.Logger) *DefaultSuggestionRanker {
	if cfg == nil {
		cfg = config.DefaultAnalysisConfig()
	}
	if scorer == nil {
		scorer = NewDefaultConnectionScorer(cfg)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &DefaultSuggestionRanker{
		config: cfg,
		scorer: scorer,
		logger: logger,
	}
}

// Rank evaluates unordered pairs (i<j) in input order until the comparison
// budget is exhausted, discards suggestions below MinConfidence, sorts
// descending by confidence with a stable first-seen tie-break, and truncates
// to MaxSuggestions. Empty input yields an empty result, not an error.
func (sr *DefaultSuggestionRanker) Rank(records []*entities.Record) RankingResult {
	result := RankingResult{
		Suggestions: make([]entities.ConnectionSuggestion, 0),
	}

	for i := 0; i < len(records) && !result.BudgetExhausted; i++ {
		for j := i + 1; j < len(records); j++ {
			if result.Comparisons >= sr.config.MaxComparisons {
				result.BudgetExhausted = true
				sr.logger.Warn("comparison budget exhausted, truncating pass",
					zap.Int("budget", sr.config.MaxComparisons),
					zap.Int("records", len(records)))
				break
			}
			result.Comparisons++

			suggestion := sr.scorer.Score(records[i], records[j])
			if !suggestion.IsValid() {
				continue
			}
			if suggestion.Confidence() < sr.config.MinConfidence {
				continue
			}
			result.Suggestions = append(result.Suggestions, suggestion)
		}
	}

	sort.SliceStable(result.Suggestions, func(i, j int) bool {
		return result.Suggestions[i].Confidence() > result.Suggestions[j].Confidence()
	})

	if len(result.Suggestions) > sr.config.MaxSuggestions {
		result.Suggestions = result.Suggestions[:sr.config.MaxSuggestions]
	}

	return result
}
