package services

import (
	"math"
	"strings"

	"consolidator-backend/domain/config"
	"consolidator-backend/domain/core/entities"
)

// ConnectionScorer computes connection confidence for a record pair
// This is a domain service safe to call inside the ranker's hot loop:
// precondition violations yield the canonical invalid suggestion, never an
// error
type ConnectionScorer interface {
	Score(a, b *entities.Record) entities.ConnectionSuggestion
}

// DefaultConnectionScorer provides the weighted-signal scoring implementation
type DefaultConnectionScorer struct {
	config *config.AnalysisConfig
}

// NewDefaultConnectionScorer creates a new connection scorer
func NewDefaultConnectionScorer(cfg *config.AnalysisConfig) *DefaultConnectionScorer {
	if cfg == nil {
		cfg = config.DefaultAnalysisConfig()
	}
	return &DefaultConnectionScorer{config: cfg}
}

// Score computes a suggestion from four weighted signals: keyword overlap,
// category overlap, shared convergence theme, and relevance-score proximity.
// The score-proximity bonus only applies when both records carry a positive
// relevance score, so unscored records never look similar by default.
func (cs *DefaultConnectionScorer) Score(a, b *entities.Record) entities.ConnectionSuggestion {
	if a == nil || b == nil || a.ID() == "" || b.ID() == "" || a.ID() == b.ID() {
		return entities.InvalidSuggestion()
	}

	matchedKeywords := intersectNormalized(a.Keywords(), b.Keywords())
	matchedCategories := intersectNormalized(a.Categories(), b.Categories())
	theme := sharedTheme(a, b)

	scoreA := safeScore(a.RelevanceScore())
	scoreB := safeScore(b.RelevanceScore())
	scoresSimilar := scoreA > 0 && scoreB > 0 &&
		math.Abs(scoreA-scoreB) < cs.config.MaxScoreDiff

	confidence := float64(len(matchedKeywords))*cs.config.KeywordWeight +
		float64(len(matchedCategories))*cs.config.CategoryWeight
	if theme != "" {
		confidence += cs.config.ConvergenceWeight
	}
	if scoresSimilar {
		confidence += cs.config.ScoreSimilarityWeight
	}

	confidence = clamp(confidence, 0, 1)
	strength := clamp(confidence, cs.config.MinStrength, cs.config.MaxStrength)

	reason := cs.classify(len(matchedKeywords), len(matchedCategories), theme != "", scoresSimilar)
	if reason == entities.ReasonInvalid {
		return entities.InvalidSuggestion()
	}

	return entities.NewConnectionSuggestion(
		a.ID(), b.ID(),
		confidence, strength,
		reason,
		matchedKeywords, matchedCategories,
		theme,
	)
}

// classify assigns the reason in priority order: multiple contributing
// signals beat a single signal, which beats score similarity alone
func (cs *DefaultConnectionScorer) classify(keywords, categories int, theme, scoresSimilar bool) entities.ConnectionReason {
	signals := 0
	var single entities.ConnectionReason
	if keywords > 0 {
		signals++
		single = entities.ReasonKeywords
	}
	if categories > 0 {
		signals++
		single = entities.ReasonCategories
	}
	if theme {
		signals++
		single = entities.ReasonConvergence
	}

	switch {
	case signals > 1:
		return entities.ReasonMultiple
	case signals == 1:
		return single
	case scoresSimilar:
		return entities.ReasonSimilarity
	default:
		return entities.ReasonInvalid
	}
}

// sharedTheme returns the first convergence theme both records carry, if any
func sharedTheme(a, b *entities.Record) string {
	themesB := make(map[string]bool)
	for _, chain := range b.ConvergenceChains() {
		themesB[normalizeTerm(chain.Theme)] = true
	}
	for _, chain := range a.ConvergenceChains() {
		theme := normalizeTerm(chain.Theme)
		if theme != "" && themesB[theme] {
			return theme
		}
	}
	return ""
}

// intersectNormalized returns elements of a whose normalized form also
// appears in b, in a's order, deduplicated
func intersectNormalized(a, b []string) []string {
	setB := make(map[string]bool, len(b))
	for _, item := range b {
		setB[normalizeTerm(item)] = true
	}

	seen := make(map[string]bool, len(a))
	matched := make([]string, 0)
	for _, item := range a {
		norm := normalizeTerm(item)
		if norm == "" || seen[norm] || !setB[norm] {
			continue
		}
		seen[norm] = true
		matched = append(matched, item)
	}
	return matched
}

// normalizeTerm lower-cases and trims a term for comparison
func normalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// safeScore coerces non-finite relevance scores to 0
func safeScore(score float64) float64 {
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0
	}
	return score
}

// clamp bounds v to [lo, hi]
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
