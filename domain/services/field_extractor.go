package services

import (
	"math"

	"go.uber.org/zap"

	"consolidator-backend/domain/config"
	"consolidator-backend/domain/core/entities"
)

// fallbackVocabulary is the fixed set of domain-significant terms scanned
// when a record carries no explicit keyword metadata. Order matters: matches
// are returned in vocabulary order so the fallback stays deterministic.
var fallbackVocabulary = []string{
	"decision", "insight", "transformation", "strategy", "analysis",
	"breakthrough", "learning", "framework", "pattern", "synthesis",
}

// FieldExtractor pulls typed fields out of a loosely-typed record payload.
// Every accessor is defensive: wrong shapes degrade to empty defaults with a
// logged warning, never to an error or synthetic content.
type FieldExtractor interface {
	ExtractFileName(payload map[string]interface{}) string
	ExtractFilePath(payload map[string]interface{}) string
	ExtractChunkText(payload map[string]interface{}) string
	ExtractRelevanceScore(payload map[string]interface{}) float64
	ExtractKeywords(payload map[string]interface{}, chunkText string) []string
	ExtractCategories(payload map[string]interface{}) []string
	ExtractConvergence(payload map[string]interface{}) []entities.ConvergenceChain
}

// DefaultFieldExtractor provides the default payload extraction rules
type DefaultFieldExtractor struct {
	config   *config.AnalysisConfig
	analyzer TextAnalyzer
	logger   *zap.Logger
}

// NewDefaultFieldExtractor creates a new field extractor
func NewDefaultFieldExtractor(cfg *config.AnalysisConfig, analyzer TextAnalyzer, logger *zap.Logger) *DefaultFieldExtractor {
	if cfg == nil {
		cfg = config.DefaultAnalysisConfig()
	}
	if analyzer == nil {
		analyzer = NewDefaultTextAnalyzer()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &DefaultFieldExtractor{
		config:   cfg,
		analyzer: analyzer,
		logger:   logger,
	}
}

// ExtractFileName returns the owning file's name, honoring the store's
// historical field aliases
func (fe *DefaultFieldExtractor) ExtractFileName(payload map[string]interface{}) string {
	for _, field := range []string{"fileName", "sourceFile", "file"} {
		if name := fe.stringField(payload, field); name != "" {
			return name
		}
	}
	return ""
}

// ExtractFilePath returns the owning file's path
func (fe *DefaultFieldExtractor) ExtractFilePath(payload map[string]interface{}) string {
	return fe.stringField(payload, "filePath")
}

// ExtractChunkText returns the record's text content
func (fe *DefaultFieldExtractor) ExtractChunkText(payload map[string]interface{}) string {
	if text, ok := payload["chunkText"].(string); ok {
		return text
	}
	return ""
}

// ExtractRelevanceScore returns the relevance score, defaulting to 0 for
// absent, malformed, non-finite, or out-of-range values
func (fe *DefaultFieldExtractor) ExtractRelevanceScore(payload map[string]interface{}) float64 {
	raw, ok := payload["relevanceScore"]
	if !ok {
		return 0
	}

	score, ok := toFloat(raw)
	if !ok {
		fe.logger.Warn("relevanceScore has unexpected type, defaulting to 0",
			zap.Any("value", raw))
		return 0
	}
	if math.IsNaN(score) || math.IsInf(score, 0) || score < 0 || score > 100 {
		fe.logger.Warn("relevanceScore out of range, defaulting to 0",
			zap.Float64("value", score))
		return 0
	}
	return score
}

// ExtractKeywords returns the record's deduplicated keywords. Explicit
// keyword metadata (top-level or nested under metadata) wins; when absent,
// the fallback vocabulary scan over the chunk text applies.
func (fe *DefaultFieldExtractor) ExtractKeywords(payload map[string]interface{}, chunkText string) []string {
	keywords := fe.stringList(payload["keywords"], fe.config.MaxWalkDepth)
	if len(keywords) == 0 {
		if metadata, ok := payload["metadata"].(map[string]interface{}); ok {
			keywords = fe.stringList(metadata["keywords"], fe.config.MaxWalkDepth-1)
		}
	}
	if len(keywords) > 0 {
		return dedupeStrings(keywords)
	}

	return fe.fallbackKeywords(chunkText)
}

// ExtractCategories returns the record's categories in payload order
func (fe *DefaultFieldExtractor) ExtractCategories(payload map[string]interface{}) []string {
	return dedupeStrings(fe.stringList(payload["categories"], fe.config.MaxWalkDepth))
}

// ExtractConvergence returns the record's convergence chain annotations
func (fe *DefaultFieldExtractor) ExtractConvergence(payload map[string]interface{}) []entities.ConvergenceChain {
	raw, ok := payload["convergenceChains"].([]interface{})
	if !ok {
		if _, present := payload["convergenceChains"]; present {
			fe.logger.Warn("convergenceChains is not an array, skipping")
		}
		return nil
	}

	chains := make([]entities.ConvergenceChain, 0, len(raw))
	for _, item := range raw {
		entry, ok := item.(map[string]interface{})
		if !ok {
			fe.logger.Warn("convergence chain entry is not an object, skipping")
			continue
		}

		theme, _ := entry["theme"].(string)
		if theme == "" {
			continue
		}

		strength := 0.0
		for _, field := range []string{"strength", "convergenceScore"} {
			if v, ok := toFloat(entry[field]); ok {
				strength = v
				break
			}
		}
		if math.IsNaN(strength) || math.IsInf(strength, 0) || strength < 0 || strength > 1 {
			strength = 0
		}

		chains = append(chains, entities.ConvergenceChain{
			Theme:        theme,
			Participants: fe.stringList(entry["participants"], fe.config.MaxWalkDepth-1),
			Strength:     strength,
		})
	}
	return chains
}

// fallbackKeywords scans text for the fixed domain vocabulary, returning at
// most MaxFallbackKeywords matches in vocabulary order
func (fe *DefaultFieldExtractor) fallbackKeywords(text string) []string {
	if text == "" {
		return nil
	}

	words := fe.analyzer.TokenizeWords(text)
	matches := make([]string, 0, fe.config.MaxFallbackKeywords)
	for _, term := range fallbackVocabulary {
		if words[term] {
			matches = append(matches, term)
			if len(matches) >= fe.config.MaxFallbackKeywords {
				break
			}
		}
	}
	return matches
}

// stringField reads a top-level string field, dropping over-length values
func (fe *DefaultFieldExtractor) stringField(payload map[string]interface{}, field string) string {
	value, ok := payload[field].(string)
	if !ok {
		return ""
	}
	if len(value) > fe.config.MaxFieldLength {
		fe.logger.Warn("field exceeds max length, dropping",
			zap.String("field", field),
			zap.Int("length", len(value)))
		return ""
	}
	return value
}

// stringList flattens a loosely-typed value into a string slice. Non-array
// input yields an empty result; nested arrays are walked down to the given
// depth; over-length strings are dropped.
func (fe *DefaultFieldExtractor) stringList(value interface{}, depth int) []string {
	items, ok := value.([]interface{})
	if !ok {
		return nil
	}

	result := make([]string, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			if v == "" || len(v) > fe.config.MaxFieldLength {
				continue
			}
			result = append(result, v)
		case []interface{}:
			if depth > 0 {
				result = append(result, fe.stringList(v, depth-1)...)
			}
		}
	}
	return result
}

// dedupeStrings removes duplicates while preserving first-seen order
func dedupeStrings(items []string) []string {
	seen := make(map[string]bool, len(items))
	result := make([]string, 0, len(items))
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		result = append(result, item)
	}
	return result
}

// toFloat coerces JSON-decoded numeric types to float64
func toFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}
