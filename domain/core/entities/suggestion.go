package entities

// ConnectionReason classifies why two records were connected
type ConnectionReason string

const (
	ReasonKeywords    ConnectionReason = "keywords"
	ReasonCategories  ConnectionReason = "categories"
	ReasonConvergence ConnectionReason = "convergence"
	ReasonMultiple    ConnectionReason = "multiple"
	ReasonSimilarity  ConnectionReason = "similarity"
	ReasonInvalid     ConnectionReason = "invalid"
)

// ConnectionSuggestion is an immutable scored pairing of two records.
// Suggestions are rebuilt wholesale on every analysis pass, never mutated.
type ConnectionSuggestion struct {
	source            string
	target            string
	confidence        float64
	strength          float64
	reason            ConnectionReason
	matchedKeywords   []string
	matchedCategories []string
	theme             string
}

// NewConnectionSuggestion creates a suggestion between two distinct records
func NewConnectionSuggestion(
	source, target string,
	confidence, strength float64,
	reason ConnectionReason,
	matchedKeywords, matchedCategories []string,
	theme string,
) ConnectionSuggestion {
	return ConnectionSuggestion{
		source:            source,
		target:            target,
		confidence:        confidence,
		strength:          strength,
		reason:            reason,
		matchedKeywords:   matchedKeywords,
		matchedCategories: matchedCategories,
		theme:             theme,
	}
}

// InvalidSuggestion is the canonical result for a scoring precondition
// violation: zero confidence, minimum strength, no matches
func InvalidSuggestion() ConnectionSuggestion {
	return ConnectionSuggestion{
		confidence: 0,
		strength:   0.1,
		reason:     ReasonInvalid,
	}
}

// Source returns the source record ID
func (s ConnectionSuggestion) Source() string {
	return s.source
}

// Target returns the target record ID
func (s ConnectionSuggestion) Target() string {
	return s.target
}

// Confidence returns the connection confidence in [0,1]
func (s ConnectionSuggestion) Confidence() float64 {
	return s.confidence
}

// Strength returns the visual edge strength in [0.1,1.0]
func (s ConnectionSuggestion) Strength() float64 {
	return s.strength
}

// Reason returns the dominant connection signal
func (s ConnectionSuggestion) Reason() ConnectionReason {
	return s.reason
}

// MatchedKeywords returns the keywords both records share
func (s ConnectionSuggestion) MatchedKeywords() []string {
	keywords := make([]string, len(s.matchedKeywords))
	copy(keywords, s.matchedKeywords)
	return keywords
}

// MatchedCategories returns the categories both records share
func (s ConnectionSuggestion) MatchedCategories() []string {
	categories := make([]string, len(s.matchedCategories))
	copy(categories, s.matchedCategories)
	return categories
}

// Theme returns the shared convergence theme, if any
func (s ConnectionSuggestion) Theme() string {
	return s.theme
}

// IsValid reports whether the suggestion connects two distinct records
func (s ConnectionSuggestion) IsValid() bool {
	return s.reason != ReasonInvalid && s.source != "" && s.target != "" && s.source != s.target
}
