package services

import (
	"strings"
	"unicode"
)

// TextAnalyzer provides text analysis capabilities for the domain
// This is a domain service that encapsulates text processing logic
type TextAnalyzer interface {
	// TokenizeWords breaks text into a set of unique lowercase words
	TokenizeWords(text string) map[string]bool

	// ExtractSignificantWords gets non-stop words above a length threshold
	ExtractSignificantWords(text string, minLength int) []string
}

// DefaultTextAnalyzer provides a default implementation of TextAnalyzer
type DefaultTextAnalyzer struct {
	stopWords map[string]bool
}

// NewDefaultTextAnalyzer creates a new text analyzer with common stop words
func NewDefaultTextAnalyzer() *DefaultTextAnalyzer {
	return &DefaultTextAnalyzer{
		stopWords: getDefaultStopWords(),
	}
}

// TokenizeWords breaks text into a set of unique lowercase words
func (ta *DefaultTextAnalyzer) TokenizeWords(text string) map[string]bool {
	words := make(map[string]bool)
	text = strings.ToLower(text)

	// Simple tokenization - split on non-letter characters
	var currentWord strings.Builder
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			currentWord.WriteRune(r)
		} else if currentWord.Len() > 0 {
			word := currentWord.String()
			if len(word) > 1 { // Skip single characters
				words[word] = true
			}
			currentWord.Reset()
		}
	}

	// Don't forget the last word
	if currentWord.Len() > 0 {
		word := currentWord.String()
		if len(word) > 1 {
			words[word] = true
		}
	}

	return words
}

// ExtractSignificantWords gets non-stop words above a length threshold
func (ta *DefaultTextAnalyzer) ExtractSignificantWords(text string, minLength int) []string {
	words := ta.TokenizeWords(text)
	significant := make([]string, 0)

	for word := range words {
		if len(word) >= minLength && !ta.stopWords[word] {
			significant = append(significant, word)
		}
	}

	return significant
}

// getDefaultStopWords returns common English stop words
func getDefaultStopWords() map[string]bool {
	words := []string{
		"the", "a", "an", "and", "or", "but", "in", "on", "at", "to",
		"for", "of", "with", "is", "are", "was", "were", "be", "been",
		"being", "have", "has", "had", "do", "does", "did", "will",
		"would", "could", "should", "this", "that", "these", "those",
		"it", "its", "as", "by", "from", "not", "no", "so", "than",
		"then", "there", "their", "they", "them", "we", "you", "your",
	}

	stopWords := make(map[string]bool, len(words))
	for _, w := range words {
		stopWords[w] = true
	}
	return stopWords
}
