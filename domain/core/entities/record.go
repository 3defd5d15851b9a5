package entities

import (
	"math"

	pkgerrors "consolidator-backend/pkg/errors"
)

// ConvergenceChain is a thematic grouping annotation carried by a record
type ConvergenceChain struct {
	Theme        string
	Participants []string
	Strength     float64
}

// Record is the main entity representing an analyzable knowledge unit.
// A record corresponds to one logical file; fragments of the same file
// fetched separately are merged into a single record.
type Record struct {
	// Private fields ensure encapsulation
	id                string
	fileName          string
	filePath          string
	categories        []string
	keywords          []string
	convergenceChains []ConvergenceChain
	relevanceScore    float64
	chunkText         string
	fragmentCount     int
}

// NewRecord creates a new record with validation
func NewRecord(id, fileName string) (*Record, error) {
	if id == "" {
		return nil, pkgerrors.NewValidationError("record ID cannot be empty")
	}

	return &Record{
		id:            id,
		fileName:      fileName,
		fragmentCount: 1,
	}, nil
}

// ID returns the record's unique identifier
func (r *Record) ID() string {
	return r.id
}

// FileName returns the owning file's name
func (r *Record) FileName() string {
	return r.fileName
}

// FilePath returns the owning file's path
func (r *Record) FilePath() string {
	return r.filePath
}

// SetFilePath sets the owning file's path
func (r *Record) SetFilePath(path string) {
	r.filePath = path
}

// ChunkText returns the record's text content
func (r *Record) ChunkText() string {
	return r.chunkText
}

// SetChunkText sets the record's text content
func (r *Record) SetChunkText(text string) {
	r.chunkText = text
}

// FragmentCount returns how many store fragments were merged into this record
func (r *Record) FragmentCount() int {
	return r.fragmentCount
}

// RelevanceScore returns the record's relevance score
func (r *Record) RelevanceScore() float64 {
	return r.relevanceScore
}

// SetRelevanceScore sets the relevance score, coercing non-finite or
// out-of-range values to zero
func (r *Record) SetRelevanceScore(score float64) {
	if math.IsNaN(score) || math.IsInf(score, 0) || score < 0 || score > 100 {
		r.relevanceScore = 0
		return
	}
	r.relevanceScore = score
}

// AddKeywords appends keywords, skipping duplicates while preserving order
func (r *Record) AddKeywords(keywords ...string) {
	seen := make(map[string]bool, len(r.keywords))
	for _, k := range r.keywords {
		seen[k] = true
	}
	for _, k := range keywords {
		if k == "" || seen[k] {
			continue
		}
		r.keywords = append(r.keywords, k)
		seen[k] = true
	}
}

// AddCategories appends categories, skipping duplicates while preserving order
func (r *Record) AddCategories(categories ...string) {
	seen := make(map[string]bool, len(r.categories))
	for _, c := range r.categories {
		seen[c] = true
	}
	for _, c := range categories {
		if c == "" || seen[c] {
			continue
		}
		r.categories = append(r.categories, c)
		seen[c] = true
	}
}

// AddConvergenceChains appends convergence annotations
func (r *Record) AddConvergenceChains(chains ...ConvergenceChain) {
	r.convergenceChains = append(r.convergenceChains, chains...)
}

// Keywords returns all keywords
func (r *Record) Keywords() []string {
	keywords := make([]string, len(r.keywords))
	copy(keywords, r.keywords)
	return keywords
}

// Categories returns all categories
func (r *Record) Categories() []string {
	categories := make([]string, len(r.categories))
	copy(categories, r.categories)
	return categories
}

// PrimaryCategory returns the first category, or "uncategorized" when none
func (r *Record) PrimaryCategory() string {
	if len(r.categories) == 0 {
		return "uncategorized"
	}
	return r.categories[0]
}

// ConvergenceChains returns all convergence annotations
func (r *Record) ConvergenceChains() []ConvergenceChain {
	chains := make([]ConvergenceChain, len(r.convergenceChains))
	copy(chains, r.convergenceChains)
	return chains
}

// MergeFragment folds another fragment of the same logical file into this
// record: categories and keywords are unioned, relevance keeps the maximum
// observed, convergence chains accumulate, and the fragment counter advances
func (r *Record) MergeFragment(other *Record) error {
	if other == nil {
		return pkgerrors.NewValidationError("cannot merge nil fragment")
	}
	if other.fileName != r.fileName {
		return pkgerrors.NewValidationError("cannot merge fragments of different files")
	}

	r.AddCategories(other.categories...)
	r.AddKeywords(other.keywords...)
	r.AddConvergenceChains(other.convergenceChains...)

	if other.relevanceScore > r.relevanceScore {
		r.relevanceScore = other.relevanceScore
	}
	if r.chunkText == "" {
		r.chunkText = other.chunkText
	}
	r.fragmentCount += other.fragmentCount

	return nil
}
