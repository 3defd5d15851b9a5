package config

import (
	"fmt"
	"time"
)

// AnalysisConfig holds all configurable business rules for the relation
// analysis and layout passes
type AnalysisConfig struct {
	// Scoring weights
	KeywordWeight         float64
	CategoryWeight        float64
	ConvergenceWeight     float64
	ScoreSimilarityWeight float64
	MaxScoreDiff          float64

	// Ranking limits
	MinConfidence      float64
	MaxSuggestions     int
	MaxComparisons     int
	AnimatedThreshold  float64
	MinStrength        float64
	MaxStrength        float64

	// Extraction limits
	MaxFieldLength       int
	MaxWalkDepth         int
	MaxFallbackKeywords  int

	// Convergence settings
	SeedOwnerFileName bool

	// Layout geometry
	GridThreshold   int
	GridSpacing     float64
	MinNodeDistance float64
	CenterX         float64
	CenterY         float64
	BaseRadius      float64
	RadiusOffset    float64

	// Fetch limits
	MaxFetchItems int
	FetchPageSize int

	// Cache settings
	CacheTTL time.Duration
}

// DefaultAnalysisConfig returns the default analysis configuration
func DefaultAnalysisConfig() *AnalysisConfig {
	return &AnalysisConfig{
		// Scoring weights
		KeywordWeight:         0.3,
		CategoryWeight:        0.2,
		ConvergenceWeight:     0.25,
		ScoreSimilarityWeight: 0.1,
		MaxScoreDiff:          10,

		// Ranking limits
		MinConfidence:     0.3,
		MaxSuggestions:    100,
		MaxComparisons:    50000,
		AnimatedThreshold: 0.7,
		MinStrength:       0.1,
		MaxStrength:       1.0,

		// Extraction limits
		MaxFieldLength:      100,
		MaxWalkDepth:        3,
		MaxFallbackKeywords: 5,

		// Convergence settings
		SeedOwnerFileName: true,

		// Layout geometry
		GridThreshold:   6,
		GridSpacing:     150,
		MinNodeDistance: 100,
		CenterX:         400,
		CenterY:         300,
		BaseRadius:      200,
		RadiusOffset:    30,

		// Fetch limits
		MaxFetchItems: 1000,
		FetchPageSize: 100,

		// Cache settings
		CacheTTL: 5 * time.Minute,
	}
}

// ProductionAnalysisConfig returns production-specific configuration
func ProductionAnalysisConfig() *AnalysisConfig {
	config := DefaultAnalysisConfig()

	// Tighter budgets for production traffic
	config.MaxComparisons = 20000
	config.MaxFetchItems = 500
	config.CacheTTL = 15 * time.Minute

	return config
}

// DevelopmentAnalysisConfig returns development-specific configuration
func DevelopmentAnalysisConfig() *AnalysisConfig {
	config := DefaultAnalysisConfig()

	// More permissive for local experimentation
	config.MinConfidence = 0.1
	config.MaxSuggestions = 500
	config.CacheTTL = 30 * time.Second

	return config
}

// LoadAnalysisConfig loads analysis configuration based on environment
func LoadAnalysisConfig(environment string) *AnalysisConfig {
	switch environment {
	case "production":
		return ProductionAnalysisConfig()
	case "development":
		return DevelopmentAnalysisConfig()
	default:
		return DefaultAnalysisConfig()
	}
}

// Validate checks if the configuration is valid
func (c *AnalysisConfig) Validate() error {
	weights := map[string]float64{
		"KeywordWeight":         c.KeywordWeight,
		"CategoryWeight":        c.CategoryWeight,
		"ConvergenceWeight":     c.ConvergenceWeight,
		"ScoreSimilarityWeight": c.ScoreSimilarityWeight,
	}
	for name, w := range weights {
		if w < 0 || w > 1 {
			return fmt.Errorf("%s must be in [0,1], got %f", name, w)
		}
	}
	if c.MinConfidence < 0 || c.MinConfidence > 1 {
		return fmt.Errorf("MinConfidence must be in [0,1], got %f", c.MinConfidence)
	}
	if c.MinStrength <= 0 || c.MinStrength > c.MaxStrength {
		return fmt.Errorf("MinStrength must be positive and not exceed MaxStrength")
	}
	if c.MaxSuggestions <= 0 {
		return fmt.Errorf("MaxSuggestions must be positive, got %d", c.MaxSuggestions)
	}
	if c.MaxComparisons <= 0 {
		return fmt.Errorf("MaxComparisons must be positive, got %d", c.MaxComparisons)
	}
	if c.GridThreshold <= 0 {
		return fmt.Errorf("GridThreshold must be positive, got %d", c.GridThreshold)
	}
	if c.GridSpacing < c.MinNodeDistance {
		return fmt.Errorf("GridSpacing %f below minimum node distance %f", c.GridSpacing, c.MinNodeDistance)
	}
	if c.MaxFetchItems <= 0 || c.FetchPageSize <= 0 {
		return fmt.Errorf("fetch limits must be positive")
	}
	if c.FetchPageSize > c.MaxFetchItems {
		return fmt.Errorf("FetchPageSize %d exceeds MaxFetchItems %d", c.FetchPageSize, c.MaxFetchItems)
	}
	return nil
}
