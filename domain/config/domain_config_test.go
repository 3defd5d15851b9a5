package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultAnalysisConfig(t *testing.T) {
	cfg := DefaultAnalysisConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 0.3, cfg.KeywordWeight)
	assert.Equal(t, 0.2, cfg.CategoryWeight)
	assert.Equal(t, 0.25, cfg.ConvergenceWeight)
	assert.Equal(t, 0.1, cfg.ScoreSimilarityWeight)
	assert.True(t, cfg.SeedOwnerFileName)
	assert.Equal(t, 6, cfg.GridThreshold)
	assert.GreaterOrEqual(t, cfg.GridSpacing, cfg.MinNodeDistance)
}

func TestLoadAnalysisConfig(t *testing.T) {
	prod := LoadAnalysisConfig("production")
	assert.Equal(t, 20000, prod.MaxComparisons)
	assert.Equal(t, 15*time.Minute, prod.CacheTTL)
	require.NoError(t, prod.Validate())

	dev := LoadAnalysisConfig("development")
	assert.Equal(t, 0.1, dev.MinConfidence)
	assert.Equal(t, 500, dev.MaxSuggestions)
	require.NoError(t, dev.Validate())

	def := LoadAnalysisConfig("staging")
	assert.Equal(t, DefaultAnalysisConfig(), def)
}

func TestAnalysisConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AnalysisConfig)
	}{
		{"negative weight", func(c *AnalysisConfig) { c.KeywordWeight = -0.1 }},
		{"weight above one", func(c *AnalysisConfig) { c.ConvergenceWeight = 1.5 }},
		{"bad min confidence", func(c *AnalysisConfig) { c.MinConfidence = 2 }},
		{"zero suggestions", func(c *AnalysisConfig) { c.MaxSuggestions = 0 }},
		{"zero comparisons", func(c *AnalysisConfig) { c.MaxComparisons = 0 }},
		{"strength inverted", func(c *AnalysisConfig) { c.MinStrength = 0.9; c.MaxStrength = 0.5 }},
		{"spacing below distance", func(c *AnalysisConfig) { c.GridSpacing = 50 }},
		{"page above max", func(c *AnalysisConfig) { c.FetchPageSize = 5000 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultAnalysisConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
