package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"consolidator-backend/domain/config"
	"consolidator-backend/domain/core/entities"
)

func TestDetectConvergences_GroupsByNormalizedTheme(t *testing.T) {
	a := makeRecord(t, "a", "a.md", nil, nil)
	a.AddConvergenceChains(entities.ConvergenceChain{
		Theme:        "Machine Learning",
		Participants: []string{"x.md"},
		Strength:     0.8,
	})

	b := makeRecord(t, "b", "b.md", nil, nil)
	b.AddConvergenceChains(entities.ConvergenceChain{
		Theme:        "  machine learning ",
		Participants: []string{"y.md"},
		Strength:     0.4,
	})

	cd := NewDefaultConvergenceDetector(nil)
	clusters := cd.DetectConvergences([]*entities.Record{a, b})

	require.Len(t, clusters, 1)
	cluster := clusters[0]
	assert.Equal(t, "machine learning", cluster.Theme())
	assert.ElementsMatch(t, []string{"x.md", "y.md", "a.md", "b.md"}, cluster.Participants())
	assert.InDelta(t, 0.6, cluster.Strength(), 1e-9)
}

func TestDetectConvergences_SortedByParticipantCount(t *testing.T) {
	a := makeRecord(t, "a", "a.md", nil, nil)
	a.AddConvergenceChains(
		entities.ConvergenceChain{Theme: "small", Strength: 0.5},
		entities.ConvergenceChain{Theme: "big", Participants: []string{"p1", "p2", "p3"}, Strength: 0.5},
	)

	cd := NewDefaultConvergenceDetector(nil)
	clusters := cd.DetectConvergences([]*entities.Record{a})

	require.Len(t, clusters, 2)
	assert.Equal(t, "big", clusters[0].Theme())
	assert.Equal(t, "small", clusters[1].Theme())
	for i := 1; i < len(clusters); i++ {
		assert.GreaterOrEqual(t, clusters[i-1].Count(), clusters[i].Count())
	}
}

func TestDetectConvergences_TieBreakFirstSeen(t *testing.T) {
	a := makeRecord(t, "a", "a.md", nil, nil)
	a.AddConvergenceChains(
		entities.ConvergenceChain{Theme: "first", Strength: 0.5},
		entities.ConvergenceChain{Theme: "second", Strength: 0.5},
	)

	cd := NewDefaultConvergenceDetector(nil)
	clusters := cd.DetectConvergences([]*entities.Record{a})

	require.Len(t, clusters, 2)
	assert.Equal(t, "first", clusters[0].Theme())
	assert.Equal(t, "second", clusters[1].Theme())
}

func TestDetectConvergences_OnlyContributingRecordsCount(t *testing.T) {
	// A carries no chains, B carries one: a single cluster from B alone
	a := makeRecord(t, "a", "a.md", nil, nil)
	b := makeRecord(t, "b", "b.md", nil, nil)
	b.AddConvergenceChains(entities.ConvergenceChain{Theme: "ai", Strength: 0.9})

	cd := NewDefaultConvergenceDetector(nil)
	clusters := cd.DetectConvergences([]*entities.Record{a, b})

	require.Len(t, clusters, 1)
	assert.Equal(t, 1, clusters[0].Count())
	assert.Equal(t, []string{"b.md"}, clusters[0].Participants())
}

func TestDetectConvergences_OwnerSeedingConfigurable(t *testing.T) {
	cfg := config.DefaultAnalysisConfig()
	cfg.SeedOwnerFileName = false

	b := makeRecord(t, "b", "b.md", nil, nil)
	b.AddConvergenceChains(entities.ConvergenceChain{Theme: "ai", Participants: []string{"p1"}, Strength: 0.9})

	cd := NewDefaultConvergenceDetector(cfg)
	clusters := cd.DetectConvergences([]*entities.Record{b})

	require.Len(t, clusters, 1)
	assert.Equal(t, []string{"p1"}, clusters[0].Participants())
}

func TestDetectConvergences_EmptyInput(t *testing.T) {
	cd := NewDefaultConvergenceDetector(nil)

	assert.Empty(t, cd.DetectConvergences(nil))
	assert.Empty(t, cd.DetectConvergences([]*entities.Record{}))

	noChains := makeRecord(t, "a", "a.md", []string{"kw"}, nil)
	assert.Empty(t, cd.DetectConvergences([]*entities.Record{noChains}))
}
