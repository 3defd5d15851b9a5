package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"consolidator-backend/domain/core/entities"
)

func TestScore_MultipleSignals(t *testing.T) {
	// Two shared keywords and one shared category with default weights:
	// 2*0.3 + 1*0.2 = 0.8, reason "multiple"
	a := makeRecord(t, "a", "a.md", []string{"ai", "ml", "extra"}, []string{"tech"})
	b := makeRecord(t, "b", "b.md", []string{"ai", "ml"}, []string{"tech", "other"})

	s := NewDefaultConnectionScorer(nil).Score(a, b)

	require.True(t, s.IsValid())
	assert.Equal(t, entities.ReasonMultiple, s.Reason())
	assert.InDelta(t, 0.8, s.Confidence(), 1e-9)
	assert.Equal(t, []string{"ai", "ml"}, s.MatchedKeywords())
	assert.Equal(t, []string{"tech"}, s.MatchedCategories())
}

func TestScore_SingleSignalReasons(t *testing.T) {
	scorer := NewDefaultConnectionScorer(nil)

	t.Run("keywords", func(t *testing.T) {
		a := makeRecord(t, "a", "a.md", []string{"ai"}, []string{"x"})
		b := makeRecord(t, "b", "b.md", []string{"ai"}, []string{"y"})
		s := scorer.Score(a, b)
		assert.Equal(t, entities.ReasonKeywords, s.Reason())
		assert.InDelta(t, 0.3, s.Confidence(), 1e-9)
	})

	t.Run("categories", func(t *testing.T) {
		a := makeRecord(t, "a", "a.md", []string{"x"}, []string{"tech"})
		b := makeRecord(t, "b", "b.md", []string{"y"}, []string{"tech"})
		s := scorer.Score(a, b)
		assert.Equal(t, entities.ReasonCategories, s.Reason())
		assert.InDelta(t, 0.2, s.Confidence(), 1e-9)
	})

	t.Run("convergence", func(t *testing.T) {
		a := makeRecord(t, "a", "a.md", nil, nil)
		b := makeRecord(t, "b", "b.md", nil, nil)
		a.AddConvergenceChains(entities.ConvergenceChain{Theme: "AI", Strength: 0.9})
		b.AddConvergenceChains(entities.ConvergenceChain{Theme: "ai", Strength: 0.5})
		s := scorer.Score(a, b)
		assert.Equal(t, entities.ReasonConvergence, s.Reason())
		assert.InDelta(t, 0.25, s.Confidence(), 1e-9)
		assert.Equal(t, "ai", s.Theme())
	})

	t.Run("similarity", func(t *testing.T) {
		a := makeRecord(t, "a", "a.md", nil, nil)
		b := makeRecord(t, "b", "b.md", nil, nil)
		a.SetRelevanceScore(80)
		b.SetRelevanceScore(85)
		s := scorer.Score(a, b)
		assert.Equal(t, entities.ReasonSimilarity, s.Reason())
		assert.InDelta(t, 0.1, s.Confidence(), 1e-9)
	})
}

func TestScore_NoSignals(t *testing.T) {
	a := makeRecord(t, "a", "a.md", []string{"one"}, []string{"x"})
	b := makeRecord(t, "b", "b.md", []string{"two"}, []string{"y"})

	s := NewDefaultConnectionScorer(nil).Score(a, b)
	assert.Equal(t, entities.ReasonInvalid, s.Reason())
	assert.False(t, s.IsValid())
}

func TestScore_Preconditions(t *testing.T) {
	scorer := NewDefaultConnectionScorer(nil)
	a := makeRecord(t, "a", "a.md", []string{"ai"}, nil)

	assert.False(t, scorer.Score(nil, a).IsValid())
	assert.False(t, scorer.Score(a, nil).IsValid())
	assert.False(t, scorer.Score(a, a).IsValid())
}

func TestScore_Bounds(t *testing.T) {
	// Many shared keywords: confidence clamps to 1, strength stays in range
	keywords := make([]string, 10)
	for i := range keywords {
		keywords[i] = fmt.Sprintf("kw-%d", i)
	}
	a := makeRecord(t, "a", "a.md", keywords, []string{"tech"})
	b := makeRecord(t, "b", "b.md", keywords, []string{"tech"})

	s := NewDefaultConnectionScorer(nil).Score(a, b)

	assert.LessOrEqual(t, s.Confidence(), 1.0)
	assert.GreaterOrEqual(t, s.Confidence(), 0.0)
	assert.GreaterOrEqual(t, s.Strength(), 0.1)
	assert.LessOrEqual(t, s.Strength(), 1.0)
}

func TestScore_KeywordMonotonicity(t *testing.T) {
	scorer := NewDefaultConnectionScorer(nil)

	previous := 0.0
	for shared := 0; shared <= 4; shared++ {
		keywords := make([]string, shared)
		for i := range keywords {
			keywords[i] = fmt.Sprintf("shared-%d", i)
		}
		a := makeRecord(t, "a", "a.md", append([]string{"only-a"}, keywords...), []string{"tech"})
		b := makeRecord(t, "b", "b.md", append([]string{"only-b"}, keywords...), []string{"tech"})

		confidence := scorer.Score(a, b).Confidence()
		assert.GreaterOrEqual(t, confidence, previous,
			"confidence must not decrease as keyword overlap grows")
		previous = confidence
	}
}

func TestScore_CaseNormalizedIntersection(t *testing.T) {
	a := makeRecord(t, "a", "a.md", []string{"Machine Learning"}, []string{"TECH"})
	b := makeRecord(t, "b", "b.md", []string{"machine learning"}, []string{"tech"})

	s := NewDefaultConnectionScorer(nil).Score(a, b)

	assert.Equal(t, entities.ReasonMultiple, s.Reason())
	assert.Equal(t, []string{"Machine Learning"}, s.MatchedKeywords())
	assert.Equal(t, []string{"TECH"}, s.MatchedCategories())
}

func TestScore_UnscoredRecordsGetNoSimilarityBonus(t *testing.T) {
	// Both records at the default 0 relevance: proximity alone proves nothing
	a := makeRecord(t, "a", "a.md", []string{"ai"}, nil)
	b := makeRecord(t, "b", "b.md", []string{"ai"}, nil)

	s := NewDefaultConnectionScorer(nil).Score(a, b)
	assert.InDelta(t, 0.3, s.Confidence(), 1e-9)
}
