package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"consolidator-backend/domain/config"
	"consolidator-backend/domain/core/entities"
)

func TestLayout_GridForSmallSets(t *testing.T) {
	// ≤6 records across mixed categories still take the grid
	records := makeBatch(t, 5, "a", "b", "c")

	layout, err := NewDefaultLayoutGenerator(nil).Layout(records, nil)
	require.NoError(t, err)
	require.Len(t, layout.Nodes, 5)

	spacing := config.DefaultAnalysisConfig().GridSpacing
	for i := 0; i < len(layout.Nodes); i++ {
		for j := i + 1; j < len(layout.Nodes); j++ {
			distance := layout.Nodes[i].Position.DistanceTo(layout.Nodes[j].Position)
			assert.GreaterOrEqual(t, distance, spacing-1e-9,
				"grid nodes %d and %d too close", i, j)
		}
	}
}

func TestLayout_GridForHomogeneousSets(t *testing.T) {
	// 12 records all in one category: homogeneous, so grid applies
	records := makeBatch(t, 12, "tech")

	layout, err := NewDefaultLayoutGenerator(nil).Layout(records, nil)
	require.NoError(t, err)
	require.Len(t, layout.Nodes, 12)

	spacing := config.DefaultAnalysisConfig().GridSpacing
	for i := 0; i < len(layout.Nodes); i++ {
		for j := i + 1; j < len(layout.Nodes); j++ {
			distance := layout.Nodes[i].Position.DistanceTo(layout.Nodes[j].Position)
			assert.GreaterOrEqual(t, distance, spacing-1e-9)
		}
	}
}

func TestLayout_RadialForMixedSets(t *testing.T) {
	cfg := config.DefaultAnalysisConfig()
	records := makeBatch(t, 12, "a", "b", "c")

	layout, err := NewDefaultLayoutGenerator(cfg).Layout(records, nil)
	require.NoError(t, err)
	require.Len(t, layout.Nodes, 12)

	// Every node sits on one of the two radial rings around the center
	for _, node := range layout.Nodes {
		dx := node.X - cfg.CenterX
		dy := node.Y - cfg.CenterY
		radius := dx*dx + dy*dy
		inner := cfg.BaseRadius * cfg.BaseRadius
		outer := (cfg.BaseRadius + cfg.RadiusOffset) * (cfg.BaseRadius + cfg.RadiusOffset)
		assert.True(t,
			radius > inner-1e-6 && radius < outer+1e-6,
			"node %s off both rings", node.ID)
	}
}

func TestLayout_SingleRecordSectorAtBaseRadius(t *testing.T) {
	cfg := config.DefaultAnalysisConfig()

	// 7 categories, one with a single record, to leave the grid path
	records := makeBatch(t, 7, "a", "b", "c", "d", "e", "f", "g")

	layout, err := NewDefaultLayoutGenerator(cfg).Layout(records, nil)
	require.NoError(t, err)

	for _, node := range layout.Nodes {
		dx := node.X - cfg.CenterX
		dy := node.Y - cfg.CenterY
		assert.InDelta(t, cfg.BaseRadius*cfg.BaseRadius, dx*dx+dy*dy, 1e-6)
	}
}

func TestLayout_Deterministic(t *testing.T) {
	records := makeBatch(t, 20, "a", "b", "c", "d")

	lg := NewDefaultLayoutGenerator(nil)
	first, err := lg.Layout(records, nil)
	require.NoError(t, err)
	second, err := lg.Layout(records, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestLayout_Edges(t *testing.T) {
	records := makeBatch(t, 3, "tech")
	suggestions := []entities.ConnectionSuggestion{
		entities.NewConnectionSuggestion("rec-0", "rec-1", 0.8, 0.8,
			entities.ReasonMultiple, []string{"ai"}, []string{"tech"}, ""),
		entities.NewConnectionSuggestion("rec-1", "rec-2", 0.3, 0.3,
			entities.ReasonKeywords, []string{"ml"}, nil, ""),
	}

	layout, err := NewDefaultLayoutGenerator(nil).Layout(records, suggestions)
	require.NoError(t, err)
	require.Len(t, layout.Edges, 2)

	first := layout.Edges[0]
	assert.Equal(t, "auto-edge-0", first.ID)
	assert.Equal(t, "rec-0", first.Source)
	assert.Equal(t, "#f59e0b", first.Style.Color)
	assert.True(t, first.Animated, "confidence above 0.7 animates")

	second := layout.Edges[1]
	assert.Equal(t, "auto-edge-1", second.ID)
	assert.Equal(t, "#3b82f6", second.Style.Color)
	assert.False(t, second.Animated)
	assert.Less(t, second.Style.StrokeWidth, first.Style.StrokeWidth)
}

func TestLayout_SkipsInvalidSuggestions(t *testing.T) {
	records := makeBatch(t, 2, "tech")
	suggestions := []entities.ConnectionSuggestion{entities.InvalidSuggestion()}

	layout, err := NewDefaultLayoutGenerator(nil).Layout(records, suggestions)
	require.NoError(t, err)
	assert.Empty(t, layout.Edges)
}

func TestLayout_EmptyInput(t *testing.T) {
	layout, err := NewDefaultLayoutGenerator(nil).Layout(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, layout.Nodes)
	assert.Empty(t, layout.Edges)
}
