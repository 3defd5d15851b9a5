package queries

import (
	"consolidator-backend/pkg/utils"
)

// AnalyzeGraphQuery requests a full analysis pass over one collection:
// fetch, extraction, convergence detection, scoring, ranking, and layout
type AnalyzeGraphQuery struct {
	Collection string `json:"collection" validate:"required"`
	Limit      int    `json:"limit,omitempty" validate:"gte=0"` // Optional, store maximum applies if 0
}

// Validate validates the query
func (q AnalyzeGraphQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// GraphData is the complete analysis result handed to the rendering layer
type GraphData struct {
	Nodes    []GraphNode      `json:"nodes"`
	Edges    []GraphEdge      `json:"edges"`
	Clusters []ClusterSummary `json:"clusters"`
	Stats    AnalysisStats    `json:"stats"`
}

// GraphNode is one positioned record
type GraphNode struct {
	ID             string   `json:"id"`
	FileName       string   `json:"file_name"`
	Position       Position `json:"position"`
	Categories     []string `json:"categories"`
	Keywords       []string `json:"keywords"`
	RelevanceScore float64  `json:"relevance_score"`
	FragmentCount  int      `json:"fragment_count"`
}

// Position is a 2D coordinate
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// GraphEdge is one rendered connection suggestion
type GraphEdge struct {
	ID                string   `json:"id"`
	Source            string   `json:"source"`
	Target            string   `json:"target"`
	Reason            string   `json:"reason"`
	Confidence        float64  `json:"confidence"`
	Strength          float64  `json:"strength"`
	Color             string   `json:"color"`
	StrokeWidth       float64  `json:"stroke_width"`
	Animated          bool     `json:"animated"`
	MatchedKeywords   []string `json:"matched_keywords,omitempty"`
	MatchedCategories []string `json:"matched_categories,omitempty"`
	Theme             string   `json:"theme,omitempty"`
}

// ClusterSummary is one theme-keyed convergence cluster
type ClusterSummary struct {
	Theme        string   `json:"theme"`
	Participants []string `json:"participants"`
	Count        int      `json:"count"`
	Strength     float64  `json:"strength"`
}

// AnalysisStats carries pass-level statistics
type AnalysisStats struct {
	RecordCount     int     `json:"record_count"`
	SuggestionCount int     `json:"suggestion_count"`
	ClusterCount    int     `json:"cluster_count"`
	Comparisons     int     `json:"comparisons"`
	BudgetExhausted bool    `json:"budget_exhausted"`
	Density         float64 `json:"density"`
	DurationMs      int64   `json:"duration_ms"`
}
