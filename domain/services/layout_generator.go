package services

import (
	"fmt"
	"math"

	"consolidator-backend/domain/config"
	"consolidator-backend/domain/core/entities"
	"consolidator-backend/domain/core/valueobjects"
	pkgerrors "consolidator-backend/pkg/errors"
)

// LayoutNode is a positioned record ready for rendering
type LayoutNode struct {
	ID       string                `json:"id"`
	Position valueobjects.Position `json:"-"`
	X        float64               `json:"x"`
	Y        float64               `json:"y"`
	Record   *entities.Record      `json:"-"`
}

// EdgeStyle carries the visual attributes derived from a suggestion
type EdgeStyle struct {
	Color       string  `json:"color"`
	StrokeWidth float64 `json:"strokeWidth"`
}

// LayoutEdge is a rendered connection suggestion
type LayoutEdge struct {
	ID         string                        `json:"id"`
	Source     string                        `json:"source"`
	Target     string                        `json:"target"`
	Style      EdgeStyle                     `json:"style"`
	Animated   bool                          `json:"animated"`
	Suggestion entities.ConnectionSuggestion `json:"-"`
}

// GraphLayout is the complete deterministic layout of one analysis pass
type GraphLayout struct {
	Nodes []LayoutNode `json:"nodes"`
	Edges []LayoutEdge `json:"edges"`
}

// reasonColors maps each connection reason to its rendering color
var reasonColors = map[entities.ConnectionReason]string{
	entities.ReasonKeywords:    "#3b82f6",
	entities.ReasonCategories:  "#10b981",
	entities.ReasonConvergence: "#8b5cf6",
	entities.ReasonMultiple:    "#f59e0b",
	entities.ReasonSimilarity:  "#6b7280",
}

// LayoutGenerator turns a record set and its suggestions into 2D positions
// This is a domain service; both strategies are deterministic for a given
// input ordering
type LayoutGenerator interface {
	Layout(records []*entities.Record, suggestions []entities.ConnectionSuggestion) (GraphLayout, error)
}

// DefaultLayoutGenerator provides the grid and categorical radial strategies
type DefaultLayoutGenerator struct {
	config *config.AnalysisConfig
}

// NewDefaultLayoutGenerator creates a new layout generator
func NewDefaultLayoutGenerator(cfg *config.AnalysisConfig) *DefaultLayoutGenerator {
	if cfg == nil {
		cfg = config.DefaultAnalysisConfig()
	}
	return &DefaultLayoutGenerator{config: cfg}
}

// Layout places records on a grid when the set is small or homogeneous,
// otherwise on categorical radial sectors. A position that cannot be
// computed finitely escalates as a computation error.
func (lg *DefaultLayoutGenerator) Layout(records []*entities.Record, suggestions []entities.ConnectionSuggestion) (GraphLayout, error) {
	layout := GraphLayout{
		Nodes: make([]LayoutNode, 0, len(records)),
		Edges: make([]LayoutEdge, 0, len(suggestions)),
	}

	var err error
	if len(records) <= lg.config.GridThreshold || lg.homogeneous(records) {
		layout.Nodes, err = lg.gridLayout(records)
	} else {
		layout.Nodes, err = lg.radialLayout(records)
	}
	if err != nil {
		return GraphLayout{}, err
	}

	layout.Edges = lg.buildEdges(suggestions)
	return layout, nil
}

// homogeneous reports whether every record shares one primary category
func (lg *DefaultLayoutGenerator) homogeneous(records []*entities.Record) bool {
	if len(records) == 0 {
		return true
	}
	first := records[0].PrimaryCategory()
	for _, r := range records[1:] {
		if r.PrimaryCategory() != first {
			return false
		}
	}
	return true
}

// gridLayout places records on a centered square grid with fixed spacing
func (lg *DefaultLayoutGenerator) gridLayout(records []*entities.Record) ([]LayoutNode, error) {
	n := len(records)
	if n == 0 {
		return []LayoutNode{}, nil
	}

	cols := int(math.Ceil(math.Sqrt(float64(n))))
	rows := int(math.Ceil(float64(n) / float64(cols)))
	spacing := lg.config.GridSpacing

	originX := lg.config.CenterX - float64(cols)*spacing/2
	originY := lg.config.CenterY - float64(rows)*spacing/2

	nodes := make([]LayoutNode, 0, n)
	for i, record := range records {
		col := i % cols
		row := i / cols

		node, err := lg.buildNode(record, originX+float64(col)*spacing, originY+float64(row)*spacing)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// radialLayout partitions records by primary category into angular sectors
func (lg *DefaultLayoutGenerator) radialLayout(records []*entities.Record) ([]LayoutNode, error) {
	// Partition preserving first-seen category order and record order
	groups := make(map[string][]*entities.Record)
	categoryOrder := make([]string, 0)
	for _, record := range records {
		category := record.PrimaryCategory()
		if _, seen := groups[category]; !seen {
			categoryOrder = append(categoryOrder, category)
		}
		groups[category] = append(groups[category], record)
	}

	sector := 2 * math.Pi / float64(len(categoryOrder))
	nodes := make([]LayoutNode, 0, len(records))

	for k, category := range categoryOrder {
		group := groups[category]
		centerAngle := float64(k)*sector + sector/2

		if len(group) == 1 {
			node, err := lg.buildNode(group[0],
				lg.config.CenterX+math.Cos(centerAngle)*lg.config.BaseRadius,
				lg.config.CenterY+math.Sin(centerAngle)*lg.config.BaseRadius)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)
			continue
		}

		arc := math.Min(math.Pi/2, sector*0.8)
		step := arc / float64(len(group)-1)
		startAngle := centerAngle - arc/2

		for i, record := range group {
			angle := startAngle + float64(i)*step
			radius := lg.config.BaseRadius
			if i%2 == 1 {
				radius += lg.config.RadiusOffset
			}

			node, err := lg.buildNode(record,
				lg.config.CenterX+math.Cos(angle)*radius,
				lg.config.CenterY+math.Sin(angle)*radius)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)
		}
	}
	return nodes, nil
}

// buildNode validates coordinates through the position value object
func (lg *DefaultLayoutGenerator) buildNode(record *entities.Record, x, y float64) (LayoutNode, error) {
	position, err := valueobjects.NewPosition(x, y)
	if err != nil {
		return LayoutNode{}, pkgerrors.NewComputationError("layout",
			fmt.Sprintf("no safe position computable for record %s", record.ID())).
			WithCause(err)
	}

	return LayoutNode{
		ID:       record.ID(),
		Position: position,
		X:        position.X(),
		Y:        position.Y(),
		Record:   record,
	}, nil
}

// buildEdges renders the suggestion list as a parallel edge list
func (lg *DefaultLayoutGenerator) buildEdges(suggestions []entities.ConnectionSuggestion) []LayoutEdge {
	edges := make([]LayoutEdge, 0, len(suggestions))
	for i, suggestion := range suggestions {
		if !suggestion.IsValid() {
			continue
		}

		color, ok := reasonColors[suggestion.Reason()]
		if !ok {
			color = reasonColors[entities.ReasonSimilarity]
		}

		edges = append(edges, LayoutEdge{
			ID:     fmt.Sprintf("auto-edge-%d", i),
			Source: suggestion.Source(),
			Target: suggestion.Target(),
			Style: EdgeStyle{
				Color:       color,
				StrokeWidth: 1 + suggestion.Strength()*3,
			},
			Animated:   suggestion.Confidence() > lg.config.AnimatedThreshold,
			Suggestion: suggestion,
		})
	}
	return edges
}
