// Package diagram defines the graph structures exchanged with the canvas UI
// and the per-diagram-type styling policies used during generation.
package diagram

// Type selects the structural rules applied when generating a diagram.
type Type string

const (
	TypeFlowchart    Type = "flowchart"
	TypeContainer    Type = "container"
	TypeArchitecture Type = "architecture"
)

// Valid reports whether t is one of the known diagram types.
func (t Type) Valid() bool {
	switch t {
	case TypeFlowchart, TypeContainer, TypeArchitecture:
		return true
	}
	return false
}

// Edge kinds understood by the rendering layer.
const (
	EdgeStraight   = "straight"
	EdgeSmoothstep = "smoothstep"
	EdgeBezier     = "bezier"
)

// ValidEdgeType reports whether s names a known edge kind.
func ValidEdgeType(s string) bool {
	switch s {
	case EdgeStraight, EdgeSmoothstep, EdgeBezier:
		return true
	}
	return false
}

// NodeTypeCustom is the only node type the canvas renders; every node the
// pipeline emits is forced to it.
const NodeTypeCustom = "custom"

// Default color triple applied when neither the model nor a type style
// supplies one.
const (
	DefaultBackground = "#ffffff"
	DefaultBorder     = "#e5e7eb"
	DefaultText       = "#1f2937"
)

// Position is a node's canvas coordinate. Values are always finite.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NodeData carries the renderable content of a node.
type NodeData struct {
	Title           string `json:"title"`
	Content         string `json:"content"`
	BackgroundColor string `json:"backgroundColor"`
	BorderColor     string `json:"borderColor"`
	TextColor       string `json:"textColor"`
	IconPath        string `json:"iconPath,omitempty"`
}

// Node is a single component on the canvas.
type Node struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	Position Position `json:"position"`
	Data     NodeData `json:"data"`
}

// Edge connects two nodes by id.
type Edge struct {
	ID       string `json:"id"`
	Source   string `json:"source"`
	Target   string `json:"target"`
	Type     string `json:"type"`
	Label    string `json:"label,omitempty"`
	Animated bool   `json:"animated"`
}

// Graph is the complete diagram handed to the caller. The pipeline builds a
// fresh Graph per request and keeps no reference to it afterwards.
type Graph struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Nodes       []Node   `json:"nodes"`
	Edges       []Edge   `json:"edges"`
	Suggestions []string `json:"suggestions,omitempty"`
}
