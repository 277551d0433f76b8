package generator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"ai_diagram_studio/diagram"
)

// Defaults steer how missing fields are filled during normalization. The
// façade threads the diagram-type style through here; bare Normalize uses
// the global defaults.
type Defaults struct {
	Background string
	Border     string
	Text       string
	Animated   bool
}

// BaseDefaults are the fills applied when no type style is threaded through.
func BaseDefaults() Defaults {
	return Defaults{
		Background: diagram.DefaultBackground,
		Border:     diagram.DefaultBorder,
		Text:       diagram.DefaultText,
		Animated:   false,
	}
}

// Normalize turns raw model output into a valid graph using the global
// defaults. It never fails: unparseable input yields the fallback diagram.
func Normalize(raw, description string) diagram.Graph {
	return NormalizeWith(raw, description, BaseDefaults())
}

// NormalizeWith is Normalize with explicit fill-in defaults. Whatever the
// model returned, the result satisfies the graph schema: unique ids, finite
// positions, complete node data, known edge kinds.
func NormalizeWith(raw, description string, d Defaults) diagram.Graph {
	obj, ok := parseObject(raw)
	if !ok {
		return FallbackGraph(description)
	}

	graph := diagram.Graph{
		Title:       strOr(getStr(obj, "title"), "Generated Diagram"),
		Description: strOr(getStr(obj, "description"), description),
		Nodes:       []diagram.Node{},
		Edges:       []diagram.Edge{},
	}

	seenNodes := make(map[string]bool)
	for i, el := range getSlice(obj, "nodes") {
		m, _ := el.(map[string]any)
		graph.Nodes = append(graph.Nodes, buildNode(m, i, seenNodes, d))
	}

	seenEdges := make(map[string]bool)
	for i, el := range getSlice(obj, "edges") {
		m, _ := el.(map[string]any)
		graph.Edges = append(graph.Edges, buildEdge(m, i, seenEdges, d))
	}

	for _, el := range getSlice(obj, "suggestions") {
		if s, ok := el.(string); ok && strings.TrimSpace(s) != "" {
			graph.Suggestions = append(graph.Suggestions, strings.TrimSpace(s))
		}
	}

	return graph
}

// buildNode rebuilds one canonical node from whatever the model emitted.
// Every field has a deterministic default, so reconstruction cannot fail.
func buildNode(m map[string]any, i int, seen map[string]bool, d Defaults) diagram.Node {
	id := getStr(m, "id")
	if id == "" || seen[id] {
		id = freshID("node")
	}
	seen[id] = true

	data := getMap(m, "data")

	title := firstStr(getStr(data, "title"), getStr(data, "label"), getStr(m, "title"), getStr(m, "label"))
	if title == "" {
		title = fmt.Sprintf("Component %d", i+1)
	}
	content := firstStr(getStr(data, "content"), getStr(data, "description"), getStr(m, "content"), getStr(m, "description"))
	if content == "" {
		content = "Component description"
	}

	return diagram.Node{
		ID:       id,
		Type:     diagram.NodeTypeCustom,
		Position: nodePosition(m, i),
		Data: diagram.NodeData{
			Title:           title,
			Content:         content,
			BackgroundColor: strOr(getStr(data, "backgroundColor"), d.Background),
			BorderColor:     strOr(getStr(data, "borderColor"), d.Border),
			TextColor:       strOr(getStr(data, "textColor"), d.Text),
			IconPath:        iconPath(m, data),
		},
	}
}

func buildEdge(m map[string]any, i int, seen map[string]bool, d Defaults) diagram.Edge {
	id := getStr(m, "id")
	if id == "" {
		id = fmt.Sprintf("edge-%d", i)
	}
	if seen[id] {
		id = freshID("edge")
	}
	seen[id] = true

	etype := getStr(m, "type")
	if !diagram.ValidEdgeType(etype) {
		etype = diagram.EdgeSmoothstep
	}

	return diagram.Edge{
		ID: id,
		// source/target pass through verbatim; dangling references are
		// reported by inspect, not repaired here.
		Source:   getStr(m, "source"),
		Target:   getStr(m, "target"),
		Type:     etype,
		Label:    getStr(m, "label"),
		Animated: getBool(m, "animated") || d.Animated,
	}
}

func nodePosition(m map[string]any, i int) diagram.Position {
	if pos := getMap(m, "position"); pos != nil {
		x, okX := getNum(pos, "x")
		y, okY := getNum(pos, "y")
		if okX && okY {
			return diagram.Position{X: x, Y: y}
		}
	}
	return gridPosition(i)
}

// gridPosition lays nodes out three per row so placement stays readable when
// the model omits coordinates.
func gridPosition(i int) diagram.Position {
	return diagram.Position{
		X: float64(100 + 300*(i%3)),
		Y: float64(100 + 200*(i/3)),
	}
}

func iconPath(m, data map[string]any) string {
	if p := getStr(data, "iconPath"); p != "" {
		return p
	}
	if name := firstStr(getStr(data, "icon"), getStr(m, "icon")); name != "" {
		return fmt.Sprintf("/icons/%s.png", name)
	}
	return ""
}

// fallbackSuggestion is the single hint attached to the fallback diagram.
const fallbackSuggestion = "Add more detail about the components and how they connect, then generate again."

// FallbackGraph is the fixed three-node diagram substituted when model
// output cannot be parsed. The middle node carries the original request so
// nothing the user typed is lost.
func FallbackGraph(description string) diagram.Graph {
	node := func(id, title, content string, x float64) diagram.Node {
		return diagram.Node{
			ID:       id,
			Type:     diagram.NodeTypeCustom,
			Position: diagram.Position{X: x, Y: 100},
			Data: diagram.NodeData{
				Title:           title,
				Content:         content,
				BackgroundColor: diagram.DefaultBackground,
				BorderColor:     diagram.DefaultBorder,
				TextColor:       diagram.DefaultText,
			},
		}
	}
	edge := func(id, source, target string) diagram.Edge {
		return diagram.Edge{
			ID:     id,
			Source: source,
			Target: target,
			Type:   diagram.EdgeSmoothstep,
		}
	}

	return diagram.Graph{
		Title:       "Simple Diagram",
		Description: description,
		Nodes: []diagram.Node{
			node("start", "Start", "Beginning of the process", 100),
			node("process", "Process", description, 400),
			node("end", "End", "End of the process", 700),
		},
		Edges: []diagram.Edge{
			edge("edge-start-process", "start", "process"),
			edge("edge-process-end", "process", "end"),
		},
		Suggestions: []string{fallbackSuggestion},
	}
}

// parseObject pulls the first {...} span out of raw and parses it. Models
// often wrap JSON in prose or code fences; the brace scan tolerates both.
// When no braces are present the raw text itself is tried.
func parseObject(raw string) (map[string]any, bool) {
	candidate := raw
	if start, end := strings.Index(raw, "{"), strings.LastIndex(raw, "}"); start >= 0 && end > start {
		candidate = raw[start : end+1]
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(candidate), &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

// parseStringArray is the bracket-scanning twin of parseObject, used for
// refine replies. Non-string elements are dropped.
func parseStringArray(raw string) []string {
	candidate := raw
	if start, end := strings.Index(raw, "["), strings.LastIndex(raw, "]"); start >= 0 && end > start {
		candidate = raw[start : end+1]
	}
	var arr []any
	if err := json.Unmarshal([]byte(candidate), &arr); err != nil {
		return nil
	}
	var out []string
	for _, el := range arr {
		if s, ok := el.(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// Duck-typed field readers. Model output has no enforced schema, so every
// read tolerates a missing key or a wrong type.

func getStr(m map[string]any, key string) string {
	if s, ok := m[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func getNum(m map[string]any, key string) (float64, bool) {
	switch v := m[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

func getBool(m map[string]any, key string) bool {
	b, ok := m[key].(bool)
	return ok && b
}

func getMap(m map[string]any, key string) map[string]any {
	if mm, ok := m[key].(map[string]any); ok {
		return mm
	}
	return nil
}

func getSlice(m map[string]any, key string) []any {
	if s, ok := m[key].([]any); ok {
		return s
	}
	return nil
}

func strOr(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func firstStr(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func freshID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
