package generator

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"testing"

	"ai_diagram_studio/diagram"
)

// assertValidGraph checks the invariants every normalized graph must hold:
// unique non-empty ids, custom node type, finite positions, complete node
// data, known edge kinds.
func assertValidGraph(t *testing.T, g diagram.Graph) {
	t.Helper()

	if g.Title == "" {
		t.Error("graph has empty title")
	}

	nodeIDs := make(map[string]bool)
	for _, n := range g.Nodes {
		if n.ID == "" {
			t.Error("node with empty id")
		}
		if nodeIDs[n.ID] {
			t.Errorf("duplicate node id %q", n.ID)
		}
		nodeIDs[n.ID] = true

		if n.Type != diagram.NodeTypeCustom {
			t.Errorf("node %s type = %q, want %q", n.ID, n.Type, diagram.NodeTypeCustom)
		}
		for _, v := range []float64{n.Position.X, n.Position.Y} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Errorf("node %s has non-finite position", n.ID)
			}
		}
		if n.Data.Title == "" || n.Data.Content == "" {
			t.Errorf("node %s missing title or content", n.ID)
		}
		if n.Data.BackgroundColor == "" || n.Data.BorderColor == "" || n.Data.TextColor == "" {
			t.Errorf("node %s missing a color", n.ID)
		}
	}

	edgeIDs := make(map[string]bool)
	for _, e := range g.Edges {
		if e.ID == "" {
			t.Error("edge with empty id")
		}
		if edgeIDs[e.ID] {
			t.Errorf("duplicate edge id %q", e.ID)
		}
		edgeIDs[e.ID] = true

		if !diagram.ValidEdgeType(e.Type) {
			t.Errorf("edge %s has unknown type %q", e.ID, e.Type)
		}
	}
}

func TestNormalizeIsTotal(t *testing.T) {
	inputs := []string{
		"",
		"not json at all",
		"{",
		`{"nodes":`,
		"null",
		"[1,2,3]",
		`"just a string"`,
		"{}",
		`{"nodes":"not an array"}`,
		`{"nodes":[42,"x",{"id":7}],"edges":[true,{"id":9}]}`,
		`{"title":7,"description":false,"suggestions":"nope"}`,
		"Sure! Here it is:\n```json\n{\"title\":\"T\",\"nodes\":[],\"edges\":[]}\n```\nEnjoy.",
		`{"title":"ok","nodes":[{"id":"a"}],"edges":[{"source":"a","target":"b"}]}`,
	}
	for _, in := range inputs {
		g := Normalize(in, "describe a system")
		assertValidGraph(t, g)
	}
}

func TestNormalizeFallbackIsDeterministic(t *testing.T) {
	g := Normalize("not parseable", "X")
	if !reflect.DeepEqual(g, FallbackGraph("X")) {
		t.Fatalf("fallback graph mismatch:\n%#v", g)
	}
	if g.Nodes[1].Data.Content != "X" {
		t.Errorf("process node content = %q, want the original description", g.Nodes[1].Data.Content)
	}
}

func TestNormalizeGarbageYieldsFallbackShape(t *testing.T) {
	g := Normalize("not json at all", "Build a login flow")
	if g.Title != "Simple Diagram" {
		t.Errorf("title = %q, want Simple Diagram", g.Title)
	}
	if len(g.Nodes) != 3 || len(g.Edges) != 2 {
		t.Fatalf("fallback has %d nodes and %d edges, want 3 and 2", len(g.Nodes), len(g.Edges))
	}
	if g.Nodes[1].Data.Content != "Build a login flow" {
		t.Errorf("process content = %q", g.Nodes[1].Data.Content)
	}
	if len(g.Suggestions) != 1 {
		t.Errorf("fallback should carry exactly one suggestion, got %v", g.Suggestions)
	}
	assertValidGraph(t, g)
}

func TestNormalizeMinimalObject(t *testing.T) {
	g := Normalize(`{"title":"T","nodes":[{"data":{"title":"A"}}],"edges":[]}`, "desc")

	if g.Title != "T" {
		t.Errorf("title = %q, want T", g.Title)
	}
	if g.Description != "desc" {
		t.Errorf("description = %q, want the original", g.Description)
	}
	if len(g.Nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(g.Nodes))
	}
	n := g.Nodes[0]
	if n.ID == "" {
		t.Error("missing id should be synthesized")
	}
	if n.Position != (diagram.Position{X: 100, Y: 100}) {
		t.Errorf("position = %+v, want {100 100}", n.Position)
	}
	if n.Data.Title != "A" {
		t.Errorf("title = %q, want A", n.Data.Title)
	}
	if n.Data.Content != "Component description" {
		t.Errorf("content = %q, want the default", n.Data.Content)
	}
	if n.Type != diagram.NodeTypeCustom {
		t.Errorf("type = %q, want custom", n.Type)
	}
}

func TestNormalizeGridPositions(t *testing.T) {
	parts := make([]string, 7)
	for i := range parts {
		parts[i] = fmt.Sprintf(`{"id":"n%d"}`, i)
	}
	g := Normalize(`{"nodes":[`+strings.Join(parts, ",")+`]}`, "d")

	if len(g.Nodes) != 7 {
		t.Fatalf("got %d nodes", len(g.Nodes))
	}
	for i, n := range g.Nodes {
		want := diagram.Position{
			X: float64(100 + 300*(i%3)),
			Y: float64(100 + 200*(i/3)),
		}
		if n.Position != want {
			t.Errorf("node %d position = %+v, want %+v", i, n.Position, want)
		}
	}
}

func TestNormalizeKeepsProvidedPositions(t *testing.T) {
	raw := `{"nodes":[
		{"id":"a","position":{"x":42,"y":7}},
		{"id":"b"},
		{"id":"c","position":{"x":"left","y":10}}
	]}`
	g := Normalize(raw, "d")

	if g.Nodes[0].Position != (diagram.Position{X: 42, Y: 7}) {
		t.Errorf("explicit position lost: %+v", g.Nodes[0].Position)
	}
	if g.Nodes[1].Position != (diagram.Position{X: 400, Y: 100}) {
		t.Errorf("grid position for index 1 = %+v", g.Nodes[1].Position)
	}
	// Unusable coordinates count as absent.
	if g.Nodes[2].Position != (diagram.Position{X: 700, Y: 100}) {
		t.Errorf("grid position for index 2 = %+v", g.Nodes[2].Position)
	}
}

func TestNormalizeDeduplicatesIDs(t *testing.T) {
	raw := `{"nodes":[{"id":"a"},{"id":"a"},{"id":"a"}],"edges":[{"id":"e"},{"id":"e"}]}`
	g := Normalize(raw, "d")
	assertValidGraph(t, g)

	if g.Nodes[0].ID != "a" {
		t.Errorf("first occurrence should keep its id, got %q", g.Nodes[0].ID)
	}
	for _, n := range g.Nodes[1:] {
		if !strings.HasPrefix(n.ID, "node-") {
			t.Errorf("colliding node id should be resynthesized, got %q", n.ID)
		}
	}
	if g.Edges[0].ID != "e" {
		t.Errorf("first edge keeps its id, got %q", g.Edges[0].ID)
	}
	if !strings.HasPrefix(g.Edges[1].ID, "edge-") {
		t.Errorf("colliding edge id should be resynthesized, got %q", g.Edges[1].ID)
	}
}

func TestNormalizeForcesCustomNodeType(t *testing.T) {
	g := Normalize(`{"nodes":[{"id":"a","type":"group"},{"id":"b","type":""}]}`, "d")
	for _, n := range g.Nodes {
		if n.Type != diagram.NodeTypeCustom {
			t.Errorf("node %s type = %q", n.ID, n.Type)
		}
	}
}

func TestNormalizeEdgeDefaults(t *testing.T) {
	raw := `{"edges":[
		{"source":"a","target":"b"},
		{"id":"x","source":"a","target":"b","type":"bezier","label":"L","animated":true},
		{"source":"a","target":"b","type":"curvy"}
	]}`
	g := Normalize(raw, "d")

	e0 := g.Edges[0]
	if e0.ID != "edge-0" || e0.Type != diagram.EdgeSmoothstep || e0.Animated || e0.Label != "" {
		t.Errorf("edge defaults wrong: %+v", e0)
	}
	e1 := g.Edges[1]
	if e1.ID != "x" || e1.Type != diagram.EdgeBezier || !e1.Animated || e1.Label != "L" {
		t.Errorf("explicit edge fields lost: %+v", e1)
	}
	if g.Edges[2].Type != diagram.EdgeSmoothstep {
		t.Errorf("unknown edge type should fall back to smoothstep, got %q", g.Edges[2].Type)
	}
	if g.Edges[2].Source != "a" || g.Edges[2].Target != "b" {
		t.Errorf("source/target must pass through verbatim: %+v", g.Edges[2])
	}
}

func TestNormalizeAnimationDefaultThreads(t *testing.T) {
	raw := `{"nodes":[{"id":"a"},{"id":"b"}],"edges":[
		{"source":"a","target":"b"},
		{"source":"a","target":"b","animated":false},
		{"source":"a","target":"b","animated":true}
	]}`

	d := BaseDefaults()
	d.Animated = true
	g := NormalizeWith(raw, "d", d)
	for i, e := range g.Edges {
		if !e.Animated {
			t.Errorf("edge %d should be animated under a true default", i)
		}
	}

	g = Normalize(raw, "d")
	if g.Edges[0].Animated || g.Edges[1].Animated {
		t.Error("absent or false animation stays off under the base default")
	}
	if !g.Edges[2].Animated {
		t.Error("explicit true must survive")
	}
}

func TestNormalizeThreadsStyleColors(t *testing.T) {
	d := Defaults{Background: "#eff6ff", Border: "#3b82f6", Text: "#1e3a8a"}
	raw := `{"nodes":[{"id":"a"},{"id":"b","data":{"backgroundColor":"#000000"}}]}`
	g := NormalizeWith(raw, "d", d)

	if got := g.Nodes[0].Data; got.BackgroundColor != "#eff6ff" || got.BorderColor != "#3b82f6" || got.TextColor != "#1e3a8a" {
		t.Errorf("threaded colors not applied: %+v", got)
	}
	if got := g.Nodes[1].Data; got.BackgroundColor != "#000000" || got.BorderColor != "#3b82f6" {
		t.Errorf("provided color lost or border default missing: %+v", got)
	}
}

func TestNormalizeTitleFallbacks(t *testing.T) {
	g := Normalize(`{}`, "original request")
	if g.Title != "Generated Diagram" {
		t.Errorf("title = %q", g.Title)
	}
	if g.Description != "original request" {
		t.Errorf("description = %q", g.Description)
	}
	if len(g.Suggestions) != 0 {
		t.Errorf("suggestions should default empty, got %v", g.Suggestions)
	}

	g = Normalize(`{"title":"T","description":"D","suggestions":["s1",42,"","s2"]}`, "o")
	if g.Title != "T" || g.Description != "D" {
		t.Errorf("explicit title/description lost: %q %q", g.Title, g.Description)
	}
	if want := []string{"s1", "s2"}; !reflect.DeepEqual(g.Suggestions, want) {
		t.Errorf("suggestions = %v, want %v", g.Suggestions, want)
	}
}

func TestNormalizeIconPath(t *testing.T) {
	raw := `{"nodes":[
		{"data":{"iconPath":"/icons/db.svg"}},
		{"data":{"icon":"server"}},
		{"icon":"queue"},
		{}
	]}`
	g := Normalize(raw, "d")

	want := []string{"/icons/db.svg", "/icons/server.png", "/icons/queue.png", ""}
	for i, n := range g.Nodes {
		if n.Data.IconPath != want[i] {
			t.Errorf("node %d iconPath = %q, want %q", i, n.Data.IconPath, want[i])
		}
	}
}

func TestNormalizeExtractsEmbeddedJSON(t *testing.T) {
	raw := "Sure thing! Here is the diagram you asked for:\n\n```json\n" +
		`{"title":"Login Flow","nodes":[{"id":"a"}],"edges":[]}` +
		"\n```\n\nLet me know if you need anything else."
	g := Normalize(raw, "login")
	if g.Title != "Login Flow" {
		t.Errorf("embedded JSON not extracted, title = %q", g.Title)
	}
	if len(g.Nodes) != 1 {
		t.Errorf("got %d nodes", len(g.Nodes))
	}
}

func TestParseStringArray(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{`["a","b"]`, []string{"a", "b"}},
		{"Here you go:\n[\"q1\", \"q2\"]\nHope that helps!", []string{"q1", "q2"}},
		{`[1,"a",null,""]`, []string{"a"}},
		{"not an array", nil},
		{"[]", nil},
		{"[", nil},
	}
	for _, tc := range cases {
		if got := parseStringArray(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("parseStringArray(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
