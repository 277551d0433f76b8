// Package inspect checks the structural integrity of generated graphs. The
// pipeline never rejects a graph over connectivity problems; it reports them
// so callers can surface advisory hints alongside the result.
package inspect

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"ai_diagram_studio/diagram"
)

// Report summarizes the connectivity of one graph.
type Report struct {
	NodeCount int `json:"nodeCount"`
	EdgeCount int `json:"edgeCount"`

	// DanglingEdges are edge ids whose source or target names no node.
	DanglingEdges []string `json:"danglingEdges,omitempty"`
	// SelfLoops are edge ids with source == target.
	SelfLoops []string `json:"selfLoops,omitempty"`
	// IsolatedNodes are node ids no edge touches.
	IsolatedNodes []string `json:"isolatedNodes,omitempty"`
	// Cycles lists the node ids of each directed cycle. Informational:
	// feedback loops are legal in architecture diagrams.
	Cycles [][]string `json:"cycles,omitempty"`
	// Components counts weakly connected components.
	Components int `json:"components"`
}

// Clean reports whether the graph had no findings.
func (r Report) Clean() bool {
	return len(r.DanglingEdges) == 0 && len(r.IsolatedNodes) == 0 && r.Components <= 1
}

// Check builds the graph's structure and reports its connectivity findings.
func Check(g diagram.Graph) Report {
	report := Report{NodeCount: len(g.Nodes), EdgeCount: len(g.Edges)}

	directed := simple.NewDirectedGraph()
	undirected := simple.NewUndirectedGraph()
	ids := make(map[string]int64, len(g.Nodes))
	names := make(map[int64]string, len(g.Nodes))
	for _, n := range g.Nodes {
		if _, ok := ids[n.ID]; ok {
			continue
		}
		id := int64(len(ids))
		ids[n.ID] = id
		names[id] = n.ID
		directed.AddNode(simple.Node(id))
		undirected.AddNode(simple.Node(id))
	}

	touched := make(map[string]bool, len(g.Nodes))
	for _, e := range g.Edges {
		src, okSrc := ids[e.Source]
		dst, okDst := ids[e.Target]
		if !okSrc || !okDst {
			report.DanglingEdges = append(report.DanglingEdges, e.ID)
			continue
		}
		touched[e.Source] = true
		touched[e.Target] = true
		if e.Source == e.Target {
			// simple graphs reject self-edges; record it and move on.
			report.SelfLoops = append(report.SelfLoops, e.ID)
			continue
		}
		directed.SetEdge(directed.NewEdge(simple.Node(src), simple.Node(dst)))
		undirected.SetEdge(undirected.NewEdge(simple.Node(src), simple.Node(dst)))
	}

	for _, n := range g.Nodes {
		if !touched[n.ID] {
			report.IsolatedNodes = append(report.IsolatedNodes, n.ID)
		}
	}

	if report.NodeCount > 0 {
		report.Components = len(topo.ConnectedComponents(undirected))
		for _, scc := range topo.TarjanSCC(directed) {
			if len(scc) < 2 {
				continue
			}
			cycle := make([]string, 0, len(scc))
			for _, n := range scc {
				cycle = append(cycle, names[n.ID()])
			}
			report.Cycles = append(report.Cycles, cycle)
		}
	}
	return report
}

// Advisories renders the findings as short, user-facing improvement hints.
// A clean report yields none.
func (r Report) Advisories() []string {
	var out []string
	if len(r.DanglingEdges) > 0 {
		out = append(out, "Remove or reconnect edges that reference missing nodes: "+strings.Join(r.DanglingEdges, ", "))
	}
	if len(r.IsolatedNodes) > 0 && r.NodeCount > 1 {
		out = append(out, "Connect isolated nodes to the rest of the diagram: "+strings.Join(r.IsolatedNodes, ", "))
	}
	if r.Components > 1 {
		out = append(out, fmt.Sprintf("The diagram is split into %d disconnected groups; add edges to join them", r.Components))
	}
	return out
}
