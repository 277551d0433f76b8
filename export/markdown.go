package export

import (
	"fmt"
	"strings"

	"ai_diagram_studio/diagram"
)

// Markdown renders the graph as a human-readable document: components,
// connections, an embedded Mermaid block, and any follow-up suggestions.
func Markdown(g diagram.Graph) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", g.Title))
	if g.Description != "" {
		sb.WriteString(g.Description + "\n\n")
	}

	sb.WriteString("## Components\n\n")
	for _, n := range g.Nodes {
		sb.WriteString(fmt.Sprintf("- **%s**: %s\n", n.Data.Title, n.Data.Content))
	}

	if len(g.Edges) > 0 {
		titles := make(map[string]string, len(g.Nodes))
		for _, n := range g.Nodes {
			titles[n.ID] = n.Data.Title
		}
		name := func(id string) string {
			if t, ok := titles[id]; ok {
				return t
			}
			return id
		}

		sb.WriteString("\n## Connections\n\n")
		for _, e := range g.Edges {
			if e.Label != "" {
				sb.WriteString(fmt.Sprintf("- %s -> %s (%s)\n", name(e.Source), name(e.Target), e.Label))
			} else {
				sb.WriteString(fmt.Sprintf("- %s -> %s\n", name(e.Source), name(e.Target)))
			}
		}
	}

	sb.WriteString("\n## Diagram\n\n```mermaid\n")
	sb.WriteString(Mermaid(g, nil))
	sb.WriteString("```\n")

	if len(g.Suggestions) > 0 {
		sb.WriteString("\n## Suggestions\n\n")
		for _, s := range g.Suggestions {
			sb.WriteString("- " + s + "\n")
		}
	}

	return sb.String()
}
