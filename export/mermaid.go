// Package export renders generated graphs into shareable text formats:
// Mermaid, Markdown, and standalone HTML.
package export

import (
	"fmt"
	"regexp"
	"strings"

	"ai_diagram_studio/diagram"
)

// MermaidOptions configure Mermaid rendering.
type MermaidOptions struct {
	Direction string // "TD" or "LR"; anything else falls back to "LR"
}

// Mermaid renders the graph as a Mermaid flowchart. Edges whose endpoints
// are missing from the graph still render; Mermaid shows them as bare ids.
func Mermaid(g diagram.Graph, opts *MermaidOptions) string {
	if opts == nil {
		opts = &MermaidOptions{}
	}
	direction := opts.Direction
	if direction != "TD" && direction != "LR" {
		direction = "LR"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("flowchart %s\n", direction))

	for _, n := range g.Nodes {
		sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", sanitizeID(n.ID), escapeLabel(n.Data.Title)))
	}
	for _, e := range g.Edges {
		from, to := sanitizeID(e.Source), sanitizeID(e.Target)
		if e.Label != "" {
			sb.WriteString(fmt.Sprintf("    %s -->|%s| %s\n", from, escapeLabel(e.Label), to))
		} else {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", from, to))
		}
	}

	return sb.String()
}

// Mermaid ids may only contain alphanumerics and underscores.
var mermaidIDPattern = regexp.MustCompile(`[^a-zA-Z0-9_]`)

func sanitizeID(id string) string {
	s := mermaidIDPattern.ReplaceAllString(id, "_")
	if len(s) > 0 && s[0] >= '0' && s[0] <= '9' {
		s = "_" + s
	}
	if s == "" {
		s = "_empty"
	}
	return s
}

func escapeLabel(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "#quot;")
	s = strings.ReplaceAll(s, "<", "#lt;")
	s = strings.ReplaceAll(s, ">", "#gt;")
	s = strings.ReplaceAll(s, "|", "#124;")
	return s
}
