package generator

import (
	"fmt"
	"strings"

	"ai_diagram_studio/diagram"
)

// maxPromptIcons bounds the icon list embedded in the prompt.
const maxPromptIcons = 150

// graphSchema is the literal output shape the model is told to follow.
const graphSchema = `{
  "title": "Diagram title",
  "description": "One-sentence summary of the diagram",
  "nodes": [
    {
      "id": "node-1",
      "type": "custom",
      "position": {"x": 100, "y": 100},
      "data": {
        "title": "Component name",
        "content": "What this component does",
        "backgroundColor": "#ffffff",
        "borderColor": "#e5e7eb",
        "textColor": "#1f2937",
        "iconPath": "/icons/server.png"
      }
    }
  ],
  "edges": [
    {
      "id": "edge-1",
      "source": "node-1",
      "target": "node-2",
      "type": "smoothstep",
      "label": "HTTPS",
      "animated": false
    }
  ],
  "suggestions": ["One or two follow-up improvements"]
}`

// BuildPrompt renders the generation prompt for a request: the structural
// rules for the diagram type, the icon names the model may use, and the
// exact JSON shape it must return. Pure function: no I/O, and identical
// inputs produce the identical prompt.
func BuildPrompt(req Request, styles *diagram.StyleSet, iconNames []string) string {
	req = req.withDefaults()
	style := styles.For(req.Options.DiagramType)
	animated := styles.EdgeAnimation(req.Options.DiagramType, req.Description)
	minNodes, maxNodes := req.Options.Complexity.NodeBand()

	var sb strings.Builder
	sb.WriteString("You are a system-architecture diagramming assistant. ")
	sb.WriteString("Respond with a single JSON object and nothing else: no prose, no code fences.\n\n")

	sb.WriteString(fmt.Sprintf("Create a %s diagram for this request:\n%s\n\n", req.Options.DiagramType, req.Description))

	sb.WriteString("Rules:\n")
	sb.WriteString(fmt.Sprintf("- %s\n", style.Layout))
	sb.WriteString(fmt.Sprintf("- %s\n", style.NodeRules))
	sb.WriteString(fmt.Sprintf("- %s\n", style.EdgeRules))
	sb.WriteString(fmt.Sprintf("- Use between %d and %d nodes.\n", minNodes, maxNodes))
	sb.WriteString(fmt.Sprintf("- Default node colors: backgroundColor %s, borderColor %s, textColor %s.\n",
		style.Background, style.Border, style.Text))
	sb.WriteString(fmt.Sprintf("- Edge \"type\" is %q unless a rule above says otherwise.\n", style.EdgeType))
	if animated {
		sb.WriteString("- Set \"animated\": true on edges to show data flow.\n")
	} else {
		sb.WriteString("- Set \"animated\": false on every edge.\n")
	}

	if len(iconNames) > 0 {
		names := iconNames
		if len(names) > maxPromptIcons {
			names = names[:maxPromptIcons]
		}
		sb.WriteString(fmt.Sprintf("\nAvailable icons (set data.iconPath to \"/icons/{name}.png\"):\n%s\n",
			strings.Join(names, ", ")))
	}

	sb.WriteString("\nReturn JSON matching this schema exactly:\n")
	sb.WriteString(graphSchema)
	sb.WriteString("\n")

	return sb.String()
}

// BuildRefinePrompt asks the model for clarifying questions about a
// description that is not yet detailed enough to diagram.
func BuildRefinePrompt(description string) string {
	var sb strings.Builder
	sb.WriteString("A user wants to generate a system diagram from this description:\n")
	sb.WriteString(description)
	sb.WriteString("\n\nList 3 to 5 short clarifying questions that would help produce a more accurate diagram. ")
	sb.WriteString("Respond with a JSON array of strings and nothing else, e.g. [\"question one\", \"question two\"].")
	return sb.String()
}
