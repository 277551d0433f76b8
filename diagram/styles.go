package diagram

import "strings"

// TypeStyle is the per-diagram-type generation policy: the structural rules
// fed to the model and the defaults applied to its output.
type TypeStyle struct {
	Layout    string // layout guidance embedded in the prompt
	NodeRules string
	EdgeRules string

	Background string // default color triple for nodes
	Border     string
	Text       string

	EdgeType string // default edge kind (straight, smoothstep, bezier)
	Animated bool   // static edge-animation default
}

// builtinStyles are the shipped policies, keyed by diagram type.
var builtinStyles = map[Type]TypeStyle{
	TypeFlowchart: {
		Layout:     "Arrange nodes top-to-bottom in execution order, one step per row.",
		NodeRules:  "One action or decision per node. Titles are short imperatives; content explains the step in one sentence.",
		EdgeRules:  "Connect consecutive steps. Label branch edges with their condition (e.g. \"yes\", \"no\").",
		Background: "#eff6ff",
		Border:     "#3b82f6",
		Text:       "#1e3a8a",
		EdgeType:   EdgeStraight,
		Animated:   false,
	},
	TypeContainer: {
		Layout:     "Arrange nodes left-to-right by tier: clients, then services, then data stores.",
		NodeRules:  "One service, store, or external system per node. Put the technology choice in the content (e.g. \"PostgreSQL database\").",
		EdgeRules:  "Directed edges showing data flow. Label each edge with the protocol or action (e.g. \"HTTPS\", \"publishes\").",
		Background: DefaultBackground,
		Border:     DefaultBorder,
		Text:       DefaultText,
		EdgeType:   EdgeSmoothstep,
		Animated:   true,
	},
	TypeArchitecture: {
		Layout:     "Arrange nodes in layers: entry points at the top, core services in the middle, infrastructure at the bottom.",
		NodeRules:  "One infrastructure component per node. Name the platform or product in the content (e.g. \"Redis cluster\").",
		EdgeRules:  "Label every connection with its protocol. Avoid crossing edges where possible.",
		Background: "#f8fafc",
		Border:     "#64748b",
		Text:       "#0f172a",
		EdgeType:   EdgeBezier,
		Animated:   false,
	},
}

// defaultWorkflowKeywords mark a description as process-like; for container
// diagrams they turn edge animation off (a static process reads better
// without motion), and their absence turns it on.
var defaultWorkflowKeywords = []string{
	"workflow",
	"process flow",
	"flowchart",
	"steps",
	"procedure",
	"sequential",
}

// StyleSet bundles the per-type policies with the workflow keyword list.
// A set is immutable after construction; lookups never fail.
type StyleSet struct {
	styles   map[Type]TypeStyle
	keywords []string
}

// DefaultStyles returns the built-in style set.
func DefaultStyles() *StyleSet {
	styles := make(map[Type]TypeStyle, len(builtinStyles))
	for t, s := range builtinStyles {
		styles[t] = s
	}
	return &StyleSet{
		styles:   styles,
		keywords: append([]string(nil), defaultWorkflowKeywords...),
	}
}

// For returns the style for t, falling back to the container style for
// unknown types.
func (s *StyleSet) For(t Type) TypeStyle {
	if style, ok := s.styles[t]; ok {
		return style
	}
	return s.styles[TypeContainer]
}

// WorkflowLike reports whether the description reads like a step-by-step
// process. Matching is case-insensitive substring search over the keyword
// list.
func (s *StyleSet) WorkflowLike(description string) bool {
	d := strings.ToLower(description)
	for _, kw := range s.keywords {
		if strings.Contains(d, kw) {
			return true
		}
	}
	return false
}

// EdgeAnimation resolves the edge-animation default for a request. Container
// diagrams override the static default: process-like descriptions switch
// animation off, everything else switches it on. Other types keep their
// configured default.
func (s *StyleSet) EdgeAnimation(t Type, description string) bool {
	style := s.For(t)
	if t != TypeContainer {
		return style.Animated
	}
	return !s.WorkflowLike(description)
}
