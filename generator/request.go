// Package generator turns natural-language descriptions into renderable
// diagram graphs: it prompts a text-generation provider and defensively
// normalizes whatever comes back into a valid graph.
package generator

import (
	"ai_diagram_studio/diagram"
	"ai_diagram_studio/provider"
)

// Complexity steers how many nodes the prompt asks the model for.
type Complexity string

const (
	ComplexitySimple  Complexity = "simple"
	ComplexityMedium  Complexity = "medium"
	ComplexityComplex Complexity = "complex"
)

// NodeBand returns the node-count range requested for this complexity.
// Unknown values get the medium band.
func (c Complexity) NodeBand() (min, max int) {
	switch c {
	case ComplexitySimple:
		return 3, 5
	case ComplexityComplex:
		return 10, 15
	default:
		return 6, 9
	}
}

// Options tune the shape of the requested diagram.
type Options struct {
	DiagramType  diagram.Type `json:"diagramType"`
	Complexity   Complexity   `json:"complexity"`
	IncludeIcons bool         `json:"includeIcons"`
}

// DefaultOptions returns the options applied when the caller supplies none:
// a medium-complexity container diagram with icons offered to the model.
func DefaultOptions() Options {
	return Options{
		DiagramType:  diagram.TypeContainer,
		Complexity:   ComplexityMedium,
		IncludeIcons: true,
	}
}

// Request describes one generation call.
type Request struct {
	Description string      `json:"description"`
	Provider    provider.ID `json:"provider"`
	Model       string      `json:"model,omitempty"`
	APIKey      string      `json:"apiKey,omitempty"` // overrides the credential store for this call
	Options     Options     `json:"options"`
}

// withDefaults fills the enum fields the caller left empty. IncludeIcons has
// no absent state on a plain bool; decode boundaries (HTTP, CLI) apply its
// default-true before constructing a Request.
func (r Request) withDefaults() Request {
	if r.Options.DiagramType == "" {
		r.Options.DiagramType = diagram.TypeContainer
	}
	if r.Options.Complexity == "" {
		r.Options.Complexity = ComplexityMedium
	}
	return r
}
