package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ai_diagram_studio/diagram"
	"ai_diagram_studio/inspect"
	"ai_diagram_studio/logging"
	"ai_diagram_studio/provider"
)

// Errors surfaced by Generate. Malformed model output is never one of them:
// it degrades to the fallback diagram instead.
var (
	ErrMissingAPIKey    = errors.New("no api key configured for provider")
	ErrGenerationFailed = errors.New("diagram generation failed")
)

// KeyStore resolves provider credentials at call time.
type KeyStore interface {
	APIKey(id provider.ID) string
}

// IconSource lists the icon names offered to the model.
type IconSource interface {
	Names() []string
}

// Dispatcher routes one prompt to a provider and returns the raw reply.
type Dispatcher interface {
	Configure(id provider.ID, apiKey string) error
	Send(ctx context.Context, id provider.ID, prompt, model string) (string, error)
}

// Service is the generation façade the host calls. It holds no per-request
// state; provider client handles are cached inside the dispatcher.
type Service struct {
	dispatcher Dispatcher
	keys       KeyStore
	icons      IconSource
	styles     *diagram.StyleSet
}

// NewService wires the façade. keys and icons may be nil when the caller
// supplies per-request keys and has no icon catalog; a nil styles falls back
// to the built-in style set.
func NewService(dispatcher Dispatcher, keys KeyStore, icons IconSource, styles *diagram.StyleSet) (*Service, error) {
	if dispatcher == nil {
		return nil, errors.New("dispatcher is required")
	}
	if styles == nil {
		styles = diagram.DefaultStyles()
	}
	return &Service{dispatcher: dispatcher, keys: keys, icons: icons, styles: styles}, nil
}

// HasKey reports whether a credential is available for the provider.
func (s *Service) HasKey(id provider.ID) bool {
	return s.keys != nil && s.keys.APIKey(id) != ""
}

// Generate runs the pipeline end to end: build the prompt, dispatch it,
// normalize the reply. The returned graph is always renderable; only missing
// credentials, an unknown provider, or a failed provider call are errors.
func (s *Service) Generate(ctx context.Context, req Request) (diagram.Graph, error) {
	if strings.TrimSpace(req.Description) == "" {
		return diagram.Graph{}, errors.New("description is required")
	}
	req = req.withDefaults()

	if _, ok := provider.Lookup(req.Provider); !ok {
		return diagram.Graph{}, fmt.Errorf("%w: %q", provider.ErrUnsupportedProvider, req.Provider)
	}
	if err := s.configure(req.Provider, req.APIKey); err != nil {
		return diagram.Graph{}, err
	}

	var iconNames []string
	if req.Options.IncludeIcons && s.icons != nil {
		iconNames = s.icons.Names()
	}
	prompt := BuildPrompt(req, s.styles, iconNames)

	raw, err := s.dispatcher.Send(ctx, req.Provider, prompt, req.Model)
	if err != nil {
		logging.ErrorContext(ctx, "provider call failed", "provider", req.Provider, "error", err)
		return diagram.Graph{}, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	style := s.styles.For(req.Options.DiagramType)
	graph := NormalizeWith(raw, req.Description, Defaults{
		Background: style.Background,
		Border:     style.Border,
		Text:       style.Text,
		Animated:   s.styles.EdgeAnimation(req.Options.DiagramType, req.Description),
	})

	report := inspect.Check(graph)
	if advisories := report.Advisories(); len(advisories) > 0 {
		graph.Suggestions = append(graph.Suggestions, advisories...)
		logging.WarnContext(ctx, "generated graph has connectivity findings",
			"dangling", len(report.DanglingEdges),
			"isolated", len(report.IsolatedNodes),
			"components", report.Components)
	}

	logging.InfoContext(ctx, "diagram generated",
		"provider", req.Provider, "nodes", len(graph.Nodes), "edges", len(graph.Edges))
	return graph, nil
}

// Refine asks the provider for clarifying questions about a description. On
// any failure (missing key, network error, unusable reply) it returns a
// fixed set of generic questions; this path never fails visibly.
func (s *Service) Refine(ctx context.Context, description string, id provider.ID, apiKey string) []string {
	if err := s.configure(id, apiKey); err != nil {
		logging.WarnContext(ctx, "refine fell back to generic questions", "provider", id, "error", err)
		return fallbackQuestions()
	}

	raw, err := s.dispatcher.Send(ctx, id, BuildRefinePrompt(description), "")
	if err != nil {
		logging.WarnContext(ctx, "refine fell back to generic questions", "provider", id, "error", err)
		return fallbackQuestions()
	}

	if questions := parseStringArray(raw); len(questions) > 0 {
		return questions
	}
	return fallbackQuestions()
}

// configure resolves the credential for id and hands it to the dispatcher.
// A per-request override wins over the store.
func (s *Service) configure(id provider.ID, override string) error {
	key := override
	if key == "" && s.keys != nil {
		key = s.keys.APIKey(id)
	}
	if key == "" {
		return fmt.Errorf("%w: %s", ErrMissingAPIKey, id)
	}
	return s.dispatcher.Configure(id, key)
}

func fallbackQuestions() []string {
	return []string{
		"What are the main components or steps involved?",
		"How do the components connect or interact with each other?",
		"Are there any external systems or users involved?",
		"What should the final state or outcome look like?",
	}
}
