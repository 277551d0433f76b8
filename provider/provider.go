// Package provider routes prompts to interchangeable text-generation
// backends through one call contract.
package provider

import (
	"context"
	"errors"
	"fmt"
)

// ID identifies a registered backend.
type ID string

const (
	OpenRouter ID = "openrouter"
	Groq       ID = "groq"
	Gemini     ID = "gemini"
)

// Temperature is fixed across all backends; diagram structure should vary
// with the request, not with sampling noise.
const Temperature = 0.7

// Errors surfaced by this package. Callers match with errors.Is.
var (
	// ErrUnsupportedProvider marks an id that is not in the registry.
	ErrUnsupportedProvider = errors.New("unsupported provider")
	// ErrNotConfigured marks a dispatch attempted before an API key was set.
	ErrNotConfigured = errors.New("provider not configured")
)

// Info is the static description of one backend: identity plus the knobs its
// binding needs. Infos carry no behavior.
type Info struct {
	ID           ID
	Name         string // display name for UIs
	DefaultModel string
	MaxTokens    int64  // output-token ceiling per request
	BaseURL      string // endpoint for OpenAI-compatible backends
	// OpenAICompat marks backends reachable through the chat-completions
	// wire format; Gemini uses its own response envelope.
	OpenAICompat bool
}

var registry = map[ID]Info{
	OpenRouter: {
		ID:           OpenRouter,
		Name:         "OpenRouter",
		DefaultModel: "openai/gpt-4o-mini",
		MaxTokens:    2000,
		BaseURL:      "https://openrouter.ai/api/v1",
		OpenAICompat: true,
	},
	Groq: {
		ID:           Groq,
		Name:         "Groq",
		DefaultModel: "llama-3.3-70b-versatile",
		MaxTokens:    1500,
		BaseURL:      "https://api.groq.com/openai/v1",
		OpenAICompat: true,
	},
	Gemini: {
		ID:           Gemini,
		Name:         "Google Gemini",
		DefaultModel: "gemini-1.5-flash",
		MaxTokens:    2048,
		OpenAICompat: false,
	},
}

// order fixes the enumeration order for All.
var order = []ID{OpenRouter, Groq, Gemini}

// Lookup returns the registered info for id.
func Lookup(id ID) (Info, bool) {
	info, ok := registry[id]
	return info, ok
}

// All enumerates the registered backends in a stable order.
func All() []Info {
	infos := make([]Info, 0, len(order))
	for _, id := range order {
		infos = append(infos, registry[id])
	}
	return infos
}

// ParseID validates a raw provider string.
func ParseID(s string) (ID, error) {
	id := ID(s)
	if _, ok := registry[id]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedProvider, s)
	}
	return id, nil
}

// Client is the uniform call contract every binding implements. Complete
// makes exactly one outbound request; retries are the caller's decision.
type Client interface {
	Complete(ctx context.Context, prompt, model string) (string, error)
}
