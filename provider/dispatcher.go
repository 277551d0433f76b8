package provider

import (
	"context"
	"fmt"
	"sync"
)

// Dispatcher holds one lazily-built client per backend and routes prompts to
// them. It is the only stateful piece of the pipeline: a small handle cache,
// safe for concurrent use.
type Dispatcher struct {
	mu      sync.Mutex
	keys    map[ID]string
	clients map[ID]Client
	build   func(Info, string) (Client, error)
}

// NewDispatcher returns a dispatcher with no keys configured.
func NewDispatcher() *Dispatcher {
	return newDispatcher(buildClient)
}

func newDispatcher(build func(Info, string) (Client, error)) *Dispatcher {
	return &Dispatcher{
		keys:    make(map[ID]string),
		clients: make(map[ID]Client),
		build:   build,
	}
}

// Configure stores the API key for a backend. Supplying a different key
// drops the cached handle so the next Send rebuilds it; re-supplying the same
// key is a no-op.
func (d *Dispatcher) Configure(id ID, apiKey string) error {
	if _, ok := Lookup(id); !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedProvider, id)
	}
	if apiKey == "" {
		return fmt.Errorf("empty api key for provider %s", id)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.keys[id] != apiKey {
		d.keys[id] = apiKey
		delete(d.clients, id)
	}
	return nil
}

// Send routes one prompt to the backend and returns the raw completion text.
// An empty model selects the backend's default. Exactly one outbound call is
// made; no retry happens at this layer.
func (d *Dispatcher) Send(ctx context.Context, id ID, prompt, model string) (string, error) {
	info, ok := Lookup(id)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedProvider, id)
	}

	client, err := d.client(info)
	if err != nil {
		return "", err
	}

	if model == "" {
		model = info.DefaultModel
	}
	return client.Complete(ctx, prompt, model)
}

// client returns the cached handle for the backend, building it on first
// use. The network call itself happens outside the lock.
func (d *Dispatcher) client(info Info) (Client, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	key, ok := d.keys[info.ID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotConfigured, info.ID)
	}
	if c, ok := d.clients[info.ID]; ok {
		return c, nil
	}

	c, err := d.build(info, key)
	if err != nil {
		return nil, err
	}
	d.clients[info.ID] = c
	return c, nil
}

// buildClient picks the binding for a backend.
func buildClient(info Info, apiKey string) (Client, error) {
	if info.OpenAICompat {
		return newCompatClient(info, apiKey), nil
	}
	switch info.ID {
	case Gemini:
		return newGeminiClient(info, apiKey), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedProvider, info.ID)
	}
}
