package provider

import "context"

// Mock is an offline stand-in that returns a fixed, well-formed diagram
// payload. Useful for local runs without credentials and for exercising the
// full pipeline in tests.
type Mock struct{}

// NewMockDispatcher returns a dispatcher whose backends all resolve to Mock.
// Configuration still requires a key so callers exercise the same paths they
// would against real backends.
func NewMockDispatcher() *Dispatcher {
	return newDispatcher(func(Info, string) (Client, error) {
		return Mock{}, nil
	})
}

func (Mock) Complete(_ context.Context, _, _ string) (string, error) {
	return `{
  "title": "Sample Web Application",
  "description": "A minimal three-tier web application.",
  "nodes": [
    {"id": "client", "data": {"title": "Browser", "content": "Single-page application"}},
    {"id": "api", "data": {"title": "API Server", "content": "Handles requests from the client"}},
    {"id": "db", "data": {"title": "Database", "content": "Stores application state"}}
  ],
  "edges": [
    {"id": "client-api", "source": "client", "target": "api", "label": "HTTPS"},
    {"id": "api-db", "source": "api", "target": "db", "label": "SQL"}
  ],
  "suggestions": ["Add a cache between the API server and the database."]
}`, nil
}
