package provider

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestMockDispatcher(t *testing.T) {
	d := NewMockDispatcher()
	if err := d.Configure(Groq, "anything"); err != nil {
		t.Fatal(err)
	}

	reply, err := d.Send(context.Background(), Groq, "prompt", "")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(reply, "Sample Web Application") {
		t.Errorf("unexpected canned reply: %q", reply)
	}

	// The canned payload must be parseable JSON so the full pipeline can run
	// on it without falling back.
	var payload map[string]any
	if err := json.Unmarshal([]byte(reply), &payload); err != nil {
		t.Fatalf("canned payload is not valid JSON: %v", err)
	}
	if nodes, ok := payload["nodes"].([]any); !ok || len(nodes) != 3 {
		t.Errorf("canned payload nodes = %v", payload["nodes"])
	}
}
