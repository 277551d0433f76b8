package diagram

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestStyleForFallsBackToContainer(t *testing.T) {
	set := DefaultStyles()

	got := set.For(Type("mindmap"))
	want := set.For(TypeContainer)
	if got != want {
		t.Errorf("unknown type should resolve to container style, got %+v", got)
	}

	if set.For(TypeFlowchart).EdgeType != EdgeStraight {
		t.Errorf("flowchart edge type = %q, want %q", set.For(TypeFlowchart).EdgeType, EdgeStraight)
	}
}

func TestWorkflowLike(t *testing.T) {
	set := DefaultStyles()

	tests := []struct {
		description string
		want        bool
	}{
		{"order fulfillment workflow for a shop", true},
		{"The Process Flow of user onboarding", true},
		{"describe the STEPS to deploy", true},
		{"a sequential pipeline", true},
		{"microservice architecture with a message queue", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := set.WorkflowLike(tt.description); got != tt.want {
			t.Errorf("WorkflowLike(%q) = %v, want %v", tt.description, got, tt.want)
		}
	}
}

func TestEdgeAnimation(t *testing.T) {
	set := DefaultStyles()

	tests := []struct {
		name        string
		typ         Type
		description string
		want        bool
	}{
		{"container with workflow keyword", TypeContainer, "checkout workflow", false},
		{"container without keywords", TypeContainer, "three microservices and a database", true},
		{"flowchart keeps static default", TypeFlowchart, "payment workflow", false},
		{"architecture keeps static default", TypeArchitecture, "cloud setup", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := set.EdgeAnimation(tt.typ, tt.description); got != tt.want {
				t.Errorf("EdgeAnimation(%q, %q) = %v, want %v", tt.typ, tt.description, got, tt.want)
			}
		})
	}
}

func TestLoadStylesMissingFileReturnsDefaults(t *testing.T) {
	set, err := LoadStyles(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadStyles: %v", err)
	}
	if set.For(TypeContainer).Background != DefaultBackground {
		t.Errorf("expected built-in container background, got %q", set.For(TypeContainer).Background)
	}
}

func TestLoadStylesMergesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	content := `types:
  container:
    background: "#fef2f2"
    animated: false
workflow_keywords: [pipeline, runbook]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	set, err := LoadStyles(path)
	if err != nil {
		t.Fatalf("LoadStyles: %v", err)
	}

	container := set.For(TypeContainer)
	if container.Background != "#fef2f2" {
		t.Errorf("background = %q, want overridden #fef2f2", container.Background)
	}
	if container.Animated {
		t.Error("animated should be overridden to false")
	}
	// Untouched fields keep their built-in values.
	if container.EdgeType != EdgeSmoothstep {
		t.Errorf("edge type = %q, want built-in %q", container.EdgeType, EdgeSmoothstep)
	}

	if !set.WorkflowLike("our deploy pipeline") {
		t.Error("replacement keyword list should match 'pipeline'")
	}
	if set.WorkflowLike("checkout workflow") {
		t.Error("built-in keywords should be replaced, not appended")
	}
}

func TestLoadStylesValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown type", "types:\n  mindmap:\n    background: \"#fff\"\n"},
		{"bad edge type", "types:\n  flowchart:\n    edge_type: zigzag\n"},
		{"bad color", "types:\n  container:\n    border: red\n"},
		{"empty keyword list", "workflow_keywords: [\"  \"]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "presets.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadStyles(path); !errors.Is(err, ErrInvalidPreset) {
				t.Errorf("expected ErrInvalidPreset, got %v", err)
			}
		})
	}
}
