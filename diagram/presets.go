package diagram

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidPreset is returned when a preset file fails validation.
var ErrInvalidPreset = errors.New("invalid style preset")

// stylePreset is the YAML shape of a single type override. Empty fields keep
// the built-in value.
type stylePreset struct {
	Layout     string `yaml:"layout"`
	NodeRules  string `yaml:"node_rules"`
	EdgeRules  string `yaml:"edge_rules"`
	Background string `yaml:"background"`
	Border     string `yaml:"border"`
	Text       string `yaml:"text"`
	EdgeType   string `yaml:"edge_type"`
	Animated   *bool  `yaml:"animated"`
}

type presetFile struct {
	Types            map[string]stylePreset `yaml:"types"`
	WorkflowKeywords []string               `yaml:"workflow_keywords"`
}

// LoadStyles reads a style preset file and merges it over the built-in
// styles. A missing file is not an error: the defaults are returned so the
// app runs without any preset on disk.
func LoadStyles(path string) (*StyleSet, error) {
	set := DefaultStyles()
	if path == "" {
		return set, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return set, nil
		}
		return nil, fmt.Errorf("reading style presets: %w", err)
	}

	var pf presetFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parsing style presets: %w", err)
	}

	for name, preset := range pf.Types {
		t := Type(name)
		if !t.Valid() {
			return nil, fmt.Errorf("%w: unknown diagram type %q", ErrInvalidPreset, name)
		}
		if err := validatePreset(name, preset); err != nil {
			return nil, err
		}
		set.styles[t] = mergePreset(set.styles[t], preset)
	}

	if len(pf.WorkflowKeywords) > 0 {
		keywords := make([]string, 0, len(pf.WorkflowKeywords))
		for _, kw := range pf.WorkflowKeywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" {
				keywords = append(keywords, kw)
			}
		}
		if len(keywords) == 0 {
			return nil, fmt.Errorf("%w: workflow_keywords must contain at least one keyword", ErrInvalidPreset)
		}
		set.keywords = keywords
	}

	return set, nil
}

func validatePreset(name string, p stylePreset) error {
	if p.EdgeType != "" && !ValidEdgeType(p.EdgeType) {
		return fmt.Errorf("%w: %s.edge_type must be one of straight, smoothstep, bezier; got %q",
			ErrInvalidPreset, name, p.EdgeType)
	}
	for field, value := range map[string]string{
		"background": p.Background,
		"border":     p.Border,
		"text":       p.Text,
	} {
		if value != "" && !strings.HasPrefix(value, "#") {
			return fmt.Errorf("%w: %s.%s must be a #rrggbb color, got %q",
				ErrInvalidPreset, name, field, value)
		}
	}
	return nil
}

func mergePreset(base TypeStyle, p stylePreset) TypeStyle {
	if p.Layout != "" {
		base.Layout = p.Layout
	}
	if p.NodeRules != "" {
		base.NodeRules = p.NodeRules
	}
	if p.EdgeRules != "" {
		base.EdgeRules = p.EdgeRules
	}
	if p.Background != "" {
		base.Background = p.Background
	}
	if p.Border != "" {
		base.Border = p.Border
	}
	if p.Text != "" {
		base.Text = p.Text
	}
	if p.EdgeType != "" {
		base.EdgeType = p.EdgeType
	}
	if p.Animated != nil {
		base.Animated = *p.Animated
	}
	return base
}
