// Package config loads application settings from defaults, an optional TOML
// file, environment variables, and command-line flags, in that order of
// increasing priority.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"ai_diagram_studio/provider"
)

// DefaultFile is looked for in the working directory when no explicit config
// path is given.
const DefaultFile = "diagram-studio.toml"

// Config holds all configuration for the application.
type Config struct {
	Addr      string `koanf:"addr"`
	IconDir   string `koanf:"icons"`
	StyleFile string `koanf:"styles"`
	Provider  string `koanf:"provider"`
	Model     string `koanf:"model"`
	Log       string `koanf:"log"`
	Verbose   bool   `koanf:"verbose"`

	Keys Keys `koanf:"keys"`
}

// Keys carries the per-provider API credentials.
type Keys struct {
	OpenRouter string `koanf:"openrouter"`
	Groq       string `koanf:"groq"`
	Gemini     string `koanf:"gemini"`
}

// Load loads configuration from defaults, a config file, environment
// variables (DIAGRAM_STUDIO_ prefix), and flags.
// Priority: Flags > Env > Config File > Defaults.
// An empty path means the optional DefaultFile; an explicit path must exist.
func Load(f *pflag.FlagSet, path string) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"addr":     ":8080",
		"icons":    "./icons",
		"styles":   "",
		"provider": string(provider.OpenRouter),
		"model":    "",
		"log":      "text",
		"verbose":  false,
	}
	if err := k.Load(makeMapProvider(defaults), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		_ = k.Load(file.Provider(DefaultFile), toml.Parser())
	} else if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
	}

	if err := k.Load(env.Provider("DIAGRAM_STUDIO_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(
			strings.TrimPrefix(s, "DIAGRAM_STUDIO_")), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if f != nil {
		if err := k.Load(posflag.Provider(f, ".", k), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Validate checks the fields that must parse before the app can start.
func (c *Config) Validate() error {
	if _, err := provider.ParseID(c.Provider); err != nil {
		return err
	}
	switch c.Log {
	case "text", "json":
	default:
		return fmt.Errorf("log must be text or json, got %q", c.Log)
	}
	return nil
}

// conventionalEnv maps providers to the API-key variables their vendors
// document, used as a fallback when no key is configured.
var conventionalEnv = map[provider.ID]string{
	provider.OpenRouter: "OPENROUTER_API_KEY",
	provider.Groq:       "GROQ_API_KEY",
	provider.Gemini:     "GEMINI_API_KEY",
}

// APIKey returns the credential for a provider: the configured key first,
// then the provider's conventional environment variable. An empty string
// means no credential is available.
func (c *Config) APIKey(id provider.ID) string {
	var key string
	switch id {
	case provider.OpenRouter:
		key = c.Keys.OpenRouter
	case provider.Groq:
		key = c.Keys.Groq
	case provider.Gemini:
		key = c.Keys.Gemini
	}
	if key == "" {
		key = os.Getenv(conventionalEnv[id])
	}
	return key
}

// Helper to use a map as a provider.
type mapProvider struct {
	m map[string]interface{}
}

func makeMapProvider(m map[string]interface{}) *mapProvider {
	return &mapProvider{m: m}
}

func (p *mapProvider) Read() (map[string]interface{}, error) {
	return p.m, nil
}

func (p *mapProvider) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("not implemented")
}
