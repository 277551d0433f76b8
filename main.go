package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"ai_diagram_studio/config"
	"ai_diagram_studio/diagram"
	"ai_diagram_studio/export"
	"ai_diagram_studio/generator"
	"ai_diagram_studio/icons"
	"ai_diagram_studio/logging"
	"ai_diagram_studio/provider"
	"ai_diagram_studio/server"
)

// mockKeys satisfies generator.KeyStore for --mock runs; the canned backend
// accepts any credential.
type mockKeys struct{}

func (mockKeys) APIKey(provider.ID) string { return "mock" }

func main() {
	configPath := pflag.String("config", "", "path to a TOML config file (default diagram-studio.toml if present)")
	pflag.String("addr", ":8080", "http listen address when --serve")
	pflag.String("icons", "./icons", "directory of icon files served at /icons/")
	pflag.String("styles", "", "path to a YAML style preset file")
	pflag.String("provider", "openrouter", "text backend: openrouter, groq, or gemini")
	pflag.String("model", "", "model override for the chosen backend")
	pflag.String("log", "text", "log format: text or json")
	pflag.Bool("verbose", false, "enable debug logs")

	serve := pflag.Bool("serve", false, "start the web server")
	describe := pflag.String("describe", "", "generate one diagram for this description and exit")
	diagramType := pflag.String("type", "", "diagram type: flowchart, container, or architecture")
	complexity := pflag.String("complexity", "", "complexity: simple, medium, or complex")
	noIcons := pflag.Bool("no-icons", false, "do not offer icons to the model")
	format := pflag.String("format", "json", "output format for --describe: json, mermaid, markdown, or html")
	outPath := pflag.String("out", "", "write the --describe output to this file instead of stdout")
	useMock := pflag.Bool("mock", false, "answer from the built-in canned backend (no API key needed)")
	pflag.Parse()

	if !*serve && *describe == "" {
		fmt.Fprintln(os.Stderr, "either --serve or --describe is required")
		pflag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(pflag.CommandLine, *configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	if cfg.Log == "json" {
		logging.SetJSONOutput(level)
	} else {
		logging.SetLevel(level)
	}

	styles, err := diagram.LoadStyles(cfg.StyleFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	catalog := icons.NewCatalog(cfg.IconDir)

	var dispatcher generator.Dispatcher = provider.NewDispatcher()
	var keys generator.KeyStore = cfg
	if *useMock {
		dispatcher = provider.NewMockDispatcher()
		keys = mockKeys{}
	}

	svc, err := generator.NewService(dispatcher, keys, catalog, styles)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *serve {
		runServe(cfg, svc, catalog)
		return
	}
	runDescribe(cfg, svc, *describe, *diagramType, *complexity, !*noIcons, *format, *outPath)
}

// runServe blocks until the process is signalled to stop.
func runServe(cfg *config.Config, svc *generator.Service, catalog *icons.Catalog) {
	srv, err := server.New(svc, catalog, cfg.IconDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := catalog.Watch(ctx); err != nil {
		logging.Warn("icon directory not watched", "path", cfg.IconDir, "error", err)
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second, // must outlast one upstream model call
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logging.Info("shutting down")
		cancel()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logging.Info("starting web server", "addr", cfg.Addr, "provider", cfg.Provider)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runDescribe generates a single diagram and writes it to stdout or --out.
func runDescribe(cfg *config.Config, svc *generator.Service, description, diagramType, complexity string, withIcons bool, format, outPath string) {
	opts := generator.DefaultOptions()
	if diagramType != "" {
		opts.DiagramType = diagram.Type(diagramType)
	}
	if complexity != "" {
		opts.Complexity = generator.Complexity(complexity)
	}
	opts.IncludeIcons = withIcons

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	graph, err := svc.Generate(ctx, generator.Request{
		Description: description,
		Provider:    provider.ID(cfg.Provider),
		Model:       cfg.Model,
		Options:     opts,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var text string
	switch format {
	case "json":
		buf, err := json.MarshalIndent(graph, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		text = string(buf) + "\n"
	case "mermaid":
		text = export.Mermaid(graph, nil)
	case "markdown":
		text = export.Markdown(graph)
	case "html":
		text, err = export.HTML(graph)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown format %q (want json, mermaid, markdown, or html)\n", format)
		os.Exit(1)
	}

	if outPath != "" {
		if err := os.WriteFile(outPath, []byte(text), 0o644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}
	fmt.Print(text)
}
