// Package server exposes the generation pipeline over HTTP: JSON endpoints
// for generating, refining, inspecting and exporting diagrams, plus the
// provider and icon listings the canvas UI needs.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"ai_diagram_studio/diagram"
	"ai_diagram_studio/export"
	"ai_diagram_studio/generator"
	"ai_diagram_studio/icons"
	"ai_diagram_studio/inspect"
	"ai_diagram_studio/logging"
	"ai_diagram_studio/provider"
)

// callTimeout bounds each upstream model call made on behalf of a request.
const callTimeout = 60 * time.Second

// Server wires the generation service and icon catalog to HTTP routes.
type Server struct {
	svc     *generator.Service
	icons   *icons.Catalog
	iconDir string
	router  *mux.Router
}

// New builds a server around svc. catalog and iconDir may be zero when no
// icon directory is configured; the icon endpoints then serve empty results.
func New(svc *generator.Service, catalog *icons.Catalog, iconDir string) (*Server, error) {
	if svc == nil {
		return nil, errors.New("generator service required")
	}
	s := &Server{
		svc:     svc,
		icons:   catalog,
		iconDir: iconDir,
		router:  mux.NewRouter(),
	}
	s.setupRoutes()
	return s, nil
}

// Routes returns the handler tree with request-id logging applied.
func (s *Server) Routes() http.Handler {
	return logging.RequestIDMiddleware(s.router)
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/diagram", s.handleGenerate).Methods("POST")
	api.HandleFunc("/refine", s.handleRefine).Methods("POST")
	api.HandleFunc("/inspect", s.handleInspect).Methods("POST")
	api.HandleFunc("/export", s.handleExport).Methods("POST")
	api.HandleFunc("/providers", s.handleProviders).Methods("GET")
	api.HandleFunc("/icons", s.handleIcons).Methods("GET")
	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	if s.iconDir != "" {
		s.router.PathPrefix("/icons/").Handler(
			http.StripPrefix("/icons/", http.FileServer(http.Dir(s.iconDir))))
	}
}

// --- Wire types ---

// generateOptions mirrors generator.Options with pointer booleans so an
// absent includeIcons keeps its default-true instead of decoding to false.
type generateOptions struct {
	DiagramType  string `json:"diagramType"`
	Complexity   string `json:"complexity"`
	IncludeIcons *bool  `json:"includeIcons"`
}

type generateRequest struct {
	Description string           `json:"description"`
	Provider    string           `json:"provider"`
	Model       string           `json:"model"`
	APIKey      string           `json:"apiKey"`
	Options     *generateOptions `json:"options"`
}

func (r generateRequest) toRequest() generator.Request {
	opts := generator.DefaultOptions()
	if r.Options != nil {
		if r.Options.DiagramType != "" {
			opts.DiagramType = diagram.Type(r.Options.DiagramType)
		}
		if r.Options.Complexity != "" {
			opts.Complexity = generator.Complexity(r.Options.Complexity)
		}
		if r.Options.IncludeIcons != nil {
			opts.IncludeIcons = *r.Options.IncludeIcons
		}
	}
	return generator.Request{
		Description: r.Description,
		Provider:    provider.ID(r.Provider),
		Model:       r.Model,
		APIKey:      r.APIKey,
		Options:     opts,
	}
}

type refineRequest struct {
	Description string `json:"description"`
	Provider    string `json:"provider"`
	APIKey      string `json:"apiKey"`
}

type refineResponse struct {
	Questions []string `json:"questions"`
}

type inspectResponse struct {
	inspect.Report
	Advisories []string `json:"advisories,omitempty"`
}

type exportRequest struct {
	Format    string        `json:"format"`
	Direction string        `json:"direction"`
	Graph     diagram.Graph `json:"graph"`
}

type providerInfo struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	DefaultModel string `json:"defaultModel"`
	Configured   bool   `json:"configured"`
}

// --- Handlers ---

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), callTimeout)
	defer cancel()

	graph, err := s.svc.Generate(ctx, req.toRequest())
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	writeJSON(w, graph)
}

func (s *Server) handleRefine(w http.ResponseWriter, r *http.Request) {
	var req refineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), callTimeout)
	defer cancel()

	questions := s.svc.Refine(ctx, req.Description, provider.ID(req.Provider), req.APIKey)
	writeJSON(w, refineResponse{Questions: questions})
}

func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	var g diagram.Graph
	if err := json.NewDecoder(r.Body).Decode(&g); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	report := inspect.Check(g)
	writeJSON(w, inspectResponse{Report: report, Advisories: report.Advisories()})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// The format can ride in the body or as ?format=; the query wins.
	format := req.Format
	if q := r.URL.Query().Get("format"); q != "" {
		format = q
	}

	switch format {
	case "", "mermaid":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, export.Mermaid(req.Graph, &export.MermaidOptions{Direction: req.Direction}))
	case "markdown":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		_, _ = io.WriteString(w, export.Markdown(req.Graph))
	case "html":
		page, err := export.HTML(req.Graph)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = io.WriteString(w, page)
	default:
		http.Error(w, fmt.Sprintf("unknown export format %q", format), http.StatusBadRequest)
	}
}

func (s *Server) handleProviders(w http.ResponseWriter, r *http.Request) {
	infos := provider.All()
	out := make([]providerInfo, 0, len(infos))
	for _, info := range infos {
		out = append(out, providerInfo{
			ID:           string(info.ID),
			Name:         info.Name,
			DefaultModel: info.DefaultModel,
			Configured:   s.svc.HasKey(info.ID),
		})
	}
	writeJSON(w, out)
}

func (s *Server) handleIcons(w http.ResponseWriter, r *http.Request) {
	if s.icons == nil {
		writeJSON(w, []icons.Entry{})
		return
	}
	writeJSON(w, s.icons.Entries())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// --- Helpers ---

// statusFor maps pipeline failures to response codes. Upstream trouble is a
// bad gateway; everything else is the caller's input.
func statusFor(err error) int {
	if errors.Is(err, generator.ErrGenerationFailed) {
		return http.StatusBadGateway
	}
	return http.StatusBadRequest
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
