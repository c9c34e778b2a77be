package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"

	"github.com/newthinker/tickr/internal/app"
)

//go:embed templates/*
var templateFS embed.FS

// pages lists the page templates, each rendered inside layout.html.
var pages = []string{"index.html"}

// ModelInfoProvider describes the model shown in the page header.
type ModelInfoProvider interface {
	ModelInfo() app.ModelInfo
}

// Handler provides web UI handlers with template rendering
type Handler struct {
	// pageTemplates holds separate template instances for each page
	pageTemplates map[string]*template.Template
	modelInfo     ModelInfoProvider
}

// NewHandler creates a new web handler with templates loaded from the given directory.
// If templatesDir is empty, it falls back to embedded templates.
func NewHandler(templatesDir string) (*Handler, error) {
	if templatesDir == "" {
		return NewHandlerWithFS(TemplateFS())
	}

	pageTemplates := make(map[string]*template.Template)
	for _, page := range pages {
		tmpl, err := template.ParseFiles(
			filepath.Join(templatesDir, "layout.html"),
			filepath.Join(templatesDir, page),
		)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}
		pageTemplates[page] = tmpl
	}

	return &Handler{pageTemplates: pageTemplates}, nil
}

// NewHandlerWithFS creates a new web handler using a custom filesystem.
// This is useful for testing or custom template sources.
func NewHandlerWithFS(fsys fs.FS) (*Handler, error) {
	pageTemplates := make(map[string]*template.Template)

	for _, page := range pages {
		tmpl, err := template.ParseFS(fsys, "layout.html", page)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s from fs: %w", page, err)
		}
		pageTemplates[page] = tmpl
	}

	return &Handler{pageTemplates: pageTemplates}, nil
}

// SetModelInfoProvider sets the source of the header model details.
func (h *Handler) SetModelInfoProvider(p ModelInfoProvider) {
	h.modelInfo = p
}

// HomeData holds data for the chat page template
type HomeData struct {
	Title string
	Model app.ModelInfo
}

// Home renders the chat page
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	data := HomeData{Title: "tickr"}
	if h.modelInfo != nil {
		data.Model = h.modelInfo.ModelInfo()
	}
	h.render(w, "index.html", data)
}

// render executes the specified page template with the given data
func (h *Handler) render(w http.ResponseWriter, page string, data any) {
	tmpl, ok := h.pageTemplates[page]
	if !ok {
		http.Error(w, "template not found: "+page, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout.html", data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// TemplateFS returns the embedded template filesystem for external use.
func TemplateFS() fs.FS {
	subFS, err := fs.Sub(templateFS, "templates")
	if err != nil {
		// This should never happen with valid embed directive
		return templateFS
	}
	return subFS
}
