// Package view renders the embedded HTML templates. Every page is parsed
// together with layout.html and executed through its "layout" template.
package view

import (
	"bytes"
	"coursehub/internal/models"
	"coursehub/internal/routes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
)

//go:embed templates
var templateFS embed.FS

const layoutFile = "templates/layout.html"

// Page is the data every template receives.
type Page struct {
	Title       string
	CurrentUser string
	Flashes     []models.FlashMessage
	Message     string

	Record  any
	Records any
	Form    any
	Errors  map[string]string
}

type Renderer struct {
	pages map[string]*template.Template
}

func New() (*Renderer, error) {
	layout, err := template.New("layout.html").Funcs(routes.FuncMap()).ParseFS(templateFS, layoutFile)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	pages := make(map[string]*template.Template)
	err = fs.WalkDir(templateFS, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path == layoutFile || !strings.HasSuffix(path, ".html") {
			return nil
		}

		t, err := template.Must(layout.Clone()).ParseFS(templateFS, path)
		if err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}

		name := strings.TrimSuffix(strings.TrimPrefix(path, "templates/"), ".html")
		pages[name] = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Renderer{pages: pages}, nil
}

// Render executes the named page into a buffer and writes it with status.
// Nothing is written when execution fails.
func (v *Renderer) Render(w http.ResponseWriter, status int, name string, page Page) error {
	buf, err := v.Execute(name, page)
	if err != nil {
		return err
	}
	return Write(w, status, buf)
}

// Execute renders the named page without writing it anywhere.
func (v *Renderer) Execute(name string, page Page) (*bytes.Buffer, error) {
	t, ok := v.pages[name]
	if !ok {
		return nil, fmt.Errorf("unknown template %q", name)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", page); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return &buf, nil
}

func Write(w http.ResponseWriter, status int, buf *bytes.Buffer) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
