// Package templates compiles the page, stylesheet and script served at the
// site root. Sources are compiled once and only read afterwards.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"io"
	"io/fs"
	"os"
	"path"
	texttemplate "text/template"

	"github.com/ds124wfegd/jpegify/internal/entity"
)

const (
	Index  = "index.html"
	Style  = "style.css"
	Script = "main.js"

	ContentTypeHTML = "text/html; charset=utf-8"
	ContentTypeCSS  = "text/css; charset=utf-8"
	ContentTypeJS   = "text/javascript; charset=utf-8"
)

//go:embed web
var embedded embed.FS

type executor interface {
	Execute(w io.Writer, data any) error
}

type compiled struct {
	contentType string
	tmpl        executor
}

type Registry struct {
	templates map[string]compiled
}

// Load compiles the sources found in dir, or the embedded ones when dir is empty.
func Load(dir string) (*Registry, error) {
	if dir == "" {
		sub, err := fs.Sub(embedded, "web")
		if err != nil {
			return nil, fmt.Errorf("%w: %v", entity.ErrTemplateCompile, err)
		}
		return New(sub)
	}
	return New(os.DirFS(dir))
}

// New compiles index.html, style.css and main.js from fsys. Any missing or
// invalid source fails the whole registry.
func New(fsys fs.FS) (*Registry, error) {
	r := &Registry{templates: make(map[string]compiled, 3)}

	sources := []struct {
		name        string
		contentType string
	}{
		{Index, ContentTypeHTML},
		{Style, ContentTypeCSS},
		{Script, ContentTypeJS},
	}

	for _, src := range sources {
		raw, err := fs.ReadFile(fsys, src.name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", entity.ErrTemplateCompile, src.name, err)
		}

		tmpl, err := parse(src.name, string(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", entity.ErrTemplateCompile, src.name, err)
		}
		r.templates[src.name] = compiled{contentType: src.contentType, tmpl: tmpl}
	}
	return r, nil
}

func parse(name, source string) (executor, error) {
	if path.Ext(name) == ".html" {
		return htmltemplate.New(name).Option("missingkey=error").Parse(source)
	}
	return texttemplate.New(name).Option("missingkey=error").Parse(source)
}

// Render executes the named template with data. Nothing is returned unless
// the whole document rendered.
func (r *Registry) Render(name string, data any) ([]byte, string, error) {
	t, ok := r.templates[name]
	if !ok {
		return nil, "", fmt.Errorf("%w: %s", entity.ErrTemplateNotFound, name)
	}

	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, data); err != nil {
		return nil, "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), t.contentType, nil
}
