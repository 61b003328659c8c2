package scaffold

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"text/template"
)

//go:embed all:templates
var builtinFS embed.FS

// templateExt marks resources that are executed with text/template.
// Anything else is copied byte for byte.
const templateExt = ".tmpl"

// RenderData holds the variables available to boilerplate templates.
type RenderData struct {
	Project     string            // project root name
	ProductName string            // human-readable product name
	Description string            // project description
	Version     string            // application version from the manifest
	Vars        map[string]string // free-form blueprint variables
}

// Renderer resolves template resources by name. Sources are searched in
// order; the built-in set is always searched last.
type Renderer struct {
	sources []fs.FS
}

// NewRenderer returns a Renderer that looks in extra before the built-in
// templates. Passing no sources yields the built-in set only.
func NewRenderer(extra ...fs.FS) *Renderer {
	builtin, err := fs.Sub(builtinFS, "templates")
	if err != nil {
		// The embed directive guarantees the directory exists.
		panic(err)
	}
	sources := append(append([]fs.FS{}, extra...), builtin)
	return &Renderer{sources: sources}
}

// Render produces the content for the template resource name.
func (r *Renderer) Render(name string, data RenderData) ([]byte, error) {
	raw, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(name, templateExt) {
		return raw, nil
	}

	tmpl, err := template.New(path.Base(name)).Option("missingkey=error").Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Names lists the built-in template resources.
func Names() ([]string, error) {
	var names []string
	err := fs.WalkDir(builtinFS, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			names = append(names, strings.TrimPrefix(p, "templates/"))
		}
		return nil
	})
	return names, err
}

func (r *Renderer) lookup(name string) ([]byte, error) {
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("invalid template name %q", name)
	}
	for _, src := range r.sources {
		data, err := fs.ReadFile(src, name)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading template %s: %w", name, err)
		}
	}
	return nil, fmt.Errorf("template %q not found", name)
}
