package gotemplate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"sync"
	"unicode"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-formflow/pkg/render/template"
)

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	layers    []fs.FS
	extension string
	globals   map[string]any
}

// WithBaseDir adds a directory on disk as a template source.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		if dir = strings.TrimSpace(dir); dir != "" {
			cfg.layers = append(cfg.layers, os.DirFS(dir))
		}
	}
}

// WithFS adds files as a template source. Sources are searched in the order
// they were added, so an earlier source overrides templates of a later one.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.layers = append(cfg.layers, files)
		}
	}
}

// WithExtension overrides the extension appended to template names.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		cfg.extension = ext
	}
}

// WithGlobalData seeds values visible to every template.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		if len(data) == 0 {
			return
		}
		if cfg.globals == nil {
			cfg.globals = make(map[string]any, len(data))
		}
		for key, value := range data {
			cfg.globals[key] = value
		}
	}
}

// Engine implements template.TemplateRenderer on top of a pongo2 template set.
// Compiled templates are cached by path.
type Engine struct {
	mu    sync.RWMutex
	set   *pongo2.TemplateSet
	cache map[string]*pongo2.Template
	ext   string
}

var _ template.TemplateRenderer = (*Engine)(nil)

var registerFilters sync.Once

// New builds an engine over the configured template sources.
func New(options ...Option) (*Engine, error) {
	cfg := &config{extension: ".tmpl"}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}
	if len(cfg.layers) == 0 {
		return nil, errors.New("gotemplate: need to provide either base dir or fs.FS")
	}

	loaders := make([]pongo2.TemplateLoader, 0, len(cfg.layers))
	for _, layer := range cfg.layers {
		loaders = append(loaders, pongo2.NewFSLoader(layer))
	}
	registerFilters.Do(func() {
		for name, fn := range map[string]pongo2.FilterFunction{"trim": filterTrim, "slug": filterSlug} {
			if !pongo2.FilterExists(name) {
				_ = pongo2.RegisterFilter(name, fn)
			}
		}
	})

	engine := &Engine{
		set:   pongo2.NewSet("formflow", loaders...),
		cache: make(map[string]*pongo2.Template),
		ext:   cfg.extension,
	}
	if err := engine.GlobalContext(cfg.globals); err != nil {
		return nil, fmt.Errorf("gotemplate: apply global data: %w", err)
	}
	return engine, nil
}

// Render executes a named template, or inline content when name looks like
// template source.
func (e *Engine) Render(name string, data any, out ...io.Writer) (string, error) {
	if strings.Contains(name, "{{") || strings.Contains(name, "{%") {
		return e.RenderString(name, data, out...)
	}
	if !strings.HasSuffix(name, e.ext) {
		name += e.ext
	}
	tmpl, err := e.lookup(name)
	if err != nil {
		return "", err
	}
	return e.execute(tmpl, data, fmt.Sprintf("template %q", name), out)
}

// RenderString parses and executes inline template content.
func (e *Engine) RenderString(content string, data any, out ...io.Writer) (string, error) {
	tmpl, err := e.set.FromString(content)
	if err != nil {
		return "", fmt.Errorf("gotemplate: parse template string: %w", err)
	}
	return e.execute(tmpl, data, "template string", out)
}

// GlobalContext merges data into the globals visible to every template.
func (e *Engine) GlobalContext(data any) error {
	if data == nil {
		return nil
	}
	globals, err := toContext(data)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.set.Globals == nil {
		e.set.Globals = make(pongo2.Context, len(globals))
	}
	e.set.Globals.Update(globals)
	return nil
}

func (e *Engine) execute(tmpl *pongo2.Template, data any, label string, out []io.Writer) (string, error) {
	ctx, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: convert data: %w", err)
	}

	var buf bytes.Buffer
	e.mu.RLock()
	err = tmpl.ExecuteWriter(ctx, &buf)
	e.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("gotemplate: execute %s: %w", label, err)
	}

	rendered := buf.String()
	for _, w := range out {
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

func (e *Engine) lookup(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.cache[path]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.cache[path]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load template %q: %w", path, err)
	}
	e.cache[path] = tmpl
	return tmpl, nil
}

// toContext flattens data into plain maps, slices and scalars through its
// JSON form so templates see the same keys the json tags declare. Numbers
// arrive as float64.
func toContext(data any) (pongo2.Context, error) {
	if data == nil {
		return pongo2.Context{}, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	ctx := pongo2.Context{}
	if err := json.Unmarshal(raw, &ctx); err != nil {
		return nil, fmt.Errorf("template data must be an object: %w", err)
	}
	return ctx, nil
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterSlug turns arbitrary text into a lowercase token usable in element
// ids: runs of anything but letters and digits collapse to a single dash.
func filterSlug(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	var b strings.Builder
	dash := false
	for _, r := range strings.TrimSpace(in.String()) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return pongo2.AsValue(strings.TrimSuffix(b.String(), "-")), nil
}
