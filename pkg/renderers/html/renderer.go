package html

import (
	"context"
	"fmt"
	"io/fs"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/render"
	rendertemplate "github.com/goliatone/go-formflow/pkg/render/template"
	"github.com/goliatone/go-formflow/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formflow/pkg/widgets"
)

// Name is the registry name of this renderer.
const Name = "html"

// DefaultTitle is used for pages that have no form title yet.
const DefaultTitle = "Dynamic Form"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateDir      string
	templateRenderer rendertemplate.TemplateRenderer
	widgets          *widgets.Registry
	stylesheets      []string
	inlineStyles     bool
	title            string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must keep the templates/ layout of TemplatesFS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk laid out like
// TemplatesFS. Templates missing from the directory fall back to the bundle.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.templateDir = strings.TrimSpace(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithWidgetRegistry overrides how fields map to controls.
func WithWidgetRegistry(reg *widgets.Registry) Option {
	return func(cfg *config) {
		cfg.widgets = reg
	}
}

// WithStylesheet links an external stylesheet from every page.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(href); trimmed != "" {
			cfg.stylesheets = append(cfg.stylesheets, trimmed)
		}
	}
}

// WithDefaultStyles inlines the bundled stylesheet into every page.
func WithDefaultStyles() Option {
	return func(cfg *config) {
		cfg.inlineStyles = true
	}
}

// WithTitle sets the page title used by the login page.
func WithTitle(title string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(title); trimmed != "" {
			cfg.title = trimmed
		}
	}
}

// Renderer renders form sections and the surrounding login and completion
// pages as standalone HTML documents.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	cfg       config
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), title: DefaultTitle}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	// Values shared by every page live in the engine globals under "site".
	globals := map[string]any{"site": cfg.site()}
	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithBaseDir(cfg.templateDir),
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
			gotemplate.WithGlobalData(globals),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	} else if err := renderer.GlobalContext(globals); err != nil {
		return nil, fmt.Errorf("html renderer: apply site globals: %w", err)
	}

	return &Renderer{templates: renderer, cfg: cfg}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// RenderSection renders the active section as a full page.
func (r *Renderer) RenderSection(_ context.Context, form model.FormStructure, options render.RenderOptions) ([]byte, error) {
	view, err := render.BuildView(form, options,
		render.WithWidgetRegistry(r.cfg.widgets),
		render.WithSanitizer(SanitizeText),
	)
	if err != nil {
		return nil, fmt.Errorf("html renderer: %w", err)
	}
	title := view.FormTitle
	if title == "" {
		title = r.cfg.title
	}
	return r.execute("templates/form", map[string]any{
		"page": r.page(title, options.Theme),
		"view": view,
	})
}

// LoginView is the data behind the login page.
type LoginView struct {
	Action     string
	RollNumber string
	Name       string
	Errors     []string
	Notices    []string
	Hidden     map[string]string
	Theme      *theme.RendererConfig
}

// RenderLogin renders the roll number and name prompt.
func (r *Renderer) RenderLogin(_ context.Context, login LoginView) ([]byte, error) {
	return r.execute("templates/login", map[string]any{
		"page": r.page(r.cfg.title, login.Theme),
		"login": map[string]any{
			"action":      login.Action,
			"roll_number": login.RollNumber,
			"name":        login.Name,
			"errors":      render.MergeFormErrors(login.Errors),
			"notices":     render.MergeFormErrors(login.Notices),
			"hidden":      render.SortedHiddenFields(login.Hidden),
		},
	})
}

// DoneView is the data behind the post-submission summary page.
type DoneView struct {
	Form         model.FormStructure
	Values       model.Values
	LogoutAction string
	Errors       []string
	Notices      []string
	Hidden       map[string]string
	Theme        *theme.RendererConfig
}

type summaryEntry struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// RenderDone renders the submitted values in form order.
func (r *Renderer) RenderDone(_ context.Context, done DoneView) ([]byte, error) {
	var entries []summaryEntry
	for _, section := range done.Form.Sections {
		for _, field := range section.Fields {
			value := done.Values.Get(field)
			shown := value.String()
			if field.Type.HasOptions() {
				shown = optionLabels(field, value)
			}
			entries = append(entries, summaryEntry{
				ID:    field.FieldID,
				Label: SanitizeText(field.Label),
				Value: shown,
			})
		}
	}
	title := SanitizeText(done.Form.FormTitle)
	if title == "" {
		title = r.cfg.title
	}
	return r.execute("templates/done", map[string]any{
		"page": r.page(title, done.Theme),
		"done": map[string]any{
			"form_title":    title,
			"entries":       entries,
			"logout_action": done.LogoutAction,
			"errors":        render.MergeFormErrors(done.Errors),
			"notices":       render.MergeFormErrors(done.Notices),
			"hidden":        render.SortedHiddenFields(done.Hidden),
		},
	})
}

func optionLabels(field model.FormField, value model.Value) string {
	var labels []string
	for _, opt := range field.Options {
		if value.Contains(opt.Value) {
			labels = append(labels, SanitizeText(opt.Label))
		}
	}
	return strings.Join(labels, ", ")
}

func (cfg config) site() map[string]any {
	site := map[string]any{
		"title":       cfg.title,
		"stylesheets": cfg.stylesheets,
	}
	if cfg.inlineStyles {
		site["inline_css"] = defaultStylesheet()
	}
	return site
}

func (r *Renderer) page(title string, cfg *theme.RendererConfig) map[string]any {
	page := map[string]any{"title": title}
	if cfg != nil {
		page["theme_name"] = cfg.Theme
		page["theme_css"] = render.CSSVarsStyle(cfg.CSSVars)
	}
	return page
}

func (r *Renderer) execute(name string, data map[string]any) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}
	result, err := r.templates.Render(name, data)
	if err != nil {
		return nil, fmt.Errorf("html renderer: render %s: %w", name, err)
	}
	return []byte(result), nil
}
