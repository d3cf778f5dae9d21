package tui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/goliatone/go-formflow/pkg/widgets"
)

// Styles holds the lipgloss styles used when printing sections and messages.
type Styles struct {
	Title    lipgloss.Style
	Section  lipgloss.Style
	Muted    lipgloss.Style
	Label    lipgloss.Style
	Required lipgloss.Style
	Error    lipgloss.Style
	Notice   lipgloss.Style
}

// DefaultStyles returns the colored styles used on interactive terminals.
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Section:  lipgloss.NewStyle().Bold(true),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Label:    lipgloss.NewStyle(),
		Required: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Notice:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	}
}

// PlainStyles returns unstyled output, for pipes and tests.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Title:    plain,
		Section:  plain,
		Muted:    plain,
		Label:    plain,
		Required: plain,
		Error:    plain,
		Notice:   plain,
	}
}

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutput sets where the default survey driver prints messages.
func WithOutput(out io.Writer) Option {
	return func(r *Renderer) {
		r.out = out
	}
}

// WithStyles replaces the default styles.
func WithStyles(styles Styles) Option {
	return func(r *Renderer) {
		r.styles = styles
	}
}

// WithWidgetRegistry overrides how fields map to prompts.
func WithWidgetRegistry(reg *widgets.Registry) Option {
	return func(r *Renderer) {
		r.widgets = reg
	}
}

// WithLogger attaches a zap logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}
