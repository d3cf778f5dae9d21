package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formflow/internal/config"
	"github.com/goliatone/go-formflow/internal/logging"
	"github.com/goliatone/go-formflow/pkg/render"
	"github.com/goliatone/go-formflow/pkg/renderers/html"
	"github.com/goliatone/go-formflow/pkg/session"
	"github.com/goliatone/go-formflow/pkg/sink"
)

// app carries what every subcommand needs once the root pre-run has loaded
// the configuration.
type app struct {
	configPath string
	logLevel   string

	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "formflow",
		Short:         "Fill dynamic multi-section forms from the form service",
		Long:          `formflow registers a user with the form service, fetches their form and walks it section by section in the browser or the terminal.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		newServeCmd(a),
		newFillCmd(a),
		newRenderCmd(a),
		newCheckCmd(a),
	)
	return root
}

func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	// Logs go to stderr so stdout stays usable for command output.
	logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

func (a *app) client() *session.Client {
	svc := a.cfg.Service
	return session.NewClient(
		session.WithBaseURL(svc.BaseURL),
		session.WithPaths(svc.RegisterPath, svc.FormPath),
		session.WithHTTPClient(&http.Client{Timeout: svc.Timeout}),
		session.WithClientLogger(a.logger),
	)
}

func (a *app) sink() sink.Sink {
	cfg := a.cfg.Sink
	logSink := sink.Log(a.logger)
	if cfg.Kind == config.SinkLog {
		return logSink
	}
	opts := []sink.HTTPOption{sink.WithHTTPClient(&http.Client{Timeout: a.cfg.Service.Timeout})}
	for key, value := range cfg.Headers {
		opts = append(opts, sink.WithHeader(key, value))
	}
	httpSink := sink.HTTP(cfg.Endpoint, opts...)
	if cfg.Kind == config.SinkHTTP {
		return httpSink
	}
	return sink.Multi(logSink, httpSink)
}

func (a *app) theme() (*theme.RendererConfig, error) {
	t := a.cfg.Theme
	src := render.ThemeSource{
		Name:     t.Name,
		Variant:  t.Variant,
		Tokens:   t.Tokens,
		Variants: t.Variants,
	}
	if path := strings.TrimSpace(t.Manifest); path != "" {
		manifest, err := theme.LoadFile(os.DirFS(filepath.Dir(path)), filepath.Base(path))
		if err != nil {
			return nil, fmt.Errorf("theme manifest: %w", err)
		}
		src.Manifest = manifest
	}
	return render.ResolveTheme(src)
}

func (a *app) htmlOptions() []html.Option {
	tpl := a.cfg.Templates
	opts := []html.Option{html.WithTitle(tpl.Title)}
	if strings.TrimSpace(tpl.Dir) != "" {
		opts = append(opts, html.WithTemplatesDir(tpl.Dir))
	}
	if tpl.InlineStyles {
		opts = append(opts, html.WithDefaultStyles())
	}
	if tpl.Stylesheet != "" {
		opts = append(opts, html.WithStylesheet(tpl.Stylesheet))
	}
	return opts
}
