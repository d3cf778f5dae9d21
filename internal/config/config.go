// Package config loads formflow settings from a YAML file layered over
// built-in defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formflow/pkg/session"
)

// Sink kinds accepted in the sink section.
const (
	SinkLog  = "log"
	SinkHTTP = "http"
	SinkBoth = "both"
)

// Config is the full application configuration.
type Config struct {
	Service   ServiceConfig   `yaml:"service"`
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Sink      SinkConfig      `yaml:"sink"`
	Theme     ThemeConfig     `yaml:"theme"`
	Templates TemplatesConfig `yaml:"templates"`
}

// ServiceConfig points at the remote form service.
type ServiceConfig struct {
	BaseURL      string        `yaml:"base_url"`
	RegisterPath string        `yaml:"register_path"`
	FormPath     string        `yaml:"form_path"`
	Timeout      time.Duration `yaml:"timeout"`
}

// ServerConfig configures the browser flow.
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	CookieName   string        `yaml:"cookie_name"`
	SecureCookie bool          `yaml:"secure_cookie"`
	SessionTTL   time.Duration `yaml:"session_ttl"`
}

// LogConfig selects the zap logger.
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// SinkConfig selects where submissions go.
type SinkConfig struct {
	Kind     string            `yaml:"kind"`
	Endpoint string            `yaml:"endpoint"`
	Headers  map[string]string `yaml:"headers"`
}

// ThemeConfig selects a theme. Manifest points at a go-theme manifest file
// (JSON or YAML); Tokens and Variants are applied on top of it and are enough
// on their own for small themes.
type ThemeConfig struct {
	Name     string                       `yaml:"name"`
	Variant  string                       `yaml:"variant"`
	Manifest string                       `yaml:"manifest"`
	Tokens   map[string]string            `yaml:"tokens"`
	Variants map[string]map[string]string `yaml:"variants"`
}

// TemplatesConfig customises the HTML renderer.
type TemplatesConfig struct {
	Dir          string `yaml:"dir"`
	Stylesheet   string `yaml:"stylesheet"`
	InlineStyles bool   `yaml:"inline_styles"`
	Title        string `yaml:"title"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Service: ServiceConfig{
			BaseURL:      session.DefaultBaseURL,
			RegisterPath: session.DefaultRegisterPath,
			FormPath:     session.DefaultFormPath,
			Timeout:      session.DefaultTimeout,
		},
		Server: ServerConfig{
			Addr:       ":8080",
			CookieName: "formflow_session",
			SessionTTL: 2 * time.Hour,
		},
		Log: LogConfig{
			Level: "info",
		},
		Sink: SinkConfig{
			Kind: SinkLog,
		},
		Templates: TemplatesConfig{
			InlineStyles: true,
			Title:        "Dynamic Form",
		},
	}
}

// Load reads path over the defaults. An empty path yields the defaults.
func Load(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		cfg := Default()
		return cfg, cfg.Validate()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the values the commands depend on.
func (c Config) Validate() error {
	var problems []error
	if u, err := url.Parse(c.Service.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		problems = append(problems, fmt.Errorf("service.base_url %q must be an absolute URL", c.Service.BaseURL))
	}
	if c.Service.Timeout < 0 {
		problems = append(problems, errors.New("service.timeout must not be negative"))
	}
	switch c.Sink.Kind {
	case SinkLog:
	case SinkHTTP, SinkBoth:
		if strings.TrimSpace(c.Sink.Endpoint) == "" {
			problems = append(problems, fmt.Errorf("sink.endpoint is required for sink kind %q", c.Sink.Kind))
		}
	default:
		problems = append(problems, fmt.Errorf("sink.kind %q is not one of log, http, both", c.Sink.Kind))
	}
	if strings.TrimSpace(c.Server.CookieName) == "" {
		problems = append(problems, errors.New("server.cookie_name is required"))
	}
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("config: invalid: %w", errors.Join(problems...))
}
