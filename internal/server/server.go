// Package server exposes the login and multi-section form flow over HTTP.
// Each browser gets a cookie-keyed session holding its login flow and form
// controller; pages are rendered by the html renderer.
package server

import (
	"net/http"
	"time"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-formflow/pkg/renderers/html"
	"github.com/goliatone/go-formflow/pkg/session"
	"github.com/goliatone/go-formflow/pkg/sink"
)

// Form field and route names shared by the handlers and templates.
const (
	CSRFField    = "_csrf"
	SectionField = "section"
	ActionField  = "action"

	ActionNext     = "next"
	ActionPrevious = "previous"
	ActionSubmit   = "submit"

	DefaultCookieName = "formflow_session"
)

// Messages shown as banners.
const (
	NoticeSubmitted      = "Form submitted successfully"
	MessageDeliveryError = "Your answers were saved but could not be delivered"
	MessageStalePage     = "The form changed in another tab; please review this section"
)

// Option customises a Server.
type Option func(*Server)

// WithLogger attaches a zap logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSink sets where submitted forms are delivered.
func WithSink(sk sink.Sink) Option {
	return func(s *Server) {
		if sk != nil {
			s.sink = sk
		}
	}
}

// WithTheme applies design tokens to every page.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(s *Server) {
		s.theme = cfg
	}
}

// WithCookie sets the session cookie name and the Secure attribute.
func WithCookie(name string, secure bool) Option {
	return func(s *Server) {
		if name != "" {
			s.cookieName = name
		}
		s.secureCookie = secure
	}
}

// WithSessionTTL expires idle sessions. Zero keeps them forever.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Server) {
		s.ttl = ttl
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// Server serves the browser flow.
type Server struct {
	service  session.Service
	renderer *html.Renderer
	sink     sink.Sink
	theme    *theme.RendererConfig
	logger   *zap.Logger

	cookieName   string
	secureCookie bool
	ttl          time.Duration
	now          func() time.Time

	sessions *store
	handler  http.Handler
}

// New wires the routes. The service is shared by every session.
func New(service session.Service, renderer *html.Renderer, opts ...Option) *Server {
	s := &Server{
		service:    service,
		renderer:   renderer,
		logger:     zap.NewNop(),
		cookieName: DefaultCookieName,
		now:        time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.sink == nil {
		s.sink = sink.Log(s.logger)
	}
	s.sessions = newStore(s.ttl, s.now, func() *session.Flow {
		return session.NewFlow(s.service, session.WithFlowLogger(s.logger))
	})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("POST /form", s.handleForm)
	mux.HandleFunc("POST /logout", s.handleLogout)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServerFS(html.AssetsFS())))

	s.handler = Chain(mux, Middleware(s.logger)...)
	return s
}

// Middleware is the stack New wraps around its routes. RequestID runs first
// so panic and access logs carry the id.
func Middleware(logger *zap.Logger) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		RequestID(),
		Recovery(logger),
		Logging(logger),
	}
}

// Handler returns the root handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Sessions reports the number of live sessions.
func (s *Server) Sessions() int {
	return s.sessions.len()
}
