package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formflow/internal/server"
	"github.com/goliatone/go-formflow/pkg/renderers/html"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the login and form pages over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				a.cfg.Server.Addr = addr
			}
			return a.serve(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}

func (a *app) newServer() (*server.Server, error) {
	renderer, err := html.New(a.htmlOptions()...)
	if err != nil {
		return nil, err
	}
	themeCfg, err := a.theme()
	if err != nil {
		return nil, err
	}
	return server.New(a.client(), renderer,
		server.WithLogger(a.logger),
		server.WithSink(a.sink()),
		server.WithTheme(themeCfg),
		server.WithCookie(a.cfg.Server.CookieName, a.cfg.Server.SecureCookie),
		server.WithSessionTTL(a.cfg.Server.SessionTTL),
	), nil
}

func (a *app) serve(ctx context.Context) error {
	srv, err := a.newServer()
	if err != nil {
		return err
	}
	httpServer := &http.Server{
		Addr:              a.cfg.Server.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("listening", zap.String("addr", httpServer.Addr))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.logger.Info("shutting down")
	return httpServer.Shutdown(shutdownCtx)
}
