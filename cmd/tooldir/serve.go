package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tooldir/internal/handler"
	"tooldir/internal/hub"
	"tooldir/internal/watcher"
)

func newServeCmd(o *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				o.cfg.Server.Addr = addr
			}
			return runServe(cmd.Context(), o)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}

func runServe(ctx context.Context, o *rootOptions) error {
	a, err := o.open()
	if err != nil {
		return err
	}
	defer a.close()

	cfg := a.cfg
	a.log.Info("starting tooldir", zap.String("config", o.cfgPath), zap.String("summary", cfg.Summary()))

	authn, err := a.authenticator()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sseHub := hub.New(a.log, a.metrics)
	hubDone := make(chan struct{})
	go func() {
		defer close(hubDone)
		sseHub.Run(ctx, a.bus)
	}()

	watchDone := a.startWatcher(ctx)

	api := handler.New(handler.Config{
		Repos:       a.repos,
		Database:    a.db,
		Auth:        authn,
		Events:      sseHub,
		Metrics:     a.metrics,
		Logger:      a.log,
		CORSOrigins: cfg.Server.CORSOrigins,
	})

	// No WriteTimeout: event streams stay open
	server := &http.Server{
		Addr:        cfg.Server.Addr,
		Handler:     api.Routes(),
		ReadTimeout: cfg.Server.ReadTimeout.Duration(),
		IdleTimeout: 60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		a.log.Info("server listening", zap.String("addr", cfg.Server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		stop()
		<-watchDone
		<-hubDone
		return err
	case <-ctx.Done():
	}

	a.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Duration())
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		a.log.Error("server shutdown error", zap.Error(err))
	}
	<-watchDone
	<-hubDone

	a.log.Info("server stopped")
	return nil
}

// startWatcher re-imports cfg.Import.WatchPath whenever it changes. The
// returned channel closes once the watcher has stopped and any import in
// flight has finished.
func (a *app) startWatcher(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	path := a.cfg.Import.WatchPath
	if path == "" {
		close(done)
		return done
	}

	w := watcher.New(path, func(ctx context.Context, p string) error {
		res, err := a.db.ImportFile(ctx, p)
		if err != nil {
			return err
		}
		a.log.Info("imported watched file", zap.String("path", p), zap.Strings("imported", res.Imported))
		return nil
	}, a.log).WithDebounce(a.cfg.Import.Debounce.Duration())
	go func() {
		defer close(done)
		if err := w.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
			a.log.Error("watcher stopped", zap.Error(err))
		}
	}()
	return done
}
