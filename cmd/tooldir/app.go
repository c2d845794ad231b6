package main

import (
	"fmt"

	"go.uber.org/zap"

	"tooldir/internal/auth"
	"tooldir/internal/config"
	"tooldir/internal/events"
	"tooldir/internal/logging"
	"tooldir/internal/metrics"
	"tooldir/internal/repository"
	"tooldir/internal/service"
	"tooldir/internal/storage"
)

// app is the set of long-lived components built from the config
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	store   storage.Store
	metrics *metrics.Metrics
	bus     *events.Bus
	repos   *repository.Repositories
	db      *service.DatabaseService
}

// open builds the logger, store and repositories. Callers must close the
// result.
func (o *rootOptions) open() (*app, error) {
	cfg := o.cfg
	log, err := logging.New(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(cfg.StorageOptions())
	if err != nil {
		_ = log.Sync()
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Storage.Backend, err)
	}

	a := &app{
		cfg:     cfg,
		log:     log,
		store:   store,
		metrics: metrics.New(),
		bus:     events.NewBus(),
	}

	opts := []repository.Option{
		repository.WithLogger(log),
		repository.WithMetrics(a.metrics),
		repository.WithBus(a.bus),
		repository.WithPinnedArticles(cfg.Content.PinnedArticles...),
	}
	if cfg.Content.ResetPassword != "" {
		opts = append(opts, repository.WithResetPassword(cfg.Content.ResetPassword))
	}
	if cfg.Auth.BcryptCost > 0 {
		opts = append(opts, repository.WithBcryptCost(cfg.Auth.BcryptCost))
	}
	a.repos = repository.New(store, opts...)
	a.db = service.NewDatabaseService(a.repos, log)
	return a, nil
}

// authenticator builds the session issuer. Without a configured secret a
// random one is used, so tokens do not survive a restart.
func (a *app) authenticator() (*auth.Authenticator, error) {
	secret := a.cfg.Auth.JWTSecret
	if secret == "" {
		var err error
		if secret, err = auth.RandomSecret(); err != nil {
			return nil, err
		}
		a.log.Warn("no auth.jwt_secret configured, using a random secret; sessions end on restart")
	}
	if a.cfg.Auth.AdminPasswordHash == "" {
		a.log.Warn("no auth.admin_password_hash configured, the administrator password is the default",
			zap.String("username", a.cfg.Auth.AdminUsername))
	}
	return auth.New(auth.Config{
		AdminUsername:     a.cfg.Auth.AdminUsername,
		AdminPasswordHash: a.cfg.Auth.AdminPasswordHash,
		Secret:            []byte(secret),
		TTL:               a.cfg.Auth.TokenTTL.Duration(),
	}, a.repos.Makers)
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		a.log.Error("failed to close store", zap.Error(err))
	}
	_ = a.log.Sync()
}
