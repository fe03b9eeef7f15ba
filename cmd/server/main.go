// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/tomtom215/allocarte/docs" // Import generated swagger docs
	"github.com/tomtom215/allocarte/internal/api"
	"github.com/tomtom215/allocarte/internal/auth"
	"github.com/tomtom215/allocarte/internal/authz"
	"github.com/tomtom215/allocarte/internal/config"
	"github.com/tomtom215/allocarte/internal/database"
	"github.com/tomtom215/allocarte/internal/dataset"
	"github.com/tomtom215/allocarte/internal/logging"
	"github.com/tomtom215/allocarte/internal/supervisor"
	"github.com/tomtom215/allocarte/internal/supervisor/services"
	ws "github.com/tomtom215/allocarte/internal/websocket"
)

// sessionBackend is the session manager plus whatever must be swept and
// closed behind it.
type sessionBackend struct {
	manager auth.SessionManager
	expirer services.Expirer
	closer  io.Closer
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("db_driver", cfg.Database.Driver).
		Str("auth_mode", cfg.Security.AuthMode).
		Str("session_store", cfg.Security.SessionStore).
		Str("dataset_source", cfg.Dataset.Source).
		Msg("Starting Allocarte")

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server stopped with error")
	}
	logging.Info().Msg("Application stopped gracefully")
}

func run(cfg *config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.New(&cfg.Database)
	if err != nil {
		return err
	}
	defer closeLogged("database", db)

	if cfg.Security.SeedDefaultUsers {
		users, err := database.LoadSeedUsers(cfg.Security.SeedUsersFile)
		if err != nil {
			return err
		}
		written, err := database.SeedDefaultUsers(ctx, db, users, false)
		if err != nil {
			return err
		}
		logging.Info().Int("created", written).Msg("Default users seeded")
	}

	sessions, err := newSessionBackend(cfg)
	if err != nil {
		return err
	}
	if sessions.closer != nil {
		defer closeLogged("session store", sessions.closer)
	}

	enforcer, err := authz.NewEnforcer(&authz.EnforcerConfig{
		ModelPath:  cfg.Security.Casbin.ModelPath,
		PolicyPath: cfg.Security.Casbin.PolicyPath,
		CacheSize:  cfg.Security.Casbin.CacheSize,
		CacheTTL:   cfg.Security.Casbin.CacheTTL,
	})
	if err != nil {
		return err
	}

	loader := dataset.NewLoader(dataset.NewSource(cfg.Dataset.Source, cfg.Dataset.Timeout))
	defer closeLogged("dataset loader", loader)

	loadCtx, loadCancel := context.WithTimeout(ctx, cfg.Dataset.Timeout)
	if err := loader.Load(loadCtx); err != nil {
		logging.Error().Err(err).Msg("Initial dataset load failed, serving without data until a reload succeeds")
	}
	loadCancel()

	engines := api.NewEngineRegistry(loader, cfg.Security.EngineCacheSize, cfg.Security.SessionTimeout)
	wsHub := ws.NewHub()

	handler := api.NewHandler(api.HandlerDeps{
		Config:   cfg,
		DB:       db,
		Login:    auth.NewAuthenticator(db),
		Sessions: sessions.manager,
		Enforcer: enforcer,
		Loader:   loader,
		Engines:  engines,
		Hub:      wsHub,
	})

	chiMw := api.NewChiMiddlewareFromSecurity(
		cfg.Security.CORSOrigins,
		cfg.Security.RateLimitReqs,
		cfg.Security.RateLimitWindow,
		cfg.Security.RateLimitDisabled,
	)
	router := api.NewRouter(handler, chiMw)

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}
	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS_ORIGINS=* lets any website call the API with the session cookie; set explicit origins")
	}
	if cfg.Security.SessionStore == "memory" && cfg.Security.AuthMode == string(auth.AuthModeSession) && cfg.IsProduction() {
		logging.Warn().Msg("Sessions are kept in memory and are lost on restart; consider SESSION_STORE=badger")
	}

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		return err
	}

	expirers := map[string]services.Expirer{"engines": engines}
	if sessions.expirer != nil {
		expirers["sessions"] = sessions.expirer
	}
	tree.AddDataService(services.NewCleanupService(5*time.Minute, expirers))
	tree.AddMessagingService(services.NewWebSocketHubService(wsHub))
	tree.AddMessagingService(services.NewDatasetRebindService(loader, wsHub))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	var treeErr error
	for err := range tree.ServeBackground(ctx) {
		if err != nil && !errors.Is(err, context.Canceled) {
			treeErr = err
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport() //nolint:errcheck // report only
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}
	return treeErr
}

func newSessionBackend(cfg *config.Config) (*sessionBackend, error) {
	mode, err := auth.ParseAuthMode(cfg.Security.AuthMode)
	if err != nil {
		return nil, err
	}

	cookie := auth.DefaultCookieConfig()
	cookie.Secure = cfg.Security.CookieSecure
	cookie.TTL = cfg.Security.SessionTimeout

	if mode == auth.AuthModeJWT {
		tokens, err := auth.NewJWTManager(cfg.Security.JWTSecret, cfg.Security.SessionTimeout)
		if err != nil {
			return nil, err
		}
		logging.Info().Msg("JWT session cookies enabled")
		return &sessionBackend{manager: auth.NewTokenSessions(tokens, cookie)}, nil
	}

	if cfg.Security.SessionStore == "badger" {
		store, err := auth.OpenBadgerSessionStore(cfg.Security.SessionStorePath)
		if err != nil {
			return nil, err
		}
		logging.Info().Str("path", cfg.Security.SessionStorePath).Msg("Persistent session store opened")
		return &sessionBackend{
			manager: auth.NewStoreSessions(store, cookie),
			expirer: store,
			closer:  store,
		}, nil
	}

	store := auth.NewMemorySessionStore()
	return &sessionBackend{manager: auth.NewStoreSessions(store, cookie), expirer: store}, nil
}

func closeLogged(name string, c io.Closer) {
	if err := c.Close(); err != nil {
		logging.Error().Err(err).Str("component", name).Msg("Error during shutdown")
	}
}
