package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"task-manager/internal/api"
	"task-manager/internal/config"
	"task-manager/internal/services"
	"task-manager/internal/store"
)

// App holds the wired server: store, services and HTTP router
type App struct {
	config *config.Config
	logger zerolog.Logger
	store  store.Store
	router *gin.Engine
}

// NewApp opens the configured store and wires the services behind the router
func NewApp(cfg *config.Config, logger zerolog.Logger) (*App, error) {
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	s, err := config.CreateStore(cfg, logger)
	if err != nil {
		return nil, err
	}

	container, err := services.NewServiceContainer(s, cfg, logger)
	if err != nil {
		s.Close()
		return nil, err
	}

	httpLogger := logger.With().Str("component", "http").Logger()
	handler := api.New(httpLogger, api.NewAuthenticator(cfg.Auth), container)

	return &App{
		config: cfg,
		logger: logger,
		store:  s,
		router: api.NewRouter(httpLogger, handler),
	}, nil
}

// Handler returns the HTTP handler serving the API
func (a *App) Handler() http.Handler {
	return a.router
}

// Close releases the store
func (a *App) Close() error {
	return a.store.Close()
}

// Serve listens until ctx is cancelled, then shuts the server down gracefully
func (a *App) Serve(ctx context.Context) error {
	httpCfg := a.config.HTTP
	server := &http.Server{
		Addr:         net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler:      a.router,
		ReadTimeout:  httpCfg.ReadTimeout,
		WriteTimeout: httpCfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen and serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info().Msg("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	a.logger.Info().Msg("shut down http server")
	return nil
}
