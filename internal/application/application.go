package application

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/eugenenazirov/llm-council/internal/api"
	"github.com/eugenenazirov/llm-council/internal/config"
	"github.com/eugenenazirov/llm-council/internal/logging"
)

// App encapsulates the application dependencies and HTTP server.
type App struct {
	council config.Config
	handler *api.Handler
	router  http.Handler
	logger  *zap.Logger
	server  *http.Server
}

// New wires the diagnostics server for the resolved council configuration.
// An incomplete council configuration is logged, never rejected.
func New(council config.Config, serverCfg config.ServerConfig, logger *zap.Logger) *App {
	description := config.Describe(council)
	logger.Info("council configuration resolved", logging.ConfigFields(description)...)
	for _, warning := range description.Warnings {
		logger.Warn(warning)
	}

	handler := api.NewHandler(council)
	apiRouter := api.NewRouter(handler, logger,
		api.WithLogging(serverCfg.EnableRequestLogging),
		api.WithRateLimit(serverCfg.RateLimitRPS, serverCfg.RateLimitBurst),
	)

	return &App{
		council: council,
		handler: handler,
		router:  apiRouter,
		logger:  logger,
		server:  NewServer(serverCfg, BuildRootHandler(apiRouter)),
	}
}

// BuildRootHandler mounts the API handler under /api/ and answers everything
// else with 404.
func BuildRootHandler(apiHandler http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/", apiHandler)
	mux.Handle("/", http.NotFoundHandler())
	return mux
}

// NewServer creates and configures an HTTP server from the provided configuration.
func NewServer(cfg config.ServerConfig, handler http.Handler) *http.Server {
	addr := cfg.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// Start starts the HTTP server in a goroutine and logs the listening address.
func (a *App) Start() error {
	go func() {
		a.logger.Info("server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()
	return nil
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}

// Council returns the configuration the application was built with.
func (a *App) Council() config.Config {
	return a.council
}
