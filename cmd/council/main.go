package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/llm-council/internal/application"
	"github.com/eugenenazirov/llm-council/internal/config"
	"github.com/eugenenazirov/llm-council/internal/envfile"
	"github.com/eugenenazirov/llm-council/internal/logging"
)

const (
	formatYAML = "yaml"
	formatJSON = "json"
)

var signalNotify = signal.Notify

func main() {
	kingpinApp := kingpin.New("council", "LLM Council - resolves the council, chairman and reasoning settings from the environment")
	envFile := kingpinApp.Flag("env-file", "Env file to load, searched from the working directory upwards").Default(envfile.DefaultName).String()
	logLevel := kingpinApp.Flag("log-level", "Log level").Default("info").Enum("debug", "info", "warn", "error")

	showCmd := kingpinApp.Command("show", "Print the resolved configuration").Default()
	format := showCmd.Flag("format", "Output format").Default(formatYAML).Enum(formatYAML, formatJSON)

	serveCmd := kingpinApp.Command("serve", "Serve the resolved configuration over HTTP")
	configFile := serveCmd.Flag("config", "Path to YAML server configuration file").String()
	port := serveCmd.Flag("port", "HTTP port exposed by the service").String()
	rateLimitRPSFlag := serveCmd.Flag("rate-limit-rps", "Requests per second allowed (set 0 to disable)").Default("-1").Float64()
	rateLimitBurstFlag := serveCmd.Flag("rate-limit-burst", "Burst capacity for rate limiter (set 0 to disable)").Default("-1").Int()

	command := kingpin.MustParse(kingpinApp.Parse(os.Args[1:]))

	logger, err := logging.New(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	path, err := envfile.Autoload(*envFile)
	if err != nil {
		logger.Fatal("failed to load env file", zap.Error(err))
	}
	if path != "" {
		logger.Debug("env file loaded", zap.String("path", path))
	}

	council := config.FromEnv()

	switch command {
	case showCmd.FullCommand():
		if err := printDescription(os.Stdout, config.Describe(council), *format); err != nil {
			logger.Fatal("failed to print configuration", zap.Error(err))
		}

	case serveCmd.FullCommand():
		overrides := &config.CLIOverrides{
			ConfigFile: *configFile,
		}
		if *port != "" {
			overrides.Port = port
		}
		if *rateLimitRPSFlag >= 0 {
			overrides.RateLimitRPS = rateLimitRPSFlag
		}
		if *rateLimitBurstFlag >= 0 {
			overrides.RateLimitBurst = rateLimitBurstFlag
		}

		if err := serve(council, overrides, logger); err != nil {
			logger.Fatal("failed to serve", zap.Error(err))
		}
	}
}

// serve starts the diagnostics server and blocks until a shutdown signal
// arrives.
func serve(council config.Config, overrides *config.CLIOverrides, logger *zap.Logger) error {
	serverCfg, err := config.LoadServer(overrides)
	if err != nil {
		return fmt.Errorf("load server configuration: %w", err)
	}

	app := application.New(council, serverCfg, logger)
	if err := app.Start(); err != nil {
		return fmt.Errorf("start server: %w", err)
	}

	shutdown(app.Server(), serverCfg.ShutdownGracePeriod, logger)
	return nil
}

// printDescription writes d to w in the requested format.
func printDescription(w io.Writer, d config.Description, format string) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	case formatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}
