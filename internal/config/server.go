package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joeshaw/envdecode"
	"gopkg.in/yaml.v3"
)

const (
	defaultPort           = "8080"
	defaultRateLimitRPS   = 25.0
	defaultRateLimitBurst = 50
)

// ServerConfig holds settings for the diagnostics HTTP server.
type ServerConfig struct {
	Port                 string        `env:"PORT" validate:"required"`
	ShutdownGracePeriod  time.Duration `env:"SHUTDOWN_GRACE_PERIOD" validate:"gte=0"`
	ReadHeaderTimeout    time.Duration `env:"READ_HEADER_TIMEOUT" validate:"gt=0"`
	WriteTimeout         time.Duration `env:"WRITE_TIMEOUT" validate:"gt=0"`
	IdleTimeout          time.Duration `env:"IDLE_TIMEOUT" validate:"gt=0"`
	EnableRequestLogging bool          `env:"ENABLE_REQUEST_LOGGING"`
	RateLimitRPS         float64       `env:"RATE_LIMIT_RPS" validate:"gte=0"`
	RateLimitBurst       int           `env:"RATE_LIMIT_BURST" validate:"gte=0"`
}

// yamlServerConfig represents the YAML configuration file structure.
type yamlServerConfig struct {
	Port                 string        `yaml:"port"`
	ShutdownGracePeriod  string        `yaml:"shutdown_grace_period"`
	ReadHeaderTimeout    string        `yaml:"read_header_timeout"`
	WriteTimeout         string        `yaml:"write_timeout"`
	IdleTimeout          string        `yaml:"idle_timeout"`
	EnableRequestLogging *bool         `yaml:"enable_request_logging"`
	RateLimit            yamlRateLimit `yaml:"rate_limit"`
}

// yamlRateLimit represents the rate limit section in YAML.
type yamlRateLimit struct {
	RPS   *float64 `yaml:"rps"`
	Burst *int     `yaml:"burst"`
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	ConfigFile     string
	Port           *string
	RateLimitRPS   *float64
	RateLimitBurst *int
}

var validate = validator.New()

// LoadServer extracts server settings from multiple sources with precedence:
// CLI flags > Environment variables > YAML config > Defaults
func LoadServer(overrides *CLIOverrides) (ServerConfig, error) {
	cfg := defaultServerConfig()

	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return ServerConfig{}, fmt.Errorf("load YAML config: %w", err)
		}
		if err := applyYAMLConfig(&cfg, yamlCfg); err != nil {
			return ServerConfig{}, fmt.Errorf("apply YAML config: %w", err)
		}
	}

	if err := applyEnvConfig(&cfg); err != nil {
		return ServerConfig{}, fmt.Errorf("decode environment: %w", err)
	}

	if overrides != nil {
		applyCLIOverrides(&cfg, overrides)
	}

	if err := validateServerConfig(cfg); err != nil {
		return ServerConfig{}, err
	}

	return cfg, nil
}

func defaultServerConfig() ServerConfig {
	return ServerConfig{
		Port:                 defaultPort,
		ShutdownGracePeriod:  10 * time.Second,
		ReadHeaderTimeout:    5 * time.Second,
		WriteTimeout:         15 * time.Second,
		IdleTimeout:          60 * time.Second,
		EnableRequestLogging: true,
		RateLimitRPS:         defaultRateLimitRPS,
		RateLimitBurst:       defaultRateLimitBurst,
	}
}

func loadFromFile(path string) (*yamlServerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg yamlServerConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

func applyYAMLConfig(cfg *ServerConfig, yamlCfg *yamlServerConfig) error {
	if yamlCfg.Port != "" {
		cfg.Port = yamlCfg.Port
	}

	durations := []struct {
		name  string
		raw   string
		field *time.Duration
	}{
		{"shutdown_grace_period", yamlCfg.ShutdownGracePeriod, &cfg.ShutdownGracePeriod},
		{"read_header_timeout", yamlCfg.ReadHeaderTimeout, &cfg.ReadHeaderTimeout},
		{"write_timeout", yamlCfg.WriteTimeout, &cfg.WriteTimeout},
		{"idle_timeout", yamlCfg.IdleTimeout, &cfg.IdleTimeout},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		value, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("%s: %w", d.name, err)
		}
		*d.field = value
	}

	if yamlCfg.EnableRequestLogging != nil {
		cfg.EnableRequestLogging = *yamlCfg.EnableRequestLogging
	}
	if yamlCfg.RateLimit.RPS != nil {
		cfg.RateLimitRPS = *yamlCfg.RateLimit.RPS
	}
	if yamlCfg.RateLimit.Burst != nil {
		cfg.RateLimitBurst = *yamlCfg.RateLimit.Burst
	}

	return nil
}

// applyEnvConfig decodes environment variables over cfg. Unset variables leave
// the current values untouched; malformed values are errors.
func applyEnvConfig(cfg *ServerConfig) error {
	err := envdecode.StrictDecode(cfg)
	if err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return err
	}
	cfg.Port = strings.TrimSpace(cfg.Port)
	return nil
}

func applyCLIOverrides(cfg *ServerConfig, overrides *CLIOverrides) {
	if overrides.Port != nil && *overrides.Port != "" {
		cfg.Port = *overrides.Port
	}

	if overrides.RateLimitRPS != nil && *overrides.RateLimitRPS >= 0 {
		cfg.RateLimitRPS = *overrides.RateLimitRPS
	}

	if overrides.RateLimitBurst != nil && *overrides.RateLimitBurst >= 0 {
		cfg.RateLimitBurst = *overrides.RateLimitBurst
	}
}

func validateServerConfig(cfg ServerConfig) error {
	if err := validate.Struct(cfg); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			fields := make([]string, 0, len(ve))
			for _, fe := range ve {
				fields = append(fields, fmt.Sprintf("%s %s", fe.Field(), fe.ActualTag()))
			}
			return fmt.Errorf("invalid server config: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("invalid server config: %w", err)
	}
	return nil
}
