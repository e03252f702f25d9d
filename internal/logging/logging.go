package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/eugenenazirov/llm-council/internal/config"
)

// New creates a production-ready structured logger configured for JSON output
// at the given level ("debug", "info", "warn", "error"). An empty level means info.
func New(level string) (*zap.Logger, error) {
	lvl := zapcore.InfoLevel
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("parse log level %q: %w", level, err)
		}
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "json"
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.StacktraceKey = "stacktrace"
	cfg.DisableStacktrace = false

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

// ConfigFields renders the redacted council configuration as log fields.
func ConfigFields(d config.Description) []zap.Field {
	fields := []zap.Field{
		zap.Bool("api_key_configured", d.APIKeyConfigured),
		zap.Strings("council_models", d.CouncilModels),
		zap.String("chairman_model", d.ChairmanModel),
		zap.Bool("chairman_in_council", d.ChairmanInCouncil),
		zap.String("api_url", d.APIURL),
		zap.String("data_dir", d.DataDir),
	}
	if d.ReasoningEffort != nil {
		fields = append(fields, zap.String("reasoning_effort", *d.ReasoningEffort))
	}
	return fields
}
