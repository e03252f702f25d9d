package config

import (
	"os"
	"strings"

	"github.com/eugenenazirov/llm-council/internal/modellist"
)

// Environment variables read by Resolve.
const (
	EnvAPIKey          = "OPENROUTER_API_KEY"
	EnvCouncilModels   = "COUNCIL_MODELS"
	EnvChairmanModel   = "CHAIRMAN_MODEL"
	EnvReasoningEffort = "REASONING_EFFORT"
)

const (
	// DefaultReasoningEffort is used when REASONING_EFFORT is unset or empty.
	DefaultReasoningEffort = "medium"
	// OpenRouterAPIURL is the chat completions endpoint used for every model.
	OpenRouterAPIURL = "https://openrouter.ai/api/v1/chat/completions"
	// DataDir is where conversations are persisted, relative to the working directory.
	DataDir = "data/conversations"
)

var defaultCouncilModels = []string{
	"anthropic/claude-haiku-4.5",
	"google/gemini-3-flash-preview",
	"openai/gpt-5-mini",
	"x-ai/grok-4.1-fast",
}

// Config is the resolved council configuration. It is computed once and must
// not be modified afterwards; it is safe to share between goroutines.
type Config struct {
	// APIKey is nil when OPENROUTER_API_KEY is not set.
	APIKey        *string
	CouncilModels []string
	ChairmanModel string
	// ReasoningEffort is nil when no effort hint should be sent.
	ReasoningEffort *string
	APIURL          string
	DataDir         string
}

// Lookup retrieves the value of an environment-style key. The boolean reports
// whether the key is present. os.LookupEnv satisfies it.
type Lookup func(key string) (string, bool)

// MapLookup returns a Lookup backed by a fixed set of values.
func MapLookup(values map[string]string) Lookup {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

// DefaultCouncilModels returns a copy of the built-in council.
func DefaultCouncilModels() []string {
	out := make([]string, len(defaultCouncilModels))
	copy(out, defaultCouncilModels)
	return out
}

// FromEnv resolves the configuration from the process environment. Any env
// file must already have been loaded.
func FromEnv() Config {
	return Resolve(os.LookupEnv)
}

// Resolve builds the configuration from lookup. Each value depends only on the
// ones resolved before it.
func Resolve(lookup Lookup) Config {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	models := resolveCouncilModels(lookup(EnvCouncilModels))

	return Config{
		APIKey:          resolveAPIKey(lookup(EnvAPIKey)),
		CouncilModels:   models,
		ChairmanModel:   resolveChairmanModel(models, lookupString(lookup, EnvChairmanModel)),
		ReasoningEffort: resolveReasoningEffort(lookupString(lookup, EnvReasoningEffort)),
		APIURL:          OpenRouterAPIURL,
		DataDir:         DataDir,
	}
}

func lookupString(lookup Lookup, key string) string {
	v, _ := lookup(key)
	return v
}

// resolveAPIKey keeps the credential as-is. A set but empty variable is still
// a present value.
func resolveAPIKey(raw string, ok bool) *string {
	if !ok {
		return nil
	}
	return &raw
}

func resolveCouncilModels(raw string, ok bool) []string {
	if models := modellist.ParseOptional(raw, ok); len(models) > 0 {
		return models
	}
	return DefaultCouncilModels()
}

// resolveChairmanModel accepts any non-empty override, including models that
// are not council members.
func resolveChairmanModel(models []string, override string) string {
	if override != "" {
		return override
	}
	if len(models) == 0 {
		return defaultCouncilModels[0]
	}
	return models[0]
}

func resolveReasoningEffort(raw string) *string {
	if raw == "" {
		raw = DefaultReasoningEffort
	}
	effort := strings.ToLower(strings.TrimSpace(raw))
	if effort == "" {
		return nil
	}
	return &effort
}
