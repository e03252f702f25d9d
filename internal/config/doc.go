// Package config resolves runtime configuration for the LLM council.
//
// Council settings (credential, council models, chairman, reasoning effort)
// come from environment variables only and are resolved once by Resolve into
// an immutable Config. Resolution never fails: missing or malformed input is
// replaced by defaults, and an absent credential is left for the caller that
// talks to the model backend to report.
//
// Settings for the diagnostics server are loaded separately by LoadServer from
// multiple sources with precedence: CLI flags > Environment variables > YAML
// config > Defaults.
package config
