package config

import (
	"fmt"
	"slices"
)

// Description is a redacted, serializable view of a Config. It never carries
// the credential itself.
type Description struct {
	APIKeyConfigured  bool     `json:"apiKeyConfigured" yaml:"api_key_configured"`
	CouncilModels     []string `json:"councilModels" yaml:"council_models"`
	ChairmanModel     string   `json:"chairmanModel" yaml:"chairman_model"`
	ChairmanInCouncil bool     `json:"chairmanInCouncil" yaml:"chairman_in_council"`
	ReasoningEffort   *string  `json:"reasoningEffort" yaml:"reasoning_effort"`
	APIURL            string   `json:"apiUrl" yaml:"api_url"`
	DataDir           string   `json:"dataDir" yaml:"data_dir"`
	Warnings          []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Describe summarizes cfg for display. Incomplete settings are reported as
// warnings, never as errors.
func Describe(cfg Config) Description {
	d := Description{
		APIKeyConfigured:  cfg.APIKey != nil && *cfg.APIKey != "",
		CouncilModels:     slices.Clone(cfg.CouncilModels),
		ChairmanModel:     cfg.ChairmanModel,
		ChairmanInCouncil: slices.Contains(cfg.CouncilModels, cfg.ChairmanModel),
		APIURL:            cfg.APIURL,
		DataDir:           cfg.DataDir,
	}
	if cfg.ReasoningEffort != nil {
		effort := *cfg.ReasoningEffort
		d.ReasoningEffort = &effort
	}

	if !d.APIKeyConfigured {
		d.Warnings = append(d.Warnings, fmt.Sprintf("%s is not set; requests to the model backend will fail", EnvAPIKey))
	}
	if !d.ChairmanInCouncil {
		d.Warnings = append(d.Warnings, fmt.Sprintf("chairman model %q is not a council member", cfg.ChairmanModel))
	}

	return d
}
