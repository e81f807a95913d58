package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ManifestPath string // directory or single file of service manifests
	Format       string // manifest format: "hcl" or "yaml"

	LogFormat string
	LogLevel  string

	// Exactly one action is performed per run.
	ListServices bool
	CallService  string
	CallArgs     map[string]string
}

// NewConfig validates a Config and returns it. Field defaults are the
// responsibility of the CLI layer; this only rejects impossible combinations.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ManifestPath == "" {
		return nil, errors.New("ManifestPath is a required configuration field and cannot be empty")
	}
	if cfg.Format != "hcl" && cfg.Format != "yaml" {
		return nil, errors.New("Format must be 'hcl' or 'yaml'")
	}
	if cfg.ListServices && cfg.CallService != "" {
		return nil, errors.New("list and call are mutually exclusive actions")
	}
	return &cfg, nil
}
