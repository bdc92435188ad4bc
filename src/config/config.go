package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultPath is the config file looked up in the working directory.
	DefaultPath = ".translized.yml"

	// DefaultAPIURL is the Translized API base URL.
	DefaultAPIURL = "https://api.translized.com"

	defaultParallel = 4
)

// Load reads and parses a YAML config file.
func Load(path string) (*Config, error) {
	cfg, err := loadWithoutValidation(path)
	if err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	err = validate(cfg)
	if err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// LoadMultiple reads and merges multiple YAML config files.
// Later configs override earlier ones for credentials, aliases and settings.
// Download and upload entries are accumulated across all configs.
func LoadMultiple(paths []string) (*Config, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no config files specified")
	}

	baseConfig, err := loadWithoutValidation(paths[0])
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", paths[0], err)
	}

	for _, path := range paths[1:] {
		cfg, err := loadWithoutValidation(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}

		mergeConfigs(baseConfig, cfg)
	}

	applyDefaults(baseConfig)

	err = validate(baseConfig)
	if err != nil {
		return nil, fmt.Errorf("validating merged config: %w", err)
	}

	return baseConfig, nil
}

// Parse decodes a config document. Reserved key prefixes are stripped and
// environment references expanded, but no defaults are applied.
func Parse(data []byte) (*Config, error) {
	var root yaml.Node

	err := yaml.Unmarshal(data, &root)
	if err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	var cfg Config

	if root.Kind == 0 {
		return &cfg, nil
	}

	err = Normalize(&root).Decode(&cfg)
	if err != nil {
		return nil, fmt.Errorf("decoding config file: %w", err)
	}

	expandProjectEnvVars(&cfg.Translized)

	for name, alias := range cfg.Aliases {
		expandAliasEnvVars(&alias)
		cfg.Aliases[name] = alias
	}

	return &cfg, nil
}

func loadWithoutValidation(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return Parse(data)
}

func mergeConfigs(base *Config, override *Config) {
	if override.Translized.ProjectID != "" {
		base.Translized.ProjectID = override.Translized.ProjectID
	}

	if override.Translized.AccessToken != "" {
		base.Translized.AccessToken = override.Translized.AccessToken
	}

	if override.Translized.APIURL != "" {
		base.Translized.APIURL = override.Translized.APIURL
	}

	if base.Aliases == nil {
		base.Aliases = make(map[string]Alias)
	}

	for name, alias := range override.Aliases {
		base.Aliases[name] = alias
	}

	if override.Settings.Parallel > 0 {
		base.Settings.Parallel = override.Settings.Parallel
	}

	if override.Settings.Timeout > 0 {
		base.Settings.Timeout = override.Settings.Timeout
	}

	base.Translized.Download = append(base.Translized.Download, override.Translized.Download...)
	base.Translized.Upload = append(base.Translized.Upload, override.Translized.Upload...)
}

func applyDefaults(cfg *Config) {
	if cfg.Translized.APIURL == "" {
		cfg.Translized.APIURL = DefaultAPIURL
	}

	if cfg.Settings.Parallel <= 0 {
		cfg.Settings.Parallel = defaultParallel
	}
}

func validate(cfg *Config) error {
	for name, alias := range cfg.Aliases {
		if alias.Bucket == "" {
			return fmt.Errorf("alias %q: bucket is required", name)
		}
	}

	if cfg.Settings.Timeout < 0 {
		return fmt.Errorf("settings: timeout must not be negative")
	}

	for i, entry := range cfg.Translized.Download {
		if entry.Mirror == "" {
			continue
		}

		rest, ok := strings.CutPrefix(entry.Mirror, "s3://")
		aliasName, _, _ := strings.Cut(rest, "/")

		if !ok || aliasName == "" {
			return fmt.Errorf("download entry %d: mirror must be an s3://alias/prefix URL, got %q", i+1, entry.Mirror)
		}

		if _, exists := cfg.GetAlias(aliasName); !exists {
			return fmt.Errorf("download entry %d: mirror alias %q is not defined", i+1, aliasName)
		}
	}

	return nil
}

// GetAlias returns an alias by name.
func (config *Config) GetAlias(name string) (Alias, bool) {
	alias, exists := config.Aliases[name]

	return alias, exists
}
