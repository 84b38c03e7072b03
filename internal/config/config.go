package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tabletoplab/bgg-harvester/pkg/bgg"
	"github.com/tabletoplab/bgg-harvester/pkg/logging"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config
// file path.
const ConfigPathEnvVar = "BGG_CONFIG_PATH"

// envPrefix namespaces the environment variables read by Load. Nested keys
// use a double underscore: BGG_LOGGING__LEVEL -> logging.level.
const envPrefix = "BGG_"

// Config holds the complete harvester configuration
type Config struct {
	Games       []string           `koanf:"games"`
	MaxComments int                `koanf:"max_comments"`
	OutputDir   string             `koanf:"output_dir"`
	API         *bgg.ClientConfig  `koanf:"api"`
	Logging     *logging.LogConfig `koanf:"logging"`
}

// defaultConfig returns a Config with all sensible default values. Defaults
// are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Games:       []string{"Gloomhaven", "On Mars", "CATAN"},
		MaxComments: 500,
		OutputDir:   "data/raw_comments",
		API:         bgg.DefaultClientConfig(),
		Logging:     logging.DefaultLogConfig(),
	}
}

// Load assembles the configuration in three layers with clear precedence:
// ENV > file > defaults.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, envPrefix)
		s = strings.ToLower(s)
		return strings.ReplaceAll(s, "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Env vars arrive as strings; the games list accepts a comma-separated
	// form there.
	if val := k.Get("games"); val != nil {
		if joined, ok := val.(string); ok {
			parts := strings.Split(joined, ",")
			for i := range parts {
				parts[i] = strings.TrimSpace(parts[i])
			}
			if err := k.Set("games", parts); err != nil {
				return nil, fmt.Errorf("failed to split games list: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for values the harvester cannot run with
func (c *Config) Validate() error {
	if len(c.Games) == 0 {
		return fmt.Errorf("games list cannot be empty")
	}
	if c.MaxComments <= 0 {
		return fmt.Errorf("max_comments must be positive, got %d", c.MaxComments)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir cannot be empty")
	}
	if c.API == nil || c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url cannot be empty")
	}
	if c.API.MaxAttempts < 1 {
		return fmt.Errorf("api.max_attempts must be at least 1, got %d", c.API.MaxAttempts)
	}
	if c.API.RetryDelay < 0 {
		return fmt.Errorf("api.retry_delay cannot be negative")
	}
	return nil
}

// findConfigFile searches for a config file in the default paths. Returns
// the first file found, or empty string if none exists.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
