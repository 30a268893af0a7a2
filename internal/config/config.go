// Package config handles the global configuration file and its
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"scholarbot/internal/related"
)

// Config is the global configuration stored in
// $XDG_CONFIG_HOME/scholarbot/config.yml.
type Config struct {
	S2APIKey     string `yaml:"s2_api_key,omitempty"`
	GeminiAPIKey string `yaml:"gemini_api_key,omitempty"`
	GeminiModel  string `yaml:"gemini_model,omitempty"`

	// DefaultStyle is the citation style used when a message names none.
	DefaultStyle string `yaml:"default_style,omitempty"`

	// SearchLimit is the number of papers requested per search.
	SearchLimit int `yaml:"search_limit,omitempty"`

	// ArchivePath is the SQLite session archive; empty disables it.
	ArchivePath string `yaml:"archive_path,omitempty"`

	// RelatedWeights tune the similarity scorer components.
	RelatedWeights related.Weights `yaml:"related_weights,omitempty"`

	// RelatedMaxResults caps related-paper results when a message
	// names no limit.
	RelatedMaxResults int `yaml:"related_max_results,omitempty"`
}

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "scholarbot"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"
)

// Path returns the global config file path. Respects XDG_CONFIG_HOME,
// defaults to ~/.config/scholarbot/config.yml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// Load reads the global config. A missing file is not an error; the
// returned config then carries defaults and environment values only.
func Load() (*Config, error) {
	cfg := &Config{}

	path := Path()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

// applyEnv lets environment variables override file values. A .env file
// loaded at startup feeds these.
func (c *Config) applyEnv() {
	if v := os.Getenv("S2_API_KEY"); v != "" {
		c.S2APIKey = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.GeminiAPIKey = v
	}
	if v := os.Getenv("SCHOLARBOT_ARCHIVE"); v != "" {
		c.ArchivePath = v
	}
}

func (c *Config) applyDefaults() {
	if c.DefaultStyle == "" {
		c.DefaultStyle = "apa"
	}
	if c.SearchLimit <= 0 {
		c.SearchLimit = 3
	}
	w := c.RelatedWeights
	if w.Author == 0 && w.Lexical == 0 && w.Recency == 0 {
		c.RelatedWeights = related.DefaultWeights()
	}
	if c.RelatedMaxResults <= 0 {
		c.RelatedMaxResults = related.DefaultMaxResults
	}
}

// Save writes the config file, creating the directory if needed.
func (c *Config) Save() error {
	path := Path()
	if path == "" {
		return fmt.Errorf("cannot determine config path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
