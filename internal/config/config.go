package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in a project directory.
const FileName = "viewgen.yaml"

// Config holds all configuration for the viewgen CLI.
type Config struct {
	Compiler CompilerConfig `yaml:"compiler"`
	Plugin   PluginConfig   `yaml:"plugin"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// CompilerConfig holds view generation settings.
type CompilerConfig struct {
	Namespace      string   `yaml:"namespace"`
	BaseType       string   `yaml:"base_type"`
	Imports        []string `yaml:"imports"`
	Libraries      []string `yaml:"libraries"`
	Resources      []string `yaml:"resources"` // doublestar globs, relative to the config file
	Debug          bool     `yaml:"debug"`
	StrictBaseType bool     `yaml:"strict_base_type"`
}

// PluginConfig holds settings for the plugin build backend.
type PluginConfig struct {
	ModuleDir string `yaml:"module_dir"`
	GoBinary  string `yaml:"go_binary"`
	WorkDir   string `yaml:"work_dir"`
	CacheSize int    `yaml:"cache_size"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Compiler: CompilerConfig{
			BaseType: "view.Base",
		},
		Plugin: PluginConfig{
			GoBinary:  "go",
			CacheSize: 64,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromDir loads viewgen.yaml, then .viewgen/config.yaml, from dir.
func LoadFromDir(dir string) (*Config, error) {
	for _, path := range []string{
		filepath.Join(dir, FileName),
		filepath.Join(dir, ".viewgen", "config.yaml"),
	} {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return DefaultConfig(), nil
}
