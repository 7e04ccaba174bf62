// Package config provides centralized configuration management using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration values for dispatch.
type Config struct {
	DataDir      string `mapstructure:"data_dir" yaml:"data_dir"`
	LogLevel     string `mapstructure:"log_level" yaml:"log_level"`
	LogFile      string `mapstructure:"log_file" yaml:"log_file"`
	Actor        string `mapstructure:"actor" yaml:"actor"`                   // Profile ID used to attribute writes
	Company      string `mapstructure:"company" yaml:"company"`               // Shown on printed documents
	OutputDir    string `mapstructure:"output_dir" yaml:"output_dir"`         // Where print/PDF/XLSX files land
	HourHeight   int    `mapstructure:"hour_height" yaml:"hour_height"`       // Calendar rows per hour
	PrintDelayMs int    `mapstructure:"print_delay_ms" yaml:"print_delay_ms"` // Settle delay before window.print()
}

// keys lists every config key with its env var; used for explicit binding.
var keys = []string{
	"data_dir",
	"log_level",
	"log_file",
	"actor",
	"company",
	"output_dir",
	"hour_height",
	"print_delay_ms",
}

// Load loads configuration with full precedence:
// CLI flags > ENV vars > project config > XDG global config > defaults
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("dispatch")

	v.SetDefault("data_dir", ".dispatch")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("actor", "")
	v.SetDefault("company", "")
	v.SetDefault("output_dir", ".")
	v.SetDefault("hour_height", 2)
	v.SetDefault("print_delay_ms", 500)

	v.SetEnvPrefix("DISPATCH")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Explicit ENV bindings for better bool/int parsing
	for _, key := range keys {
		if err := v.BindEnv(key, "DISPATCH_"+strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	globalPath := GlobalPath()
	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	projectPath := ProjectPath()
	if fileExists(projectPath) {
		// Need to set config file explicitly for merge
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects values the rest of the program cannot work with.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	if c.HourHeight < 1 {
		return fmt.Errorf("hour_height must be at least 1, got %d", c.HourHeight)
	}
	if c.PrintDelayMs < 0 {
		return fmt.Errorf("print_delay_ms must not be negative, got %d", c.PrintDelayMs)
	}
	return nil
}

// NATSDir returns the JetStream storage directory inside the data dir.
func (c *Config) NATSDir() string {
	return filepath.Join(c.DataDir, "nats")
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalPath returns the XDG global config path.
// Returns ~/.config/dispatch/dispatch.yml or $XDG_CONFIG_HOME/dispatch/dispatch.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "dispatch", "dispatch.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "dispatch", "dispatch.yml")
}

// ProjectPath returns the project-local config path.
func ProjectPath() string {
	return "dispatch.yml"
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	path := GlobalPath()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return write(path, cfg)
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	return write(ProjectPath(), cfg)
}

func write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// fileExists checks if a file exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
