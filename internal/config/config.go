// Package config loads ripplescope's configuration: discovery limits, risk
// weighting, and logging. Sources layer in order of precedence: environment
// variables, then a config file, then these defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration settings.
type Config struct {
	Discovery DiscoveryConfig `yaml:"discovery"`
	Risk      RiskConfig      `yaml:"risk"`
	Log       LogConfigYAML   `yaml:"log"`
}

// DiscoveryConfig holds a file-size limit for the repository walk;
// discovery.Walk does not read it.
type DiscoveryConfig struct {
	MaxFileSizeBytes int64 `yaml:"max_file_size_bytes"`
}

// RiskConfig names the tier weights, with defaults equal to the ones
// assess_change_impact applies. The impact package uses its own fixed
// weight table and does not read these values.
type RiskConfig struct {
	CriticalPathWeight int `yaml:"critical_path_weight"`
	SecondaryWeight    int `yaml:"secondary_weight"`
	TertiaryWeight     int `yaml:"tertiary_weight"`
	NonCriticalWeight  int `yaml:"non_critical_weight"`
}

// LogConfigYAML mirrors internal/logging.Config in a YAML/env-friendly shape.
type LogConfigYAML struct {
	Level      string `yaml:"level"`
	JSONFormat bool   `yaml:"json_format"`
	OutputFile string `yaml:"output_file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Discovery: DiscoveryConfig{
			MaxFileSizeBytes: 5 * 1024 * 1024, // 5MB
		},
		Risk: RiskConfig{
			CriticalPathWeight: 10,
			SecondaryWeight:    5,
			TertiaryWeight:     2,
			NonCriticalWeight:  1,
		},
		Log: LogConfigYAML{
			Level:      "info",
			JSONFormat: false,
		},
	}
}

// Load loads configuration from path, or from the standard search locations
// if path is empty, layering environment variables on top.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetConfigType("yaml")

	cfg := Default()
	v.SetDefault("discovery", cfg.Discovery)
	v.SetDefault("risk", cfg.Risk)
	v.SetDefault("log", cfg.Log)

	v.SetEnvPrefix("RIPPLESCOPE")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("ripplescope")
		v.AddConfigPath(".")
		homeDir, _ := os.UserHomeDir()
		v.AddConfigPath(filepath.Join(homeDir, ".ripplescope"))
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	// Round-trip the merged settings through YAML so the yaml struct tags
	// (snake_case keys) decide the field mapping.
	settings, err := yaml.Marshal(v.AllSettings())
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := yaml.Unmarshal(settings, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// loadEnvFiles loads .env files in order of precedence, ignoring absence.
func loadEnvFiles() {
	for _, file := range []string{".env.local", ".env"} {
		if _, err := os.Stat(file); err == nil {
			godotenv.Load(file)
		}
	}
}

// applyEnvOverrides applies the handful of environment variables that bypass
// viper's automatic binding because they need custom parsing.
func applyEnvOverrides(cfg *Config) {
	if level := os.Getenv("RIPPLESCOPE_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if maxSize := os.Getenv("RIPPLESCOPE_MAX_FILE_SIZE_BYTES"); maxSize != "" {
		if size, err := strconv.ParseInt(maxSize, 10, 64); err == nil {
			cfg.Discovery.MaxFileSizeBytes = size
		}
	}
}

// Save writes cfg to path as YAML.
func (c *Config) Save(path string) error {
	v := viper.New()
	v.SetConfigType("yaml")
	v.Set("discovery", c.Discovery)
	v.Set("risk", c.Risk)
	v.Set("log", c.Log)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
