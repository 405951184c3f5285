package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config represents the tool configuration
type Config struct {
	Output     OutputConfig     `yaml:"output" mapstructure:"output"`
	Render     RenderConfig     `yaml:"render" mapstructure:"render"`
	Simulation SimulationConfig `yaml:"simulation" mapstructure:"simulation"`
	Archive    ArchiveConfig    `yaml:"archive" mapstructure:"archive"`
	LogLevel   string           `yaml:"log_level" mapstructure:"log_level"`
}

// OutputConfig contains artifact output configuration
type OutputConfig struct {
	Dir         string `yaml:"dir" mapstructure:"dir"`
	CatalogFile string `yaml:"catalog_file" mapstructure:"catalog_file"`
}

// RenderConfig contains chart rendering configuration
type RenderConfig struct {
	Width           int `yaml:"width" mapstructure:"width"`
	Height          int `yaml:"height" mapstructure:"height"`
	DashboardWidth  int `yaml:"dashboard_width" mapstructure:"dashboard_width"`
	DashboardHeight int `yaml:"dashboard_height" mapstructure:"dashboard_height"`
}

// SimulationConfig contains N-body simulation defaults
type SimulationConfig struct {
	Years        float64 `yaml:"years" mapstructure:"years"`
	StepDays     float64 `yaml:"step_days" mapstructure:"step_days"`
	SnapshotDays float64 `yaml:"snapshot_days" mapstructure:"snapshot_days"`
}

// ArchiveConfig contains run archive configuration
type ArchiveConfig struct {
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
	Database string `yaml:"database" mapstructure:"database"`
	KeepRuns int    `yaml:"keep_runs" mapstructure:"keep_runs"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	orreryDir := filepath.Join(homeDir, ".orrery")

	return &Config{
		Output: OutputConfig{
			Dir:         filepath.Join(orreryDir, "output"),
			CatalogFile: "",
		},
		Render: RenderConfig{
			Width:           900,
			Height:          600,
			DashboardWidth:  620,
			DashboardHeight: 420,
		},
		Simulation: SimulationConfig{
			Years:        100,
			StepDays:     1,
			SnapshotDays: 365.25,
		},
		Archive: ArchiveConfig{
			Enabled:  true,
			Database: filepath.Join(orreryDir, "runs.db"),
			KeepRuns: 200,
		},
		LogLevel: "info",
	}
}

// LoadConfig loads configuration from file or creates default
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	homeDir, _ := os.UserHomeDir()
	viper.AddConfigPath(filepath.Join(homeDir, ".orrery"))
	viper.AddConfigPath(".")
	viper.AddConfigPath("./configs")

	viper.SetEnvPrefix("ORRERY")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found, create default
			return createDefaultConfig()
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// SaveConfig saves configuration to file
func SaveConfig(config *Config) error {
	homeDir, _ := os.UserHomeDir()
	configDir := filepath.Join(homeDir, ".orrery")
	configFile := filepath.Join(configDir, "config.yaml")

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := createDirectories(config); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Configuration saved to: %s\n", configFile)
	return nil
}

// createDefaultConfig creates and saves a default configuration
func createDefaultConfig() (*Config, error) {
	config := DefaultConfig()

	if err := SaveConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// validateConfig validates the configuration
func validateConfig(config *Config) error {
	if config.Output.Dir == "" {
		return fmt.Errorf("output directory cannot be empty")
	}

	if config.Render.Width <= 0 || config.Render.Height <= 0 {
		return fmt.Errorf("render dimensions must be positive")
	}

	if config.Simulation.Years <= 0 {
		return fmt.Errorf("simulation duration must be positive")
	}

	if config.Simulation.StepDays <= 0 {
		return fmt.Errorf("simulation step must be positive")
	}

	if config.Simulation.SnapshotDays < config.Simulation.StepDays {
		return fmt.Errorf("snapshot interval cannot be shorter than the step")
	}

	if config.Archive.Enabled && config.Archive.Database == "" {
		return fmt.Errorf("archive database path cannot be empty when the archive is enabled")
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[config.LogLevel] {
		return fmt.Errorf("invalid log level: %s", config.LogLevel)
	}

	return nil
}

// createDirectories creates necessary directories based on config
func createDirectories(config *Config) error {
	dirs := []string{
		config.Output.Dir,
	}
	if config.Archive.Enabled && config.Archive.Database != "" {
		dirs = append(dirs, filepath.Dir(config.Archive.Database))
	}

	for _, dir := range dirs {
		if dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dir, err)
			}
		}
	}

	return nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".orrery", "config.yaml"), nil
}

// ArtifactPath joins a file name onto the configured output directory.
func (c *Config) ArtifactPath(name string) string {
	return filepath.Join(c.Output.Dir, name)
}
