package config

import (
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

type Config struct {
	StylePath string   `yaml:"style_path" envconfig:"STYLE_PATH"`
	Database  Database `yaml:"database"`
	Preview   Preview  `yaml:"preview"`
	Check     Check    `yaml:"check"`
	Watch     Watch    `yaml:"watch"`
	Logging   Logging  `yaml:"logging"`
}

type Database struct {
	Path string `yaml:"path" envconfig:"DATABASE_PATH"`
}

type Preview struct {
	Engine string `yaml:"engine" envconfig:"PREVIEW_ENGINE"`
	Format string `yaml:"format" envconfig:"PREVIEW_FORMAT"`
	Output string `yaml:"output" envconfig:"PREVIEW_OUTPUT"`
	Series int    `yaml:"series" envconfig:"PREVIEW_SERIES"`
	Points int    `yaml:"points" envconfig:"PREVIEW_POINTS"`
}

type Check struct {
	MaxConcurrent int `yaml:"max_concurrent" envconfig:"MAX_CONCURRENT"`
}

type Watch struct {
	ReloadsPerSecond float64 `yaml:"reloads_per_second" envconfig:"RELOADS_PER_SECOND"`
}

type Logging struct {
	Level  string `yaml:"level" envconfig:"LOG_LEVEL"`
	Format string `yaml:"format" envconfig:"LOG_FORMAT"`
}

// ConfigPath returns the configuration file path
// Default: ~/.config/plotstyle/config.yaml
func ConfigPath() string {
	if path := os.Getenv("PLOTSTYLE_CONFIG"); path != "" {
		return path
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "plotstyle", "config.yaml")
}

func Load() (*Config, error) {
	cfg := DefaultConfig()

	// Load from YAML file if exists
	configPath := ConfigPath()
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	// Override with environment variables
	// Process top-level fields
	if err := envconfig.Process("PLOTSTYLE", cfg); err != nil {
		return nil, err
	}

	// Process nested structs with the same prefix to support flat env var names
	nested := []interface{}{&cfg.Database, &cfg.Preview, &cfg.Check, &cfg.Watch, &cfg.Logging}
	for _, section := range nested {
		if err := envconfig.Process("PLOTSTYLE", section); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func (c *Config) Save() error {
	configPath := ConfigPath()

	// Create directory if not exists
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}
