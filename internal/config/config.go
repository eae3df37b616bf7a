package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/radwaste/internal/nuclide"
	"github.com/san-kum/radwaste/internal/scenario"
)

const (
	DefaultDataDir      = "data"
	DefaultAddr         = ":8501"
	DefaultChartWidth   = 960
	DefaultChartHeight  = 420
	DefaultTermWidth    = 80
	DefaultTermHeight   = 12
	DefaultReadTimeout  = 10 * time.Second
	DefaultWriteTimeout = 30 * time.Second
)

type Config struct {
	DataDir       string          `yaml:"data_dir" env:"RADWASTE_DATA_DIR"`
	Sources       nuclide.Sources `yaml:"sources"`
	ResultPattern string          `yaml:"result_pattern" env:"RADWASTE_RESULT_PATTERN"`
	Preset        string          `yaml:"preset" env:"RADWASTE_PRESET"`
	Server        ServerConfig    `yaml:"server"`
	Chart         ChartConfig     `yaml:"chart"`
}

type ServerConfig struct {
	Addr         string        `yaml:"addr" env:"RADWASTE_ADDR"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"RADWASTE_READ_TIMEOUT"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"RADWASTE_WRITE_TIMEOUT"`
	Metrics      bool          `yaml:"metrics" env:"RADWASTE_METRICS"`
}

type ChartConfig struct {
	Width      int `yaml:"width"`
	Height     int `yaml:"height"`
	TermWidth  int `yaml:"term_width"`
	TermHeight int `yaml:"term_height"`
}

func DefaultConfig() *Config {
	return &Config{
		DataDir:       DefaultDataDir,
		Sources:       nuclide.DefaultSources(),
		ResultPattern: scenario.DefaultPattern,
		Server: ServerConfig{
			Addr:         DefaultAddr,
			ReadTimeout:  DefaultReadTimeout,
			WriteTimeout: DefaultWriteTimeout,
			Metrics:      true,
		},
		Chart: ChartConfig{
			Width:      DefaultChartWidth,
			Height:     DefaultChartHeight,
			TermWidth:  DefaultTermWidth,
			TermHeight: DefaultTermHeight,
		},
	}
}

// Load reads a YAML file over the defaults. An empty path yields the defaults.
// Environment variables are applied last.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	return cfg, cfg.Validate()
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("config: data_dir is required")
	}
	if c.Sources.InitialConditions == "" || c.Sources.DecayConstants == "" {
		return fmt.Errorf("config: both reference sources are required")
	}
	if _, err := scenario.NewFiles(c.ResultPattern); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Chart.Width <= 0 || c.Chart.Height <= 0 || c.Chart.TermWidth <= 0 || c.Chart.TermHeight <= 0 {
		return fmt.Errorf("config: chart dimensions must be positive")
	}
	if c.Preset != "" {
		if _, ok := GetPreset(c.Preset); !ok {
			return fmt.Errorf("config: unknown preset %q (available: %v)", c.Preset, ListPresets())
		}
	}
	return nil
}

// Files builds the scenario lookup table from ResultPattern.
func (c *Config) Files() (scenario.Files, error) {
	return scenario.NewFiles(c.ResultPattern)
}
