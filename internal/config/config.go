package config

import (
	"fmt"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDataDir     = "data"
	DefaultRunsDir     = "runs"
	DefaultDelimiter   = ","
	DefaultDecimal     = "."
	DefaultWindow      = 30
	DefaultComponents  = 3
	DefaultParallelism = 4
	DefaultPlotWidth   = 8.0
	DefaultPlotHeight  = 5.2
	DefaultLogLevel    = "info"
)

type Config struct {
	DataDir     string      `yaml:"data_dir"`
	RunsDir     string      `yaml:"runs_dir"`
	Delimiter   string      `yaml:"delimiter"`
	Decimal     string      `yaml:"decimal"`
	LogLevel    string      `yaml:"log_level"`
	Parallelism int         `yaml:"parallelism"`
	Phase       PhaseConfig `yaml:"phase"`
	Plot        PlotConfig  `yaml:"plot"`
}

// PhaseConfig holds the delay-embedding parameters.
type PhaseConfig struct {
	Window      int  `yaml:"window"`
	Components  int  `yaml:"components"`
	Correlation bool `yaml:"correlation"`
}

// PlotConfig sizes image output in inches.
type PlotConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

func DefaultConfig() *Config {
	return &Config{
		DataDir:     DefaultDataDir,
		RunsDir:     DefaultRunsDir,
		Delimiter:   DefaultDelimiter,
		Decimal:     DefaultDecimal,
		LogLevel:    DefaultLogLevel,
		Parallelism: DefaultParallelism,
		Phase: PhaseConfig{
			Window:     DefaultWindow,
			Components: DefaultComponents,
		},
		Plot: PlotConfig{
			Width:  DefaultPlotWidth,
			Height: DefaultPlotHeight,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// DelimiterRune returns the CSV field separator as a rune.
func (c *Config) DelimiterRune() (rune, error) {
	return singleRune("delimiter", c.Delimiter)
}

// DecimalRune returns the decimal separator as a rune.
func (c *Config) DecimalRune() (rune, error) {
	return singleRune("decimal", c.Decimal)
}

// Separators returns the CSV delimiter and decimal separator, which must
// differ for numbers to survive field splitting.
func (c *Config) Separators() (delimiter, decimal rune, err error) {
	if delimiter, err = c.DelimiterRune(); err != nil {
		return 0, 0, err
	}
	if decimal, err = c.DecimalRune(); err != nil {
		return 0, 0, err
	}
	if delimiter == decimal {
		return 0, 0, fmt.Errorf("config: delimiter and decimal separator are both %q", delimiter)
	}
	return delimiter, decimal, nil
}

func singleRune(name, s string) (rune, error) {
	if s == `\t` {
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("config: %s must be a single character, got %q", name, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// Apply copies a preset's embedding parameters into c.
func (c *Config) Apply(p Preset) {
	c.Phase = p.Phase
}
