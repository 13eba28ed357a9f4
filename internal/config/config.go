// Package config holds the service-level configuration: collaborator
// endpoints and the default drawing settings. Values load from a YAML file
// and the environment, with ENV taking priority.
package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/liscad/liscad/internal/generator"
)

// Config is the root service configuration.
type Config struct {
	Generator GeneratorConfig `yaml:"generator"`
	Backend   BackendConfig   `yaml:"backend"`
	Drawing   DrawingConfig   `yaml:"drawing"`
}

// GeneratorConfig holds the DSL-generation collaborator settings.
type GeneratorConfig struct {
	BaseURL    string        `yaml:"base_url"    env:"GENERATOR_BASE_URL"    env-default:"https://api.anthropic.com"`
	APIKey     string        `yaml:"api_key"     env:"ANTHROPIC_API_KEY"`
	Model      string        `yaml:"model"       env:"GENERATOR_MODEL"       env-default:"claude-sonnet-4-5"`
	Timeout    time.Duration `yaml:"timeout"     env:"GENERATOR_TIMEOUT"     env-default:"2m"`
	MaxRetries int           `yaml:"max_retries" env:"GENERATOR_MAX_RETRIES" env-default:"2"`
	MaxTokens  int           `yaml:"max_tokens"  env:"GENERATOR_MAX_TOKENS"  env-default:"8192"`
}

// BackendConfig holds the drawing execution collaborator settings.
type BackendConfig struct {
	BaseURL string        `yaml:"base_url" env:"BACKEND_BASE_URL" env-default:"http://127.0.0.1:8080"`
	Timeout time.Duration `yaml:"timeout"  env:"BACKEND_TIMEOUT"  env-default:"60s"`
}

// DrawingConfig holds the default drawing settings forwarded to the
// generator.
type DrawingConfig struct {
	Scale               float64 `yaml:"scale"                 env:"DRAWING_SCALE"                 env-default:"100"`
	TextHeight          float64 `yaml:"text_height"           env:"DRAWING_TEXT_HEIGHT"           env-default:"3.5"`
	DimensionTextHeight float64 `yaml:"dimension_text_height" env:"DRAWING_DIM_TEXT_HEIGHT"       env-default:"3.5"`
	LineColor           int     `yaml:"line_color"            env:"DRAWING_LINE_COLOR"            env-default:"7"`
	TextColor           int     `yaml:"text_color"            env:"DRAWING_TEXT_COLOR"            env-default:"256"`
	DimensionColor      int     `yaml:"dimension_color"       env:"DRAWING_DIMENSION_COLOR"       env-default:"256"`
	PaperSize           string  `yaml:"paper_size"            env:"DRAWING_PAPER_SIZE"            env-default:"A3"`
	Units               string  `yaml:"units"                 env:"DRAWING_UNITS"                 env-default:"mm"`
}

// Settings converts the configured defaults into the generator's settings
// record.
func (d DrawingConfig) Settings() generator.Settings {
	return generator.Settings{
		Scale:               d.Scale,
		TextHeight:          d.TextHeight,
		DimensionTextHeight: d.DimensionTextHeight,
		LineColor:           d.LineColor,
		TextColor:           d.TextColor,
		DimensionColor:      d.DimensionColor,
		PaperSize:           d.PaperSize,
		Units:               d.Units,
	}
}

var validUnits = []string{"mm", "cm", "m", "in"}

// Validate rejects configurations the pipeline cannot work with.
func (c *Config) Validate() error {
	if !slices.Contains(validUnits, c.Drawing.Units) {
		return fmt.Errorf("drawing.units must be one of %v, got %q", validUnits, c.Drawing.Units)
	}
	if c.Drawing.Scale <= 0 {
		return fmt.Errorf("drawing.scale must be positive, got %g", c.Drawing.Scale)
	}
	if c.Drawing.TextHeight <= 0 || c.Drawing.DimensionTextHeight <= 0 {
		return fmt.Errorf("drawing text heights must be positive")
	}
	if c.Generator.BaseURL == "" {
		return fmt.Errorf("generator.base_url must not be empty")
	}
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend.base_url must not be empty")
	}
	return nil
}
