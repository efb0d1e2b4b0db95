// Package config holds the runtime configuration for the typeset commands.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/goliatone/go-typeset/render"
	"gopkg.in/yaml.v3"
)

// FileEnv names the environment variable pointing at a YAML config file.
const FileEnv = "TYPESET_CONFIG"

var marginPattern = regexp.MustCompile(`(?i)^\s*[0-9]+(?:\.[0-9]+)?\s*(?:in|cm|mm|pt|px)?\s*$`)

// Exporter names.
const (
	ExporterFPDF     = "fpdf"
	ExporterChromium = "chromium"
)

// Config holds the command configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Render  RenderConfig  `yaml:"render"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	BasePath string `yaml:"base_path"`
}

// Addr joins host and port.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// RenderConfig holds render pipeline settings.
type RenderConfig struct {
	Exporter         string         `yaml:"exporter"`
	Syntax           string         `yaml:"syntax"`
	PageSize         string         `yaml:"page_size"`
	FontSize         float64        `yaml:"font_size"`
	PageNumbers      bool           `yaml:"page_numbers"`
	MaxTemplateBytes int64          `yaml:"max_template_bytes"`
	MaxFontBytes     int64          `yaml:"max_font_bytes"`
	Chromium         ChromiumConfig `yaml:"chromium"`
}

// ChromiumConfig holds settings for the chromium exporter.
type ChromiumConfig struct {
	Path      string        `yaml:"path"`
	Headless  bool          `yaml:"headless"`
	Timeout   time.Duration `yaml:"timeout"`
	Args      []string      `yaml:"args"`
	Landscape bool          `yaml:"landscape"`
	// Margin applies to all four sides, e.g. "12mm" or "0.5in". Empty keeps
	// Chromium's default.
	Margin    string        `yaml:"margin"`
}

// LoggingConfig holds diagnostics settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// Defaults returns a Config with sensible defaults.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Host:     "localhost",
			Port:     "8080",
			BasePath: "/render",
		},
		Render: RenderConfig{
			Exporter:         ExporterFPDF,
			Syntax:           string(render.SyntaxGo),
			PageSize:         render.PageA4,
			FontSize:         11,
			PageNumbers:      true,
			MaxTemplateBytes: render.DefaultMaxTemplateBytes,
			MaxFontBytes:     render.DefaultMaxFontBytes,
			Chromium: ChromiumConfig{
				Headless: true,
				Timeout:  30 * time.Second,
			},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	switch c.Render.Exporter {
	case ExporterFPDF, ExporterChromium:
	default:
		return fmt.Errorf("unknown exporter %q", c.Render.Exporter)
	}
	switch render.Syntax(c.Render.Syntax) {
	case render.SyntaxGo, render.SyntaxDjango:
	default:
		return fmt.Errorf("unknown template syntax %q", c.Render.Syntax)
	}
	switch strings.ToUpper(c.Render.PageSize) {
	case render.PageA3, render.PageA4, render.PageA5, render.PageLetter, render.PageLegal:
	default:
		return fmt.Errorf("unknown page size %q", c.Render.PageSize)
	}
	if c.Render.FontSize <= 0 {
		return fmt.Errorf("font size must be positive, got %v", c.Render.FontSize)
	}
	if m := c.Render.Chromium.Margin; m != "" && !marginPattern.MatchString(m) {
		return fmt.Errorf("invalid chromium margin %q", m)
	}
	return nil
}

// SplitCSV splits a comma-separated list, dropping empty entries.
func SplitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

// Load reads a YAML config file over Defaults. Keys absent from the file
// keep their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML config data over Defaults. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Defaults()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	return cfg, nil
}

// FromEnv loads the file named by FileEnv, or returns Defaults when unset.
func FromEnv() (Config, error) {
	path := strings.TrimSpace(os.Getenv(FileEnv))
	if path == "" {
		return Defaults(), nil
	}
	return Load(path)
}
