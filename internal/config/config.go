// Package config loads the corvid command-line settings from TOML or YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/corvid-lang/corvid/internal/diag"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "corvid.toml"

// EnvVar names the environment variable that overrides config discovery.
const EnvVar = "CORVID_CONFIG"

// Output formats accepted by the parse command.
const (
	FormatTree = "tree"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatSExp = "sexp"
)

// Config holds the complete tool configuration
type Config struct {
	Output OutputConfig `toml:"output" yaml:"output"`
	Parser ParserConfig `toml:"parser" yaml:"parser"`
}

// OutputConfig controls how results and diagnostics are printed
type OutputConfig struct {
	Format string `toml:"format" yaml:"format"`
	Color  string `toml:"color" yaml:"color"`
}

// ParserConfig holds parser options
type ParserConfig struct {
	RequireEnd bool `toml:"require_end" yaml:"require_end"`
	Trace      bool `toml:"trace" yaml:"trace"`
}

// Default returns the settings used when no file is present.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Format: FormatTree,
			Color:  string(diag.ColorAuto),
		},
		Parser: ParserConfig{
			RequireEnd: true,
		},
	}
}

// Load reads a TOML or YAML file, chosen by extension, over the defaults.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config extension %q (want .toml, .yaml or .yml)", ext)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Discover resolves the config to use. An explicit path wins, then
// CORVID_CONFIG, then corvid.toml in dir. With none of them present the
// defaults are returned.
func Discover(explicit, dir string) (*Config, string, error) {
	path := explicit
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		candidate := filepath.Join(dir, DefaultFile)
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		}
	}

	if path == "" {
		return Default(), "", nil
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case FormatTree, FormatJSON, FormatYAML, FormatSExp:
	default:
		return fmt.Errorf("output.format: unknown format %q", c.Output.Format)
	}

	if _, err := diag.ParseColorMode(c.Output.Color); err != nil {
		return fmt.Errorf("output.color: %w", err)
	}
	return nil
}

// ColorMode returns the configured diagnostic colour mode.
func (c *Config) ColorMode() diag.ColorMode {
	mode, err := diag.ParseColorMode(c.Output.Color)
	if err != nil {
		return diag.ColorAuto
	}
	return mode
}
