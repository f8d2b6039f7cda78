package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/brettbedarf/vfsh/internal/util"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// CLI verbosity values accepted by --verbose and ConfigOverride.LogLvl
const (
	ErrorVerbose = iota + 1
	WarnVerbose
	InfoVerbose
	DebugVerbose
	TraceVerbose

	DefaultVerbose = InfoVerbose
)

// EnvPrefix prefixes every environment override, e.g. VFSH_SEED
const EnvPrefix = "VFSH"

// Default configuration constants. See [Config] for field descriptions.
const (
	DefaultLogLvl = util.InfoLevel

	// DefaultPrompt is rendered as "<prompt>:<cwd>$ "
	DefaultPrompt = "vfsh"

	// DefaultHeadLines is how many lines head prints without -n
	DefaultHeadLines = 10

	// DefaultHTTPTimeout is the per attempt timeout for remote seeds in seconds
	DefaultHTTPTimeout = 10.0

	// DefaultHTTPRetries is the retry budget for remote seeds
	DefaultHTTPRetries = 3
)

// Config contains runtime configuration values for the shell.
type Config struct {
	SeedPath    string        // Seed document location, local path or http(s) URL (required)
	ScriptPath  string        // Optional startup script replayed before the REPL
	LogLvl      util.LogLevel // Internal log level (Default info)
	Prompt      string        // Prompt prefix (Default "vfsh")
	HeadLines   int           // Default line count for head (Default 10)
	MetricsAddr string        // Listen address for /metrics; empty disables (Default "")
	HTTPTimeout float64       // Remote seed timeout in seconds (Default 10)
	HTTPRetries int           // Remote seed retry budget (Default 3)
}

// HTTPTimeoutDuration returns HTTPTimeout as a time.Duration
func (c *Config) HTTPTimeoutDuration() time.Duration {
	return time.Duration(c.HTTPTimeout * float64(time.Second))
}

// Validate reports the first field holding an unusable value
func (c *Config) Validate() error {
	switch {
	case c.SeedPath == "":
		return fmt.Errorf("seed path is required")
	case c.HeadLines < 0:
		return fmt.Errorf("head lines must not be negative: %d", c.HeadLines)
	case c.HTTPTimeout <= 0:
		return fmt.Errorf("http timeout must be positive: %v", c.HTTPTimeout)
	case c.HTTPRetries < 0:
		return fmt.Errorf("http retries must not be negative: %d", c.HTTPRetries)
	}
	return nil
}

// ConfigOverride uses pointer fields to distinguish between unset and zero values
// when loading partial configuration. See [Config] for field descriptions.
type ConfigOverride struct {
	SeedPath    *string  `yaml:"seed,omitempty" json:"seed,omitempty" toml:"seed,omitempty" envconfig:"SEED"`
	ScriptPath  *string  `yaml:"script,omitempty" json:"script,omitempty" toml:"script,omitempty" envconfig:"SCRIPT"`
	LogLvl      *int     `yaml:"verbose,omitempty" json:"verbose,omitempty" toml:"verbose,omitempty" envconfig:"VERBOSE"` // CLI verbosity 1..5, not a LogLevel
	Prompt      *string  `yaml:"prompt,omitempty" json:"prompt,omitempty" toml:"prompt,omitempty" envconfig:"PROMPT"`
	HeadLines   *int     `yaml:"head_lines,omitempty" json:"head_lines,omitempty" toml:"head_lines,omitempty" envconfig:"HEAD_LINES"`
	MetricsAddr *string  `yaml:"metrics_addr,omitempty" json:"metrics_addr,omitempty" toml:"metrics_addr,omitempty" envconfig:"METRICS_ADDR"`
	HTTPTimeout *float64 `yaml:"http_timeout,omitempty" json:"http_timeout,omitempty" toml:"http_timeout,omitempty" envconfig:"HTTP_TIMEOUT"`
	HTTPRetries *int     `yaml:"http_retries,omitempty" json:"http_retries,omitempty" toml:"http_retries,omitempty" envconfig:"HTTP_RETRIES"`
}

// NewDefaultConfig creates a new Config with all default values.
func NewDefaultConfig() *Config {
	return &Config{
		LogLvl:      DefaultLogLvl,
		Prompt:      DefaultPrompt,
		HeadLines:   DefaultHeadLines,
		HTTPTimeout: DefaultHTTPTimeout,
		HTTPRetries: DefaultHTTPRetries,
	}
}

// NewConfig creates a Config from defaults with override applied when non-nil
func NewConfig(override *ConfigOverride) *Config {
	cfg := NewDefaultConfig()
	if override != nil {
		cfg.Merge(override)
	}
	return cfg
}

// Merge applies non-nil values from override onto this Config.
// This allows partial configuration updates while preserving existing values.
func (c *Config) Merge(override *ConfigOverride) {
	if override.SeedPath != nil {
		c.SeedPath = *override.SeedPath
	}
	if override.ScriptPath != nil {
		c.ScriptPath = *override.ScriptPath
	}
	if override.LogLvl != nil {
		c.LogLvl = util.VerbosityToLevel(*override.LogLvl)
	}
	if override.Prompt != nil {
		c.Prompt = *override.Prompt
	}
	if override.HeadLines != nil {
		c.HeadLines = *override.HeadLines
	}
	if override.MetricsAddr != nil {
		c.MetricsAddr = *override.MetricsAddr
	}
	if override.HTTPTimeout != nil {
		c.HTTPTimeout = *override.HTTPTimeout
	}
	if override.HTTPRetries != nil {
		c.HTTPRetries = *override.HTTPRetries
	}
}

// LoadConfigOverrideFile loads configuration overrides from a file without merging.
// Supports YAML (.yaml, .yml), JSON (.json) and TOML (.toml) formats.
func LoadConfigOverrideFile(path string) (*ConfigOverride, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var override ConfigOverride

	// Determine format by file extension
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown config file extension: %s", path)
	}

	return &override, nil
}

// LoadEnvOverride reads VFSH_* environment variables into an override.
// Unset variables leave their field nil.
func LoadEnvOverride() (*ConfigOverride, error) {
	var override ConfigOverride
	if err := envconfig.Process(EnvPrefix, &override); err != nil {
		return nil, fmt.Errorf("failed to read environment overrides: %w", err)
	}
	return &override, nil
}

// NewConfigFromFile creates a new Config by merging file overrides with defaults.
// This is a convenience function that combines NewDefaultConfig, LoadConfigOverrideFile, and Merge.
func NewConfigFromFile(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	override, err := LoadConfigOverrideFile(path)
	if err != nil {
		return nil, err
	}
	cfg.Merge(override)
	return cfg, nil
}
