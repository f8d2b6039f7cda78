package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/brettbedarf/vfsh/internal/util"
	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// TestNewConfig_WithNilOverride tests that NewConfig creates a config with all default values
// when no override is provided.
func TestNewConfig_WithNilOverride(t *testing.T) {
	t.Parallel()

	cfg := NewConfig(nil)

	require.NotNil(t, cfg)
	assert.Equal(t, createDefaultCfg(), cfg, "must use default values when no config provided")
}

func TestNewConfig_WithAllOverride(t *testing.T) {
	t.Parallel()

	override := createOverride()
	override.LogLvl = util.Pointer(TraceVerbose)
	cfg := NewConfig(override)

	expCfg := &Config{
		SeedPath:    "seed.json",
		ScriptPath:  "boot.vsh",
		LogLvl:      util.TraceLevel,
		Prompt:      "test",
		HeadLines:   *override.HeadLines,
		MetricsAddr: ":9100",
		HTTPTimeout: *override.HTTPTimeout,
		HTTPRetries: *override.HTTPRetries,
	}
	require.NotNil(t, cfg)
	assert.Equal(t, expCfg, cfg, "must override all provided fields")
}

func TestConfig_Merge_LogLvlConversion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		verboseValue  int
		expectedLevel util.LogLevel
	}{
		{"verbose_1_error", ErrorVerbose, util.ErrorLevel},
		{"verbose_2_warn", WarnVerbose, util.WarnLevel},
		{"verbose_3_info", InfoVerbose, util.InfoLevel},
		{"verbose_4_debug", DebugVerbose, util.DebugLevel},
		{"verbose_5_trace", TraceVerbose, util.TraceLevel},
		{"verbose_0_clamped_to_1", 0, util.ErrorLevel},
		{"verbose_100_clamped_to_5", 100, util.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			override := &ConfigOverride{
				LogLvl: &tt.verboseValue,
			}

			cfg := NewConfig(override)

			assert.Equal(t, tt.expectedLevel, cfg.LogLvl,
				"CLI verbose %d should map to util.LogLevel %v", tt.verboseValue, tt.expectedLevel)
		})
	}
}

func TestConfig_Merge_NilOverrideVals(t *testing.T) {
	t.Parallel()

	cfg := NewConfig(&ConfigOverride{})

	require.NotNil(t, cfg)
	assert.Equal(t, createDefaultCfg(), cfg, "must use default values for nil override fields")
}

func TestConfig_Merge_PartialOverride(t *testing.T) {
	t.Parallel()

	override := &ConfigOverride{
		Prompt:    util.Pointer("box"),
		HeadLines: util.Pointer(DefaultHeadLines + 1),
	}
	cfg := NewConfig(override)

	expCfg := createDefaultCfg()
	expCfg.Prompt = "box"
	expCfg.HeadLines = DefaultHeadLines + 1

	require.NotNil(t, cfg)
	assert.Equal(t, expCfg, cfg, "must override all provided fields and leave rest default")
}

// Later merges win, so callers layer file < env < flags
func TestConfig_Merge_Layering(t *testing.T) {
	t.Parallel()

	cfg := NewDefaultConfig()
	cfg.Merge(&ConfigOverride{SeedPath: util.Pointer("file.json"), Prompt: util.Pointer("file")})
	cfg.Merge(&ConfigOverride{SeedPath: util.Pointer("env.json")})

	assert.Equal(t, "env.json", cfg.SeedPath)
	assert.Equal(t, "file", cfg.Prompt)
}

func TestConfig_HTTPTimeoutDuration(t *testing.T) {
	t.Parallel()

	cfg := Config{HTTPTimeout: 1.5}

	assert.Equal(t, 1500*time.Millisecond, cfg.HTTPTimeoutDuration())
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	valid := func() *Config {
		cfg := NewDefaultConfig()
		cfg.SeedPath = "seed.json"
		return cfg
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		desc   string
		mutate func(*Config)
	}{
		{"missing seed", func(c *Config) { c.SeedPath = "" }},
		{"negative head lines", func(c *Config) { c.HeadLines = -1 }},
		{"zero timeout", func(c *Config) { c.HTTPTimeout = 0 }},
		{"negative retries", func(c *Config) { c.HTTPRetries = -2 }},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadConfigOverrideFile_Valid(t *testing.T) {
	t.Parallel()

	type tc struct {
		ext     string
		marshal func(any) ([]byte, error)
	}

	cases := []tc{
		{".yaml", yaml.Marshal},
		{".yml", yaml.Marshal},
		{".json", json.Marshal},
		{".toml", toml.Marshal},
	}

	for _, c := range cases {
		name := "valid" + c.ext
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			override := createOverride()
			data, err := c.marshal(override)
			require.NoError(t, err)
			dir := t.TempDir()
			path := filepath.Join(dir, "override"+c.ext)
			require.NoError(t, os.WriteFile(path, data, 0o600))

			loaded, err := LoadConfigOverrideFile(path)

			require.NoError(t, err)
			require.NotNil(t, loaded)
			assert.Equal(t, *override, *loaded)
		})
	}
}

func TestLoadConfigOverrideFile_Partial(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "vfsh.toml")
	require.NoError(t, os.WriteFile(path, []byte("head_lines = 3\nprompt = \"sh\"\n"), 0o600))

	loaded, err := LoadConfigOverrideFile(path)

	require.NoError(t, err)
	assert.Equal(t, 3, *loaded.HeadLines)
	assert.Equal(t, "sh", *loaded.Prompt)
	assert.Nil(t, loaded.SeedPath)
	assert.Nil(t, loaded.HTTPTimeout)
}

// TestLoadConfigOverrideFile_NonExistentFile tests error handling
// when trying to load a file that doesn't exist.
func TestLoadConfigOverrideFile_NonExistentFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "does_not_exist.yaml")

	_, err := LoadConfigOverrideFile(path)
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err), "expected not exist error, got %v", err)
}

// TestLoadConfigOverrideFile_UnsupportedExtension tests error handling
// for file extensions that aren't supported (.txt, .xml, etc).
func TestLoadConfigOverrideFile_UnsupportedExtension(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "override.txt")
	require.NoError(t, os.WriteFile(path, []byte("head_lines: 1"), 0o600))

	_, err := LoadConfigOverrideFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown config file extension")
}

func TestLoadConfigOverrideFile_Malformed(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "override.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"head_lines": "ten"}`), 0o600))

	_, err := LoadConfigOverrideFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal config file")
}

func TestNewConfigFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "vfsh.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: tree.json\nverbose: 4\n"), 0o600))

	cfg, err := NewConfigFromFile(path)

	require.NoError(t, err)
	expCfg := createDefaultCfg()
	expCfg.SeedPath = "tree.json"
	expCfg.LogLvl = util.DebugLevel
	assert.Equal(t, expCfg, cfg)
}

// TestNewConfigFromFile_FileError tests that file loading errors
// are properly propagated by the convenience function.
func TestNewConfigFromFile_FileError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing.json")

	_, err := NewConfigFromFile(path)
	require.Error(t, err)
}

// Not parallel: mutates the process environment
func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("VFSH_SEED", "https://example.com/tree.json")
	t.Setenv("VFSH_HEAD_LINES", "4")
	t.Setenv("VFSH_HTTP_TIMEOUT", "2.5")

	override, err := LoadEnvOverride()

	require.NoError(t, err)
	require.NotNil(t, override.SeedPath)
	assert.Equal(t, "https://example.com/tree.json", *override.SeedPath)
	assert.Equal(t, 4, *override.HeadLines)
	assert.InDelta(t, 2.5, *override.HTTPTimeout, 1e-9)
	assert.Nil(t, override.Prompt, "unset variables stay nil")
}

func TestLoadEnvOverride_Invalid(t *testing.T) {
	t.Setenv("VFSH_HTTP_RETRIES", "many")

	_, err := LoadEnvOverride()

	assert.Error(t, err)
}

func createDefaultCfg() *Config {
	return &Config{
		LogLvl:      DefaultLogLvl,
		Prompt:      DefaultPrompt,
		HeadLines:   DefaultHeadLines,
		HTTPTimeout: DefaultHTTPTimeout,
		HTTPRetries: DefaultHTTPRetries,
	}
}

// createOverride makes a ConfigOverride with all non-default values
func createOverride() *ConfigOverride {
	testLogVerbose := TraceVerbose
	if DefaultLogLvl == util.TraceLevel {
		testLogVerbose = DebugVerbose
	}
	return &ConfigOverride{
		SeedPath:    util.Pointer("seed.json"),
		ScriptPath:  util.Pointer("boot.vsh"),
		LogLvl:      util.Pointer(testLogVerbose),
		Prompt:      util.Pointer("test"),
		HeadLines:   util.Pointer(DefaultHeadLines + 1),
		MetricsAddr: util.Pointer(":9100"),
		HTTPTimeout: util.Pointer(float64(DefaultHTTPTimeout + 1)),
		HTTPRetries: util.Pointer(DefaultHTTPRetries + 1),
	}
}
