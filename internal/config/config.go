package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// Default values.
const (
	DefaultName          = "Barry"
	DefaultDataFile      = "data/tasks.txt"
	DefaultCorruptPolicy = "quarantine"
	DefaultLogDir        = "~/.barry/logs"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
)

// Config holds the full configuration for barry.
type Config struct {
	// Name is shown as the TUI title.
	Name string `toml:"name"`

	// Paths
	DataFile string `toml:"data_file"`
	LogDir   string `toml:"log_dir"`

	// CorruptPolicy is what to do with an unreadable data file:
	// "quarantine" renames it aside, "delete" removes it.
	CorruptPolicy string `toml:"corrupt_policy"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Working directory (computed)
	WorkDir string `toml:"-"`
}

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	Files   []string // config files that were read, lowest precedence first
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"name",
		"data_file",
		"log_dir",
		"corrupt_policy",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}

// Load loads configuration from every source and registers the global flags
// on fs before parsing args.
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cws, err := LoadWithSources(fs, args)
	if err != nil {
		return nil, err
	}
	return cws.Config, nil
}

// LoadWithSources loads configuration and tracks the source of each value.
func LoadWithSources(fs *flag.FlagSet, args []string) (*ConfigWithSources, error) {
	cws := &ConfigWithSources{
		Config:  &Config{},
		Sources: make(map[string]ConfigSource),
	}

	// 1. Defaults
	setDefaults(cws.Config)
	for _, field := range configFields() {
		cws.Sources[field] = SourceDefault
	}

	// 2. User config file
	if path := findUserConfigFile(); path != "" {
		if err := loadConfigFile(cws, path, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", path, err)
		}
	}

	// 3. Project config file (overrides user config)
	if path := findProjectConfigFile(); path != "" {
		if err := loadConfigFile(cws, path, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", path, err)
		}
	}

	// 4. Environment
	loadFromEnv(cws.Config, cws.Sources)

	// 5. CLI flags
	if err := parseFlags(cws.Config, fs, args, cws.Sources); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	// 6. Derived values
	if err := finalizeConfig(cws.Config); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	return cws, nil
}

// ConfigFile returns the highest-precedence config file that was read.
func (cws *ConfigWithSources) ConfigFile() string {
	if len(cws.Files) == 0 {
		return ""
	}
	return cws.Files[len(cws.Files)-1]
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.Name = DefaultName
	cfg.DataFile = DefaultDataFile
	cfg.LogDir = DefaultLogDir
	cfg.CorruptPolicy = DefaultCorruptPolicy
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = true
	cfg.LogCaller = false
}

// loadConfigFile decodes a TOML file and applies the keys it defines.
func loadConfigFile(cws *ConfigWithSources, path string, source ConfigSource) error {
	var fileCfg Config
	md, err := toml.DecodeFile(path, &fileCfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}

	cfg := cws.Config
	apply := func(key string, fn func()) {
		if md.IsDefined(key) {
			fn()
			cws.Sources[key] = source
		}
	}
	apply("name", func() { cfg.Name = fileCfg.Name })
	apply("data_file", func() { cfg.DataFile = fileCfg.DataFile })
	apply("log_dir", func() { cfg.LogDir = fileCfg.LogDir })
	apply("corrupt_policy", func() { cfg.CorruptPolicy = fileCfg.CorruptPolicy })
	apply("log_level", func() { cfg.LogLevel = fileCfg.LogLevel })
	apply("log_format", func() { cfg.LogFormat = fileCfg.LogFormat })
	apply("log_timestamps", func() { cfg.LogTimestamps = fileCfg.LogTimestamps })
	apply("log_caller", func() { cfg.LogCaller = fileCfg.LogCaller })

	cws.Files = append(cws.Files, path)
	return nil
}

// finalizeConfig computes derived values and normalizes paths.
func finalizeConfig(cfg *Config) error {
	cfg.LogDir = expandPath(cfg.LogDir)
	cfg.DataFile = expandPath(cfg.DataFile)
	cfg.CorruptPolicy = strings.ToLower(strings.TrimSpace(cfg.CorruptPolicy))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))

	if cfg.WorkDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		cfg.WorkDir = wd
	}

	if cfg.DataFile != "" && !filepath.IsAbs(cfg.DataFile) {
		cfg.DataFile = filepath.Join(cfg.WorkDir, cfg.DataFile)
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataFile) == "" {
		return fmt.Errorf("data_file must not be empty")
	}
	switch c.CorruptPolicy {
	case "quarantine", "delete":
	default:
		return fmt.Errorf("invalid corrupt_policy %q (want quarantine or delete)", c.CorruptPolicy)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q (want debug, info, warn or error)", c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("invalid log_format %q (want text, json or logfmt)", c.LogFormat)
	}
	return nil
}

// boolFromString parses a boolean from a string.
func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
