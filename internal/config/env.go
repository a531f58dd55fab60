package config

import "os"

// Environment variables read by loadFromEnv.
const (
	EnvDataFile      = "BARRY_DATA_FILE"
	EnvLogLevel      = "BARRY_LOG_LEVEL"
	EnvLogFormat     = "BARRY_LOG_FORMAT"
	EnvLogDir        = "BARRY_LOG_DIR"
	EnvLogTimestamps = "BARRY_LOG_TIMESTAMPS"
	EnvCorruptPolicy = "BARRY_CORRUPT_POLICY"
)

// loadFromEnv overrides config from environment variables.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	setString := func(env, field string, target *string) {
		if v := os.Getenv(env); v != "" {
			*target = v
			sources[field] = SourceEnv
		}
	}

	setString(EnvDataFile, "data_file", &cfg.DataFile)
	setString(EnvLogLevel, "log_level", &cfg.LogLevel)
	setString(EnvLogFormat, "log_format", &cfg.LogFormat)
	setString(EnvLogDir, "log_dir", &cfg.LogDir)
	setString(EnvCorruptPolicy, "corrupt_policy", &cfg.CorruptPolicy)

	if v, ok := os.LookupEnv(EnvLogTimestamps); ok {
		cfg.LogTimestamps = boolFromString(v)
		sources["log_timestamps"] = SourceEnv
	}
}
