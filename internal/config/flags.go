package config

import "flag"

// parseFlags registers the global flags on fs and parses args. Only flags
// that were set explicitly are recorded as flag sources.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("barry", flag.ContinueOnError)
	}

	fs.StringVar(&cfg.DataFile, "data", cfg.DataFile, "Path to the task data file")
	fs.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "Session log directory (empty logs to stderr)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text|json|logfmt)")
	fs.StringVar(&cfg.CorruptPolicy, "corrupt-policy", cfg.CorruptPolicy, "What to do with a corrupt data file (quarantine|delete)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fields := map[string]string{
		"data":           "data_file",
		"log-dir":        "log_dir",
		"log-level":      "log_level",
		"log-format":     "log_format",
		"corrupt-policy": "corrupt_policy",
	}
	fs.Visit(func(f *flag.Flag) {
		if field, ok := fields[f.Name]; ok {
			sources[field] = SourceFlag
		}
	})
	return nil
}
