package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# Barry configuration file
# Values can be overridden by environment variables (BARRY_*) or CLI flags

# Name shown in the terminal UI
name = "Barry"

# Task data file (relative to the working directory)
data_file = "data/tasks.txt"

# What to do with a data file that cannot be read:
# "quarantine" renames it to <data_file>.corrupt-<timestamp>, "delete" removes it
corrupt_policy = "quarantine"

# Session log directory (supports ~ expansion and %VAR% on Windows)
# An empty value logs warnings to stderr instead
log_dir = "~/.barry/logs"

# Logging
log_level = "info"       # debug, info, warn, error
log_format = "text"      # text, json, logfmt
log_timestamps = true
log_caller = false
`
}
