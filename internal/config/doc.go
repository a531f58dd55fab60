// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.barry/barry.toml or OS-specific config directory)
// 3. Project config file (barry.toml or .barry.toml in the working directory)
// 4. Environment variables (BARRY_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
// Only keys present in a config file override earlier levels.
//
// User-level config locations:
// - ~/.barry/barry.toml (preferred)
// - Windows: %APPDATA%\barry\barry.toml
// - macOS: ~/Library/Application Support/barry/barry.toml
// - Linux/BSD: $XDG_CONFIG_HOME/barry/barry.toml or ~/.config/barry/barry.toml
//
// Project-level config locations (overrides user config):
// - ./barry.toml (preferred)
// - ./.barry.toml
package config
