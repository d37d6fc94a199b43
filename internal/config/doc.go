// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.taskman/taskman.toml or OS-specific config directory)
// 3. Project config file (taskman.toml or .taskman.toml in the working directory)
// 4. Environment variables (TASKMAN_*)
//
// Each level overrides the previous one. There is no flag layer: taskman is
// driven entirely from its interactive menu.
//
// User-level config locations:
// - ~/.taskman/taskman.toml (preferred)
// - Windows: %APPDATA%\taskman\taskman.toml
// - macOS: ~/Library/Application Support/taskman/taskman.toml
// - Linux/BSD: $XDG_CONFIG_HOME/taskman/taskman.toml or ~/.config/taskman/taskman.toml
//
// Project-level config locations (overrides user config):
// - ./taskman.toml (preferred)
// - ./.taskman.toml
//
// Example:
//
//	tasks_file = "~/notes/tasks.json"
//	ui = "tui"
//	log_level = "debug"
//	log_format = "logfmt"
package config
