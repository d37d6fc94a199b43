package config

import (
	"fmt"
	"strings"
)

// Default values.
const (
	DefaultTasksFile = "tasks.json"
	DefaultUI        = UIPlain
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// UIMode selects how the View menu entry renders tasks.
type UIMode string

const (
	// UIPlain prints tasks inline between menu prompts.
	UIPlain UIMode = "plain"
	// UITUI opens a full-screen viewer when stdout is a terminal.
	UITUI UIMode = "tui"
)

// ParseUIMode normalizes a UI mode name.
func ParseUIMode(s string) (UIMode, error) {
	switch UIMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", UIPlain:
		return UIPlain, nil
	case UITUI:
		return UITUI, nil
	}
	return "", fmt.Errorf("invalid ui mode %q (expected plain|tui)", s)
}

// Config holds the full configuration for taskman.
type Config struct {
	// Paths
	TasksFile string `toml:"tasks_file"`

	// Display
	UI UIMode `toml:"ui"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`
}
