package config

import "os"

// Environment variables read by loadFromEnv.
const (
	EnvTasksFile     = "TASKMAN_FILE"
	EnvUI            = "TASKMAN_UI"
	EnvLogLevel      = "TASKMAN_LOG_LEVEL"
	EnvLogFormat     = "TASKMAN_LOG_FORMAT"
	EnvLogTimestamps = "TASKMAN_LOG_TIMESTAMPS"
	EnvLogCaller     = "TASKMAN_LOG_CALLER"
)

// loadFromEnv overrides config from environment variables.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv(EnvTasksFile); v != "" {
		cfg.TasksFile = v
	}
	if v := os.Getenv(EnvUI); v != "" {
		cfg.UI = UIMode(v)
	}

	// Logging configuration
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv(EnvLogTimestamps); v != "" {
		cfg.LogTimestamps = boolFromString(v)
	}
	if v := os.Getenv(EnvLogCaller); v != "" {
		cfg.LogCaller = boolFromString(v)
	}
}
