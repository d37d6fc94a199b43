// Package cmd implements the taskman entrypoint.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/nibzard/taskman/internal/config"
	"github.com/nibzard/taskman/internal/logging"
	"github.com/nibzard/taskman/internal/shell"
	"github.com/nibzard/taskman/internal/task"
	"github.com/nibzard/taskman/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// ErrUsage is returned when taskman is started with arguments.
var ErrUsage = errors.New("taskman takes no arguments")

// Run executes the taskman session on the process's standard streams.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdin, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) > 0 {
		printUsage(stderr)
		return fmt.Errorf("%w: %q", ErrUsage, args)
	}

	cfg, err := config.Load("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.NewFromConfig(stderr, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)
	store := task.New(cfg.TasksFile, task.WithLogger(logger))
	logger.Debug("starting", "version", Version, "tasks_file", store.Path(), "ui", cfg.UI)

	opts := []shell.Option{shell.WithLogger(logger)}
	if cfg.UI == config.UITUI {
		if ui.IsTTY(stdout) {
			opts = append(opts, shell.WithBrowser(ui.Browse))
		} else {
			logger.Info("output is not a terminal, using the plain task list")
		}
	}

	return shell.New(store, stdin, stdout, opts...).Run(ctx)
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Task Manager - an interactive to-do list")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  taskman")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Configuration is read from taskman.toml files and the environment:")
	for _, key := range []string{
		config.EnvTasksFile,
		config.EnvUI,
		config.EnvLogLevel,
		config.EnvLogFormat,
		config.EnvLogTimestamps,
		config.EnvLogCaller,
	} {
		fmt.Fprintf(w, "  %s\n", key)
	}
}
