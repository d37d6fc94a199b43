// Package cmd provides tests for the taskman entrypoint.
package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nibzard/taskman/internal/config"
)

// isolate runs the test in a fresh working directory with no user config.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("APPDATA", filepath.Join(home, "AppData"))
	for _, key := range []string{
		config.EnvTasksFile, config.EnvUI, config.EnvLogLevel,
		config.EnvLogFormat, config.EnvLogTimestamps, config.EnvLogCaller,
	} {
		t.Setenv(key, "")
	}

	workDir := t.TempDir()
	t.Chdir(workDir)
	return workDir
}

func TestRun(t *testing.T) {
	t.Run("rejects arguments", func(t *testing.T) {
		isolate(t)
		var stdout, stderr bytes.Buffer
		err := run(context.Background(), []string{"--help"}, strings.NewReader(""), &stdout, &stderr)
		if !errors.Is(err, ErrUsage) {
			t.Fatalf("got %v, want ErrUsage", err)
		}
		if !strings.Contains(stderr.String(), "Usage:") {
			t.Errorf("usage not printed:\n%s", stderr.String())
		}
		if stdout.Len() != 0 {
			t.Errorf("unexpected stdout: %q", stdout.String())
		}
	})

	t.Run("adds a task to tasks.json in the working directory", func(t *testing.T) {
		workDir := isolate(t)
		var stdout, stderr bytes.Buffer
		in := strings.NewReader("1\nWrite report\n1\n5\n")
		if err := run(context.Background(), nil, in, &stdout, &stderr); err != nil {
			t.Fatalf("run: %v\nstderr:\n%s", err, stderr.String())
		}

		data, err := os.ReadFile(filepath.Join(workDir, "tasks.json"))
		if err != nil {
			t.Fatalf("reading tasks file: %v", err)
		}
		var tasks []map[string]any
		if err := json.Unmarshal(data, &tasks); err != nil {
			t.Fatalf("tasks file is not JSON: %v", err)
		}
		if len(tasks) != 1 || tasks[0]["description"] != "Write report" || tasks[0]["priority"] != "High" {
			t.Errorf("unexpected tasks: %v", tasks)
		}
		if !strings.Contains(stdout.String(), "✓ Task added successfully! (ID: 1, Priority: High)") {
			t.Errorf("stdout:\n%s", stdout.String())
		}
	})

	t.Run("honours TASKMAN_FILE", func(t *testing.T) {
		workDir := isolate(t)
		t.Setenv(config.EnvTasksFile, "lists/work.json")

		var stdout, stderr bytes.Buffer
		if err := run(context.Background(), nil, strings.NewReader("1\nShip it\n3\n5\n"), &stdout, &stderr); err != nil {
			t.Fatalf("run: %v", err)
		}
		if _, err := os.Stat(filepath.Join(workDir, "lists", "work.json")); err != nil {
			t.Errorf("expected tasks file under lists/: %v", err)
		}
	})

	t.Run("logs to stderr only", func(t *testing.T) {
		isolate(t)
		t.Setenv(config.EnvLogLevel, "debug")

		var stdout, stderr bytes.Buffer
		if err := run(context.Background(), nil, strings.NewReader("5\n"), &stdout, &stderr); err != nil {
			t.Fatalf("run: %v", err)
		}
		if !strings.Contains(stderr.String(), "tasks_file=") {
			t.Errorf("expected debug log on stderr:\n%s", stderr.String())
		}
		if strings.Contains(stdout.String(), "tasks_file=") {
			t.Errorf("log line leaked to stdout:\n%s", stdout.String())
		}
	})

	t.Run("tui falls back to the plain list without a terminal", func(t *testing.T) {
		isolate(t)
		t.Setenv(config.EnvUI, "tui")

		var stdout, stderr bytes.Buffer
		in := strings.NewReader("1\nBuy milk\n2\n2\n5\n")
		if err := run(context.Background(), nil, in, &stdout, &stderr); err != nil {
			t.Fatalf("run: %v", err)
		}
		if !strings.Contains(stdout.String(), "YOUR TASKS") {
			t.Errorf("expected printed list:\n%s", stdout.String())
		}
	})

	t.Run("invalid config is an error", func(t *testing.T) {
		isolate(t)
		t.Setenv(config.EnvUI, "fancy")

		err := run(context.Background(), nil, strings.NewReader("5\n"), &bytes.Buffer{}, &bytes.Buffer{})
		if err == nil || !strings.Contains(err.Error(), "loading config") {
			t.Errorf("got %v, want config error", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		isolate(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := run(ctx, nil, strings.NewReader("5\n"), &bytes.Buffer{}, &bytes.Buffer{})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("got %v, want context.Canceled", err)
		}
	})
}
