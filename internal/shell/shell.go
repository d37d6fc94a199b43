// Package shell runs the numbered-menu session on top of a task store.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskman/internal/task"
	"github.com/nibzard/taskman/internal/ui"
)

const ruleWidth = 60

// BrowseFunc shows a read-only view of tasks and returns when the user is done.
type BrowseFunc func(ctx context.Context, entries iter.Seq[task.Entry], in io.Reader, out io.Writer) error

// Option configures a Shell.
type Option func(*Shell)

// WithBrowser makes the View entry open browse instead of printing the list.
// A nil browse keeps the printed list.
func WithBrowser(browse BrowseFunc) Option {
	return func(s *Shell) {
		s.browse = browse
	}
}

// WithLogger sets the logger for session diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(s *Shell) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Shell reads menu choices from in and writes prompts and results to out.
type Shell struct {
	store  *task.Store
	in     io.Reader
	reader *bufio.Reader
	out    io.Writer
	styles *ui.Styles
	browse BrowseFunc
	logger *log.Logger
}

// New returns a shell driving store.
func New(store *task.Store, in io.Reader, out io.Writer, opts ...Option) *Shell {
	s := &Shell{
		store:  store,
		in:     in,
		reader: bufio.NewReader(in),
		out:    out,
		styles: ui.NewStyles(out),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// errEndOfInput ends the session the same way the Exit entry does.
var errEndOfInput = errors.New("end of input")

// Run loads the store and serves the menu until the user exits or input
// ends, in which case it returns nil. It returns ctx.Err() when the context
// is cancelled and any store write error as is.
func (s *Shell) Run(ctx context.Context) error {
	s.printf("\n🎯 Welcome to Task Manager!\n\n")
	if err := s.load(); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.showMenu()
		choice, err := s.ask(ctx, "\nEnter your choice (1-5): ")
		if errors.Is(err, errEndOfInput) {
			s.goodbye()
			return nil
		}
		if err != nil {
			return err
		}

		switch strings.TrimSpace(choice) {
		case "1":
			err = s.add(ctx)
		case "2":
			err = s.view(ctx)
		case "3":
			err = s.complete(ctx)
		case "4":
			err = s.delete(ctx)
		case "5":
			s.goodbye()
			return nil
		default:
			s.printf("⚠ Invalid choice. Please enter a number between 1 and 5.\n")
		}

		if errors.Is(err, errEndOfInput) {
			s.goodbye()
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (s *Shell) load() error {
	res, err := s.store.Load()
	var perr *task.ParseError
	switch {
	case errors.As(err, &perr):
		s.printf("⚠ Error reading tasks file, starting afresh\n")
	case err != nil:
		return err
	case res.Missing:
		s.printf("No existing tasks found, starting afresh\n")
	default:
		s.printf("✓ Loaded %d task(s)\n", res.Count)
	}
	return nil
}

func (s *Shell) add(ctx context.Context) error {
	description, err := s.ask(ctx, "Enter task description: ")
	if err != nil {
		return err
	}
	if strings.TrimSpace(description) == "" {
		s.printf("⚠ Task description cannot be empty\n")
		return nil
	}

	s.printf("\nSelect priority level:\n")
	for i, p := range task.Priorities() {
		s.printf("%d. %s\n", i+1, p)
	}
	choice, err := s.ask(ctx, "Enter priority level (1-3), default is Medium: ")
	if err != nil {
		return err
	}

	res, err := s.store.Add(description, choice)
	if err != nil {
		return err
	}
	if res.PriorityDefaulted {
		s.printf("⚠ Invalid priority choice, setting default to Medium\n")
	}
	s.printf("✓ Task added successfully! (ID: %d, Priority: %s)\n", res.Task.ID, res.Task.Priority)
	return nil
}

func (s *Shell) view(ctx context.Context) error {
	entries, err := s.store.View()
	if errors.Is(err, task.ErrNoTasks) {
		s.printf("\nNo tasks yet! Add some to get started.\n\n")
		return nil
	}
	if err != nil {
		return err
	}

	if s.browse != nil {
		if err := s.browse(ctx, entries, s.in, s.out); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.logger.Warn("task viewer failed, printing list", "err", err)
		} else {
			return nil
		}
	}

	rule := strings.Repeat("=", ruleWidth)
	s.printf("\n%s\n%s\n%s\n", rule, s.styles.Title("YOUR TASKS"), rule)
	for e := range entries {
		s.printf("\n[%d] %s %s\n", e.ID, e.StatusIcon(), e.Description)
		s.printf("    Priority: %s\n", s.styles.Priority(e.Priority))
		s.printf("    Created: %s\n", e.CreatedAt)
		if e.Completed {
			s.printf("    Completed: %s\n", e.CompletedAt)
		}
	}
	s.printf("\n%s\n\n", rule)
	return nil
}

func (s *Shell) complete(ctx context.Context) error {
	if s.store.Len() == 0 {
		s.printf("No tasks to complete!\n")
		return nil
	}

	id, ok, err := s.askID(ctx, "Enter task ID to mark as complete: ")
	if err != nil || !ok {
		return err
	}

	res, err := s.store.Complete(id)
	switch {
	case errors.Is(err, task.ErrNotFound):
		s.printf("⚠ Task with ID %d not found\n", id)
	case err != nil:
		return err
	case res.AlreadyCompleted:
		s.printf("⚠ This task is already completed\n")
	default:
		s.printf("✓ Task %d marked as complete!\n", id)
	}
	return nil
}

func (s *Shell) delete(ctx context.Context) error {
	if s.store.Len() == 0 {
		s.printf("No tasks to delete!\n")
		return nil
	}

	id, ok, err := s.askID(ctx, "Enter task ID to delete: ")
	if err != nil || !ok {
		return err
	}

	if _, err := s.store.Delete(id); err != nil {
		if errors.Is(err, task.ErrNotFound) {
			s.printf("⚠ Task with ID %d not found\n", id)
			return nil
		}
		return err
	}
	s.printf("✓ Task IDs reset successfully!\n")
	s.printf("✓ Task %d deleted\n", id)
	return nil
}

// askID prompts for a task ID. ok is false when the input was not a number
// and the user has already been told so.
func (s *Shell) askID(ctx context.Context, prompt string) (id int, ok bool, err error) {
	input, err := s.ask(ctx, prompt)
	if err != nil {
		return 0, false, err
	}
	id, err = task.ParseID(input)
	if err != nil {
		s.printf("⚠ Please enter a valid number\n")
		return 0, false, nil
	}
	return id, true, nil
}

// ask prints prompt and reads one line of any length. A final line without
// a newline is returned as is. It returns errEndOfInput when input is
// exhausted and ctx.Err() when the context was cancelled meanwhile.
func (s *Shell) ask(ctx context.Context, prompt string) (string, error) {
	s.printf("%s", prompt)
	line, err := s.reader.ReadString('\n')
	if cerr := ctx.Err(); cerr != nil {
		return "", cerr
	}
	switch {
	case errors.Is(err, io.EOF) && line == "":
		s.printf("\n")
		return "", errEndOfInput
	case err != nil && !errors.Is(err, io.EOF):
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (s *Shell) showMenu() {
	rule := strings.Repeat("=", ruleWidth)
	s.printf("\n%s\n%s\n%s\n", rule, s.styles.Title("TASK MANAGER"), rule)
	s.printf("1. Add a task\n2. View all tasks\n3. Mark task as complete\n4. Delete a task\n5. Exit\n")
	s.printf("%s\n", rule)
}

func (s *Shell) goodbye() {
	s.printf("\n👋 Thanks for using Task Manager! Goodbye!\n\n")
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}
