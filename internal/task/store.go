package task

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source used for created_at and completed_at.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger for load and save diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Store is the ordered task list and its backing file.
// It is not safe for concurrent use.
type Store struct {
	path   string
	tasks  []Task
	now    func() time.Time
	logger *log.Logger
}

// New returns an empty store backed by the file at path.
// Call Load to read existing tasks.
func New(path string, opts ...Option) *Store {
	s := &Store{
		path:   path,
		tasks:  []Task{},
		now:    time.Now,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the location of the tasks file.
func (s *Store) Path() string {
	return s.path
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// LoadResult describes what Load found on disk.
type LoadResult struct {
	Count   int
	Missing bool // no tasks file existed yet
}

// Load replaces the in-memory list with the contents of the tasks file.
// IDs that are not exactly 1..N in file order are renumbered in memory; the
// file is rewritten on the next mutation.
//
// A missing file yields an empty store. A file that cannot be parsed or does
// not match the schema also yields an empty store, and the returned error is
// a *ParseError; the store remains usable. Any other read failure is returned
// as is.
func (s *Store) Load() (LoadResult, error) {
	s.tasks = []Task{}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("no tasks file", "path", s.path)
			return LoadResult{Missing: true}, nil
		}
		return LoadResult{}, fmt.Errorf("read tasks file: %w", err)
	}

	tasks, err := decode(s.path, data)
	if err != nil {
		s.logger.Warn("discarding unreadable tasks file", "path", s.path, "err", err)
		return LoadResult{}, err
	}
	if tasks != nil {
		s.tasks = tasks
	}
	if !s.contiguous() {
		s.logger.Warn("renumbering task IDs", "path", s.path)
		s.renumber()
	}

	s.logger.Debug("loaded tasks", "path", s.path, "count", len(s.tasks))
	return LoadResult{Count: len(s.tasks)}, nil
}

// Save writes the whole list to the tasks file with 2-space indentation,
// replacing any previous contents.
func (s *Store) Save() (err error) {
	data, err := json.MarshalIndent(s.tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal tasks: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create tasks dir: %w", err)
	}

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("create tasks file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close tasks file: %w", cerr)
		}
	}()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("write tasks file: %w", err)
	}

	s.logger.Debug("saved tasks", "path", s.path, "count", len(s.tasks))
	return nil
}

// AddResult is the outcome of Add.
type AddResult struct {
	Task Task
	// PriorityDefaulted is set when the priority choice was not recognized
	// and DefaultPriority was used instead.
	PriorityDefaulted bool
}

// Add appends a new open task and saves.
//
// The description is trimmed; a blank description returns
// ErrEmptyDescription without touching the list or the file. priorityChoice
// is a menu choice as accepted by ParsePriorityChoice.
func (s *Store) Add(description, priorityChoice string) (AddResult, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return AddResult{}, ErrEmptyDescription
	}

	priority, ok := ParsePriorityChoice(priorityChoice)
	t := Task{
		ID:          len(s.tasks) + 1,
		Description: description,
		Priority:    priority,
		Completed:   false,
		CreatedAt:   NewTimestamp(s.now()),
	}
	s.tasks = append(s.tasks, t)

	if err := s.Save(); err != nil {
		return AddResult{}, err
	}
	return AddResult{Task: t, PriorityDefaulted: !ok}, nil
}

// View returns a read-only sequence of all tasks in list order. The sequence
// reads the store each time it is ranged over, so it can be reused after
// later mutations. When the store is empty View returns ErrNoTasks.
func (s *Store) View() (iter.Seq[Entry], error) {
	if len(s.tasks) == 0 {
		return nil, ErrNoTasks
	}
	return func(yield func(Entry) bool) {
		for _, t := range s.tasks {
			if !yield(t.Entry()) {
				return
			}
		}
	}, nil
}

// CompleteResult is the outcome of Complete.
type CompleteResult struct {
	Task Task
	// AlreadyCompleted is set when the task was completed before the call;
	// nothing was changed or saved.
	AlreadyCompleted bool
}

// Complete marks the task with the given ID as completed and saves.
// Completing a task twice is a no-op reported through AlreadyCompleted.
func (s *Store) Complete(id int) (CompleteResult, error) {
	i := s.index(id)
	if i < 0 {
		return CompleteResult{}, &NotFoundError{ID: id}
	}

	t := &s.tasks[i]
	if t.Completed {
		return CompleteResult{Task: *t, AlreadyCompleted: true}, nil
	}

	ts := NewTimestamp(s.now())
	t.Completed = true
	t.CompletedAt = &ts

	if err := s.Save(); err != nil {
		return CompleteResult{}, err
	}
	return CompleteResult{Task: *t}, nil
}

// Delete removes the task with the given ID, renumbers the remaining tasks
// to 1..N in list order, and saves. It returns the removed task as it was
// before removal.
func (s *Store) Delete(id int) (Task, error) {
	i := s.index(id)
	if i < 0 {
		return Task{}, &NotFoundError{ID: id}
	}

	removed := s.tasks[i]
	s.tasks = slices.Delete(s.tasks, i, i+1)
	s.renumber()

	if err := s.Save(); err != nil {
		return Task{}, err
	}
	return removed, nil
}

// Tasks returns a copy of the list.
func (s *Store) Tasks() []Task {
	out := make([]Task, len(s.tasks))
	for i, t := range s.tasks {
		if t.CompletedAt != nil {
			ts := *t.CompletedAt
			t.CompletedAt = &ts
		}
		out[i] = t
	}
	return out
}

func (s *Store) index(id int) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) contiguous() bool {
	for i := range s.tasks {
		if s.tasks[i].ID != i+1 {
			return false
		}
	}
	return true
}

func (s *Store) renumber() {
	for i := range s.tasks {
		s.tasks[i].ID = i + 1
	}
}
