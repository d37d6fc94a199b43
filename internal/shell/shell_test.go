package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/nibzard/taskman/internal/task"
)

var testNow = time.Date(2026, 3, 14, 9, 26, 53, 0, time.Local)

func newStore(t *testing.T) (*task.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.json")
	return task.New(path, task.WithClock(func() time.Time { return testNow })), path
}

// session runs a shell over the given input lines and returns its output.
func session(t *testing.T, store *task.Store, lines []string, opts ...Option) string {
	t.Helper()
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	if err := New(store, in, &out, opts...).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v\noutput:\n%s", err, out.String())
	}
	return out.String()
}

func assertContains(t *testing.T, output string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(output, w) {
			t.Errorf("output missing %q:\n%s", w, output)
		}
	}
}

func TestRunStartAndExit(t *testing.T) {
	store, _ := newStore(t)
	out := session(t, store, []string{"5"})

	assertContains(t, out,
		"🎯 Welcome to Task Manager!",
		"No existing tasks found, starting afresh",
		strings.Repeat("=", 60)+"\nTASK MANAGER\n"+strings.Repeat("=", 60),
		"1. Add a task\n2. View all tasks\n3. Mark task as complete\n4. Delete a task\n5. Exit",
		"Enter your choice (1-5): ",
		"👋 Thanks for using Task Manager! Goodbye!",
	)
}

func TestRunEndOfInput(t *testing.T) {
	store, _ := newStore(t)
	var out bytes.Buffer
	if err := New(store, strings.NewReader(""), &out).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	assertContains(t, out.String(), "Goodbye!")
}

func TestRunEndOfInputMidPrompt(t *testing.T) {
	store, _ := newStore(t)
	var out bytes.Buffer
	in := strings.NewReader("1\nBuy milk")
	if err := New(store, in, &out).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("task added without a priority answer")
	}
	assertContains(t, out.String(), "Goodbye!")
}

func TestRunLoadMessages(t *testing.T) {
	t.Run("existing", func(t *testing.T) {
		store, path := newStore(t)
		if _, err := store.Add("one", "1"); err != nil {
			t.Fatal(err)
		}
		if _, err := store.Add("two", "2"); err != nil {
			t.Fatal(err)
		}
		reopened := task.New(path)
		assertContains(t, session(t, reopened, []string{"5"}), "✓ Loaded 2 task(s)")
	})

	t.Run("corrupt", func(t *testing.T) {
		store, path := newStore(t)
		if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
			t.Fatal(err)
		}
		assertContains(t, session(t, store, []string{"5"}), "⚠ Error reading tasks file, starting afresh")
		if store.Len() != 0 {
			t.Errorf("Len: got %d, want 0", store.Len())
		}
	})

	t.Run("read failure", func(t *testing.T) {
		dir := t.TempDir()
		store := task.New(dir)
		err := New(store, strings.NewReader("5\n"), io.Discard).Run(context.Background())
		if err == nil {
			t.Fatal("expected error reading a directory as the tasks file")
		}
	})
}

func TestRunAdd(t *testing.T) {
	tests := []struct {
		name     string
		choice   string
		want     task.Priority
		notified bool
	}{
		{"high", "1", task.PriorityHigh, false},
		{"medium", "2", task.PriorityMedium, false},
		{"low", " 3 ", task.PriorityLow, false},
		{"out of range", "9", task.PriorityMedium, true},
		{"empty", "", task.PriorityMedium, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, _ := newStore(t)
			out := session(t, store, []string{"1", "Write report", tt.choice, "5"})

			assertContains(t, out,
				"Enter task description: ",
				"\nSelect priority level:\n1. High\n2. Medium\n3. Low\n",
				"Enter priority level (1-3), default is Medium: ",
				"✓ Task added successfully! (ID: 1, Priority: "+string(tt.want)+")",
			)
			notice := strings.Contains(out, "⚠ Invalid priority choice, setting default to Medium")
			if notice != tt.notified {
				t.Errorf("priority notice: got %v, want %v", notice, tt.notified)
			}
			tasks := store.Tasks()
			if len(tasks) != 1 || tasks[0].Priority != tt.want {
				t.Errorf("stored tasks: %+v", tasks)
			}
		})
	}
}

func TestRunAddLongDescription(t *testing.T) {
	store, _ := newStore(t)
	long := strings.Repeat("x", 70*1024)
	out := session(t, store, []string{"1", long, "2", "5"})

	assertContains(t, out, "✓ Task added successfully! (ID: 1, Priority: Medium)")
	tasks := store.Tasks()
	if len(tasks) != 1 || tasks[0].Description != long {
		t.Fatalf("long description not stored intact (%d tasks)", len(tasks))
	}
}

func TestRunCRLFInput(t *testing.T) {
	store, _ := newStore(t)
	var out bytes.Buffer
	in := strings.NewReader("1\r\nBuy milk\r\n1\r\n5\r\n")
	if err := New(store, in, &out).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	tasks := store.Tasks()
	if len(tasks) != 1 || tasks[0].Description != "Buy milk" || tasks[0].Priority != task.PriorityHigh {
		t.Errorf("stored tasks: %+v", tasks)
	}
}

func TestRunAddEmptyDescription(t *testing.T) {
	store, path := newStore(t)
	out := session(t, store, []string{"1", "   ", "5"})

	assertContains(t, out, "⚠ Task description cannot be empty")
	if strings.Contains(out, "Select priority level") {
		t.Error("priority menu shown for an empty description")
	}
	if store.Len() != 0 {
		t.Errorf("Len: got %d, want 0", store.Len())
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("tasks file should not be written, stat err: %v", err)
	}
}

func TestRunView(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		store, _ := newStore(t)
		assertContains(t, session(t, store, []string{"2", "5"}), "\nNo tasks yet! Add some to get started.\n\n")
	})

	t.Run("list", func(t *testing.T) {
		store, _ := newStore(t)
		out := session(t, store, []string{
			"1", "Buy milk", "1",
			"1", "Walk dog", "3",
			"3", "2",
			"2",
			"5",
		})

		rule := strings.Repeat("=", 60)
		assertContains(t, out,
			rule+"\nYOUR TASKS\n"+rule,
			"[1] ○ Buy milk\n    Priority: High\n    Created: 14-03-2026 09:26:53\n",
			"[2] ✓ Walk dog\n    Priority: Low\n    Created: 14-03-2026 09:26:53\n    Completed: 14-03-2026 09:26:53\n",
		)
		if strings.Contains(out, "[1] ○ Buy milk\n    Priority: High\n    Created: 14-03-2026 09:26:53\n    Completed") {
			t.Error("open task printed a completion time")
		}
	})
}

func TestRunViewBrowser(t *testing.T) {
	store, _ := newStore(t)
	var seen []string
	browse := func(ctx context.Context, entries iter.Seq[task.Entry], in io.Reader, out io.Writer) error {
		for e := range entries {
			seen = append(seen, e.Description)
		}
		return nil
	}

	out := session(t, store, []string{"1", "Buy milk", "2", "2", "5"}, WithBrowser(browse))
	if !slices.Equal(seen, []string{"Buy milk"}) {
		t.Errorf("browser saw %v", seen)
	}
	if strings.Contains(out, "YOUR TASKS") {
		t.Error("list printed although the browser handled the view")
	}
}

func TestRunViewBrowserFailureFallsBack(t *testing.T) {
	store, _ := newStore(t)
	browse := func(context.Context, iter.Seq[task.Entry], io.Reader, io.Writer) error {
		return errors.New("no terminal")
	}
	out := session(t, store, []string{"1", "Buy milk", "2", "2", "5"}, WithBrowser(browse))
	assertContains(t, out, "YOUR TASKS", "[1] ○ Buy milk")
}

func TestRunComplete(t *testing.T) {
	store, _ := newStore(t)
	out := session(t, store, []string{
		"3",
		"1", "Buy milk", "2",
		"3", "abc",
		"3", "7",
		"3", "1",
		"3", "1",
		"5",
	})

	assertContains(t, out,
		"No tasks to complete!",
		"Enter task ID to mark as complete: ",
		"⚠ Please enter a valid number",
		"⚠ Task with ID 7 not found",
		"✓ Task 1 marked as complete!",
		"⚠ This task is already completed",
	)
	tasks := store.Tasks()
	if !tasks[0].Completed || tasks[0].CompletedAt == nil {
		t.Errorf("task not completed: %+v", tasks[0])
	}
}

func TestRunDelete(t *testing.T) {
	store, path := newStore(t)
	out := session(t, store, []string{
		"4",
		"1", "A", "1",
		"1", "B", "2",
		"1", "C", "3",
		"4", "x",
		"4", "9",
		"4", "2",
		"5",
	})

	assertContains(t, out,
		"No tasks to delete!",
		"Enter task ID to delete: ",
		"⚠ Please enter a valid number",
		"⚠ Task with ID 9 not found",
		"✓ Task IDs reset successfully!\n✓ Task 2 deleted\n",
	)

	reopened := task.New(path)
	if _, err := reopened.Load(); err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, tk := range reopened.Tasks() {
		got = append(got, tk.Description)
		if want := len(got); tk.ID != want {
			t.Errorf("%s: ID %d, want %d", tk.Description, tk.ID, want)
		}
	}
	if !slices.Equal(got, []string{"A", "C"}) {
		t.Errorf("remaining: got %v, want [A C]", got)
	}
}

func TestRunInvalidChoice(t *testing.T) {
	store, _ := newStore(t)
	out := session(t, store, []string{"7", "", "five", "5"})

	if n := strings.Count(out, "⚠ Invalid choice. Please enter a number between 1 and 5."); n != 3 {
		t.Errorf("invalid choice warnings: got %d, want 3", n)
	}
	if n := strings.Count(out, "TASK MANAGER"); n != 4 {
		t.Errorf("menu shown %d times, want 4", n)
	}
}

func TestRunCancelled(t *testing.T) {
	store, _ := newStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := New(store, strings.NewReader("1\nBuy milk\n1\n"), &out).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run: got %v, want context.Canceled", err)
	}
	if store.Len() != 0 {
		t.Errorf("cancelled session changed the store")
	}
	if strings.Contains(out.String(), "Goodbye!") {
		t.Error("goodbye printed on cancellation")
	}
}

func TestRunStoreErrorIsFatal(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}
	store := task.New(filepath.Join(blocker, "tasks.json"))

	var out bytes.Buffer
	err := New(store, strings.NewReader("1\nBuy milk\n1\n5\n"), &out).Run(context.Background())
	if err == nil {
		t.Fatal("expected an error when the tasks dir is a file")
	}
	if strings.Contains(out.String(), "Goodbye!") {
		t.Error("goodbye printed after a fatal store error")
	}
}
