package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/taskman/internal/task"
)

// chromeLines is the number of lines View spends outside the task list.
const chromeLines = 9

// Browse shows entries in a read-only full-screen viewer until the user
// quits. It returns ctx.Err() if the context is cancelled while open.
func Browse(ctx context.Context, entries iter.Seq[task.Entry], in io.Reader, out io.Writer) error {
	model := newBrowseModel(slices.Collect(entries), NewStyles(out))
	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	if _, err := program.Run(); err != nil {
		if ctx.Err() != nil && errors.Is(err, tea.ErrProgramKilled) {
			return ctx.Err()
		}
		return fmt.Errorf("task viewer: %w", err)
	}
	return nil
}

type browseModel struct {
	entries  []task.Entry
	styles   *Styles
	cursor   int  // index into visible()
	hideDone bool // hide completed tasks
	height   int  // terminal rows, 0 until the first WindowSizeMsg
}

func newBrowseModel(entries []task.Entry, styles *Styles) *browseModel {
	return &browseModel{entries: entries, styles: styles}
}

func (m *browseModel) Init() tea.Cmd {
	return nil
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "home", "g":
			m.cursor = 0
		case "end", "G":
			m.cursor = max(len(m.visible())-1, 0)
		case "c":
			m.hideDone = !m.hideDone
			m.move(0)
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height
	}
	return m, nil
}

func (m *browseModel) move(delta int) {
	n := len(m.visible())
	m.cursor = min(max(m.cursor+delta, 0), max(n-1, 0))
}

func (m *browseModel) visible() []task.Entry {
	if !m.hideDone {
		return m.entries
	}
	var out []task.Entry
	for _, e := range m.entries {
		if !e.Completed {
			out = append(out, e)
		}
	}
	return out
}

// window returns the half-open range of visible rows to draw so the cursor
// stays on screen.
func (m *browseModel) window(n int) (int, int) {
	rows := n
	if m.height > 0 {
		rows = max(m.height-chromeLines, 1)
	}
	if n <= rows {
		return 0, n
	}
	start := min(max(m.cursor-rows/2, 0), n-rows)
	return start, start + rows
}

func (m *browseModel) View() string {
	var b strings.Builder
	writeBrowseTitle(&b, m.styles)

	entries := m.visible()
	if len(entries) == 0 {
		if m.hideDone {
			b.WriteString("  All tasks are completed.\n\n")
		} else {
			b.WriteString("  No tasks yet! Add some to get started.\n\n")
		}
		writeBrowseFooter(&b, m)
		return b.String()
	}

	start, end := m.window(len(entries))
	for i := start; i < end; i++ {
		line := formatEntry(entries[i], m.styles)
		if i == m.cursor {
			line = m.styles.selected.Render(line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")

	writeDetails(&b, entries[m.cursor])
	writeBrowseFooter(&b, m)
	return b.String()
}

func writeBrowseTitle(b *strings.Builder, styles *Styles) {
	title := "YOUR TASKS"
	b.WriteString(styles.Title(title) + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func writeDetails(b *strings.Builder, e task.Entry) {
	b.WriteString(fmt.Sprintf("  Created:   %s\n", e.CreatedAt))
	if e.Completed {
		b.WriteString(fmt.Sprintf("  Completed: %s\n", e.CompletedAt))
	} else {
		b.WriteString("  Completed: -\n")
	}
	b.WriteString("\n")
}

func writeBrowseFooter(b *strings.Builder, m *browseModel) {
	filter := "all"
	if m.hideDone {
		filter = "open"
	}
	done := 0
	for _, e := range m.entries {
		if e.Completed {
			done++
		}
	}
	b.WriteString(m.styles.muted.Render(fmt.Sprintf("%d/%d done | showing %s | j/k move | c toggle completed | q back",
		done, len(m.entries), filter)))
	b.WriteString("\n")
}

func formatEntry(e task.Entry, styles *Styles) string {
	return fmt.Sprintf("  [%d] %s %s (%s)", e.ID, e.StatusIcon(), e.Description, styles.Priority(e.Priority))
}
