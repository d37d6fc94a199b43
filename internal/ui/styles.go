// Package ui provides terminal styling and the optional full-screen viewer.
package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/taskman/internal/task"
)

// Styles renders priorities and headings for one output. Colors are dropped
// automatically when the output is not a terminal.
type Styles struct {
	priority map[task.Priority]lipgloss.Style
	title    lipgloss.Style
	selected lipgloss.Style
	muted    lipgloss.Style
}

// NewStyles returns styles bound to w's color capabilities.
func NewStyles(w io.Writer) *Styles {
	r := lipgloss.NewRenderer(w)
	return &Styles{
		priority: map[task.Priority]lipgloss.Style{
			task.PriorityHigh:   r.NewStyle().Foreground(lipgloss.Color("9")),
			task.PriorityMedium: r.NewStyle().Foreground(lipgloss.Color("11")),
			task.PriorityLow:    r.NewStyle().Foreground(lipgloss.Color("10")),
		},
		title:    r.NewStyle().Bold(true),
		selected: r.NewStyle().Reverse(true),
		muted:    r.NewStyle().Faint(true),
	}
}

// Priority renders the priority name in its level's color. Unknown values
// are returned unstyled.
func (s *Styles) Priority(p task.Priority) string {
	style, ok := s.priority[p]
	if !ok {
		return string(p)
	}
	return style.Render(string(p))
}

// Title renders a heading.
func (s *Styles) Title(text string) string {
	return s.title.Render(text)
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
