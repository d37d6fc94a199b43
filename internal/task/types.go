package task

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TimeLayout is the DD-MM-YYYY HH:MM:SS layout used for task timestamps.
const TimeLayout = "02-01-2006 15:04:05"

// NotAvailable is shown for a completed task that has no completion time.
const NotAvailable = "N/A"

// Priority represents a task priority level.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// DefaultPriority is used for unrecognized choices and for tasks stored
// without a priority.
const DefaultPriority = PriorityMedium

// priorityChoices maps menu input to priority levels.
var priorityChoices = map[string]Priority{
	"1": PriorityHigh,
	"2": PriorityMedium,
	"3": PriorityLow,
}

// Priorities returns the priority levels in menu order.
func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// ParsePriorityChoice resolves a menu choice ("1", "2" or "3") to a priority.
// Any other input, including the empty string, yields DefaultPriority and
// ok == false.
func ParsePriorityChoice(choice string) (p Priority, ok bool) {
	p, ok = priorityChoices[strings.TrimSpace(choice)]
	if !ok {
		return DefaultPriority, false
	}
	return p, true
}

// OrDefault returns p, or DefaultPriority when p is empty.
func (p Priority) OrDefault() Priority {
	if p == "" {
		return DefaultPriority
	}
	return p
}

// Timestamp is a local time serialized with TimeLayout.
//
// A timestamp read from the file keeps its text, so a wall-clock reading
// that does not exist locally (a DST gap) is written back unchanged.
type Timestamp struct {
	time.Time
	text string
}

// NewTimestamp truncates t to whole seconds, the precision the file keeps.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.Truncate(time.Second)}
}

// String returns the text read from the file, or the time formatted with
// TimeLayout.
func (t Timestamp) String() string {
	if t.text != "" {
		return t.text
	}
	return t.Format(TimeLayout)
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := time.ParseInLocation(TimeLayout, s, time.Local)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	t.Time = parsed
	t.text = s
	return nil
}

// Task represents a single to-do item.
type Task struct {
	ID          int        `json:"id"`
	Description string     `json:"description"`
	Priority    Priority   `json:"priority,omitempty"`
	Completed   bool       `json:"completed"`
	CreatedAt   Timestamp  `json:"created_at"`
	CompletedAt *Timestamp `json:"completed_at,omitempty"`
}

// Entry is the read-only display form of a task with defaults resolved.
type Entry struct {
	ID          int
	Description string
	Priority    Priority
	Completed   bool
	CreatedAt   string
	// CompletedAt is empty for open tasks and NotAvailable for completed
	// tasks stored without a completion time.
	CompletedAt string
}

// Entry resolves the optional fields of t for display.
func (t Task) Entry() Entry {
	e := Entry{
		ID:          t.ID,
		Description: t.Description,
		Priority:    t.Priority.OrDefault(),
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt.String(),
	}
	if t.Completed {
		e.CompletedAt = NotAvailable
		if t.CompletedAt != nil {
			e.CompletedAt = t.CompletedAt.String()
		}
	}
	return e
}

// StatusIcon returns the check mark for completed entries and an open circle
// otherwise.
func (e Entry) StatusIcon() string {
	if e.Completed {
		return "✓"
	}
	return "○"
}
