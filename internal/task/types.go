package task

import (
	"fmt"
	"time"
)

// Kind identifies a task variant.
type Kind int

const (
	KindTodo Kind = iota
	KindDeadline
	KindEvent
)

// Tag returns the single-letter tag used in display and storage.
func (k Kind) Tag() string {
	switch k {
	case KindTodo:
		return "T"
	case KindDeadline:
		return "D"
	case KindEvent:
		return "E"
	default:
		return "?"
	}
}

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case KindTodo:
		return "todo"
	case KindDeadline:
		return "deadline"
	case KindEvent:
		return "event"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind maps a storage tag back to a Kind.
func ParseKind(tag string) (Kind, error) {
	switch tag {
	case "T":
		return KindTodo, nil
	case "D":
		return KindDeadline, nil
	case "E":
		return KindEvent, nil
	default:
		return 0, fmt.Errorf("unknown task tag %q", tag)
	}
}

// Task is a single tracked item. Only the time fields of its Kind are set:
// By for deadlines, From and To for events.
type Task struct {
	Kind        Kind
	Description string
	Completed   bool
	By          time.Time
	From        time.Time
	To          time.Time
}

// NewTodo returns an incomplete todo.
func NewTodo(description string) Task {
	return Task{Kind: KindTodo, Description: description}
}

// NewDeadline returns an incomplete deadline due at by.
func NewDeadline(description string, by time.Time) Task {
	return Task{Kind: KindDeadline, Description: description, By: by}
}

// NewEvent returns an incomplete event spanning from..to.
// The span is not checked; to may precede from.
func NewEvent(description string, from, to time.Time) Task {
	return Task{Kind: KindEvent, Description: description, From: from, To: to}
}

// Mark sets the task as done.
func (t *Task) Mark() {
	t.Completed = true
}

// Unmark sets the task as not done.
func (t *Task) Unmark() {
	t.Completed = false
}

// StatusIcon returns "X" for a completed task and a single space otherwise.
func (t Task) StatusIcon() string {
	if t.Completed {
		return "X"
	}
	return " "
}

// String renders the display form of the task.
func (t Task) String() string {
	base := fmt.Sprintf("[%s][%s] %s", t.Kind.Tag(), t.StatusIcon(), t.Description)
	switch t.Kind {
	case KindDeadline:
		return fmt.Sprintf("%s (by: %s)", base, FormatDisplay(t.By))
	case KindEvent:
		return fmt.Sprintf("%s (from: %s to: %s)", base, FormatDisplay(t.From), FormatDisplay(t.To))
	default:
		return base
	}
}

// Equal reports whether two tasks have the same kind, description,
// completion flag and timestamps.
func (t Task) Equal(other Task) bool {
	return t.Kind == other.Kind &&
		t.Description == other.Description &&
		t.Completed == other.Completed &&
		t.By.Equal(other.By) &&
		t.From.Equal(other.From) &&
		t.To.Equal(other.To)
}
