package storage

import (
	"fmt"
	"strings"

	"github.com/nibzard/barry-go/internal/task"
)

// fieldSep separates fields on a data line.
const fieldSep = " | "

// LineError reports a malformed line in the data file.
type LineError struct {
	Line int   // 1-based line number
	Err  error // Underlying error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Err)
}

// Unwrap returns the underlying error.
func (e *LineError) Unwrap() error {
	return e.Err
}

// EncodeLine renders a single task as a data line without the newline.
func EncodeLine(t task.Task) string {
	fields := []string{t.Kind.Tag(), encodeFlag(t.Completed), t.Description}
	switch t.Kind {
	case task.KindDeadline:
		fields = append(fields, task.FormatStorage(t.By))
	case task.KindEvent:
		fields = append(fields, task.FormatStorage(t.From), task.FormatStorage(t.To))
	}
	return strings.Join(fields, fieldSep)
}

// DecodeLine parses a single data line. Timestamps never contain the field
// separator, so a description that does is rebuilt from the fields between
// the flag and the kind's timestamps.
func DecodeLine(line string) (task.Task, error) {
	parts := strings.Split(line, fieldSep)
	if len(parts) < 3 {
		return task.Task{}, fmt.Errorf("expected at least 3 fields, got %d", len(parts))
	}

	kind, err := task.ParseKind(parts[0])
	if err != nil {
		return task.Task{}, err
	}
	stamps := timestampCount(kind)
	if want := 3 + stamps; len(parts) < want {
		return task.Task{}, fmt.Errorf("%s line: expected at least %d fields, got %d", kind, want, len(parts))
	}

	completed, err := decodeFlag(parts[1])
	if err != nil {
		return task.Task{}, err
	}

	end := len(parts) - stamps
	t := task.Task{
		Kind:        kind,
		Description: strings.Join(parts[2:end], fieldSep),
		Completed:   completed,
	}
	switch kind {
	case task.KindDeadline:
		if t.By, err = task.ParseStorage(parts[end]); err != nil {
			return task.Task{}, err
		}
	case task.KindEvent:
		if t.From, err = task.ParseStorage(parts[end]); err != nil {
			return task.Task{}, err
		}
		if t.To, err = task.ParseStorage(parts[end+1]); err != nil {
			return task.Task{}, err
		}
	}
	return t, nil
}

// Encode renders tasks as the full file contents, one line per task.
func Encode(tasks []task.Task) []byte {
	var b strings.Builder
	for _, t := range tasks {
		b.WriteString(EncodeLine(t))
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// Decode parses full file contents. Blank lines are skipped; any malformed
// line fails the whole decode with a *LineError.
func Decode(data []byte) ([]task.Task, error) {
	tasks := make([]task.Task, 0)
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		t, err := DecodeLine(line)
		if err != nil {
			return nil, &LineError{Line: i + 1, Err: err}
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func timestampCount(kind task.Kind) int {
	switch kind {
	case task.KindDeadline:
		return 1
	case task.KindEvent:
		return 2
	default:
		return 0
	}
}

func encodeFlag(completed bool) string {
	if completed {
		return "1"
	}
	return "0"
}

func decodeFlag(s string) (bool, error) {
	switch s {
	case "1":
		return true, nil
	case "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid completion flag %q", s)
	}
}
