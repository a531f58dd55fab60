package tasklist

import (
	"testing"
	"time"

	"github.com/nibzard/barry-go/internal/apperr"
	"github.com/nibzard/barry-go/internal/task"
)

func sample() *List {
	by := time.Date(2023, time.December, 2, 18, 0, 0, 0, time.UTC)
	from := time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.January, 1, 17, 0, 0, 0, time.UTC)
	return New(
		task.NewTodo("read book"),
		task.NewDeadline("submit report", by),
		task.NewEvent("book club trip", from, to),
	)
}

func sameTasks(a, b []task.Task) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func TestAdd(t *testing.T) {
	l := New()
	if !l.IsEmpty() {
		t.Fatal("new list should be empty")
	}
	for i, tk := range sample().Tasks() {
		l.Add(tk)
		if l.Len() != i+1 {
			t.Fatalf("Len after add %d: got %d", i+1, l.Len())
		}
		got, err := l.Get(i)
		if err != nil {
			t.Fatalf("Get(%d): %v", i, err)
		}
		if got.Completed {
			t.Errorf("added task %d should not be completed", i)
		}
	}
}

func TestOutOfRangeLeavesListUnchanged(t *testing.T) {
	ops := map[string]func(l *List, i int) error{
		"get":    func(l *List, i int) error { _, err := l.Get(i); return err },
		"remove": func(l *List, i int) error { _, err := l.Remove(i); return err },
		"mark":   func(l *List, i int) error { _, err := l.Mark(i); return err },
		"unmark": func(l *List, i int) error { _, err := l.Unmark(i); return err },
	}
	indices := []int{-1, 3, 4, 100}

	for name, op := range ops {
		for _, idx := range indices {
			l := sample()
			before := l.Tasks()
			err := op(l, idx)
			if !apperr.Is(err, apperr.KindRange) {
				t.Errorf("%s(%d): expected range error, got %v", name, idx, err)
				continue
			}
			if err.Error() != "Task number is out of range." {
				t.Errorf("%s(%d): message %q", name, idx, err.Error())
			}
			if !sameTasks(before, l.Tasks()) {
				t.Errorf("%s(%d): list changed", name, idx)
			}
		}
	}

	t.Run("empty list", func(t *testing.T) {
		l := New()
		if _, err := l.Mark(4); !apperr.Is(err, apperr.KindRange) {
			t.Errorf("Mark on empty list: got %v", err)
		}
		if !l.IsEmpty() {
			t.Error("list should remain empty")
		}
	})
}

func TestMarkUnmark(t *testing.T) {
	l := sample()
	before := l.Tasks()

	marked, err := l.Mark(1)
	if err != nil {
		t.Fatalf("Mark: %v", err)
	}
	if !marked.Completed {
		t.Error("Mark should return the completed task")
	}
	got, _ := l.Get(1)
	if !got.Completed {
		t.Error("Mark should update the stored task")
	}

	if _, err := l.Unmark(1); err != nil {
		t.Fatalf("Unmark: %v", err)
	}
	if !sameTasks(before, l.Tasks()) {
		t.Error("mark then unmark should restore original state")
	}
}

func TestRemove(t *testing.T) {
	l := sample()
	removed, err := l.Remove(0)
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if removed.Description != "read book" {
		t.Errorf("removed: got %q", removed.Description)
	}
	if l.Len() != 2 {
		t.Fatalf("Len: got %d, want 2", l.Len())
	}
	first, _ := l.Get(0)
	if first.Description != "submit report" {
		t.Errorf("order after remove: first is %q", first.Description)
	}

	last, err := l.Remove(l.Len() - 1)
	if err != nil {
		t.Fatalf("Remove last: %v", err)
	}
	if last.Kind != task.KindEvent {
		t.Errorf("removed last: got kind %v", last.Kind)
	}
}

func TestFind(t *testing.T) {
	l := sample()

	tests := []struct {
		term string
		want []string
	}{
		{"book", []string{"read book", "book club trip"}},
		{"report", []string{"submit report"}},
		{"Book", nil},
		{"missing", nil},
		{" ", []string{"read book", "submit report", "book club trip"}},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			got := l.Find(tt.term)
			if got == nil {
				t.Fatal("Find should never return nil")
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Find(%q): got %d matches, want %d", tt.term, len(got), len(tt.want))
			}
			for i := range got {
				if got[i].Description != tt.want[i] {
					t.Errorf("Find(%q)[%d]: got %q, want %q", tt.term, i, got[i].Description, tt.want[i])
				}
			}
		})
	}
}

func TestSnapshotsAreIsolated(t *testing.T) {
	seed := []task.Task{task.NewTodo("a")}
	l := New(seed...)
	seed[0].Description = "changed"

	snap := l.Tasks()
	snap[0].Mark()

	got, _ := l.Get(0)
	if got.Description != "a" || got.Completed {
		t.Errorf("list was mutated through a copy: %+v", got)
	}
	if l.Len() != 1 {
		t.Errorf("Len: got %d, want 1", l.Len())
	}

	got.Mark()
	again, _ := l.Get(0)
	if again.Completed {
		t.Error("Get should return a copy")
	}
}
