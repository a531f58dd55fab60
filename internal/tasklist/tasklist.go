// Package tasklist holds the ordered, in-memory collection of tasks.
package tasklist

import (
	"strings"

	"github.com/nibzard/barry-go/internal/apperr"
	"github.com/nibzard/barry-go/internal/task"
)

// List is an ordered sequence of tasks. Insertion order is the display and
// persisted order. Indices are 0-based; callers convert from the 1-based
// numbers users type.
type List struct {
	tasks []task.Task
}

// New returns a list seeded with a copy of tasks.
func New(tasks ...task.Task) *List {
	l := &List{tasks: make([]task.Task, len(tasks))}
	copy(l.tasks, tasks)
	return l
}

// Len returns the number of tasks.
func (l *List) Len() int {
	return len(l.tasks)
}

// IsEmpty reports whether the list has no tasks.
func (l *List) IsEmpty() bool {
	return len(l.tasks) == 0
}

// Tasks returns a snapshot of all tasks. Changing the returned slice does
// not affect the list.
func (l *List) Tasks() []task.Task {
	out := make([]task.Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}

// Add appends t.
func (l *List) Add(t task.Task) {
	l.tasks = append(l.tasks, t)
}

// Get returns a copy of the task at index.
func (l *List) Get(index int) (task.Task, error) {
	if err := l.check(index); err != nil {
		return task.Task{}, err
	}
	return l.tasks[index], nil
}

// Remove deletes the task at index and returns it.
func (l *List) Remove(index int) (task.Task, error) {
	if err := l.check(index); err != nil {
		return task.Task{}, err
	}
	removed := l.tasks[index]
	l.tasks = append(l.tasks[:index], l.tasks[index+1:]...)
	return removed, nil
}

// Mark sets the task at index as done and returns the updated copy.
func (l *List) Mark(index int) (task.Task, error) {
	return l.update(index, (*task.Task).Mark)
}

// Unmark sets the task at index as not done and returns the updated copy.
func (l *List) Unmark(index int) (task.Task, error) {
	return l.update(index, (*task.Task).Unmark)
}

// Find returns, in list order, every task whose description contains term.
// Matching is literal and case-sensitive. No match yields an empty slice.
func (l *List) Find(term string) []task.Task {
	matches := make([]task.Task, 0)
	for _, t := range l.tasks {
		if strings.Contains(t.Description, term) {
			matches = append(matches, t)
		}
	}
	return matches
}

func (l *List) update(index int, fn func(*task.Task)) (task.Task, error) {
	if err := l.check(index); err != nil {
		return task.Task{}, err
	}
	fn(&l.tasks[index])
	return l.tasks[index], nil
}

func (l *List) check(index int) error {
	if index < 0 || index >= len(l.tasks) {
		return apperr.Range()
	}
	return nil
}
