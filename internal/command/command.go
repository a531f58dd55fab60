// Package command defines parsed commands and executes them against a task
// list.
package command

import (
	"fmt"
	"time"
)

// Kind identifies a command.
type Kind int

const (
	KindExit Kind = iota
	KindList
	KindMark
	KindUnmark
	KindDelete
	KindAddTodo
	KindAddDeadline
	KindAddEvent
	KindFind
	KindHelp
)

var kindNames = map[Kind]string{
	KindExit:        "bye",
	KindList:        "list",
	KindMark:        "mark",
	KindUnmark:      "unmark",
	KindDelete:      "delete",
	KindAddTodo:     "todo",
	KindAddDeadline: "deadline",
	KindAddEvent:    "event",
	KindFind:        "find",
	KindHelp:        "help",
}

// String returns the command word for the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("command(%d)", int(k))
}

// Mutates reports whether commands of this kind change the task list.
func (k Kind) Mutates() bool {
	switch k {
	case KindMark, KindUnmark, KindDelete, KindAddTodo, KindAddDeadline, KindAddEvent:
		return true
	default:
		return false
	}
}

// Command is a single parsed request. Only the fields its Kind needs are set.
type Command struct {
	Kind        Kind
	Index       int    // 0-based; mark, unmark, delete
	Description string // todo, deadline, event
	Term        string // find
	By          time.Time
	From        time.Time
	To          time.Time
}
