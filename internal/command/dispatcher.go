package command

import (
	"fmt"
	"strings"

	"github.com/nibzard/barry-go/internal/apperr"
	"github.com/nibzard/barry-go/internal/task"
	"github.com/nibzard/barry-go/internal/tasklist"
)

// Response texts.
const (
	MsgGoodbye    = "Bye. See you soon!"
	MsgEmptyList  = "There are no tasks in your list."
	MsgMarked     = "I've marked this task as done:"
	MsgUnmarked   = "I've unmarked this task:"
	MsgAdded      = "Got it. I've added this task:"
	MsgRemoved    = "Noted. I've removed this task:"
	MsgFoundTasks = "I've found the following tasks with your given searchterm:"
	MsgSaveFailed = "I couldn't save your tasks"
)

// HelpText lists every command and its arguments.
const HelpText = "Here are the available commands:\n" +
	"1. list - List all tasks\n" +
	"2. mark [task number] - Mark a task as done\n" +
	"3. unmark [task number] - Unmark a task as not done\n" +
	"4. todo [description] - Add a new todo task\n" +
	"5. deadline [description] /by [d/M/yyyy HHmm] - Add a new deadline task\n" +
	"6. event [description] /from [d/M/yyyy HHmm] /to [d/M/yyyy HHmm] - Add a new event task\n" +
	"7. delete [task number] - Delete a task\n" +
	"8. find [keyword] - Find tasks with the specified keyword\n" +
	"9. bye - Exit the application\n" +
	"10. help - Display this list of commands"

// Saver persists the full task list.
type Saver interface {
	Save(tasks []task.Task) error
}

// Env is the state a command runs against.
type Env struct {
	List  *tasklist.List
	Saver Saver
}

// Result is the outcome of a successful command.
type Result struct {
	Text string
	Exit bool // the session should end
}

type handler func(*Env, Command) (Result, error)

// Dispatcher routes commands to their handlers.
type Dispatcher struct {
	handlers map[Kind]handler
}

// NewDispatcher returns a Dispatcher with every command kind registered.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		handlers: map[Kind]handler{
			KindExit:        exit,
			KindList:        list,
			KindMark:        mark,
			KindUnmark:      unmark,
			KindDelete:      remove,
			KindAddTodo:     add,
			KindAddDeadline: add,
			KindAddEvent:    add,
			KindFind:        find,
			KindHelp:        help,
		},
	}
}

// Execute runs cmd against env. Mutating commands save the list afterwards;
// a failed save is reported but the mutation stands.
func (d *Dispatcher) Execute(env *Env, cmd Command) (Result, error) {
	h, ok := d.handlers[cmd.Kind]
	if !ok {
		return Result{}, apperr.UnknownCommand()
	}

	res, err := h(env, cmd)
	if err != nil {
		return Result{}, err
	}

	if cmd.Kind.Mutates() && env.Saver != nil {
		if err := env.Saver.Save(env.List.Tasks()); err != nil {
			return Result{}, apperr.IO(MsgSaveFailed, err)
		}
	}
	return res, nil
}

func exit(*Env, Command) (Result, error) {
	return Result{Text: MsgGoodbye, Exit: true}, nil
}

func list(env *Env, _ Command) (Result, error) {
	if env.List.IsEmpty() {
		return Result{Text: MsgEmptyList}, nil
	}
	return Result{Text: numbered(env.List.Tasks())}, nil
}

func mark(env *Env, cmd Command) (Result, error) {
	t, err := env.List.Mark(cmd.Index)
	if err != nil {
		return Result{}, err
	}
	return Result{Text: MsgMarked + "\n" + t.String()}, nil
}

func unmark(env *Env, cmd Command) (Result, error) {
	t, err := env.List.Unmark(cmd.Index)
	if err != nil {
		return Result{}, err
	}
	return Result{Text: MsgUnmarked + "\n" + t.String()}, nil
}

func add(env *Env, cmd Command) (Result, error) {
	var t task.Task
	switch cmd.Kind {
	case KindAddDeadline:
		t = task.NewDeadline(cmd.Description, cmd.By)
	case KindAddEvent:
		t = task.NewEvent(cmd.Description, cmd.From, cmd.To)
	default:
		t = task.NewTodo(cmd.Description)
	}
	env.List.Add(t)
	return Result{Text: MsgAdded + "\n" + t.String()}, nil
}

func remove(env *Env, cmd Command) (Result, error) {
	t, err := env.List.Remove(cmd.Index)
	if err != nil {
		return Result{}, err
	}
	return Result{Text: fmt.Sprintf("%s\n%s\nNow you have %d tasks in the list.", MsgRemoved, t, env.List.Len())}, nil
}

func find(env *Env, cmd Command) (Result, error) {
	lines := []string{MsgFoundTasks}
	for _, t := range env.List.Find(cmd.Term) {
		lines = append(lines, t.String())
	}
	return Result{Text: strings.Join(lines, "\n")}, nil
}

func help(*Env, Command) (Result, error) {
	return Result{Text: HelpText}, nil
}

func numbered(tasks []task.Task) string {
	lines := make([]string, len(tasks))
	for i, t := range tasks {
		lines[i] = fmt.Sprintf("%d. %s", i+1, t)
	}
	return strings.Join(lines, "\n")
}
