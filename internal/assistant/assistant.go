// Package assistant holds one interactive session: the task list, its
// storage, and the request/response loop body shared by every front end.
package assistant

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/nibzard/barry-go/internal/apperr"
	"github.com/nibzard/barry-go/internal/command"
	"github.com/nibzard/barry-go/internal/parser"
	"github.com/nibzard/barry-go/internal/storage"
	"github.com/nibzard/barry-go/internal/tasklist"
)

// WelcomeMessage greets the user at the start of a session.
const WelcomeMessage = "Hello! I'm Barry.\nWhat can I do for you?"

// State is the session lifecycle state.
type State int

const (
	Running State = iota
	Exited
)

func (s State) String() string {
	if s == Exited {
		return "exited"
	}
	return "running"
}

// Assistant answers one line of input at a time.
type Assistant struct {
	env        *command.Env
	dispatcher *command.Dispatcher
	logger     *log.Logger
	state      State
}

// New loads the stored tasks and returns a running session. Load failures are
// logged and the session starts with an empty list.
func New(store *storage.Storage, logger *log.Logger) *Assistant {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	tasks, err := store.Load()
	if err != nil {
		logger.Error("failed to load tasks, starting empty", "path", store.Path(), "err", err)
	}
	logger.Info("session started", "path", store.Path(), "tasks", len(tasks))

	return &Assistant{
		env:        &command.Env{List: tasklist.New(tasks...), Saver: store},
		dispatcher: command.NewDispatcher(),
		logger:     logger,
		state:      Running,
	}
}

// Welcome returns the greeting shown before the first prompt.
func (a *Assistant) Welcome() string {
	return WelcomeMessage
}

// GetResponse parses and executes line and returns the text to show. Errors
// are returned as their message; they never end the session.
func (a *Assistant) GetResponse(line string) string {
	cmd, err := parser.Parse(line)
	if err != nil {
		a.logger.Warn("rejected input", "kind", apperr.KindOf(err), "err", err)
		return err.Error()
	}

	a.logger.Debug("dispatching command", "command", cmd.Kind)
	res, err := a.dispatcher.Execute(a.env, cmd)
	if err != nil {
		a.logger.Warn("command failed", "command", cmd.Kind, "kind", apperr.KindOf(err), "err", err)
		return err.Error()
	}

	if res.Exit {
		a.state = Exited
		a.logger.Info("session ended", "tasks", a.env.List.Len())
	}
	return res.Text
}

// State returns the session state.
func (a *Assistant) State() State {
	return a.state
}

// Exited reports whether the user has ended the session.
func (a *Assistant) Exited() bool {
	return a.state == Exited
}

// Len returns the number of tasks in the session.
func (a *Assistant) Len() int {
	return a.env.List.Len()
}
