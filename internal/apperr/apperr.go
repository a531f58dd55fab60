// Package apperr defines the user-facing error taxonomy.
//
// Every error the assistant reports back to the user carries a Kind so that
// callers can tell malformed input apart from range violations and storage
// failures without matching on message text.
package apperr

import (
	"errors"
	"fmt"
)

// Kind identifies the class of a user-facing error.
type Kind string

const (
	KindFormat         Kind = "format"
	KindUnknownCommand Kind = "unknown_command"
	KindRange          Kind = "range"
	KindIO             Kind = "io"
)

// Messages shared by more than one package.
const (
	MsgUnknownCommand = "I'm sorry, but I don't know what that means :-("
	MsgOutOfRange     = "Task number is out of range."
	MsgDateFormat     = "The date and time format is incorrect. Please use d/M/yyyy HHmm format."
)

// Error is a user-facing error. Message is shown verbatim.
type Error struct {
	Kind    Kind
	Message string
	Err     error // Underlying error, if any
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Format returns a malformed-input error.
func Format(msg string) *Error {
	return &Error{Kind: KindFormat, Message: msg}
}

// UnknownCommand returns the error for an unrecognized command word.
func UnknownCommand() *Error {
	return &Error{Kind: KindUnknownCommand, Message: MsgUnknownCommand}
}

// Range returns the error for a task index outside the list.
func Range() *Error {
	return &Error{Kind: KindRange, Message: MsgOutOfRange}
}

// IO wraps a storage failure. The cause is appended to msg.
func IO(msg string, err error) *Error {
	text := msg
	if err != nil {
		text = fmt.Sprintf("%s: %v", msg, err)
	}
	return &Error{Kind: KindIO, Message: text, Err: err}
}

// KindOf reports the kind of err. Errors that did not originate in this
// package are treated as I/O failures.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindIO
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
