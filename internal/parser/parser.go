// Package parser turns a line of user input into a command.
package parser

import (
	"strconv"
	"strings"
	"time"

	"github.com/nibzard/barry-go/internal/apperr"
	"github.com/nibzard/barry-go/internal/command"
	"github.com/nibzard/barry-go/internal/task"
)

// Format error texts.
const (
	MsgIndexNotInteger = "The task number must be an integer."
	MsgEmptyTodo       = "The description of a todo cannot be empty."
	MsgEmptySearchTerm = "The search term cannot be empty."
	MsgDeadlineFormat  = "The deadline format is incorrect. Please use: deadline <description> /by <d/M/yyyy HHmm>"
	MsgEventFormat     = "The event format is incorrect. Please use: event <description> /from <d/M/yyyy HHmm> /to <d/M/yyyy HHmm>"
)

const (
	bySep   = " /by "
	fromSep = " /from "
	toSep   = " /to "
)

// Parse parses one line of input. Errors are *apperr.Error values whose
// message is suitable for showing to the user.
func Parse(line string) (command.Command, error) {
	word, rest, _ := strings.Cut(strings.TrimSpace(line), " ")

	switch word {
	case "bye":
		return command.Command{Kind: command.KindExit}, nil
	case "list":
		return command.Command{Kind: command.KindList}, nil
	case "help":
		return command.Command{Kind: command.KindHelp}, nil
	case "mark":
		return parseIndexed(command.KindMark, rest)
	case "unmark":
		return parseIndexed(command.KindUnmark, rest)
	case "delete":
		return parseIndexed(command.KindDelete, rest)
	case "todo":
		desc := strings.TrimSpace(rest)
		if desc == "" {
			return command.Command{}, apperr.Format(MsgEmptyTodo)
		}
		return command.Command{Kind: command.KindAddTodo, Description: desc}, nil
	case "find":
		term := strings.TrimSpace(rest)
		if term == "" {
			return command.Command{}, apperr.Format(MsgEmptySearchTerm)
		}
		return command.Command{Kind: command.KindFind, Term: term}, nil
	case "deadline":
		return parseDeadline(rest)
	case "event":
		return parseEvent(rest)
	default:
		return command.Command{}, apperr.UnknownCommand()
	}
}

func parseIndexed(kind command.Kind, rest string) (command.Command, error) {
	n, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil {
		return command.Command{}, apperr.Format(MsgIndexNotInteger)
	}
	return command.Command{Kind: kind, Index: n - 1}, nil
}

func parseDeadline(rest string) (command.Command, error) {
	parts := strings.Split(rest, bySep)
	if len(parts) != 2 {
		return command.Command{}, apperr.Format(MsgDeadlineFormat)
	}
	desc := strings.TrimSpace(parts[0])
	if desc == "" {
		return command.Command{}, apperr.Format(MsgDeadlineFormat)
	}
	by, err := parseTime(parts[1])
	if err != nil {
		return command.Command{}, err
	}
	return command.Command{Kind: command.KindAddDeadline, Description: desc, By: by}, nil
}

func parseEvent(rest string) (command.Command, error) {
	parts := strings.Split(rest, fromSep)
	if len(parts) != 2 {
		return command.Command{}, apperr.Format(MsgEventFormat)
	}
	span := strings.Split(parts[1], toSep)
	if len(span) != 2 {
		return command.Command{}, apperr.Format(MsgEventFormat)
	}
	desc := strings.TrimSpace(parts[0])
	if desc == "" {
		return command.Command{}, apperr.Format(MsgEventFormat)
	}
	from, err := parseTime(span[0])
	if err != nil {
		return command.Command{}, err
	}
	to, err := parseTime(span[1])
	if err != nil {
		return command.Command{}, err
	}
	return command.Command{Kind: command.KindAddEvent, Description: desc, From: from, To: to}, nil
}

func parseTime(s string) (time.Time, error) {
	t, err := task.ParseInput(s)
	if err != nil {
		return time.Time{}, apperr.Format(apperr.MsgDateFormat)
	}
	return t, nil
}
