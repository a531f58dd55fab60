// Package ui provides the line-oriented REPL and the optional terminal UI.
package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
)

// Session is the conversation the front ends drive.
type Session interface {
	Welcome() string
	GetResponse(line string) string
	Exited() bool
}

// RunREPL prints the welcome message, then answers one line of r at a time
// until the session exits, r reaches EOF, or ctx is cancelled.
func RunREPL(ctx context.Context, r io.Reader, w io.Writer, s Session) error {
	if _, err := fmt.Fprintln(w, s.Welcome()); err != nil {
		return fmt.Errorf("write welcome: %w", err)
	}

	lines := make(chan string)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				readErr <- nil
				return
			case <-done:
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return fmt.Errorf("read input: %w", err)
				}
				return nil
			}
			if _, err := fmt.Fprintln(w, s.GetResponse(line)); err != nil {
				return fmt.Errorf("write response: %w", err)
			}
			if s.Exited() {
				return nil
			}
		}
	}
}
