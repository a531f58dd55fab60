package apperr

import (
	"errors"
	"fmt"
	"os"
	"testing"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     *Error
		kind    Kind
		message string
	}{
		{"format", Format("bad input"), KindFormat, "bad input"},
		{"unknown", UnknownCommand(), KindUnknownCommand, "I'm sorry, but I don't know what that means :-("},
		{"range", Range(), KindRange, "Task number is out of range."},
		{"io without cause", IO("save failed", nil), KindIO, "save failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != tt.kind {
				t.Errorf("Kind: got %q, want %q", tt.err.Kind, tt.kind)
			}
			if tt.err.Error() != tt.message {
				t.Errorf("Error(): got %q, want %q", tt.err.Error(), tt.message)
			}
		})
	}
}

func TestIOWrapsCause(t *testing.T) {
	err := IO("I couldn't save your tasks", os.ErrPermission)
	if !errors.Is(err, os.ErrPermission) {
		t.Error("expected IO error to unwrap to the cause")
	}
	want := "I couldn't save your tasks: " + os.ErrPermission.Error()
	if err.Error() != want {
		t.Errorf("Error(): got %q, want %q", err.Error(), want)
	}
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("dispatch: %w", Range())
	if got := KindOf(wrapped); got != KindRange {
		t.Errorf("KindOf(wrapped range): got %q, want %q", got, KindRange)
	}
	if got := KindOf(errors.New("disk on fire")); got != KindIO {
		t.Errorf("KindOf(plain error): got %q, want %q", got, KindIO)
	}
	if Is(nil, KindIO) {
		t.Error("Is(nil) should be false")
	}
	if !Is(Format("x"), KindFormat) {
		t.Error("Is(Format) should be true for KindFormat")
	}
}
