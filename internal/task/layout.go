package task

import (
	"fmt"
	"strings"
	"time"
)

const (
	// InputLayout is the user-typed form, d/M/yyyy HHmm.
	InputLayout = "2/1/2006 1504"
	// DisplayLayout is the human form, MMM dd yyyy, hh:mm a.
	DisplayLayout = "Jan 02 2006, 03:04 PM"
	// StorageLayout is the ISO local date-time written to the data file.
	StorageLayout = "2006-01-02T15:04"
	// storageLayoutSeconds is accepted on read for files that carry seconds.
	storageLayoutSeconds = "2006-01-02T15:04:05"
)

// ParseInput parses a user-typed timestamp in InputLayout.
func ParseInput(s string) (time.Time, error) {
	t, err := time.ParseInLocation(InputLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse input time %q: %w", s, err)
	}
	return t, nil
}

// FormatDisplay renders t in DisplayLayout.
func FormatDisplay(t time.Time) string {
	return t.Format(DisplayLayout)
}

// FormatStorage renders t in StorageLayout. Seconds are kept when non-zero
// so that a save/load round trip never loses precision.
func FormatStorage(t time.Time) string {
	if t.Second() != 0 {
		return t.Format(storageLayoutSeconds)
	}
	return t.Format(StorageLayout)
}

// ParseStorage parses a timestamp written by FormatStorage.
func ParseStorage(s string) (time.Time, error) {
	layout := StorageLayout
	if len(s) > len(StorageLayout) {
		layout = storageLayoutSeconds
	}
	t, err := time.ParseInLocation(layout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse stored time %q: %w", s, err)
	}
	return t, nil
}
