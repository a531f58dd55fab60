// Package storage persists the task list to a flat, line-based data file.
//
// Each task is one line with fields separated by " | ":
//
//	T | 0 | read book
//	D | 1 | submit report | 2023-12-02T18:00
//	E | 0 | trip | 2024-01-01T09:00 | 2024-01-01T17:00
//
// A description may itself contain " | "; the decoder takes the kind's
// timestamps from the end of the line.
//
// The second field is the completion flag (0 or 1). Timestamps use
// task.StorageLayout, which is distinct from both the input and display forms.
//
// # Loading
//
// A missing data file (or parent directory) is created empty. A file with any
// malformed line is treated as corrupt as a whole: it is quarantined (renamed
// aside) or deleted according to the CorruptPolicy, and loading continues with
// an empty list.
//
// # Saving
//
// Save rewrites the whole file from the given tasks; it never appends.
//
// # Export
//
// Export writes the tasks as JSON, validated against an embedded JSON Schema
// before anything is written. (*Storage).Export only reads the data file: a
// corrupt file is reported, never recovered.
package storage
