package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nibzard/barry-go/internal/task"
)

func TestExport(t *testing.T) {
	done := task.NewTodo("read book")
	done.Mark()
	tasks := []task.Task{
		done,
		task.NewDeadline("submit report", at(2023, time.December, 2, 18, 0)),
		task.NewEvent("trip", at(2024, time.January, 1, 9, 0), at(2024, time.January, 1, 17, 0)),
	}

	var buf bytes.Buffer
	if err := Export(&buf, tasks); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	out := buf.String()
	if !strings.HasSuffix(out, "}\n") {
		t.Errorf("export should end with a newline: %q", out)
	}
	if !strings.Contains(out, "\n  \"schema_version\": 1,") {
		t.Errorf("export should be indented with two spaces:\n%s", out)
	}

	var doc struct {
		SchemaVersion int `json:"schema_version"`
		Tasks         []map[string]interface{}
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if doc.SchemaVersion != 1 {
		t.Errorf("schema_version = %d, want 1", doc.SchemaVersion)
	}
	if len(doc.Tasks) != 3 {
		t.Fatalf("tasks = %d, want 3", len(doc.Tasks))
	}
	if doc.Tasks[0]["completed"] != true {
		t.Errorf("first task should be completed: %v", doc.Tasks[0])
	}
	if _, ok := doc.Tasks[0]["by"]; ok {
		t.Errorf("todo should not carry by: %v", doc.Tasks[0])
	}
	if doc.Tasks[1]["by"] != "2023-12-02T18:00" {
		t.Errorf("deadline by = %v", doc.Tasks[1]["by"])
	}
	if doc.Tasks[2]["type"] != "event" || doc.Tasks[2]["to"] != "2024-01-01T17:00" {
		t.Errorf("event = %v", doc.Tasks[2])
	}
}

func TestExportEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, nil); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"tasks": []`) {
		t.Errorf("empty export = %s", buf.String())
	}
}

func TestStorageExport(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "tasks.txt"))
	if err := s.Save([]task.Task{task.NewTodo("a")}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	var buf bytes.Buffer
	if err := s.Export(&buf); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"description": "a"`) {
		t.Errorf("export = %s", buf.String())
	}
}

func TestStorageExportLeavesFileUntouched(t *testing.T) {
	t.Run("corrupt file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "tasks.txt")
		content := "T | 0 | keep me\nbroken\n"
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}

		var buf bytes.Buffer
		err := New(path).Export(&buf)
		var le *LineError
		if !errors.As(err, &le) {
			t.Fatalf("Export error = %v, want *LineError", err)
		}
		if le.Line != 2 {
			t.Errorf("Line = %d, want 2", le.Line)
		}
		if buf.Len() != 0 {
			t.Errorf("Export wrote %q on error", buf.String())
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != content {
			t.Errorf("data file = %q, want %q", data, content)
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 1 {
			t.Errorf("dir has %d entries, want only the data file", len(entries))
		}
	})

	t.Run("missing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data", "tasks.txt")

		var buf bytes.Buffer
		if err := New(path).Export(&buf); err != nil {
			t.Fatalf("Export failed: %v", err)
		}
		if !strings.Contains(buf.String(), `"tasks": []`) {
			t.Errorf("export = %s", buf.String())
		}
		if _, err := os.Stat(filepath.Dir(path)); !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Export created %s (stat err = %v)", filepath.Dir(path), err)
		}
	})
}

func TestValidateExportRejects(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		wantPath string
	}{
		{
			name:     "deadline without by",
			doc:      `{"schema_version":1,"tasks":[{"type":"deadline","description":"x","completed":false}]}`,
			wantPath: "tasks[0]",
		},
		{
			name:     "bad timestamp",
			doc:      `{"schema_version":1,"tasks":[{"type":"todo","description":"x","completed":false},{"type":"deadline","description":"y","completed":true,"by":"tomorrow"}]}`,
			wantPath: "tasks[1].by",
		},
		{
			name:     "wrong version",
			doc:      `{"schema_version":2,"tasks":[]}`,
			wantPath: "schema_version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateExport([]byte(tt.doc))
			if err == nil {
				t.Fatal("expected validation error")
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *ValidationError, got %T: %v", err, err)
			}
			if ve.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", ve.Path, tt.wantPath)
			}
		})
	}
}

func TestJSONPointerToPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/", ""},
		{"#/tasks/0/by", "tasks[0].by"},
		{"/tasks/12", "tasks[12]"},
		{"/a~1b/c~0d", "a/b.c~d"},
	}
	for _, tt := range tests {
		if got := jsonPointerToPath(tt.in); got != tt.want {
			t.Errorf("jsonPointerToPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
