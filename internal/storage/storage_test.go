package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nibzard/barry-go/internal/task"
)

func TestLoadCreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "tasks.txt")
	s := New(path)

	tasks, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if tasks == nil || len(tasks) != 0 {
		t.Errorf("Load() = %#v, want empty slice", tasks)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("data file not created: %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("data file size = %d, want 0", info.Size())
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "tasks.txt")
	s := New(path)

	tasks := []task.Task{
		task.NewTodo("read book"),
		task.NewDeadline("submit report", at(2023, time.December, 2, 18, 0)),
	}
	if err := s.Save(tasks); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	want := "T | 0 | read book\nD | 0 | submit report | 2023-12-02T18:00\n"
	if string(data) != want {
		t.Errorf("file contents = %q, want %q", data, want)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != 2 || !loaded[1].Equal(tasks[1]) {
		t.Errorf("Load() = %+v", loaded)
	}
}

func TestSaveRewritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	s := New(path)

	if err := s.Save([]task.Task{task.NewTodo("a"), task.NewTodo("b")}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := s.Save([]task.Task{task.NewTodo("c")}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "T | 0 | c\n" {
		t.Errorf("file contents = %q", data)
	}
}

func TestLoadCorruptQuarantine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.txt")
	if err := os.WriteFile(path, []byte("T | 0 | ok\nX | 9 | broken\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	clock := func() time.Time { return time.Date(2024, time.March, 5, 14, 30, 15, 0, time.UTC) }
	s := New(path, WithPolicy(PolicyQuarantine), WithClock(clock))

	tasks, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("Load() returned %d tasks, want 0", len(tasks))
	}

	moved := path + ".corrupt-20240305-143015"
	data, err := os.ReadFile(moved)
	if err != nil {
		t.Fatalf("quarantined file missing: %v", err)
	}
	if !strings.Contains(string(data), "X | 9 | broken") {
		t.Errorf("quarantined contents = %q", data)
	}

	data, err = os.ReadFile(path)
	if err != nil {
		t.Fatalf("data file not recreated: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("recreated data file = %q, want empty", data)
	}
}

func TestLoadCorruptDelete(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.txt")
	if err := os.WriteFile(path, []byte("garbage\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := New(path, WithPolicy(PolicyDelete))
	tasks, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("Load() returned %d tasks, want 0", len(tasks))
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "tasks.txt" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("dir entries = %v, want only tasks.txt", names)
	}
}

func TestSaveFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := New(filepath.Join(blocker, "tasks.txt"))
	if err := s.Save([]task.Task{task.NewTodo("a")}); err == nil {
		t.Fatal("expected error when parent is a file")
	}
}

func TestParseCorruptPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    CorruptPolicy
		wantErr bool
	}{
		{"", PolicyQuarantine, false},
		{"quarantine", PolicyQuarantine, false},
		{"delete", PolicyDelete, false},
		{"ignore", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCorruptPolicy(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCorruptPolicy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseCorruptPolicy(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
