package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/barry-go/internal/task"
)

// CorruptPolicy selects what happens to a data file that fails to decode.
type CorruptPolicy string

const (
	// PolicyQuarantine renames the corrupt file aside and starts empty.
	PolicyQuarantine CorruptPolicy = "quarantine"
	// PolicyDelete removes the corrupt file and starts empty.
	PolicyDelete CorruptPolicy = "delete"
)

// ParseCorruptPolicy maps a config value to a CorruptPolicy.
// An empty value selects PolicyQuarantine.
func ParseCorruptPolicy(s string) (CorruptPolicy, error) {
	switch CorruptPolicy(s) {
	case "", PolicyQuarantine:
		return PolicyQuarantine, nil
	case PolicyDelete:
		return PolicyDelete, nil
	default:
		return "", fmt.Errorf("unknown corrupt policy %q (want quarantine or delete)", s)
	}
}

// quarantineLayout is appended to a quarantined file name.
const quarantineLayout = "20060102-150405"

// Storage reads and writes the task data file.
type Storage struct {
	path   string
	policy CorruptPolicy
	logger *log.Logger
	now    func() time.Time
}

// Option configures a Storage.
type Option func(*Storage)

// WithPolicy sets the corrupt-file recovery policy.
func WithPolicy(p CorruptPolicy) Option {
	return func(s *Storage) {
		s.policy = p
	}
}

// WithLogger sets the logger used for recovery warnings.
func WithLogger(l *log.Logger) Option {
	return func(s *Storage) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the clock used to name quarantined files.
func WithClock(now func() time.Time) Option {
	return func(s *Storage) {
		if now != nil {
			s.now = now
		}
	}
}

// New returns a Storage bound to path.
func New(path string, opts ...Option) *Storage {
	s := &Storage{
		path:   path,
		policy: PolicyQuarantine,
		logger: log.New(io.Discard),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the data file path.
func (s *Storage) Path() string {
	return s.path
}

// Policy returns the corrupt-file recovery policy.
func (s *Storage) Policy() CorruptPolicy {
	return s.policy
}

// Load reads all tasks from the data file.
//
// A missing file is created empty. A corrupt file is recovered per the
// policy and Load returns an empty slice with a nil error. The returned slice
// is never nil.
func (s *Storage) Load() ([]task.Task, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if err := s.createEmpty(); err != nil {
				return []task.Task{}, err
			}
			s.logger.Info("created data file", "path", s.path)
			return []task.Task{}, nil
		}
		return []task.Task{}, fmt.Errorf("read data file: %w", err)
	}

	tasks, err := Decode(data)
	if err != nil {
		s.logger.Warn("data file is corrupt, starting empty", "path", s.path, "policy", s.policy, "err", err)
		if rerr := s.recover(); rerr != nil {
			return []task.Task{}, fmt.Errorf("recover corrupt data file: %w", rerr)
		}
		return []task.Task{}, nil
	}

	s.logger.Debug("loaded tasks", "path", s.path, "count", len(tasks))
	return tasks, nil
}

// Save rewrites the data file with tasks.
func (s *Storage) Save(tasks []task.Task) error {
	if err := s.ensureDir(); err != nil {
		return err
	}
	if err := os.WriteFile(s.path, Encode(tasks), 0o644); err != nil {
		return fmt.Errorf("write data file: %w", err)
	}
	return nil
}

func (s *Storage) recover() error {
	switch s.policy {
	case PolicyDelete:
		if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove corrupt file: %w", err)
		}
		s.logger.Warn("deleted corrupt data file", "path", s.path)
	default:
		dest := fmt.Sprintf("%s.corrupt-%s", s.path, s.now().Format(quarantineLayout))
		if err := os.Rename(s.path, dest); err != nil {
			return fmt.Errorf("quarantine corrupt file: %w", err)
		}
		s.logger.Warn("quarantined corrupt data file", "path", s.path, "moved_to", dest)
	}
	return s.createEmpty()
}

func (s *Storage) createEmpty() error {
	if err := s.ensureDir(); err != nil {
		return err
	}
	if err := os.WriteFile(s.path, nil, 0o644); err != nil {
		return fmt.Errorf("create data file: %w", err)
	}
	return nil
}

func (s *Storage) ensureDir() error {
	dir := filepath.Dir(s.path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	return nil
}
