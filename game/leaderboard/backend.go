package leaderboard

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// MemoryBackend keeps the table in process memory
type MemoryBackend struct {
	mu      sync.Mutex
	entries []Entry
	saves   int
}

// NewMemoryBackend creates a backend seeded with entries
func NewMemoryBackend(entries ...Entry) *MemoryBackend {
	return &MemoryBackend{entries: append([]Entry(nil), entries...)}
}

// Load returns a copy of the stored entries
func (m *MemoryBackend) Load() ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Entry(nil), m.entries...), nil
}

// Save replaces the stored entries
func (m *MemoryBackend) Save(entries []Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append([]Entry(nil), entries...)
	m.saves++
	return nil
}

// Saves returns how many times Save was called
func (m *MemoryBackend) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// FileBackend stores the table as a JSON array of {name, score, date}
type FileBackend struct {
	path string
}

// NewFileBackend creates a backend for path, creating its directory
func NewFileBackend(path string) (*FileBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create leaderboard directory: %w", err)
	}
	return &FileBackend{path: path}, nil
}

// Path returns the file location
func (f *FileBackend) Path() string {
	return f.path
}

// Load reads the table; a missing or empty file is an empty table
func (f *FileBackend) Load() ([]Entry, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []Entry{}, nil
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse leaderboard file '%s': %w", f.path, err)
	}
	return entries, nil
}

// Save writes the table through a temp file and rename so readers never see
// a partial file
func (f *FileBackend) Save(entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal leaderboard: %w", err)
	}
	return writeFileAtomic(f.path, append(data, '\n'), 0644)
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := io.Copy(tmp, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write leaderboard: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace leaderboard file: %w", err)
	}
	committed = true
	return nil
}
