// Package storage persists application state as JSON files under a state
// directory, one file per key. It is the Go stand-in for the browser
// localStorage the original web app wrote to.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Well-known state keys.
const (
	KeyTasks       = "tasks"
	KeyTaskOfDay   = "task_of_the_day"
	KeyMotivation  = "daily_motivation"
	KeySuggestions = "staged_suggestions"
)

const (
	fileMode = 0o600
	dirMode  = 0o750
)

// Storage reads and writes JSON values keyed by name.
type Storage struct {
	dir string
}

// Open returns a Storage rooted at dir, creating the directory if needed.
func Open(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}
	return &Storage{dir: dir}, nil
}

// Dir returns the state directory path.
func (s *Storage) Dir() string { return s.dir }

func (s *Storage) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get decodes the value stored under key into v. A missing key is not an
// error: ok is false and v is left untouched.
func (s *Storage) Get(key string, v any) (ok bool, err error) {
	data, err := os.ReadFile(s.path(key)) //nolint:gosec // state path from trusted dir
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("reading state %q: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decoding state %q: %w", key, err)
	}
	return true, nil
}

// Put serializes v and writes it under key. The write is atomic: the value
// goes to a temp file in the same directory which is then renamed over the
// destination, so readers never observe a partial snapshot.
func (s *Storage) Put(key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding state %q: %w", key, err)
	}

	tmp, err := os.CreateTemp(s.dir, key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp state file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing state %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("closing temp state file: %w", err)
	}
	if err := os.Chmod(tmpName, fileMode); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("setting state file mode: %w", err)
	}
	if err := os.Rename(tmpName, s.path(key)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replacing state %q: %w", key, err)
	}
	return nil
}

// Delete removes the value stored under key. Removing a missing key is a no-op.
func (s *Storage) Delete(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting state %q: %w", key, err)
	}
	return nil
}
