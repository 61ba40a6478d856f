// Package playcount persists how many rounds have been started.
package playcount

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/bytedance/sonic"
)

// Max caps the stored counter.
const Max = 1_000_000

type record struct {
	PlayCount int `json:"playCount"`
}

// Store is a file-backed round counter. It satisfies game.PlayCounter.
// Save failures are logged, never returned to the game loop.
type Store struct {
	mu    sync.Mutex
	path  string
	count int
}

// DefaultPath returns the counter location under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "spotdiff", "stats.json"), nil
}

// Open loads the counter at path. A missing file starts at zero; an empty
// path yields an in-memory store.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var rec record
	if err := sonic.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	s.count = clamp(rec.PlayCount)
	return s, nil
}

func clamp(n int) int {
	if n < 0 {
		return 0
	}
	if n > Max {
		return Max
	}
	return n
}

// Count returns the current value.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// Path returns the backing file, empty for in-memory stores.
func (s *Store) Path() string {
	return s.path
}

// RoundStarted bumps the counter and persists it.
func (s *Store) RoundStarted() {
	s.mu.Lock()
	if s.count < Max {
		s.count++
	}
	n := s.count
	s.mu.Unlock()
	if err := s.save(n); err != nil {
		countLog.Warn().Err(err).Str("path", s.path).Msg("persist play count")
	}
}

// Save writes the current value.
func (s *Store) Save() error {
	return s.save(s.Count())
}

func (s *Store) save(n int) error {
	if s.path == "" {
		return nil
	}
	data, err := sonic.Marshal(record{PlayCount: n})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
