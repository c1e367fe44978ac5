package store

import (
	"cmp"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/dragdrop/pkg/errors"
)

// FileStore is a file-based snapshot store for CLI applications.
// Saves are stored as JSON files in a config directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a new file-based store.
// If baseDir is empty, defaults to ~/.config/dragdrop/saves/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeStorage, err, "get home dir")
		}
		baseDir = filepath.Join(home, ".config", "dragdrop", "saves")
	}
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "create save dir")
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) savePath(name string) string {
	return filepath.Join(s.baseDir, name+".json")
}

func (s *FileStore) Get(ctx context.Context, name string) (save *Save, err error) {
	start := time.Now()
	defer func() { observeLoad(ctx, "file", name, start, save, err) }()

	if err := errors.ValidateSaveName(name); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read(s.savePath(name))
}

func (s *FileStore) read(path string) (*Save, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "read save file")
	}

	var save Save
	if err := json.Unmarshal(data, &save); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "parse save %s", filepath.Base(path))
	}
	return &save, nil
}

func (s *FileStore) Set(ctx context.Context, save *Save) (err error) {
	if err := checkSave(save); err != nil {
		return err
	}
	start := time.Now()
	defer func() { observeSave(ctx, "file", save.Name, start, err) }()

	if save.SavedAt.IsZero() {
		save.SavedAt = time.Now().UTC()
	}
	data, err := json.MarshalIndent(save, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "marshal save")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Write then rename so a crash never leaves a truncated save behind.
	path := s.savePath(save.Name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write save file")
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeStorage, err, "write save file")
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateSaveName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.savePath(name)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeStorage, err, "remove save file")
	}
	return nil
}

// List skips files that are not readable saves.
func (s *FileStore) List(ctx context.Context) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "read save dir")
	}

	var out []Summary
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		save, err := s.read(filepath.Join(s.baseDir, entry.Name()))
		if err != nil || save == nil {
			continue
		}
		if save.Name != strings.TrimSuffix(entry.Name(), ".json") {
			continue
		}
		out = append(out, summarize(save))
	}
	sortSummaries(out)
	return out, nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the base directory for save files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)

func sortSummaries(out []Summary) {
	slices.SortFunc(out, func(a, b Summary) int {
		if c := b.SavedAt.Compare(a.SavedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
}
