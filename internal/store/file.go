package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/jonathan/academic-tracker/internal/schemas"
	"github.com/jonathan/academic-tracker/internal/types"
	schemasembed "github.com/jonathan/academic-tracker/schemas"
)

// Document names inside the data directory
const (
	SemestersFile = "semesters.json"
	SettingsFile  = "settings.json"
)

// FileStore persists semesters and settings as two JSON documents in a data directory.
// Writes go to a temporary file in the same directory which is then renamed over the target.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates the data directory if needed and returns a store rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("data directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the data directory.
func (f *FileStore) Dir() string {
	return f.dir
}

func (f *FileStore) ListSemesters(_ context.Context) ([]types.Semester, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.readSemesters()
}

func (f *FileStore) GetSemester(_ context.Context, id string) (*types.Semester, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	semesters, err := f.readSemesters()
	if err != nil {
		return nil, err
	}
	for i := range semesters {
		if semesters[i].ID == id {
			return &semesters[i], nil
		}
	}
	return nil, ErrNotFound
}

func (f *FileStore) PutSemester(_ context.Context, semester types.Semester) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	semesters, err := f.readSemesters()
	if err != nil {
		return err
	}
	return f.writeJSON(SemestersFile, upsert(semesters, cloneSemester(semester)))
}

func (f *FileStore) DeleteSemester(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	semesters, err := f.readSemesters()
	if err != nil {
		return err
	}
	semesters, ok := remove(semesters, id)
	if !ok {
		return ErrNotFound
	}
	return f.writeJSON(SemestersFile, semesters)
}

func (f *FileStore) LoadSettings(_ context.Context) (types.AppSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	settings := types.DefaultSettings()
	found, err := f.readJSON(SettingsFile, schemasembed.Settings, &settings)
	if err != nil {
		return types.AppSettings{}, err
	}
	if !found {
		return types.DefaultSettings(), nil
	}
	return settings, nil
}

func (f *FileStore) SaveSettings(_ context.Context, settings types.AppSettings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writeJSON(SettingsFile, settings)
}

// Reset removes both documents. Missing files are not an error.
func (f *FileStore) Reset(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, name := range []string{SemestersFile, SettingsFile} {
		if err := os.Remove(filepath.Join(f.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to remove %s: %w", name, err)
		}
	}
	return nil
}

func (f *FileStore) Close() error { return nil }

func (f *FileStore) readSemesters() ([]types.Semester, error) {
	var semesters []types.Semester
	if _, err := f.readJSON(SemestersFile, schemasembed.Semesters, &semesters); err != nil {
		return nil, err
	}
	if semesters == nil {
		semesters = []types.Semester{}
	}
	return semesters, nil
}

// readJSON validates and decodes a document. It reports false when the file does not exist.
func (f *FileStore) readJSON(name, schema string, v any) (bool, error) {
	path := filepath.Join(f.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, &LoadError{Path: path, Message: "failed to read file", Cause: err}
	}

	if err := schemas.ValidateDocument(name, schema, data); err != nil {
		return false, &LoadError{Path: path, Message: "document failed schema validation", Cause: err}
	}

	if err := json.Unmarshal(data, v); err != nil {
		return false, &LoadError{Path: path, Message: "failed to unmarshal JSON", Cause: err}
	}
	return true, nil
}

func (f *FileStore) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(f.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", name, err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", name, err)
	}

	if err := os.Rename(tmpPath, filepath.Join(f.dir, name)); err != nil {
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}
