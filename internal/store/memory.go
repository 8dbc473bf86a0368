package store

import (
	"context"
	"sync"

	"github.com/jonathan/academic-tracker/internal/types"
)

// MemoryStore keeps everything in process memory.
type MemoryStore struct {
	mu        sync.RWMutex
	semesters []types.Semester
	settings  *types.AppSettings
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) ListSemesters(_ context.Context) ([]types.Semester, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneSemesters(m.semesters), nil
}

func (m *MemoryStore) GetSemester(_ context.Context, id string) (*types.Semester, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.semesters {
		if s.ID == id {
			found := cloneSemester(s)
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) PutSemester(_ context.Context, semester types.Semester) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.semesters = upsert(m.semesters, cloneSemester(semester))
	return nil
}

func (m *MemoryStore) DeleteSemester(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ok bool
	m.semesters, ok = remove(m.semesters, id)
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (m *MemoryStore) LoadSettings(_ context.Context) (types.AppSettings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.settings == nil {
		return types.DefaultSettings(), nil
	}
	return *m.settings, nil
}

func (m *MemoryStore) SaveSettings(_ context.Context, settings types.AppSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = &settings
	return nil
}

func (m *MemoryStore) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.semesters = nil
	m.settings = nil
	return nil
}

func (m *MemoryStore) Close() error { return nil }
