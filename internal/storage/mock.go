package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/paulutsch/clembench/pkg/experiment"
	"github.com/paulutsch/clembench/pkg/transcript"
)

// MockStorage is an in-memory Storage for tests.
type MockStorage struct {
	mu      sync.RWMutex
	results map[uuid.UUID]*transcript.Result
	dataDir string

	// Optional error injection
	SaveErr error
	LoadErr error
}

var _ Storage = (*MockStorage)(nil)

func NewMockStorage() *MockStorage {
	return &MockStorage{
		results: make(map[uuid.UUID]*transcript.Result),
		dataDir: "./data",
	}
}

// WithDataDir points static resource loading at dir.
func (m *MockStorage) WithDataDir(dir string) *MockStorage {
	m.dataDir = dir
	return m
}

func (m *MockStorage) Ping(ctx context.Context) error { return nil }
func (m *MockStorage) Close() error                   { return nil }

func (m *MockStorage) SaveResult(ctx context.Context, result *transcript.Result) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *result
	m.results[result.ID] = &cp
	return nil
}

func (m *MockStorage) LoadResult(ctx context.Context, id uuid.UUID) (*transcript.Result, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	res, ok := m.results[id]
	if !ok {
		return nil, nil
	}
	cp := *res
	return &cp, nil
}

func (m *MockStorage) ListResultIDs(ctx context.Context) ([]uuid.UUID, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]uuid.UUID, 0, len(m.results))
	for id := range m.results {
		ids = append(ids, id)
	}
	return ids, nil
}

func (m *MockStorage) DeleteResult(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.results[id]; !ok {
		return fmt.Errorf("result %s not found", id)
	}
	delete(m.results, id)
	return nil
}

func (m *MockStorage) GetExperiments(gameName string) (*experiment.File, error) {
	return experiment.Load(filepath.Join(m.dataDir, gameName, "instances.json"))
}
