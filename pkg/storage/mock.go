package storage

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/outbreakrpg/engine/pkg/world"
)

// MockStorage is an in-memory Storage for testing, guarded by a single
// mutex since sessions and world defs are read and written together
// infrequently enough that lock granularity isn't worth splitting.
type MockStorage struct {
	mu        sync.RWMutex
	sessions  map[uuid.UUID]*SessionRecord
	worldDefs map[string]*world.World
	pingError error
}

// Ensure MockStorage implements Storage interface
var _ Storage = (*MockStorage)(nil)

// NewMockStorage creates a new mock storage
func NewMockStorage() *MockStorage {
	return &MockStorage{
		sessions:  make(map[uuid.UUID]*SessionRecord),
		worldDefs: make(map[string]*world.World),
	}
}

// SetPingSuccess configures the mock to succeed on ping
func (m *MockStorage) SetPingSuccess() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = nil
}

// SetPingError configures the mock to fail on ping with the given error
func (m *MockStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

// Ping mocks storage ping
func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

// Close mocks storage close
func (m *MockStorage) Close() error {
	// Mock close doesn't need to do anything
	return nil
}

// SaveSession mocks saving a session record
func (m *MockStorage) SaveSession(ctx context.Context, id uuid.UUID, rec *SessionRecord) error {
	if rec == nil {
		return errors.New("session record cannot be nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = rec
	return nil
}

// LoadSession mocks loading a session record
func (m *MockStorage) LoadSession(ctx context.Context, id uuid.UUID) (*SessionRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, exists := m.sessions[id]
	if !exists {
		return nil, nil // Return nil for not found
	}
	return rec, nil
}

// DeleteSession mocks deleting a session record
func (m *MockStorage) DeleteSession(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// ListWorldDefs mocks listing available world definition filenames
func (m *MockStorage) ListWorldDefs(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]string, 0, len(m.worldDefs))
	for filename := range m.worldDefs {
		result = append(result, filename)
	}
	return result, nil
}

// GetWorldDef mocks loading a world definition by filename
func (m *MockStorage) GetWorldDef(ctx context.Context, filename string) (*world.World, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	w, exists := m.worldDefs[filename]
	if !exists {
		return nil, errors.New("world definition not found")
	}
	return w, nil
}

// AddWorldDef adds a world definition to the mock storage (for testing)
func (m *MockStorage) AddWorldDef(filename string, w *world.World) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.worldDefs[filename] = w
}
