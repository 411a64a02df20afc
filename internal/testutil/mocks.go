package testutil

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/udisondev/armorbench/internal/remap"
)

// MockHost — host UI state controlled by the test.
type MockHost struct {
	ItemMenu bool
	Paused   bool
}

// ItemMenuOpen реализует session.Host.
func (h *MockHost) ItemMenuOpen() bool { return h.ItemMenu }

// GamePaused реализует session.Host.
func (h *MockHost) GamePaused() bool { return h.Paused }

// MockRemapStore — in-memory имплементация хранилища remap для unit тестов.
// Не требует реального PostgreSQL.
type MockRemapStore struct {
	mu      sync.RWMutex
	entries map[uuid.UUID][]remap.Entry

	// Err, если задан, возвращается из Load и Save.
	Err error
}

// NewMockRemapStore создаёт новый MockRemapStore экземпляр.
func NewMockRemapStore() *MockRemapStore {
	return &MockRemapStore{
		entries: make(map[uuid.UUID][]remap.Entry),
	}
}

// Load возвращает копию сохранённых записей сессии.
func (m *MockRemapStore) Load(ctx context.Context, sessionID uuid.UUID) ([]remap.Entry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]remap.Entry(nil), m.entries[sessionID]...), nil
}

// Save заменяет записи сессии.
func (m *MockRemapStore) Save(ctx context.Context, sessionID uuid.UUID, entries []remap.Entry) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[sessionID] = append([]remap.Entry(nil), entries...)
	return nil
}

// SessionCount возвращает количество сессий с сохранённым remap.
func (m *MockRemapStore) SessionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
