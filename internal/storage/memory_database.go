package storage

import (
	"context"
	"fmt"
	"sync"

	"ironpulse/local-app/internal/log"
)

// MemoryDatabase implements the Database interface with an in-process map.
// Nothing survives Close.
type MemoryDatabase struct {
	mu       sync.Mutex
	data     map[string][]byte
	snapshot map[string][]byte
	inTx     bool
	logger   *log.Logger
}

// NewMemoryDatabase creates an empty in-memory database
func NewMemoryDatabase(logger *log.Logger) *MemoryDatabase {
	return &MemoryDatabase{data: make(map[string][]byte), logger: logger}
}

// Open is a no-op; the data source name is ignored
func (m *MemoryDatabase) Open(dataSourceName string) error {
	m.logger.Info(context.Background(), "Opening in-memory database", nil)
	return nil
}

// Close discards all data
func (m *MemoryDatabase) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string][]byte)
	m.snapshot = nil
	m.inTx = false
	return nil
}

// InitSchema is a no-op for the memory driver
func (m *MemoryDatabase) InitSchema() error {
	return nil
}

// Begin records a snapshot that Rollback restores
func (m *MemoryDatabase) Begin() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.inTx {
		return fmt.Errorf("transaction already active")
	}
	m.snapshot = make(map[string][]byte, len(m.data))
	for k, v := range m.data {
		m.snapshot[k] = v
	}
	m.inTx = true
	return nil
}

// Commit keeps the writes made since Begin
func (m *MemoryDatabase) Commit() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.inTx {
		return ErrNoTransaction
	}
	m.snapshot = nil
	m.inTx = false
	return nil
}

// Rollback discards the writes made since Begin
func (m *MemoryDatabase) Rollback() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.inTx {
		return ErrNoTransaction
	}
	m.data = m.snapshot
	m.snapshot = nil
	m.inTx = false
	return nil
}

// Get returns a copy of the value stored under key
func (m *MemoryDatabase) Get(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Put stores a copy of value under key
func (m *MemoryDatabase) Put(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

// Delete removes key
func (m *MemoryDatabase) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
