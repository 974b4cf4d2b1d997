package artifact

import (
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory artifact store for tests and the CLI's
// scratch mode. Data is lost when the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string]storedFlow // projectID -> flow
	closed bool
}

// storedFlow holds flow bytes with metadata for Stat and List.
type storedFlow struct {
	data      []byte
	revision  int
	updatedAt time.Time
}

// NewMemoryStore creates a new in-memory artifact store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]storedFlow),
	}
}

// Save implements Store.
func (m *MemoryStore) Save(projectID string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	// Copy data to avoid retaining caller's slice
	stored := make([]byte, len(data))
	copy(stored, data)

	m.data[projectID] = storedFlow{
		data:      stored,
		revision:  m.data[projectID].revision + 1,
		updatedAt: time.Now().UTC(),
	}
	return nil
}

// Load implements Store.
func (m *MemoryStore) Load(projectID string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	f, ok := m.data[projectID]
	if !ok {
		return nil, ErrNotFound
	}

	result := make([]byte, len(f.data))
	copy(result, f.data)
	return result, nil
}

// Stat implements Store.
func (m *MemoryStore) Stat(projectID string) (Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return Info{}, ErrStoreClosed
	}

	f, ok := m.data[projectID]
	if !ok {
		return Info{}, ErrNotFound
	}
	return f.info(projectID), nil
}

// List implements Store.
func (m *MemoryStore) List() ([]Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	infos := make([]Info, 0, len(m.data))
	for projectID, f := range m.data {
		infos = append(infos, f.info(projectID))
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].ProjectID < infos[j].ProjectID
	})
	return infos, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(projectID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	delete(m.data, projectID)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.data = nil
	return nil
}

// Len returns the number of stored flows.
// Useful for testing.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

func (f storedFlow) info(projectID string) Info {
	return Info{
		ProjectID: projectID,
		Revision:  f.revision,
		UpdatedAt: f.updatedAt,
		Size:      int64(len(f.data)),
	}
}
