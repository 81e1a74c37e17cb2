package projects

import (
	"context"
	"sync"
)

// MemoryRepository is a simple in-memory repository used for unit tests and
// for running the service without Mongo.
type MemoryRepository struct {
	mu    sync.RWMutex
	store map[string]interface{}
	order []string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{store: make(map[string]interface{})}
}

func (m *MemoryRepository) LoadAll(ctx context.Context) ([]Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Project, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, Project{Name: name, Config: m.store[name]})
	}
	return out, nil
}

func (m *MemoryRepository) Save(ctx context.Context, name string, config interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[name]; !ok {
		m.order = append(m.order, name)
	}
	m.store[name] = config
	return nil
}
