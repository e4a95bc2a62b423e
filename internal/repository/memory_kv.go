package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/nikolayk812/foodcart/internal/port"
)

type memoryKV struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryKV keeps values for the lifetime of the process only.
func NewMemoryKV() port.KeyValueStore {
	return &memoryKV{values: make(map[string]string)}
}

func (m *memoryKV) Get(_ context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, fmt.Errorf("key is empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memoryKV) Set(_ context.Context, key, value string) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
	return nil
}
