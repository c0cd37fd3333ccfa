package snapshot

import (
	"errors"
	"sync"
)

// ErrKeyNotFound is returned by KV.Get when no value is stored under the key.
var ErrKeyNotFound = errors.New("key not found")

// KV is a synchronous device-local string store. Implementations must be safe
// for concurrent use.
type KV interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(key string) error
}

type memoryKV struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryKV returns an in-memory KV. Used in tests and as a fallback when
// no durable store is available.
func NewMemoryKV() KV {
	return &memoryKV{data: make(map[string]string)}
}

func (m *memoryKV) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.data[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return value, nil
}

func (m *memoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memoryKV) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
