// Package kv is the key/value slot abstraction behind history and the
// view hand-off state. Values are opaque strings (JSON in practice).
package kv

import (
	"strings"
	"sync"
)

// HistoryPrefix marks durable keys. History only ends by explicit delete or
// the length cap, so backends never expire or purge these keys.
const HistoryPrefix = "history:"

// Durable reports whether key must be exempt from time-based expiry.
func Durable(key string) bool { return strings.HasPrefix(key, HistoryPrefix) }

type Store interface {
	// Get reports ok=false when the key has never been set or was deleted.
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
}

// Memory is a goroutine-safe in-process Store.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemory() *Memory { return &Memory{data: map[string]string{}} }

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
