package storage

import (
	"errors"
	"fmt"
	"slices"
)

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown storage backend")

// KV is a flat key-value backing store. Values are opaque bytes.
type KV interface {
	// Get returns the value for key. A missing key reports false and no error.
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error
	// Keys lists all keys in ascending order.
	Keys() ([]string, error)
	Close() error
}

// OpenParams selects and configures a backend.
type OpenParams struct {
	Backend string
	Path    string // file path for the json and sqlite backends
	Redis   RedisOptions
}

// Open opens the backend named by params.Backend.
func Open(params OpenParams) (KV, error) {
	switch params.Backend {
	case BackendMemory:
		return NewMemoryKV(), nil
	case BackendJSON:
		return NewJSONKV(params.Path)
	case BackendSQLite, "":
		return NewSQLiteKV(params.Path)
	case BackendRedis:
		return NewRedisKV(params.Redis)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, params.Backend)
	}
}

// MemoryKV keeps values in a map. It backs tests and ephemeral runs.
type MemoryKV struct {
	data map[string][]byte
}

// NewMemoryKV creates an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

func (m *MemoryKV) Get(key string) ([]byte, bool, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(v), true, nil
}

func (m *MemoryKV) Set(key string, value []byte) error {
	m.data[key] = slices.Clone(value)
	return nil
}

func (m *MemoryKV) Delete(key string) error {
	delete(m.data, key)
	return nil
}

func (m *MemoryKV) Keys() ([]string, error) {
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}

func (m *MemoryKV) Close() error {
	return nil
}
