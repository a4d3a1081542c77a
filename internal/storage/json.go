package storage

import (
	"encoding/json"
	"errors"
	"maps"
	"os"
	"path/filepath"
	"slices"
)

// JSONKV stores all keys in a single JSON object file.
// Every write rewrites the file.
type JSONKV struct {
	path string
	data map[string]string
}

// NewJSONKV opens the file at path. A missing file starts empty.
func NewJSONKV(path string) (*JSONKV, error) {
	s := &JSONKV{path: path, data: map[string]string{}}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, err
	}
	if s.data == nil {
		s.data = map[string]string{}
	}

	return s, nil
}

// Path returns the storage file path.
func (s *JSONKV) Path() string {
	return s.path
}

func (s *JSONKV) Get(key string) ([]byte, bool, error) {
	v, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	return []byte(v), true, nil
}

func (s *JSONKV) Set(key string, value []byte) error {
	s.data[key] = string(value)
	return s.flush()
}

func (s *JSONKV) Delete(key string) error {
	if _, ok := s.data[key]; !ok {
		return nil
	}
	delete(s.data, key)
	return s.flush()
}

func (s *JSONKV) Keys() ([]string, error) {
	return slices.Sorted(maps.Keys(s.data)), nil
}

func (s *JSONKV) Close() error {
	return nil
}

// flush writes the whole map to disk.
// Creates the directory if it doesn't exist.
func (s *JSONKV) flush() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}

// DefaultJSONPath returns the default JSON store path: ~/.config/finwatch/finwatch.json
func DefaultJSONPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "finwatch", "finwatch.json"), nil
}
