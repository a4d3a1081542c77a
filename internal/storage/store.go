package storage

import (
	"encoding/json"
	"strconv"

	"github.com/rs/zerolog"
)

// Store is the typed layer over a KV. Reads treat missing or undecodable
// values as absent; write failures are logged and dropped. Callers never see
// storage errors.
type Store struct {
	kv  KV
	log zerolog.Logger
}

// NewStore wraps kv. A zero logger discards output.
func NewStore(kv KV, logger zerolog.Logger) *Store {
	return &Store{
		kv:  kv,
		log: logger.With().Str("component", "storage").Logger(),
	}
}

// KV returns the backing store.
func (s *Store) KV() KV {
	return s.kv
}

// Close closes the backing store.
func (s *Store) Close() error {
	return s.kv.Close()
}

// Load decodes the JSON value stored at key into a T.
func Load[T any](s *Store, key string) (T, bool) {
	var zero T

	raw, ok := s.Raw(key)
	if !ok {
		return zero, false
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("discarding undecodable value")
		return zero, false
	}
	return v, true
}

// Save JSON-encodes v and writes it to key.
func Save[T any](s *Store, key string, v T) {
	data, err := json.Marshal(v)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("failed to encode value")
		return
	}
	s.write(key, data)
}

// LoadScalar returns the plain string stored at key.
func (s *Store) LoadScalar(key string) (string, bool) {
	raw, ok := s.Raw(key)
	if !ok {
		return "", false
	}
	return string(raw), true
}

// SaveScalar stores value as a plain string, not JSON.
func (s *Store) SaveScalar(key, value string) {
	s.write(key, []byte(value))
}

// LoadBool returns the flag stored at key; absent flags are false.
func (s *Store) LoadBool(key string) bool {
	raw, ok := s.Raw(key)
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(string(raw))
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("discarding undecodable flag")
		return false
	}
	return b
}

// SaveBool stores a flag.
func (s *Store) SaveBool(key string, v bool) {
	s.write(key, []byte(strconv.FormatBool(v)))
}

// Has reports whether key holds a value.
func (s *Store) Has(key string) bool {
	_, ok := s.Raw(key)
	return ok
}

// Raw returns the undecoded bytes stored at key.
func (s *Store) Raw(key string) ([]byte, bool) {
	raw, ok, err := s.kv.Get(key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("read failed")
		return nil, false
	}
	return raw, ok
}

// Remove deletes key.
func (s *Store) Remove(key string) {
	if err := s.kv.Delete(key); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("delete failed")
	}
}

// Keys lists the stored keys. Failures yield an empty list.
func (s *Store) Keys() []string {
	keys, err := s.kv.Keys()
	if err != nil {
		s.log.Warn().Err(err).Msg("listing keys failed")
		return []string{}
	}
	return keys
}

func (s *Store) write(key string, data []byte) {
	if err := s.kv.Set(key, data); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("write failed")
		return
	}
	s.log.Debug().Str("key", key).Int("bytes", len(data)).Msg("saved")
}
