package store

import (
	"github.com/cockroachdb/pebble"
)

// KV is a small wrapper around a Pebble DB instance shared by the record
// stores (success, failures, credentials).
type KV struct {
	DB       *pebble.DB
	DataFile string
}

// Open opens (or creates) a pebble DB at the given dataFile path.
func Open(dataFile string) (*KV, error) {
	db, err := pebble.Open(dataFile, &pebble.Options{})
	if err != nil {
		return nil, err
	}
	return &KV{DB: db, DataFile: dataFile}, nil
}

// Set stores a value under the given key.
func (s *KV) Set(key string, value []byte) error {
	return s.DB.Set([]byte(key), value, pebble.Sync)
}

// Get returns a copy of the value for the given key. ErrNotFound from pebble
// is passed through for callers that treat absence as a non-error.
func (s *KV) Get(key string) ([]byte, error) {
	value, closer, err := s.DB.Get([]byte(key))
	if err != nil {
		return nil, err
	}
	defer closer.Close()
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Delete removes the key from the DB.
func (s *KV) Delete(key string) error {
	return s.DB.Delete([]byte(key), pebble.Sync)
}

// Each calls fn for every key/value pair. The value bytes are only valid for
// the duration of the call.
func (s *KV) Each(fn func(key string, value []byte) error) error {
	iter, err := s.DB.NewIter(&pebble.IterOptions{})
	if err != nil {
		return err
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		if err := fn(string(iter.Key()), iter.Value()); err != nil {
			return err
		}
	}
	return iter.Error()
}

// IsNotFound reports whether err is pebble's missing-key error.
func IsNotFound(err error) bool {
	return err == pebble.ErrNotFound
}

// Close closes the underlying DB.
func (s *KV) Close() error {
	return s.DB.Close()
}
