package testing

import (
	"sync"

	"github.com/rileyhilliard/xmdash/internal/errors"
)

// FakeStore is an in-memory storage.Store that can be told to fail.
type FakeStore struct {
	mu     sync.Mutex
	values map[string]string

	FailReads  bool
	FailWrites bool
	Writes     int
}

func NewFakeStore() *FakeStore {
	return &FakeStore{values: make(map[string]string)}
}

func (s *FakeStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailReads {
		return "", false, errors.New(errors.ErrStorage, "read disabled", "")
	}
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *FakeStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites {
		return errors.New(errors.ErrStorage, "quota exceeded", "")
	}
	s.Writes++
	s.values[key] = value
	return nil
}

func (s *FakeStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites {
		return errors.New(errors.ErrStorage, "quota exceeded", "")
	}
	delete(s.values, key)
	return nil
}

func (s *FakeStore) Close() error { return nil }

// Value returns the raw stored value for key.
func (s *FakeStore) Value(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

// Put stores a value directly, bypassing failure flags.
func (s *FakeStore) Put(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}
