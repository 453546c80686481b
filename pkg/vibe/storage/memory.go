package storage

import "sync"

// MemoryStore keeps values in process memory. Tests and one-shot commands
// that must not touch disk use it.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
	obs    observers

	// FailWrites makes Set and Remove return the error, for failure tests.
	FailWrites error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, bool, error) {
	if err := ValidateKey(key); err != nil {
		return "", false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *MemoryStore) Set(key, value string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if s.FailWrites != nil {
		return s.FailWrites
	}
	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()

	s.obs.notify(key)
	return nil
}

func (s *MemoryStore) Remove(key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if s.FailWrites != nil {
		return s.FailWrites
	}
	s.mu.Lock()
	delete(s.values, key)
	s.mu.Unlock()

	s.obs.notify(key)
	return nil
}

func (s *MemoryStore) Watch(key string, fn func()) func() {
	return s.obs.add(key, fn)
}
