package store

import "sync"

type memoryStore struct {
	mu    sync.RWMutex
	token string
}

func (m *memoryStore) Get() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, m.token != ""
}

func (m *memoryStore) Set(token string) error {
	if token == "" {
		return ErrEmptyToken
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *memoryStore) Remove() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

// NewMemoryStore creates a process local store, optionally seeded with a token.
func NewMemoryStore(token ...string) Store {
	ret := &memoryStore{}
	if len(token) > 0 {
		ret.token = token[0]
	}
	return ret
}
