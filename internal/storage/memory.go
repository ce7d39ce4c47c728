package storage

import "sync"

// MemoryStore keeps values in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (store *MemoryStore) Load(key string) (string, bool, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()
	value, found := store.data[key]
	return value, found, nil
}

func (store *MemoryStore) Save(key, value string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.data[key] = value
	return nil
}

func (store *MemoryStore) Close() error {
	return nil
}
