package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"stopwatch/internal/platform"
)

const stateFileName = "state.yaml"

// FileStore keeps values as a flat YAML mapping in a single file.
type FileStore struct {
	mu   sync.Mutex
	path string
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a FileStore backed by path. The file is created on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultFilePath returns the state file location under the user config dir.
func DefaultFilePath(appName string) (string, error) {
	configDir, err := platform.ConfigDir(appName)
	if err != nil {
		return "", fmt.Errorf("resolve state path: %w", err)
	}
	return filepath.Join(configDir, stateFileName), nil
}

// Path returns the backing file path.
func (store *FileStore) Path() string {
	return store.path
}

func (store *FileStore) Load(key string) (string, bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	document, err := store.readLocked()
	if err != nil {
		return "", false, err
	}
	value, found := document[key]
	return value, found, nil
}

// Save rewrites the file with key set. An unreadable existing file is
// replaced rather than blocking every later save.
func (store *FileStore) Save(key, value string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	document, err := store.readLocked()
	if err != nil {
		document = map[string]string{}
	}
	document[key] = value

	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	serialized, err := yaml.Marshal(document)
	if err != nil {
		return fmt.Errorf("marshal state yaml: %w", err)
	}

	if err := writeFileAtomic(store.path, serialized, 0o644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return nil
}

func (store *FileStore) Close() error {
	return nil
}

func (store *FileStore) readLocked() (map[string]string, error) {
	document := map[string]string{}
	rawData, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return document, nil
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}

	if err := yaml.Unmarshal(rawData, &document); err != nil {
		return nil, fmt.Errorf("parse state yaml: %w", err)
	}
	if document == nil {
		document = map[string]string{}
	}
	return document, nil
}
