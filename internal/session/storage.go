// ABOUTME: Durable key-value storage backing the session store
// ABOUTME: Persists session keys as a JSON object in the console config directory

package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// Storage is the durable key-value store the session writes through to.
type Storage interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// FileStorage keeps keys in <dir>/session.json with owner-only permissions.
type FileStorage struct {
	dir    string
	mu     sync.Mutex
	values map[string]string
}

// NewFileStorage creates a file-backed storage rooted at dir
func NewFileStorage(dir string) *FileStorage {
	return &FileStorage{dir: dir}
}

// Path returns the location of the session file
func (fs *FileStorage) Path() string {
	return filepath.Join(fs.dir, "session.json")
}

// load reads the session file once; a missing or corrupt file reads as empty
func (fs *FileStorage) load() error {
	if fs.values != nil {
		return nil
	}

	data, err := os.ReadFile(fs.Path())
	if errors.Is(err, os.ErrNotExist) {
		fs.values = map[string]string{}
		return nil
	}
	if err != nil {
		return err
	}

	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		// Invalid JSON, start fresh
		values = map[string]string{}
	}
	fs.values = values
	return nil
}

func (fs *FileStorage) save() error {
	if err := os.MkdirAll(fs.dir, 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(fs.values, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(fs.Path(), data, 0600)
}

// Get returns the stored value for key
func (fs *FileStorage) Get(key string) (string, bool, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := fs.load(); err != nil {
		return "", false, err
	}
	v, ok := fs.values[key]
	return v, ok, nil
}

// Set stores value under key and writes the file
func (fs *FileStorage) Set(key, value string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := fs.load(); err != nil {
		return err
	}
	fs.values[key] = value
	return fs.save()
}

// Delete removes key and writes the file; deleting a missing key is not an error
func (fs *FileStorage) Delete(key string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := fs.load(); err != nil {
		return err
	}
	if _, ok := fs.values[key]; !ok {
		return nil
	}
	delete(fs.values, key)
	return fs.save()
}

// MemoryStorage is an in-process Storage, used by tests and dry runs.
type MemoryStorage struct {
	mu     sync.Mutex
	Values map[string]string
	Writes int
}

// NewMemoryStorage returns an empty MemoryStorage
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{Values: map[string]string{}}
}

func (m *MemoryStorage) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.Values[key]
	return v, ok, nil
}

func (m *MemoryStorage) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Values[key] = value
	m.Writes++
	return nil
}

func (m *MemoryStorage) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Values, key)
	m.Writes++
	return nil
}
