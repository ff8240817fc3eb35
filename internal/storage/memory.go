package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"
)

// ErrObjectNotFound is returned for reads of paths that hold no object.
var ErrObjectNotFound = fmt.Errorf("object not found")

type memoryObject struct {
	data        []byte
	contentType string
	updated     time.Time
}

// MemoryStore is an in-process ObjectStore for tests and local development.
// Safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string]memoryObject)}
}

// Upload writes the object at path, replacing any existing content.
func (s *MemoryStore) Upload(_ context.Context, path, contentType string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[path] = memoryObject{data: data, contentType: contentType, updated: time.Now().UTC()}
	return nil
}

// Download opens the object for reading.
func (s *MemoryStore) Download(_ context.Context, path string) (io.ReadCloser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, path)
	}
	return io.NopCloser(bytes.NewReader(obj.data)), nil
}

// DownloadURL returns a stable pseudo-URL for the object.
func (s *MemoryStore) DownloadURL(_ context.Context, path string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.objects[path]; !ok {
		return "", fmt.Errorf("%w: %s", ErrObjectNotFound, path)
	}
	return "memory://" + path, nil
}

// Stat returns object metadata.
func (s *MemoryStore) Stat(_ context.Context, path string) (*ObjectInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, path)
	}
	return &ObjectInfo{
		Path:        path,
		Size:        int64(len(obj.data)),
		ContentType: obj.contentType,
		Updated:     obj.updated,
	}, nil
}

// Delete removes the object.
func (s *MemoryStore) Delete(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[path]; !ok {
		return fmt.Errorf("%w: %s", ErrObjectNotFound, path)
	}
	delete(s.objects, path)
	return nil
}

// List returns the paths of all objects under the prefix, sorted.
func (s *MemoryStore) List(_ context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var paths []string
	for path := range s.objects {
		if strings.HasPrefix(path, prefix) {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths, nil
}
