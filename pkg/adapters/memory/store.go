package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/confcheck/pkg/domain"
)

// Store implements ports.DocumentStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]string
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store seeded with docs.
func NewStore(docs map[string]string) *Store {
	s := &Store{
		data: make(map[string]string, len(docs)),
	}
	for name, content := range docs {
		s.data[name] = content
	}
	return s
}

// Put stores the document in memory.
func (s *Store) Put(ctx context.Context, name, content string) error {
	if name == "" {
		return fmt.Errorf("document name cannot be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = content
	return nil
}

// Read retrieves the document from memory.
func (s *Store) Read(ctx context.Context, name string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	content, ok := s.data[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrDocumentNotFound, name)
	}
	return content, nil
}

// Delete removes the document. Deleting a missing document is not an error.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns the stored document names in sorted order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
