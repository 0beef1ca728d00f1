package store

import (
	"context"
	"sync"

	"github.com/matzehuels/tldrviz/pkg/model"
)

// MemoryStore keeps the result in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	data *model.ClassificationsData
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) Name() string { return BackendMemory }

func (s *MemoryStore) Load(context.Context) (*model.ClassificationsData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data, nil
}

func (s *MemoryStore) Save(_ context.Context, data *model.ClassificationsData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	return nil
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
