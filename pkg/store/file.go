package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/matzehuels/tldrviz/pkg/ingest"
	"github.com/matzehuels/tldrviz/pkg/model"
)

// FileStore keeps the result as pretty-printed JSON in a data directory.
type FileStore struct {
	mu  sync.RWMutex
	dir string
}

// NewFileStore creates a file store in dir. The directory is created on
// first save. An empty dir means the current directory.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		dir = "."
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Name() string { return BackendFile }

// Path returns the classifications file path.
func (s *FileStore) Path() string {
	return filepath.Join(s.dir, ingest.ClassificationsFile)
}

func (s *FileStore) Load(ctx context.Context) (*model.ClassificationsData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, err := os.Open(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read classifications: %w", err)
	}
	defer f.Close()
	return ingest.DecodeClassifications(f)
}

func (s *FileStore) Save(ctx context.Context, data *model.ClassificationsData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal classifications: %w", err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	tmp := s.Path() + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write classifications: %w", err)
	}
	if err := os.Rename(tmp, s.Path()); err != nil {
		return fmt.Errorf("write classifications: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

var _ Store = (*FileStore)(nil)
