package storage

import (
	"fmt"

	"github.com/rcliao/certimatch/internal/domain"
)

// Store is everything the services persist.
type Store interface {
	domain.ProjectRepository
	domain.FileRepository
	domain.RemediationRepository
}

var (
	_ Store = (*MemoryStorage)(nil)
	_ Store = (*FileStorage)(nil)
)

// Open returns the store named by kind: "memory" or "file" rooted at dataDir.
func Open(kind, dataDir string) (Store, error) {
	switch kind {
	case "", "memory":
		return NewMemoryStorage(), nil
	case "file":
		fs, err := NewFileStorage(dataDir)
		if err != nil {
			return nil, err
		}
		return fs, nil
	default:
		return nil, fmt.Errorf("unknown storage kind %q", kind)
	}
}
