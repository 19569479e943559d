// Package memory provides an in-memory history repository for tests
// and single-process development setups.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/PrathamBhavsar2112/LogoPulse/internal/upstream/repo"
	"github.com/PrathamBhavsar2112/LogoPulse/pkg/logopulse"
)

// Repository keeps history records in a slice guarded by a mutex.
type Repository struct {
	mu      sync.RWMutex
	records []repo.Record
}

// New creates a new in-memory history repository.
func New() *Repository {
	return &Repository{}
}

func (r *Repository) Append(ctx context.Context, rec repo.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = append(r.records, rec)
	return nil
}

func (r *Repository) SetLabel(ctx context.Context, imageKey string, label *logopulse.Label) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := len(r.records) - 1; i >= 0; i-- {
		if r.records[i].ImageKey == imageKey {
			r.records[i].Label = label
			return nil
		}
	}
	return fmt.Errorf("no history record for key %q", imageKey)
}

func (r *Repository) List(ctx context.Context) ([]repo.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]repo.Record, len(r.records))
	copy(out, r.records)
	return out, nil
}
