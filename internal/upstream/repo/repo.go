// Package repo defines the history repository the upstream emulator
// records submissions in.
package repo

import (
	"context"
	"time"

	"github.com/PrathamBhavsar2112/LogoPulse/pkg/logopulse"
)

// Record is one submission in the history log. Label is nil while the
// detection job is still pending.
type Record struct {
	ImageKey  string
	Label     *logopulse.Label
	CreatedAt time.Time
}

// Repository stores submission history in insertion order.
// Implementations must be safe for concurrent use.
type Repository interface {
	// Append adds a record to the end of the log.
	Append(ctx context.Context, rec Record) error

	// SetLabel attaches the detection result to the most recent record
	// for the image key.
	SetLabel(ctx context.Context, imageKey string, label *logopulse.Label) error

	// List returns all records, oldest first.
	List(ctx context.Context) ([]Record, error)
}
