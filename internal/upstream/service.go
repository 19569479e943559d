// Package upstream implements the processing boundary the relay
// forwards to: it accepts keyed image uploads into a blob store, runs
// a simulated label detection with configurable latency, and keeps a
// submission history. It exists for development and testing; a
// production deployment points the relay at the real boundary instead.
package upstream

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/PrathamBhavsar2112/LogoPulse/internal/upstream/repo"
	"github.com/PrathamBhavsar2112/LogoPulse/pkg/logopulse"
	"github.com/PrathamBhavsar2112/LogoPulse/pkg/logopulse/storage"
)

// Service errors.
var (
	// ErrNoSuchJob indicates the work identifier matches no submission.
	ErrNoSuchJob = errors.New("no such detection job")

	// ErrJobPending indicates the detection has not completed yet.
	ErrJobPending = errors.New("detection job still pending")
)

// DefaultDetectionDelay is how long a submitted job stays pending
// before its result becomes readable.
const DefaultDetectionDelay = 12 * time.Second

type job struct {
	key      string
	label    *logopulse.Label
	readyAt  time.Time
	recorded bool
}

// Service accepts submissions, simulates detection, and serves results
// and history. Detection is lazy: the label is computed at upload time
// and held back until the configured delay has elapsed, so no
// background goroutines are needed.
type Service struct {
	blobs   storage.BlobStore
	history repo.Repository
	delay   time.Duration
	now     func() time.Time

	mu   sync.Mutex
	jobs map[string]*job
}

// Option configures a Service.
type Option func(*Service)

// WithDetectionDelay overrides how long jobs stay pending.
func WithDetectionDelay(d time.Duration) Option {
	return func(s *Service) { s.delay = d }
}

// WithNow overrides the clock, for tests.
func WithNow(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a Service backed by the given blob store and
// history repository.
func NewService(blobs storage.BlobStore, history repo.Repository, opts ...Option) *Service {
	s := &Service{
		blobs:   blobs,
		history: history,
		delay:   DefaultDetectionDelay,
		now:     time.Now,
		jobs:    make(map[string]*job),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit stores the image under key, starts a simulated detection job,
// and returns the work identifier to poll with.
func (s *Service) Submit(ctx context.Context, key, contentType string, body io.Reader) (logopulse.UploadResult, error) {
	if !logopulse.ValidContentType(contentType) {
		return logopulse.UploadResult{}, logopulse.ErrUnsupportedContentType
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return logopulse.UploadResult{}, fmt.Errorf("failed to read upload body: %w", err)
	}

	if err := s.blobs.Upload(ctx, key, bytes.NewReader(data), contentType); err != nil {
		return logopulse.UploadResult{}, fmt.Errorf("failed to store upload: %w", err)
	}

	now := s.now()
	if err := s.history.Append(ctx, repo.Record{ImageKey: key, CreatedAt: now}); err != nil {
		return logopulse.UploadResult{}, fmt.Errorf("failed to record submission: %w", err)
	}

	imageID := uuid.NewString()

	s.mu.Lock()
	s.jobs[imageID] = &job{
		key:     key,
		label:   detectLabel(data),
		readyAt: now.Add(s.delay),
	}
	s.mu.Unlock()

	return logopulse.UploadResult{ImageID: imageID, Key: key}, nil
}

// Result returns the label for a completed job. ErrNoSuchJob and
// ErrJobPending both surface to pollers as not-ready.
func (s *Service) Result(ctx context.Context, imageID string) (*logopulse.Label, error) {
	s.mu.Lock()
	j, ok := s.jobs[imageID]
	if !ok {
		s.mu.Unlock()
		return nil, ErrNoSuchJob
	}
	if s.now().Before(j.readyAt) {
		s.mu.Unlock()
		return nil, ErrJobPending
	}
	label := j.label
	key := j.key
	needsRecord := !j.recorded
	j.recorded = true
	s.mu.Unlock()

	if needsRecord {
		if err := s.history.SetLabel(ctx, key, label); err != nil {
			return nil, fmt.Errorf("failed to record label: %w", err)
		}
	}

	return label, nil
}

// History returns all submissions, oldest first. Records for jobs
// whose result was never read keep a nil Label.
func (s *Service) History(ctx context.Context) ([]logopulse.HistoryRecord, error) {
	records, err := s.history.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}

	out := make([]logopulse.HistoryRecord, len(records))
	for i, rec := range records {
		out[i] = logopulse.HistoryRecord{ImageKey: rec.ImageKey, Label: rec.Label}
	}
	return out, nil
}
