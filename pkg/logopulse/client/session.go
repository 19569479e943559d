package client

import (
	"context"
	"io"
	"sync"

	"github.com/PrathamBhavsar2112/LogoPulse/pkg/logopulse"
)

// State is the observable phase of a session.
type State int

const (
	// StateIdle means no submission is in flight; Submit is allowed.
	StateIdle State = iota

	// StateSubmitting means the upload has started but no work
	// identifier has been obtained yet.
	StateSubmitting

	// StatePolling means the upload succeeded and the session is
	// waiting for the detection result.
	StatePolling
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StatePolling:
		return "polling"
	}
	return "unknown"
}

// Outcome is a completed submission: the key it was stored under, the
// work identifier that correlated it, and the detected label.
type Outcome struct {
	Key     string
	ImageID string
	Label   *logopulse.Label
}

// Session drives one submission at a time through
// Idle -> Submitting -> Polling and back to Idle. Concurrency is
// prevented structurally: a second Submit while one is in flight fails
// with logopulse.ErrSubmissionInFlight instead of queueing, so no
// further locking is needed anywhere downstream.
type Session struct {
	client    *Client
	submitter *Submitter
	poller    *Poller

	mu    sync.Mutex
	state State
}

// NewSession creates a session around the given client with default
// submission keying and polling.
func NewSession(c *Client) *Session {
	return &Session{
		client:    c,
		submitter: NewSubmitter(nil),
		poller:    NewPoller(c),
	}
}

// NewSessionWith creates a session with an explicit submitter and
// poller, for callers that tune keying or the poll budget.
func NewSessionWith(c *Client, submitter *Submitter, poller *Poller) *Session {
	if submitter == nil {
		submitter = NewSubmitter(nil)
	}
	if poller == nil {
		poller = NewPoller(c)
	}
	return &Session{client: c, submitter: submitter, poller: poller}
}

// State returns the current phase.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Client returns the underlying relay client, for history queries.
func (s *Session) Client() *Client {
	return s.client
}

// Submit validates the file, uploads it, and polls for the result.
// Every terminal path, success or not, returns the session to Idle so
// the caller can retry. The error distinguishes the terminal states:
// logopulse.ErrPollTimeout for an exhausted budget, everything else is
// a failure with its own message.
func (s *Session) Submit(ctx context.Context, fileName, contentType string, data io.Reader) (*Outcome, error) {
	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return nil, logopulse.ErrSubmissionInFlight
	}
	s.state = StateSubmitting
	s.mu.Unlock()

	defer s.setState(StateIdle)

	key, err := s.submitter.Prepare(fileName, contentType)
	if err != nil {
		return nil, err
	}

	result, err := s.client.Upload(ctx, key, contentType, data)
	if err != nil {
		return nil, err
	}

	s.setState(StatePolling)

	label, err := s.poller.Wait(ctx, result.ImageID)
	if err != nil {
		return nil, err
	}

	return &Outcome{Key: result.Key, ImageID: result.ImageID, Label: label}, nil
}

func (s *Session) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}
