package logopulse

import (
	"errors"
	"fmt"
)

// Error types
var (
	// ErrUnsupportedContentType indicates a submission declared a
	// content type other than image/jpeg or image/png.
	ErrUnsupportedContentType = errors.New("unsupported content type: only image/jpeg and image/png are supported")

	// ErrMalformedUploadResult indicates the upstream accepted an
	// upload but returned no usable work identifier.
	ErrMalformedUploadResult = errors.New("upload response carried no usable work identifier")

	// ErrResultNotReady indicates a result query answered 404: the
	// submission is still being processed. Callers retry, they do not
	// fail.
	ErrResultNotReady = errors.New("result not ready")

	// ErrPollTimeout indicates the poll attempt budget was exhausted
	// before a terminal result appeared.
	ErrPollTimeout = errors.New("timed out waiting for label detection results")

	// ErrSubmissionInFlight indicates a second submission was started
	// while one was already submitting or polling.
	ErrSubmissionInFlight = errors.New("a submission is already in flight")
)

// UpstreamError carries a structured non-2xx response from the
// upstream boundary, preserved verbatim.
type UpstreamError struct {
	StatusCode int
	Body       []byte
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream rejected request with status %d: %s", e.StatusCode, e.Body)
}

// TransportError indicates the upstream boundary could not be reached
// at all, as opposed to it rejecting the request.
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure during %s to %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
