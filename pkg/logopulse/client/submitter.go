package client

import (
	"github.com/PrathamBhavsar2112/LogoPulse/pkg/logopulse"
	"github.com/PrathamBhavsar2112/LogoPulse/pkg/logopulse/submitkey"
)

// Submitter validates a pending submission and derives its storage
// key. Validation happens here, before any bytes leave the client;
// the relay re-validates the same rule at its own boundary.
type Submitter struct {
	keys submitkey.Generator
}

// NewSubmitter creates a submitter using the given key generator.
// A nil generator selects the timestamp generator.
func NewSubmitter(keys submitkey.Generator) *Submitter {
	if keys == nil {
		keys = submitkey.NewTimestampGenerator()
	}
	return &Submitter{keys: keys}
}

// Prepare validates the declared content type and derives the
// submission key. A non-image file fails with
// logopulse.ErrUnsupportedContentType and must not reach the relay.
func (s *Submitter) Prepare(fileName, contentType string) (string, error) {
	if !logopulse.ValidContentType(contentType) {
		return "", logopulse.ErrUnsupportedContentType
	}
	return s.keys.GenerateKey(fileName, contentType), nil
}
