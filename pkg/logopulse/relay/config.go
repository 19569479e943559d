package relay

import (
	"errors"
	"strings"
	"time"
)

const (
	// DefaultUpstreamTimeout bounds every call the relay makes to the
	// upstream boundary so a hung upstream cannot hang the relay.
	DefaultUpstreamTimeout = 30 * time.Second

	// DefaultMaxUploadBytes limits upload request bodies.
	DefaultMaxUploadBytes = 10 << 20 // 10 MiB
)

// Config holds everything the relay needs. It is passed explicitly at
// construction; handlers never consult the environment themselves.
type Config struct {
	// UpstreamBaseURL is the base URL of the processing boundary the
	// relay forwards to, e.g. an API gateway stage URL.
	UpstreamBaseURL string

	// UpstreamTimeout bounds each upstream round-trip. Zero selects
	// DefaultUpstreamTimeout.
	UpstreamTimeout time.Duration

	// MaxUploadBytes limits upload bodies. Zero selects
	// DefaultMaxUploadBytes.
	MaxUploadBytes int64
}

// Validate validates the relay configuration.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.UpstreamBaseURL) == "" {
		return errors.New("upstream base URL is required")
	}
	return nil
}
