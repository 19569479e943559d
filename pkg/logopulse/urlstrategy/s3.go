package urlstrategy

import (
	"context"
	"fmt"
	"strings"
)

// DefaultS3Domain is the virtual-hosted style S3 endpoint domain.
const DefaultS3Domain = "s3.amazonaws.com"

// S3Strategy derives virtual-hosted style S3 URLs:
// https://{bucket}.{domain}/{key}.
type S3Strategy struct {
	Bucket string
	Domain string // defaults to DefaultS3Domain
}

// NewS3Strategy creates a strategy for the given bucket using the
// public S3 domain.
func NewS3Strategy(bucket string) *S3Strategy {
	return &S3Strategy{Bucket: bucket, Domain: DefaultS3Domain}
}

func (s *S3Strategy) DisplayURL(ctx context.Context, imageKey string) (string, error) {
	if s.Bucket == "" {
		return "", fmt.Errorf("bucket not configured")
	}
	domain := s.Domain
	if domain == "" {
		domain = DefaultS3Domain
	}
	return fmt.Sprintf("https://%s.%s/%s", s.Bucket, domain, imageKey), nil
}

// CDNStrategy derives URLs under a fixed prefix, for deployments that
// front the storage tier with a CDN or a static file server.
type CDNStrategy struct {
	BaseURL string // e.g. "https://cdn.example.com"
}

// NewCDNStrategy creates a prefix strategy. A trailing slash on the
// base URL is tolerated.
func NewCDNStrategy(baseURL string) *CDNStrategy {
	return &CDNStrategy{BaseURL: strings.TrimSuffix(baseURL, "/")}
}

func (s *CDNStrategy) DisplayURL(ctx context.Context, imageKey string) (string, error) {
	if s.BaseURL == "" {
		return "", fmt.Errorf("base URL not configured")
	}
	return fmt.Sprintf("%s/%s", s.BaseURL, imageKey), nil
}
