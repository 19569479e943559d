// Package urlstrategy derives public display URLs for stored
// submissions. Derivation is pure and idempotent: the relay computes
// the URL from the submission key on every response instead of storing
// it anywhere.
package urlstrategy

import "context"

// DisplayURLStrategy defines the interface for display URL derivation
// strategies.
type DisplayURLStrategy interface {
	// DisplayURL derives the public URL under which the object stored
	// for imageKey can be viewed.
	DisplayURL(ctx context.Context, imageKey string) (string, error)
}
