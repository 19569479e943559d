package logopulse

import (
	"mime"
)

// Sentinel values used on the wire. Both signal absence of a real
// value and must be checked explicitly rather than treated as data.
const (
	// LabelNone is the label name the detection engine reports when
	// nothing was detected in the image.
	LabelNone = "None"

	// WorkIDUnknown is the placeholder the upstream boundary emits in
	// place of a real work identifier when a submission was accepted
	// but could not be correlated. It must never be polled.
	WorkIDUnknown = "unknown"
)

// Content types accepted for submission.
const (
	ContentTypeJPEG = "image/jpeg"
	ContentTypePNG  = "image/png"
)

// ValidContentType reports whether ct declares one of the accepted
// image content types. Media type parameters (charset etc.) are
// stripped before comparison; anything that is not exactly image/jpeg
// or image/png is rejected.
func ValidContentType(ct string) bool {
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	return mediaType == ContentTypeJPEG || mediaType == ContentTypePNG
}

// BoundingBox locates a detected label within the image. All four
// values are normalized to [0,1] relative to the image dimensions.
type BoundingBox struct {
	Left   float64 `json:"Left"`
	Top    float64 `json:"Top"`
	Width  float64 `json:"Width"`
	Height float64 `json:"Height"`
}

// Scale converts the normalized box to pixel coordinates for an image
// rendered at the given dimensions.
func (b BoundingBox) Scale(imageWidth, imageHeight int) (x, y, w, h int) {
	x = int(b.Left * float64(imageWidth))
	y = int(b.Top * float64(imageHeight))
	w = int(b.Width * float64(imageWidth))
	h = int(b.Height * float64(imageHeight))
	return x, y, w, h
}

// Label is a single detection outcome produced by the detection
// engine. Name is LabelNone when nothing was detected, in which case
// BoundingBox is absent. Confidence is a percentage in [0,100].
// A Label is immutable once produced.
type Label struct {
	Name        string       `json:"Name"`
	Confidence  float64      `json:"Confidence"`
	BoundingBox *BoundingBox `json:"BoundingBox,omitempty"`
}

// Detected reports whether the label carries a real detection rather
// than the LabelNone sentinel.
func (l *Label) Detected() bool {
	return l != nil && l.Name != LabelNone && l.Name != ""
}

// HistoryRecord is one prior submission as returned by the upstream
// history query. Label is nil while the submission is still being
// processed. ImageUrl is not stored upstream; the relay derives it
// from ImageKey on every response.
type HistoryRecord struct {
	ImageKey string `json:"ImageKey"`
	Label    *Label `json:"Label"`
	ImageUrl string `json:"ImageUrl,omitempty"`
}

// UploadResult is the decoded response to a successful submission.
// ImageID is the opaque work identifier used to poll for the result;
// no structure beyond opacity may be assumed.
type UploadResult struct {
	ImageID string `json:"imageId"`
	Key     string `json:"key"`
}

// Valid reports whether the result carries a usable work identifier.
// An empty identifier or the WorkIDUnknown sentinel marks the upstream
// response as malformed and must be treated as a hard failure.
func (r UploadResult) Valid() bool {
	return r.ImageID != "" && r.ImageID != WorkIDUnknown
}
