package upstream

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/PrathamBhavsar2112/LogoPulse/pkg/logopulse"
)

// labelNames is the fixed vocabulary the simulated detector draws from.
var labelNames = []string{
	"Wordmark",
	"Emblem",
	"Badge",
	"Monogram",
	"Crest",
	"Symbol",
	"Lettermark",
	"Mascot",
}

// detectLabel derives a label deterministically from the image bytes,
// so the same upload always yields the same result. Roughly one in
// five uploads yields no detection.
func detectLabel(data []byte) *logopulse.Label {
	sum := sha256.Sum256(data)

	if sum[0]%5 == 0 {
		return &logopulse.Label{Name: logopulse.LabelNone}
	}

	name := labelNames[int(sum[1])%len(labelNames)]

	// Confidence in [55, 100).
	confidence := 55 + 45*float64(binary.BigEndian.Uint16(sum[2:4]))/65536

	// Normalized box: origin in [0, 0.5), extent in (0, 0.5].
	left := 0.5 * float64(sum[4]) / 256
	top := 0.5 * float64(sum[5]) / 256
	width := 0.5 * (float64(sum[6]) + 1) / 256
	height := 0.5 * (float64(sum[7]) + 1) / 256

	return &logopulse.Label{
		Name:       name,
		Confidence: confidence,
		BoundingBox: &logopulse.BoundingBox{
			Left:   left,
			Top:    top,
			Width:  width,
			Height: height,
		},
	}
}
