package submitkey

import (
	"crypto/rand"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/PrathamBhavsar2112/LogoPulse/pkg/logopulse"
)

// Generator defines the interface for submission key derivation
// strategies. Keys identify one stored object and are created once at
// submission time, never mutated.
type Generator interface {
	// GenerateKey derives the storage key for one submission from the
	// original file name and its declared content type.
	GenerateKey(fileName, contentType string) string
}

const (
	// TokenLength is the length of the random component. 13 base-36
	// characters make accidental collision within a session negligible;
	// uniqueness is probabilistic, not guaranteed.
	TokenLength = 13

	base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// TimestampGenerator produces keys of the form
// {epoch_millis}-{token}.{ext}: an approximately increasing timestamp,
// a random base-36 token, and the original file extension so the
// storage tier can infer the content type on retrieval.
type TimestampGenerator struct {
	// Now supplies the timestamp component. Defaults to time.Now.
	Now func() time.Time

	// Rand supplies the random token bytes. Defaults to crypto/rand.
	Rand io.Reader
}

// NewTimestampGenerator returns a generator backed by the wall clock
// and crypto/rand.
func NewTimestampGenerator() *TimestampGenerator {
	return &TimestampGenerator{}
}

func (g *TimestampGenerator) GenerateKey(fileName, contentType string) string {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	src := io.Reader(rand.Reader)
	if g.Rand != nil {
		src = g.Rand
	}

	return fmt.Sprintf("%d-%s.%s", now().UnixMilli(), randomToken(src), Extension(fileName, contentType))
}

// randomToken draws TokenLength characters from the base-36 alphabet.
// The per-character modulo bias is irrelevant at this strength.
func randomToken(src io.Reader) string {
	buf := make([]byte, TokenLength)
	if _, err := io.ReadFull(src, buf); err != nil {
		// crypto/rand never fails on supported platforms; a broken
		// custom source falls back to the timestamp alone.
		return strings.Repeat("0", TokenLength)
	}

	token := make([]byte, TokenLength)
	for i, b := range buf {
		token[i] = base36Alphabet[int(b)%len(base36Alphabet)]
	}
	return string(token)
}

// Extension picks the key suffix: the file's own extension when it has
// one, otherwise a canonical extension for the declared content type.
func Extension(fileName, contentType string) string {
	if ext := strings.TrimPrefix(filepath.Ext(fileName), "."); ext != "" {
		return strings.ToLower(ext)
	}
	switch contentType {
	case logopulse.ContentTypeJPEG:
		return "jpg"
	case logopulse.ContentTypePNG:
		return "png"
	}
	return "bin"
}

// CustomFuncGenerator allows callers to provide their own key
// derivation function.
type CustomFuncGenerator struct {
	GenerateFunc func(fileName, contentType string) string
}

func NewCustomFuncGenerator(fn func(fileName, contentType string) string) *CustomFuncGenerator {
	return &CustomFuncGenerator{GenerateFunc: fn}
}

func (g *CustomFuncGenerator) GenerateKey(fileName, contentType string) string {
	return g.GenerateFunc(fileName, contentType)
}
