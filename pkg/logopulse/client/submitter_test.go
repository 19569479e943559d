package client

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PrathamBhavsar2112/LogoPulse/pkg/logopulse"
	"github.com/PrathamBhavsar2112/LogoPulse/pkg/logopulse/submitkey"
)

func TestSubmitterAcceptsImageTypes(t *testing.T) {
	s := NewSubmitter(nil)

	for _, ct := range []string{"image/jpeg", "image/png"} {
		key, err := s.Prepare("photo.png", ct)
		require.NoError(t, err, ct)
		assert.NotEmpty(t, key)
	}
}

func TestSubmitterRejectsEverythingElse(t *testing.T) {
	s := NewSubmitter(nil)

	for _, ct := range []string{"image/gif", "image/webp", "text/plain", "application/pdf", ""} {
		_, err := s.Prepare("file.bin", ct)
		assert.ErrorIs(t, err, logopulse.ErrUnsupportedContentType, ct)
	}
}

func TestSubmitterPreservesExtension(t *testing.T) {
	s := NewSubmitter(nil)

	key, err := s.Prepare("vacation.JPEG", "image/jpeg")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(key, ".jpeg"), "key %q must keep the original extension", key)
}

func TestSubmitterCustomGenerator(t *testing.T) {
	s := NewSubmitter(submitkey.NewCustomFuncGenerator(func(fileName, contentType string) string {
		return "fixed.png"
	}))

	key, err := s.Prepare("anything.png", "image/png")
	require.NoError(t, err)
	assert.Equal(t, "fixed.png", key)
}
