package services

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const onePixelPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNkYAAAAAYAAjCB0C8AAAAASUVORK5CYII="

func TestMediaStoreSaveBase64(t *testing.T) {
	root := t.TempDir()
	store := NewMediaStore(root, 0)

	rel, err := store.SaveBase64("hero", "data:image/png;base64,"+onePixelPNG)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rel, "hero/"))
	assert.True(t, strings.HasSuffix(rel, ".png"))

	want, _ := base64.StdEncoding.DecodeString(onePixelPNG)
	got, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	assert.Equal(t, want, got)

	other, err := store.SaveBase64("hero", onePixelPNG)
	require.NoError(t, err)
	assert.NotEqual(t, rel, other)
}

func TestMediaStoreRejects(t *testing.T) {
	store := NewMediaStore(t.TempDir(), 16)
	text := base64.StdEncoding.EncodeToString([]byte("just some text"))

	tests := []struct {
		name    string
		folder  string
		payload string
		want    error
	}{
		{"traversal", "../etc", onePixelPNG, ErrInvalidPayload},
		{"empty folder", "", onePixelPNG, ErrInvalidPayload},
		{"not base64", "hero", "%%%", ErrInvalidPayload},
		{"empty", "hero", "", ErrInvalidPayload},
		{"too large", "hero", onePixelPNG, ErrInvalidPayload},
		{"not an image", "hero", text, ErrUnsupportedMedia},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.SaveBase64(tt.folder, tt.payload)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
