package services

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var ErrUnsupportedMedia = errors.New("unsupported media type")

// DefaultMaxUpload caps decoded uploads at 5 MiB.
const DefaultMaxUpload = 5 << 20

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

var folderPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,39}$`)

// MediaStore keeps images uploaded from the admin console on local disk.
type MediaStore struct {
	root    string
	maxSize int
}

func NewMediaStore(root string, maxSize int) *MediaStore {
	if maxSize <= 0 {
		maxSize = DefaultMaxUpload
	}
	return &MediaStore{root: root, maxSize: maxSize}
}

func (m *MediaStore) Root() string { return m.root }

// SaveBase64 stores a base64 image, optionally given as a data URL, under
// folder and returns its slash-separated path relative to the root.
func (m *MediaStore) SaveBase64(folder, payload string) (string, error) {
	if !folderPattern.MatchString(folder) {
		return "", fmt.Errorf("%w: folder %q", ErrInvalidPayload, folder)
	}
	if idx := strings.Index(payload, "base64,"); idx >= 0 {
		payload = payload[idx+len("base64,"):]
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return "", fmt.Errorf("%w: decode base64: %v", ErrInvalidPayload, err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty file", ErrInvalidPayload)
	}
	if len(data) > m.maxSize {
		return "", fmt.Errorf("%w: file exceeds %d bytes", ErrInvalidPayload, m.maxSize)
	}

	mt := mimetype.Detect(data)
	ext, ok := imageExtensions[mt.String()]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedMedia, mt.String())
	}

	dir := filepath.Join(m.root, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return path.Join(folder, name), nil
}
