package catalog

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const MaxImageBytes = 5 << 20

var (
	ErrImageEmpty    = errors.New("image is empty")
	ErrImageTooLarge = errors.New("image too large")
	ErrNotAnImage    = errors.New("not an image")
)

// ImageDataURI inlines an uploaded picture as a base64 data URI, the form the
// product image field stores besides plain URLs.
func ImageDataURI(raw []byte) (string, error) {
	if len(raw) == 0 {
		return "", ErrImageEmpty
	}
	if len(raw) > MaxImageBytes {
		return "", fmt.Errorf("%w: %d bytes", ErrImageTooLarge, len(raw))
	}

	mt := mimetype.Detect(raw)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", fmt.Errorf("%w: %s", ErrNotAnImage, mt.String())
	}

	return "data:" + mt.String() + ";base64," + base64.StdEncoding.EncodeToString(raw), nil
}
