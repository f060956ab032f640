package catalog

import (
	"bytes"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")

func TestImageDataURI(t *testing.T) {
	uri, err := ImageDataURI(pngHeader)
	if err != nil {
		t.Fatalf("ImageDataURI: %v", err)
	}

	const prefix = "data:image/png;base64,"
	if !strings.HasPrefix(uri, prefix) {
		t.Fatalf("uri=%q", uri)
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
	if err != nil || !bytes.Equal(raw, pngHeader) {
		t.Fatalf("payload does not round trip: %v", err)
	}
}

func TestImageDataURI_Rejects(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
		want error
	}{
		{name: "empty", raw: nil, want: ErrImageEmpty},
		{name: "text", raw: []byte("hello, not a picture"), want: ErrNotAnImage},
		{name: "too large", raw: append(append([]byte{}, pngHeader...), make([]byte, MaxImageBytes)...), want: ErrImageTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ImageDataURI(tt.raw); !errors.Is(err, tt.want) {
				t.Fatalf("err=%v want %v", err, tt.want)
			}
		})
	}
}
