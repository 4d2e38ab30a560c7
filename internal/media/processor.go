package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"strings"

	// Keep the jpeg and png decoders registered even if the imaging
	// package ever stops importing them itself.
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
)

// Rendition geometry and encode quality. The display image is bounded, the
// thumbnail is exact.
const (
	displayBound     = 1024
	thumbnailSize    = 200
	displayQuality   = 80
	thumbnailQuality = 70
)

// ErrUnsupportedFormat is returned when an upload is not a JPEG or PNG
// image, whether by declared MIME type or by actual content.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Derivatives holds the JPEG-encoded renditions derived from one upload.
type Derivatives struct {
	Display   []byte
	Thumbnail []byte
}

// allowedMIME reports whether the declared content type is one the pipeline
// accepts. image/jpg is not a registered type but some clients send it.
func allowedMIME(mimeType string) bool {
	switch strings.ToLower(strings.TrimSpace(mimeType)) {
	case "image/jpeg", "image/jpg", "image/png":
		return true
	}
	return false
}

// Derive decodes an upload and produces both renditions: the display image
// fit within displayBound on its longer side (never upscaled) and the
// thumbnail cover-fit to exactly thumbnailSize square. Both are JPEG
// encoded. The declared MIME type and the decoded container format must
// both be JPEG or PNG.
func Derive(data []byte, mimeType string) (*Derivatives, error) {
	if !allowedMIME(mimeType) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, mimeType)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	if format != "jpeg" && format != "png" {
		return nil, fmt.Errorf("%w: %s content", ErrUnsupportedFormat, format)
	}

	display := imaging.Fit(img, displayBound, displayBound, imaging.Lanczos)
	thumbnail := imaging.Fill(img, thumbnailSize, thumbnailSize, imaging.Center, imaging.Lanczos)

	displayBytes, err := encodeJPEG(display, displayQuality)
	if err != nil {
		return nil, err
	}
	thumbnailBytes, err := encodeJPEG(thumbnail, thumbnailQuality)
	if err != nil {
		return nil, err
	}

	return &Derivatives{Display: displayBytes, Thumbnail: thumbnailBytes}, nil
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("failed to encode derivative: %w", err)
	}
	return buf.Bytes(), nil
}
