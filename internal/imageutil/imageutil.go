// Package imageutil provides the image helpers shared by the pipeline:
// decoding, EXIF orientation extraction, suffix filtering and format-family
// re-encoding.
package imageutil

import (
	"bytes"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/menta2k/rekognition-image-analyzer/pkg/types"
)

// IsImageKey reports whether an object key names an image the pipeline
// processes. Matching is by filename suffix, case-insensitive.
func IsImageKey(key string) bool {
	k := strings.ToLower(key)
	return strings.HasSuffix(k, ".png") ||
		strings.HasSuffix(k, ".jpg") ||
		strings.HasSuffix(k, ".jpeg")
}

// Decode decodes raw image bytes using the registered decoders
// (JPEG, PNG, WebP).
func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// Orientation extracts the EXIF orientation code from raw image bytes.
// It returns types.OrientationUnknown when the image has no EXIF block or
// no orientation tag.
func Orientation(data []byte) int {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return types.OrientationUnknown
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return types.OrientationUnknown
	}
	v, err := tag.Int(0)
	if err != nil {
		return types.OrientationUnknown
	}
	return v
}

// EncodeForName re-encodes an image in the format family of the named
// source: PNG when the name ends in png, JPEG otherwise.
func EncodeForName(img image.Image, name string) ([]byte, error) {
	format := imaging.JPEG
	if strings.HasSuffix(strings.ToLower(name), "png") {
		format = imaging.PNG
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}
