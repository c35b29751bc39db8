// Package facematch resolves face identities with a two-stage
// detect-then-search algorithm: detect face bounding boxes on the stored
// image, then crop each face with a pixel margin and search the crop
// against a face collection.
package facematch

import (
	"context"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/menta2k/rekognition-image-analyzer/internal/imageutil"
	"github.com/menta2k/rekognition-image-analyzer/pkg/analysis"
	"github.com/menta2k/rekognition-image-analyzer/pkg/types"
)

const (
	// cropMargin is the pixel padding added on every side of a detected
	// face box before searching, to include context beyond the tight box.
	cropMargin = 15

	maxMatches     = 3
	matchThreshold = 85
)

// Resolver runs face-identity resolution for one image at a time.
type Resolver struct {
	svc          analysis.Service
	collectionID string
}

// NewResolver creates a resolver that searches the given collection.
func NewResolver(svc analysis.Service, collectionID string) *Resolver {
	return &Resolver{svc: svc, collectionID: collectionID}
}

// Resolve detects all faces in the stored image and classifies each as
// recognized or unrecognized by searching its crop against the collection.
// A detection failure aborts resolution for the whole image; a search
// failure for one face is recorded on that face and does not affect the
// others. img is the decoded image the crops are taken from.
func (r *Resolver) Resolve(ctx context.Context, imageName string, img image.Image) (*types.FaceSearchResult, error) {
	faces, err := r.svc.DetectFaces(ctx, imageName, analysis.AttributesDefault)
	if err != nil {
		return nil, err
	}

	result := &types.FaceSearchResult{
		TotalFaces:        len(faces),
		RecognizedFaces:   []types.RecognizedFace{},
		UnRecognizedFaces: []types.UnrecognizedFace{},
	}
	if len(faces) == 0 {
		return result, nil
	}
	if img == nil {
		return nil, fmt.Errorf("image %s is not available for face cropping", imageName)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	for _, face := range faces {
		crop, err := r.faceCrop(img, imageName, face.BoundingBox, width, height)
		var resp *types.FaceSearchResponse
		if err == nil {
			resp, err = r.svc.SearchFacesByImage(ctx, r.collectionID, crop, maxMatches, matchThreshold)
		}

		switch {
		case err != nil:
			result.UnRecognizedFaces = append(result.UnRecognizedFaces, types.UnrecognizedFace{
				BoundingBox: face.BoundingBox,
				Error:       fmt.Sprintf("Facial recognition failed. Error: %v", err),
			})
		case len(resp.FaceMatches) > 0:
			result.RecognizedFaces = append(result.RecognizedFaces, types.RecognizedFace{
				BoundingBox: face.BoundingBox,
				FaceMatches: *resp,
			})
		default:
			result.UnRecognizedFaces = append(result.UnRecognizedFaces, types.UnrecognizedFace{
				BoundingBox:        face.BoundingBox,
				FaceSearchResponse: resp,
			})
		}
	}
	return result, nil
}

// faceCrop cuts the padded face region out of the image and re-encodes it
// in the source image's format family.
func (r *Resolver) faceCrop(img image.Image, imageName string, box types.BoundingBox, width, height int) ([]byte, error) {
	rect := cropRect(box, width, height)
	return imageutil.EncodeForName(imaging.Crop(img, rect), imageName)
}

// cropRect converts a normalized box to pixel coordinates, pads it by
// cropMargin on every side and clamps negative coordinates. The padded
// right/bottom edge is deliberately left unclamped; imaging.Crop intersects
// the rectangle with the image bounds, so an oversized edge yields the
// available pixels.
func cropRect(box types.BoundingBox, width, height int) image.Rectangle {
	fw, fh := float64(width), float64(height)

	x1 := int(box.Left*fw) - cropMargin
	y1 := int(box.Top*fh) - cropMargin
	x2 := int(box.Left*fw+box.Width*fw) + cropMargin
	y2 := int(box.Top*fh+box.Height*fh) + cropMargin

	if x1 < 0 {
		x1 = 0
	}
	if y1 < 0 {
		y1 = 0
	}
	if x2 < 0 {
		x2 = width
	}
	if y2 < 0 {
		y2 = height
	}
	return image.Rect(x1, y1, x2, y2)
}
