// Package analysis defines the managed analysis service surface the
// pipeline fans out to, and its Amazon Rekognition implementation.
package analysis

import (
	"context"

	"github.com/menta2k/rekognition-image-analyzer/pkg/types"
)

// AttributeSet selects how much face detail a detect-faces call returns.
type AttributeSet string

// Attribute sets accepted by DetectFaces.
const (
	AttributesDefault AttributeSet = "DEFAULT"
	AttributesAll     AttributeSet = "ALL"
)

// Service is the analysis surface consumed by the orchestrator and the
// face-identity resolver. Each method performs one network call against the
// managed service and converts the response into the domain payload; callers
// contain failures, the service never retries.
type Service interface {
	DetectLabels(ctx context.Context, imageKey string) ([]types.Label, error)
	DetectModerationLabels(ctx context.Context, imageKey string) ([]types.ModerationLabel, error)
	RecognizeCelebrities(ctx context.Context, imageKey string) ([]types.Celebrity, error)
	DetectText(ctx context.Context, imageKey string) ([]types.TextDetection, error)
	DetectFaces(ctx context.Context, imageKey string, attrs AttributeSet) ([]types.FaceDetail, error)

	// SearchFacesByImage searches the collection for the largest face in the
	// supplied image bytes, returning at most maxFaces candidates at or above
	// the similarity threshold.
	SearchFacesByImage(ctx context.Context, collectionID string, imageBytes []byte, maxFaces int32, threshold float32) (*types.FaceSearchResponse, error)
}
