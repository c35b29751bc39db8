package facematch

import (
	"context"
	"errors"
	"fmt"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menta2k/rekognition-image-analyzer/pkg/analysis"
	"github.com/menta2k/rekognition-image-analyzer/pkg/types"
)

// fakeService scripts DetectFaces and SearchFacesByImage; the search result
// for call n is searches[n].
type fakeService struct {
	faces     []types.FaceDetail
	facesErr  error
	searches  []searchReply
	searchIdx int

	gotCollection string
	gotMaxFaces   int32
	gotThreshold  float32
}

type searchReply struct {
	resp *types.FaceSearchResponse
	err  error
}

func (f *fakeService) DetectLabels(context.Context, string) ([]types.Label, error) {
	return nil, nil
}
func (f *fakeService) DetectModerationLabels(context.Context, string) ([]types.ModerationLabel, error) {
	return nil, nil
}
func (f *fakeService) RecognizeCelebrities(context.Context, string) ([]types.Celebrity, error) {
	return nil, nil
}
func (f *fakeService) DetectText(context.Context, string) ([]types.TextDetection, error) {
	return nil, nil
}

func (f *fakeService) DetectFaces(_ context.Context, _ string, _ analysis.AttributeSet) ([]types.FaceDetail, error) {
	return f.faces, f.facesErr
}

func (f *fakeService) SearchFacesByImage(_ context.Context, collectionID string, imageBytes []byte, maxFaces int32, threshold float32) (*types.FaceSearchResponse, error) {
	f.gotCollection = collectionID
	f.gotMaxFaces = maxFaces
	f.gotThreshold = threshold
	if len(imageBytes) == 0 {
		return nil, errors.New("empty crop")
	}
	reply := f.searches[f.searchIdx]
	f.searchIdx++
	return reply.resp, reply.err
}

func faceAt(left, top float64) types.FaceDetail {
	return types.FaceDetail{
		BoundingBox: types.BoundingBox{Left: left, Top: top, Width: 0.2, Height: 0.2},
	}
}

func matchResponse(externalID string, similarity float64) *types.FaceSearchResponse {
	return &types.FaceSearchResponse{
		FaceMatches: []types.FaceMatch{
			{Similarity: similarity, Face: types.MatchedFace{ExternalImageID: externalID}},
		},
	}
}

func TestResolveClassifiesFaces(t *testing.T) {
	svc := &fakeService{
		faces: []types.FaceDetail{faceAt(0.1, 0.1), faceAt(0.5, 0.5), faceAt(0.7, 0.2)},
		searches: []searchReply{
			{resp: matchResponse("alice", 96)},
			{resp: &types.FaceSearchResponse{FaceMatches: []types.FaceMatch{}}},
			{err: errors.New("ThrottlingException")},
		},
	}
	r := NewResolver(svc, "my-collection")

	img := image.NewRGBA(image.Rect(0, 0, 200, 200))
	result, err := r.Resolve(context.Background(), "group.jpg", img)
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalFaces)
	require.Len(t, result.RecognizedFaces, 1)
	assert.Equal(t, "alice", result.RecognizedFaces[0].FaceMatches.FaceMatches[0].Face.ExternalImageID)

	require.Len(t, result.UnRecognizedFaces, 2)
	// Empty match list: the response is kept, no error is set.
	assert.Empty(t, result.UnRecognizedFaces[0].Error)
	assert.NotNil(t, result.UnRecognizedFaces[0].FaceSearchResponse)
	// Search failure: contained on the face that failed.
	assert.Equal(t, "Facial recognition failed. Error: ThrottlingException", result.UnRecognizedFaces[1].Error)
	assert.Nil(t, result.UnRecognizedFaces[1].FaceSearchResponse)

	assert.Equal(t, "my-collection", svc.gotCollection)
	assert.Equal(t, int32(3), svc.gotMaxFaces)
	assert.Equal(t, float32(85), svc.gotThreshold)
}

func TestResolveNoFaces(t *testing.T) {
	svc := &fakeService{}
	r := NewResolver(svc, "c")

	// No image is needed when no faces were detected.
	result, err := r.Resolve(context.Background(), "empty.jpg", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, result.TotalFaces)
	assert.Empty(t, result.RecognizedFaces)
	assert.Empty(t, result.UnRecognizedFaces)
}

func TestResolveDetectionFailure(t *testing.T) {
	svc := &fakeService{facesErr: errors.New("AccessDenied")}
	r := NewResolver(svc, "c")

	_, err := r.Resolve(context.Background(), "x.jpg", image.NewRGBA(image.Rect(0, 0, 10, 10)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AccessDenied")
}

func TestResolveMissingImage(t *testing.T) {
	svc := &fakeService{faces: []types.FaceDetail{faceAt(0.1, 0.1)}}
	r := NewResolver(svc, "c")

	_, err := r.Resolve(context.Background(), "lost.jpg", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lost.jpg")
}

func TestCropRect(t *testing.T) {
	tests := []struct {
		name          string
		box           types.BoundingBox
		width, height int
		want          image.Rectangle
	}{
		{
			name:  "interior box padded on all sides",
			box:   types.BoundingBox{Left: 0.25, Top: 0.25, Width: 0.5, Height: 0.5},
			width: 400, height: 400,
			want: image.Rect(85, 85, 315, 315),
		},
		{
			name:  "top-left corner clamps to zero",
			box:   types.BoundingBox{Left: 0, Top: 0, Width: 0.1, Height: 0.1},
			width: 400, height: 400,
			want: image.Rect(0, 0, 55, 55),
		},
		{
			name:  "bottom-right padding extends past the image edge",
			box:   types.BoundingBox{Left: 0.9, Top: 0.9, Width: 0.1, Height: 0.1},
			width: 400, height: 400,
			want: image.Rect(345, 345, 415, 415),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cropRect(tt.box, tt.width, tt.height)
			if got != tt.want {
				t.Errorf("cropRect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveAllRecognized(t *testing.T) {
	svc := &fakeService{
		faces: []types.FaceDetail{faceAt(0.0, 0.0), faceAt(0.4, 0.4)},
		searches: []searchReply{
			{resp: matchResponse("bob", 91)},
			{resp: matchResponse("carol", 92)},
		},
	}
	r := NewResolver(svc, "c")

	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	result, err := r.Resolve(context.Background(), "pair.jpg", img)
	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalFaces)
	assert.Len(t, result.RecognizedFaces, 2)
}

func ExampleResolver_Resolve() {
	svc := &fakeService{
		faces:    []types.FaceDetail{faceAt(0.3, 0.3)},
		searches: []searchReply{{resp: matchResponse("alice", 95)}},
	}
	r := NewResolver(svc, "team-faces")

	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	result, _ := r.Resolve(context.Background(), "team.jpg", img)
	fmt.Println(len(result.RecognizedFaces), len(result.UnRecognizedFaces))
	// Output: 1 0
}
