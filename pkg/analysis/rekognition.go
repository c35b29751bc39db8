package analysis

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	rtypes "github.com/aws/aws-sdk-go-v2/service/rekognition/types"

	"github.com/menta2k/rekognition-image-analyzer/pkg/types"
)

// Rekognition implements Service against Amazon Rekognition. Images are
// referenced by their key in the configured S3 bucket, except for face
// search which submits raw crop bytes.
type Rekognition struct {
	client        *rekognition.Client
	bucket        string
	minConfidence float32
}

// NewRekognition creates a Service for images stored in bucket.
// minConfidence (0-100) applies to label and moderation detection.
func NewRekognition(cfg aws.Config, bucket string, minConfidence float32) *Rekognition {
	return &Rekognition{
		client:        rekognition.NewFromConfig(cfg),
		bucket:        bucket,
		minConfidence: minConfidence,
	}
}

func (r *Rekognition) s3Image(key string) *rtypes.Image {
	return &rtypes.Image{
		S3Object: &rtypes.S3Object{
			Bucket: aws.String(r.bucket),
			Name:   aws.String(key),
		},
	}
}

// DetectLabels detects object and scene labels.
func (r *Rekognition) DetectLabels(ctx context.Context, imageKey string) ([]types.Label, error) {
	out, err := r.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         r.s3Image(imageKey),
		MinConfidence: aws.Float32(r.minConfidence),
	})
	if err != nil {
		return nil, fmt.Errorf("detect labels for %s: %w", imageKey, err)
	}

	labels := make([]types.Label, 0, len(out.Labels))
	for _, l := range out.Labels {
		label := types.Label{
			Name:       aws.ToString(l.Name),
			Confidence: f32(l.Confidence),
			Instances:  make([]types.LabelInstance, 0, len(l.Instances)),
			Parents:    make([]types.Parent, 0, len(l.Parents)),
		}
		for _, inst := range l.Instances {
			label.Instances = append(label.Instances, types.LabelInstance{
				BoundingBox: fromBoundingBox(inst.BoundingBox),
				Confidence:  f32(inst.Confidence),
			})
		}
		for _, p := range l.Parents {
			label.Parents = append(label.Parents, types.Parent{Name: aws.ToString(p.Name)})
		}
		labels = append(labels, label)
	}
	return labels, nil
}

// DetectModerationLabels detects content-moderation flags.
func (r *Rekognition) DetectModerationLabels(ctx context.Context, imageKey string) ([]types.ModerationLabel, error) {
	out, err := r.client.DetectModerationLabels(ctx, &rekognition.DetectModerationLabelsInput{
		Image:         r.s3Image(imageKey),
		MinConfidence: aws.Float32(r.minConfidence),
	})
	if err != nil {
		return nil, fmt.Errorf("detect moderation labels for %s: %w", imageKey, err)
	}

	labels := make([]types.ModerationLabel, 0, len(out.ModerationLabels))
	for _, l := range out.ModerationLabels {
		labels = append(labels, types.ModerationLabel{
			Name:       aws.ToString(l.Name),
			Confidence: f32(l.Confidence),
			ParentName: aws.ToString(l.ParentName),
		})
	}
	return labels, nil
}

// RecognizeCelebrities recognizes public figures.
func (r *Rekognition) RecognizeCelebrities(ctx context.Context, imageKey string) ([]types.Celebrity, error) {
	out, err := r.client.RecognizeCelebrities(ctx, &rekognition.RecognizeCelebritiesInput{
		Image: r.s3Image(imageKey),
	})
	if err != nil {
		return nil, fmt.Errorf("recognize celebrities for %s: %w", imageKey, err)
	}

	celebs := make([]types.Celebrity, 0, len(out.CelebrityFaces))
	for _, c := range out.CelebrityFaces {
		celeb := types.Celebrity{
			ID:              aws.ToString(c.Id),
			Name:            aws.ToString(c.Name),
			MatchConfidence: f32(c.MatchConfidence),
			URLs:            c.Urls,
		}
		if c.Face != nil {
			celeb.Face = &types.ComparedFace{
				BoundingBox: fromBoundingBox(c.Face.BoundingBox),
				Confidence:  f32(c.Face.Confidence),
				Pose:        fromPose(c.Face.Pose),
				Quality:     fromQuality(c.Face.Quality),
				Landmarks:   fromLandmarks(c.Face.Landmarks),
			}
		}
		celebs = append(celebs, celeb)
	}
	return celebs, nil
}

// DetectText detects lines and words of text.
func (r *Rekognition) DetectText(ctx context.Context, imageKey string) ([]types.TextDetection, error) {
	out, err := r.client.DetectText(ctx, &rekognition.DetectTextInput{
		Image: r.s3Image(imageKey),
	})
	if err != nil {
		return nil, fmt.Errorf("detect text for %s: %w", imageKey, err)
	}

	detections := make([]types.TextDetection, 0, len(out.TextDetections))
	for _, t := range out.TextDetections {
		det := types.TextDetection{
			ID:           int(aws.ToInt32(t.Id)),
			DetectedText: aws.ToString(t.DetectedText),
			Type:         string(t.Type),
			Confidence:   f32(t.Confidence),
		}
		if t.ParentId != nil {
			parent := int(*t.ParentId)
			det.ParentID = &parent
		}
		if t.Geometry != nil {
			det.Geometry = types.Geometry{BoundingBox: fromBoundingBox(t.Geometry.BoundingBox)}
		}
		detections = append(detections, det)
	}
	return detections, nil
}

// DetectFaces detects faces with the requested attribute set.
func (r *Rekognition) DetectFaces(ctx context.Context, imageKey string, attrs AttributeSet) ([]types.FaceDetail, error) {
	attribute := rtypes.AttributeDefault
	if attrs == AttributesAll {
		attribute = rtypes.AttributeAll
	}
	out, err := r.client.DetectFaces(ctx, &rekognition.DetectFacesInput{
		Image:      r.s3Image(imageKey),
		Attributes: []rtypes.Attribute{attribute},
	})
	if err != nil {
		return nil, fmt.Errorf("detect faces for %s: %w", imageKey, err)
	}

	faces := make([]types.FaceDetail, 0, len(out.FaceDetails))
	for _, fd := range out.FaceDetails {
		faces = append(faces, fromFaceDetail(fd))
	}
	return faces, nil
}

// SearchFacesByImage searches the collection for the largest face in the
// supplied crop.
func (r *Rekognition) SearchFacesByImage(ctx context.Context, collectionID string, imageBytes []byte, maxFaces int32, threshold float32) (*types.FaceSearchResponse, error) {
	out, err := r.client.SearchFacesByImage(ctx, &rekognition.SearchFacesByImageInput{
		CollectionId:       aws.String(collectionID),
		Image:              &rtypes.Image{Bytes: imageBytes},
		MaxFaces:           aws.Int32(maxFaces),
		FaceMatchThreshold: aws.Float32(threshold),
	})
	if err != nil {
		return nil, fmt.Errorf("search faces in collection %s: %w", collectionID, err)
	}

	resp := &types.FaceSearchResponse{
		FaceMatches: make([]types.FaceMatch, 0, len(out.FaceMatches)),
	}
	for _, m := range out.FaceMatches {
		match := types.FaceMatch{Similarity: f32(m.Similarity)}
		if m.Face != nil {
			match.Face = types.MatchedFace{
				BoundingBox:     fromBoundingBox(m.Face.BoundingBox),
				Confidence:      f32(m.Face.Confidence),
				ExternalImageID: aws.ToString(m.Face.ExternalImageId),
				FaceID:          aws.ToString(m.Face.FaceId),
				ImageID:         aws.ToString(m.Face.ImageId),
			}
		}
		resp.FaceMatches = append(resp.FaceMatches, match)
	}
	return resp, nil
}

func f32(v *float32) float64 {
	return float64(aws.ToFloat32(v))
}

func fromBoundingBox(bb *rtypes.BoundingBox) types.BoundingBox {
	if bb == nil {
		return types.BoundingBox{}
	}
	return types.BoundingBox{
		Left:   f32(bb.Left),
		Top:    f32(bb.Top),
		Width:  f32(bb.Width),
		Height: f32(bb.Height),
	}
}

func fromPose(p *rtypes.Pose) types.Pose {
	if p == nil {
		return types.Pose{}
	}
	return types.Pose{
		Pitch: f32(p.Pitch),
		Roll:  f32(p.Roll),
		Yaw:   f32(p.Yaw),
	}
}

func fromQuality(q *rtypes.ImageQuality) types.Quality {
	if q == nil {
		return types.Quality{}
	}
	return types.Quality{
		Brightness: f32(q.Brightness),
		Sharpness:  f32(q.Sharpness),
	}
}

func fromLandmarks(lms []rtypes.Landmark) []types.Landmark {
	out := make([]types.Landmark, 0, len(lms))
	for _, lm := range lms {
		out = append(out, types.Landmark{
			Type: string(lm.Type),
			X:    f32(lm.X),
			Y:    f32(lm.Y),
		})
	}
	return out
}

func fromFaceDetail(fd rtypes.FaceDetail) types.FaceDetail {
	detail := types.FaceDetail{
		BoundingBox: fromBoundingBox(fd.BoundingBox),
		Confidence:  f32(fd.Confidence),
		Pose:        fromPose(fd.Pose),
		Quality:     fromQuality(fd.Quality),
		Landmarks:   fromLandmarks(fd.Landmarks),
	}
	if fd.AgeRange != nil {
		detail.AgeRange = types.AgeRange{
			Low:  int(aws.ToInt32(fd.AgeRange.Low)),
			High: int(aws.ToInt32(fd.AgeRange.High)),
		}
	}
	if fd.Beard != nil {
		detail.Beard = types.BoolAttribute{Value: fd.Beard.Value, Confidence: f32(fd.Beard.Confidence)}
	}
	if fd.Eyeglasses != nil {
		detail.Eyeglasses = types.BoolAttribute{Value: fd.Eyeglasses.Value, Confidence: f32(fd.Eyeglasses.Confidence)}
	}
	if fd.EyesOpen != nil {
		detail.EyesOpen = types.BoolAttribute{Value: fd.EyesOpen.Value, Confidence: f32(fd.EyesOpen.Confidence)}
	}
	if fd.Gender != nil {
		detail.Gender = types.GenderAttribute{Value: string(fd.Gender.Value), Confidence: f32(fd.Gender.Confidence)}
	}
	if fd.MouthOpen != nil {
		detail.MouthOpen = types.BoolAttribute{Value: fd.MouthOpen.Value, Confidence: f32(fd.MouthOpen.Confidence)}
	}
	if fd.Mustache != nil {
		detail.Mustache = types.BoolAttribute{Value: fd.Mustache.Value, Confidence: f32(fd.Mustache.Confidence)}
	}
	if fd.Smile != nil {
		detail.Smile = types.BoolAttribute{Value: fd.Smile.Value, Confidence: f32(fd.Smile.Confidence)}
	}
	if fd.Sunglasses != nil {
		detail.Sunglasses = types.BoolAttribute{Value: fd.Sunglasses.Value, Confidence: f32(fd.Sunglasses.Confidence)}
	}
	for _, em := range fd.Emotions {
		detail.Emotions = append(detail.Emotions, types.Emotion{
			Type:       string(em.Type),
			Confidence: f32(em.Confidence),
		})
	}
	return detail
}
