package analysis

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	rtypes "github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/stretchr/testify/assert"
)

func TestFromBoundingBox(t *testing.T) {
	bb := fromBoundingBox(&rtypes.BoundingBox{
		Left:   aws.Float32(0.25),
		Top:    aws.Float32(0.5),
		Width:  aws.Float32(0.125),
		Height: aws.Float32(0.75),
	})
	assert.Equal(t, 0.25, bb.Left)
	assert.Equal(t, 0.5, bb.Top)
	assert.Equal(t, 0.125, bb.Width)
	assert.Equal(t, 0.75, bb.Height)

	assert.Zero(t, fromBoundingBox(nil))
}

func TestFromFaceDetail(t *testing.T) {
	fd := fromFaceDetail(rtypes.FaceDetail{
		BoundingBox: &rtypes.BoundingBox{Left: aws.Float32(0.5)},
		Confidence:  aws.Float32(99.5),
		AgeRange:    &rtypes.AgeRange{Low: aws.Int32(20), High: aws.Int32(30)},
		Beard:       &rtypes.Beard{Value: true, Confidence: aws.Float32(88)},
		Gender:      &rtypes.Gender{Value: rtypes.GenderTypeFemale, Confidence: aws.Float32(97)},
		Pose:        &rtypes.Pose{Yaw: aws.Float32(-12.5)},
		Quality:     &rtypes.ImageQuality{Brightness: aws.Float32(80.5)},
		Landmarks: []rtypes.Landmark{
			{Type: rtypes.LandmarkTypeEyeLeft, X: aws.Float32(0.25), Y: aws.Float32(0.5)},
		},
		Emotions: []rtypes.Emotion{
			{Type: rtypes.EmotionNameCalm, Confidence: aws.Float32(70)},
		},
	})

	assert.Equal(t, 0.5, fd.BoundingBox.Left)
	assert.Equal(t, 99.5, fd.Confidence)
	assert.Equal(t, 20, fd.AgeRange.Low)
	assert.Equal(t, 30, fd.AgeRange.High)
	assert.True(t, fd.Beard.Value)
	assert.Equal(t, "Female", fd.Gender.Value)
	assert.Equal(t, -12.5, fd.Pose.Yaw)
	assert.Equal(t, 80.5, fd.Quality.Brightness)
	assert.Equal(t, "eyeLeft", fd.Landmarks[0].Type)
	assert.Equal(t, "CALM", fd.Emotions[0].Type)
}

func TestFromFaceDetailNilAttributes(t *testing.T) {
	fd := fromFaceDetail(rtypes.FaceDetail{})
	assert.Zero(t, fd.BoundingBox)
	assert.Zero(t, fd.AgeRange)
	assert.False(t, fd.Smile.Value)
	assert.Empty(t, fd.Gender.Value)
	assert.Empty(t, fd.Landmarks)
	assert.Empty(t, fd.Emotions)
}
