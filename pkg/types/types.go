// Package types defines the per-image analysis record and the result payloads
// produced by each Rekognition operation.
//
// Every analysis kind is a tagged variant: a result struct either carries its
// success payload or a non-empty Error string, never both. The JSON field
// names match the artifacts consumed by the report front end, so renaming a
// tag here is a breaking change for report consumers.
package types

// BoundingBox locates a detection within an image. Coordinates are fractions
// of the image dimension in [0,1]; they are only converted to pixels during
// face-crop computation.
type BoundingBox struct {
	Left   float64 `json:"Left"`
	Top    float64 `json:"Top"`
	Width  float64 `json:"Width"`
	Height float64 `json:"Height"`

	// BoxColor and Title are presentation annotations set by the report
	// renderer only. The pipeline never fills them.
	BoxColor string `json:"BoxColor,omitempty"`
	Title    string `json:"Title,omitempty"`
}

// Pose describes the rotation of a face around its three axes, in degrees.
type Pose struct {
	Pitch float64 `json:"Pitch"`
	Roll  float64 `json:"Roll"`
	Yaw   float64 `json:"Yaw"`
}

// Quality holds face image quality scores.
type Quality struct {
	Brightness float64 `json:"Brightness"`
	Sharpness  float64 `json:"Sharpness"`
}

// Landmark is a single facial landmark position, normalized to the image.
type Landmark struct {
	Type string  `json:"Type"`
	X    float64 `json:"X"`
	Y    float64 `json:"Y"`
}

// Emotion is one detected emotional expression with its confidence.
type Emotion struct {
	Type       string  `json:"Type"`
	Confidence float64 `json:"Confidence"`
}

// LabelInstance is one concrete occurrence of a label in the image.
type LabelInstance struct {
	BoundingBox BoundingBox `json:"BoundingBox"`
	Confidence  float64     `json:"Confidence"`
}

// Parent is a parent category of a label in the label taxonomy.
type Parent struct {
	Name string `json:"Name"`
}

// Label is one detected object or scene label.
type Label struct {
	Name       string          `json:"Name"`
	Confidence float64         `json:"Confidence"`
	Instances  []LabelInstance `json:"Instances"`
	Parents    []Parent        `json:"Parents"`
}

// LabelsResult is the Labels analysis kind payload.
type LabelsResult struct {
	Labels []Label `json:"Labels,omitempty"`
	Error  string  `json:"Error,omitempty"`
}

// ModerationLabel is one content-moderation flag.
type ModerationLabel struct {
	Name       string  `json:"Name"`
	Confidence float64 `json:"Confidence"`
	ParentName string  `json:"ParentName"`
}

// ModerationLabelsResult is the ModerationLabels analysis kind payload.
type ModerationLabelsResult struct {
	ModerationLabels []ModerationLabel `json:"ModerationLabels,omitempty"`
	Error            string            `json:"Error,omitempty"`
}

// Text detection types as reported by the service.
const (
	TextTypeLine = "LINE"
	TextTypeWord = "WORD"
)

// Geometry wraps the bounding box of a text detection.
type Geometry struct {
	BoundingBox BoundingBox `json:"BoundingBox"`
}

// TextDetection is one detected line or word of text. ParentID is set for
// words and points at their containing line.
type TextDetection struct {
	ID           int      `json:"Id"`
	ParentID     *int     `json:"ParentId,omitempty"`
	DetectedText string   `json:"DetectedText"`
	Type         string   `json:"Type"`
	Confidence   float64  `json:"Confidence"`
	Geometry     Geometry `json:"Geometry"`
}

// TextResult is the Text analysis kind payload.
type TextResult struct {
	TextDetections []TextDetection `json:"TextDetections,omitempty"`
	Error          string          `json:"Error,omitempty"`
}

// ComparedFace carries the face attributes attached to a celebrity match.
type ComparedFace struct {
	BoundingBox BoundingBox `json:"BoundingBox"`
	Confidence  float64     `json:"Confidence"`
	Pose        Pose        `json:"Pose"`
	Quality     Quality     `json:"Quality"`
	Landmarks   []Landmark  `json:"Landmarks"`
}

// Celebrity is one recognized public figure.
type Celebrity struct {
	ID              string        `json:"Id"`
	Name            string        `json:"Name"`
	MatchConfidence float64       `json:"MatchConfidence"`
	URLs            []string      `json:"Urls"`
	Face            *ComparedFace `json:"Face,omitempty"`
}

// CelebritiesResult is the Celebrities analysis kind payload.
type CelebritiesResult struct {
	CelebrityFaces []Celebrity `json:"CelebrityFaces,omitempty"`
	Error          string      `json:"Error,omitempty"`
}

// BoolAttribute is a binary face attribute (beard, smile, ...) with its
// detection confidence.
type BoolAttribute struct {
	Value      bool    `json:"Value"`
	Confidence float64 `json:"Confidence"`
}

// GenderAttribute is the predicted gender with its confidence.
type GenderAttribute struct {
	Value      string  `json:"Value"`
	Confidence float64 `json:"Confidence"`
}

// AgeRange is the estimated age bracket of a face.
type AgeRange struct {
	Low  int `json:"Low"`
	High int `json:"High"`
}

// FaceDetail is the full attribute set for one detected face.
type FaceDetail struct {
	BoundingBox BoundingBox     `json:"BoundingBox"`
	Confidence  float64         `json:"Confidence"`
	AgeRange    AgeRange        `json:"AgeRange"`
	Beard       BoolAttribute   `json:"Beard"`
	Eyeglasses  BoolAttribute   `json:"Eyeglasses"`
	EyesOpen    BoolAttribute   `json:"EyesOpen"`
	Gender      GenderAttribute `json:"Gender"`
	MouthOpen   BoolAttribute   `json:"MouthOpen"`
	Mustache    BoolAttribute   `json:"Mustache"`
	Smile       BoolAttribute   `json:"Smile"`
	Sunglasses  BoolAttribute   `json:"Sunglasses"`
	Pose        Pose            `json:"Pose"`
	Quality     Quality         `json:"Quality"`
	Landmarks   []Landmark      `json:"Landmarks"`
	Emotions    []Emotion       `json:"Emotions"`
}

// FacesResult is the Faces analysis kind payload.
type FacesResult struct {
	FaceDetails []FaceDetail `json:"FaceDetails,omitempty"`
	Error       string       `json:"Error,omitempty"`
}

// MatchedFace identifies a face stored in the search collection.
type MatchedFace struct {
	BoundingBox     BoundingBox `json:"BoundingBox"`
	Confidence      float64     `json:"Confidence"`
	ExternalImageID string      `json:"ExternalImageId"`
	FaceID          string      `json:"FaceId"`
	ImageID         string      `json:"ImageId"`
}

// FaceMatch is one candidate returned by the face-identity search.
type FaceMatch struct {
	Similarity float64     `json:"Similarity"`
	Face       MatchedFace `json:"Face"`
}

// FaceSearchResponse is the raw match list returned by one search call.
type FaceSearchResponse struct {
	FaceMatches []FaceMatch `json:"FaceMatches"`
}

// RecognizedFace pairs a detected face with the search response that
// identified it.
type RecognizedFace struct {
	BoundingBox BoundingBox        `json:"BoundingBox"`
	FaceMatches FaceSearchResponse `json:"FaceMatches"`
}

// UnrecognizedFace is a detected face the collection could not identify.
// Error is set when the search call itself failed, as opposed to a search
// that succeeded but matched nothing (FaceSearchResponse retained).
type UnrecognizedFace struct {
	BoundingBox        BoundingBox         `json:"BoundingBox"`
	Error              string              `json:"Error,omitempty"`
	FaceSearchResponse *FaceSearchResponse `json:"FaceSearchResponse,omitempty"`
}

// FaceSearchResult is the FaceSearch analysis kind payload, present only
// when a face collection is configured for the run.
type FaceSearchResult struct {
	TotalFaces        int                `json:"TotalFaces"`
	RecognizedFaces   []RecognizedFace   `json:"RecognizedFaces"`
	UnRecognizedFaces []UnrecognizedFace `json:"UnRecognizedFaces"`
	Error             string             `json:"Error,omitempty"`
}

// OrientationUnknown is the ImageOrientation sentinel used when the image
// carries no EXIF orientation tag or could not be decoded.
const OrientationUnknown = -1

// AnalysisRecord aggregates every analysis result for one image. It is
// created empty by the orchestrator, filled by concurrently running
// sub-tasks that each own exactly one field, and becomes immutable once
// appended to the output collection.
type AnalysisRecord struct {
	ImageName         string `json:"ImageName"`
	ImageOrientation  int    `json:"ImageOrientation"`
	ImagePreSignedURL string `json:"ImagePreSignedUrl"`

	Labels           *LabelsResult           `json:"Labels,omitempty"`
	ModerationLabels *ModerationLabelsResult `json:"ModerationLabels,omitempty"`
	Celebrities      *CelebritiesResult      `json:"Celebrities,omitempty"`
	Text             *TextResult             `json:"Text,omitempty"`
	Faces            *FacesResult            `json:"Faces,omitempty"`
	FaceSearch       *FaceSearchResult       `json:"FaceSearch,omitempty"`
}
