// Package flatten turns nested per-image analysis records into a flat
// tabular row stream suitable for CSV export.
//
// The expansion is deterministic: for a given record it always produces the
// same rows in the same order, and callers may rely on the kind order
// Labels, ModerationLabels, Faces, FaceSearch, Text, Celebrities. A kind
// that is absent or holds an error payload contributes no rows.
package flatten

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/menta2k/rekognition-image-analyzer/pkg/types"
)

// Row is one flat fact extracted from an analysis record. Confidence is
// empty when not applicable.
type Row struct {
	ImageName         string
	ImagePreSignedURL string
	API               string
	ItemID            string
	SubItemID         string
	Value             string
	Confidence        string
}

// Record expands one analysis record into its ordered row sequence.
func Record(rec *types.AnalysisRecord) []Row {
	f := &flattener{
		imageName: rec.ImageName,
		imageURL:  rec.ImagePreSignedURL,
	}

	if rec.Labels != nil && rec.Labels.Error == "" {
		f.labels(rec.Labels.Labels)
	}
	if rec.ModerationLabels != nil && rec.ModerationLabels.Error == "" {
		f.moderationLabels(rec.ModerationLabels.ModerationLabels)
	}
	if rec.Faces != nil && rec.Faces.Error == "" {
		f.faces(rec.Faces.FaceDetails)
	}
	if rec.FaceSearch != nil && rec.FaceSearch.Error == "" {
		f.faceSearch(rec.FaceSearch)
	}
	if rec.Text != nil && rec.Text.Error == "" {
		f.text(rec.Text.TextDetections)
	}
	if rec.Celebrities != nil && rec.Celebrities.Error == "" {
		f.celebrities(rec.Celebrities.CelebrityFaces)
	}
	return f.rows
}

// Records expands every record of a collection, in input order.
func Records(recs []*types.AnalysisRecord) []Row {
	var rows []Row
	for _, rec := range recs {
		rows = append(rows, Record(rec)...)
	}
	return rows
}

type flattener struct {
	imageName string
	imageURL  string
	rows      []Row
}

// row appends one fact. confidence is the formatted confidence or "".
func (f *flattener) row(api, itemID, subItemID, value, confidence string) {
	f.rows = append(f.rows, Row{
		ImageName:         f.imageName,
		ImagePreSignedURL: f.imageURL,
		API:               api,
		ItemID:            itemID,
		SubItemID:         subItemID,
		Value:             value,
		Confidence:        confidence,
	})
}

func (f *flattener) labels(labels []types.Label) {
	const api = "Labels"
	for i, l := range labels {
		itemID := fmt.Sprintf("Label%d", i+1)

		f.row(api, itemID, itemID+"-Name", l.Name, num(l.Confidence))

		for j, inst := range l.Instances {
			f.row(api, itemID,
				fmt.Sprintf("%s-Instance%d-BoundingBox", itemID, j+1),
				box(inst.BoundingBox), num(inst.Confidence))
		}
		for j, p := range l.Parents {
			f.row(api, itemID, fmt.Sprintf("%s-Parent%d", itemID, j+1), p.Name, "")
		}
	}
}

func (f *flattener) moderationLabels(labels []types.ModerationLabel) {
	const api = "ModerationLabels"
	for i, l := range labels {
		itemID := fmt.Sprintf("ModerationLabel%d", i+1)

		f.row(api, itemID, itemID+"-Name", l.Name, num(l.Confidence))
		if l.ParentName != "" {
			f.row(api, itemID, itemID+"-Parent", l.ParentName, "")
		}
	}
}

func (f *flattener) text(detections []types.TextDetection) {
	const api = "Text"

	// Word and line counters run independently so word numbering never
	// interferes with line numbering.
	lineNo, wordNo := 1, 1
	for _, t := range detections {
		title, number := "Line", lineNo
		if t.Type == types.TextTypeWord {
			title, number = "Word", wordNo
		}
		itemID := fmt.Sprintf("%s%d", title, number)

		f.row(api, itemID, itemID+"-ID", strconv.Itoa(t.ID), "")
		f.row(api, itemID, itemID+"-Text", t.DetectedText, num(t.Confidence))
		f.row(api, itemID, itemID+"-BoundingBox", box(t.Geometry.BoundingBox), "")
		if t.ParentID != nil {
			f.row(api, itemID, itemID+"-ParentId", strconv.Itoa(*t.ParentID), "")
		}

		if t.Type == types.TextTypeWord {
			wordNo++
		} else {
			lineNo++
		}
	}
}

func (f *flattener) celebrities(celebs []types.Celebrity) {
	const api = "Celebrity"
	for i, c := range celebs {
		itemID := fmt.Sprintf("Celebrity%d", i+1)

		f.row(api, itemID, itemID+"-ID", c.ID, "")
		f.row(api, itemID, itemID+"-Name", c.Name, num(c.MatchConfidence))
		f.row(api, itemID, itemID+"-Urls", joinURLs(c.URLs), "")

		if c.Face == nil {
			continue
		}
		f.row(api, itemID, itemID+"-Face-BoundingBox", box(c.Face.BoundingBox), num(c.Face.Confidence))
		f.row(api, itemID, itemID+"-Face-Pose-Pitch", num(c.Face.Pose.Pitch), "")
		f.row(api, itemID, itemID+"-Face-Pose-Roll", num(c.Face.Pose.Roll), "")
		f.row(api, itemID, itemID+"-Face-Pose-Yaw", num(c.Face.Pose.Yaw), "")
		f.row(api, itemID, itemID+"-Face-Quality-Brightness", num(c.Face.Quality.Brightness), "")
		f.row(api, itemID, itemID+"-Face-Quality-Sharpness", num(c.Face.Quality.Sharpness), "")
		f.landmarks(api, itemID, itemID+"-Face", c.Face.Landmarks)
	}
}

func (f *flattener) faces(faces []types.FaceDetail) {
	const api = "Face"
	for i, fd := range faces {
		itemID := fmt.Sprintf("Face%d", i+1)

		f.row(api, itemID, itemID+"-BoundingBox", box(fd.BoundingBox), num(fd.Confidence))
		f.row(api, itemID, itemID+"-MinAge", strconv.Itoa(fd.AgeRange.Low), "")
		f.row(api, itemID, itemID+"-MaxAge", strconv.Itoa(fd.AgeRange.High), "")

		f.row(api, itemID, itemID+"-Beard", boolean(fd.Beard.Value), num(fd.Beard.Confidence))
		f.row(api, itemID, itemID+"-Eyeglasses", boolean(fd.Eyeglasses.Value), num(fd.Eyeglasses.Confidence))
		f.row(api, itemID, itemID+"-EyesOpen", boolean(fd.EyesOpen.Value), num(fd.EyesOpen.Confidence))
		f.row(api, itemID, itemID+"-Gender", fd.Gender.Value, num(fd.Gender.Confidence))
		f.row(api, itemID, itemID+"-MouthOpen", boolean(fd.MouthOpen.Value), num(fd.MouthOpen.Confidence))
		f.row(api, itemID, itemID+"-Mustache", boolean(fd.Mustache.Value), num(fd.Mustache.Confidence))
		f.row(api, itemID, itemID+"-Smile", boolean(fd.Smile.Value), num(fd.Smile.Confidence))
		f.row(api, itemID, itemID+"-Sunglasses", boolean(fd.Sunglasses.Value), num(fd.Sunglasses.Confidence))

		f.row(api, itemID, itemID+"-Pose-Pitch", num(fd.Pose.Pitch), "")
		f.row(api, itemID, itemID+"-Pose-Roll", num(fd.Pose.Roll), "")
		f.row(api, itemID, itemID+"-Pose-Yaw", num(fd.Pose.Yaw), "")
		f.row(api, itemID, itemID+"-Quality-Brightness", num(fd.Quality.Brightness), "")
		f.row(api, itemID, itemID+"-Quality-Sharpness", num(fd.Quality.Sharpness), "")

		f.landmarks(api, itemID, itemID, fd.Landmarks)

		for j, em := range fd.Emotions {
			f.row(api, itemID, fmt.Sprintf("%s-Emotion-%d", itemID, j+1), em.Type, num(em.Confidence))
		}
	}
}

// landmarks emits the type/X/Y triplet per landmark. The "Lankmark" spelling
// is part of the published CSV schema; fixing it would break consumers.
func (f *flattener) landmarks(api, itemID, prefix string, landmarks []types.Landmark) {
	for j, lm := range landmarks {
		sub := fmt.Sprintf("%s-Lankmark-%d", prefix, j+1)
		f.row(api, itemID, sub, lm.Type, "")
		f.row(api, itemID, sub+"-X", num(lm.X), "")
		f.row(api, itemID, sub+"-Y", num(lm.Y), "")
	}
}

func (f *flattener) faceSearch(result *types.FaceSearchResult) {
	const api = "FaceSearch"

	for i, rf := range result.RecognizedFaces {
		itemID := fmt.Sprintf("FaceSearch%d", i+1)

		f.row(api, itemID, itemID+"-Recognized-BoundingBox", box(rf.BoundingBox), "")

		for j, fm := range rf.FaceMatches.FaceMatches {
			sub := fmt.Sprintf("%s-FaceMatch%d", itemID, j+1)
			f.row(api, itemID, sub+"-BoundingBox", box(fm.Face.BoundingBox), num(fm.Face.Confidence))
			f.row(api, itemID, sub+"-ExternalImageId", fm.Face.ExternalImageID, "")
			f.row(api, itemID, sub+"-FaceId", fm.Face.FaceID, "")
			f.row(api, itemID, sub+"-ImageId", fm.Face.ImageID, "")
			f.row(api, itemID, sub+"-Similarity", num(fm.Similarity), "")
		}
	}

	// Unrecognized faces restart their own numbering.
	for i, uf := range result.UnRecognizedFaces {
		itemID := fmt.Sprintf("FaceSearch%d", i+1)
		f.row(api, itemID, itemID+"-UnRecognized-BoundingBox", box(uf.BoundingBox), "")
	}
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func boolean(v bool) string {
	return strconv.FormatBool(v)
}

// box renders a bounding box as compact JSON, the stable representation of
// box values in the Value column.
func box(bb types.BoundingBox) string {
	data, err := json.Marshal(bb)
	if err != nil {
		// A BoundingBox of plain floats cannot fail to marshal.
		return ""
	}
	return string(data)
}

func joinURLs(urls []string) string {
	out := ""
	for i, u := range urls {
		if i > 0 {
			out += ","
		}
		out += u
	}
	return out
}
