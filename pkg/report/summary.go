// Package report generates the run artifacts: the JSON dump, the CSV
// export, the data file and the interactive HTML report, plus the
// success/failure tally over the output collection.
package report

import "github.com/menta2k/rekognition-image-analyzer/pkg/types"

// Summary is the diagnostic tally over a run's output collection.
type Summary struct {
	Total    int
	Analyzed int
	Failed   int
}

// Summarize counts records and classifies a record as failed when any of
// the five mandatory analysis kinds is missing or holds an error payload.
// FaceSearch is excluded: an identity-search failure does not mark the
// image as failed.
func Summarize(records []*types.AnalysisRecord) Summary {
	s := Summary{Total: len(records)}
	for _, rec := range records {
		if rec.Labels == nil || rec.Labels.Error != "" ||
			rec.ModerationLabels == nil || rec.ModerationLabels.Error != "" ||
			rec.Celebrities == nil || rec.Celebrities.Error != "" ||
			rec.Faces == nil || rec.Faces.Error != "" ||
			rec.Text == nil || rec.Text.Error != "" {
			s.Failed++
		}
	}
	if s.Total > 0 {
		s.Analyzed = s.Total - s.Failed
	}
	return s
}
