package report

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/menta2k/rekognition-image-analyzer/pkg/flatten"
	"github.com/menta2k/rekognition-image-analyzer/pkg/store"
	"github.com/menta2k/rekognition-image-analyzer/pkg/types"
)

// Names holds the run-scoped artifact object keys.
type Names struct {
	RunID   string
	JSONKey string
	CSVKey  string
	DataKey string
	HTMLKey string
}

// NewNames derives the artifact keys for a fresh run under the output
// prefix.
func NewNames(outputPrefix string) Names {
	id := uuid.NewString()
	return Names{
		RunID:   id,
		JSONKey: fmt.Sprintf("%s%s-ria-json.json", outputPrefix, id),
		CSVKey:  fmt.Sprintf("%s%s-ria-csv.csv", outputPrefix, id),
		DataKey: fmt.Sprintf("%s%s-ria-data.js", outputPrefix, id),
		HTMLKey: fmt.Sprintf("%s%s-ria-html.html", outputPrefix, id),
	}
}

// Generator writes the run artifacts to the output store. Artifact
// failures are contained per artifact: a failing JSON dump does not block
// the CSV or the HTML report.
type Generator struct {
	store     store.ObjectStore
	names     Names
	region    string
	bucket    string
	ttl       time.Duration
	exportCSV bool
}

// NewGenerator creates an artifact generator. region and bucket are only
// used to build the public report URL.
func NewGenerator(st store.ObjectStore, names Names, region, bucket string, ttl time.Duration, exportCSV bool) *Generator {
	return &Generator{
		store:     st,
		names:     names,
		region:    region,
		bucket:    bucket,
		ttl:       ttl,
		exportCSV: exportCSV,
	}
}

// Generate emits every configured artifact and returns the URL of the HTML
// report, or an empty string when the report itself could not be written.
func (g *Generator) Generate(ctx context.Context, records []*types.AnalysisRecord) string {
	jsonURL := ""
	log.Info().Msg("Generating JSON")
	if url, err := g.writeJSON(ctx, records); err != nil {
		log.Err(err).Msg("Failed to generate JSON file")
	} else {
		jsonURL = url
	}

	csvURL := ""
	if g.exportCSV {
		log.Info().Msg("Generating CSV")
		if url, err := g.writeCSV(ctx, records); err != nil {
			log.Err(err).Msg("Failed to generate CSV file")
		} else {
			csvURL = url
		}
	}

	log.Info().Msg("Generating HTML")
	htmlURL, err := g.writeHTML(ctx, records, csvURL, jsonURL)
	if err != nil {
		log.Err(err).Msg("Failed to generate HTML report")
		return ""
	}
	return htmlURL
}

// writeJSON uploads the full output collection as a JSON array and returns
// its presigned URL.
func (g *Generator) writeJSON(ctx context.Context, records []*types.AnalysisRecord) (string, error) {
	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("failed to marshal records: %w", err)
	}
	if err := g.store.Write(ctx, g.names.JSONKey, data, "application/json", false); err != nil {
		return "", err
	}
	return g.store.Presign(ctx, g.names.JSONKey, g.ttl)
}

// writeCSV flattens the collection, uploads the CSV and returns its
// presigned URL.
func (g *Generator) writeCSV(ctx context.Context, records []*types.AnalysisRecord) (string, error) {
	var buf strings.Builder
	if err := flatten.WriteCSV(&buf, flatten.Records(records)); err != nil {
		return "", err
	}
	if err := g.store.Write(ctx, g.names.CSVKey, []byte(buf.String()), "text/csv; charset=utf-8", false); err != nil {
		return "", err
	}
	return g.store.Presign(ctx, g.names.CSVKey, g.ttl)
}

// writeDataFile uploads the JavaScript data file the report loads its
// records from.
func (g *Generator) writeDataFile(ctx context.Context, records []*types.AnalysisRecord) (string, error) {
	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("failed to marshal records: %w", err)
	}
	body := append([]byte("images = "), data...)
	if err := g.store.Write(ctx, g.names.DataKey, body, "text/javascript; charset=utf-8", false); err != nil {
		return "", err
	}
	return g.store.Presign(ctx, g.names.DataKey, g.ttl)
}

// writeHTML renders and uploads the report page, world-readable, and
// returns its public URL.
func (g *Generator) writeHTML(ctx context.Context, records []*types.AnalysisRecord, csvURL, jsonURL string) (string, error) {
	dataURL, err := g.writeDataFile(ctx, records)
	if err != nil {
		return "", err
	}

	page, err := renderHTML(templateContext{
		DataURL:   dataURL,
		JSONURL:   jsonURL,
		CSVURL:    csvURL,
		ExportCSV: g.exportCSV && csvURL != "",
	})
	if err != nil {
		return "", err
	}

	if err := g.store.Write(ctx, g.names.HTMLKey, []byte(page), "text/html; charset=utf-8", true); err != nil {
		return "", err
	}
	return g.reportURL(), nil
}

// reportURL builds the public address of the uploaded report page.
func (g *Generator) reportURL() string {
	host := "https://s3.amazonaws.com"
	if g.region != "us-east-1" {
		host = fmt.Sprintf("https://s3-%s.amazonaws.com", g.region)
	}
	return fmt.Sprintf("%s/%s/%s", host, g.bucket, g.names.HTMLKey)
}
