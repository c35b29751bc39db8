// Package ria analyzes a bucket of images with Amazon Rekognition and
// publishes the results as JSON, CSV and an interactive HTML report.
//
// A run lists the input bucket page by page, fans each image out to the
// independent Rekognition operations under a bounded concurrency budget,
// aggregates the per-image records and uploads the artifacts to the output
// bucket. The entry points are Run, which bootstraps the AWS clients, and
// RunWithBackends, which accepts any store and analysis implementation.
package ria

import (
	"context"
	"fmt"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"

	"github.com/menta2k/rekognition-image-analyzer/internal/config"
	"github.com/menta2k/rekognition-image-analyzer/pkg/analysis"
	"github.com/menta2k/rekognition-image-analyzer/pkg/facematch"
	"github.com/menta2k/rekognition-image-analyzer/pkg/pipeline"
	"github.com/menta2k/rekognition-image-analyzer/pkg/report"
	"github.com/menta2k/rekognition-image-analyzer/pkg/store"
)

// Run executes a full analysis run against AWS and returns the URL of the
// generated HTML report.
//
// The input bucket's region becomes the run region; a region mismatch
// between the input and output buckets is fatal.
func Run(ctx context.Context, cfg *config.Config) (string, error) {
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load AWS config: %w", err)
	}

	locator := s3.NewFromConfig(awsCfg)
	inputRegion, err := store.BucketRegion(ctx, locator, cfg.InputBucket)
	if err != nil {
		return "", err
	}
	outputRegion, err := store.BucketRegion(ctx, locator, cfg.OutputBucket)
	if err != nil {
		return "", err
	}
	if inputRegion != outputRegion {
		return "", fmt.Errorf("input and output S3 buckets are in different regions: %s is in %s while %s is in %s",
			cfg.InputBucket, inputRegion, cfg.OutputBucket, outputRegion)
	}
	awsCfg.Region = inputRegion

	input := store.NewS3Store(awsCfg, cfg.InputBucket)
	output := store.NewS3Store(awsCfg, cfg.OutputBucket)
	svc := analysis.NewRekognition(awsCfg, cfg.InputBucket, float32(cfg.MinConfidence))

	return RunWithBackends(ctx, cfg, inputRegion, input, output, svc)
}

// RunWithBackends executes a run over explicit store and analysis
// backends. cfg must already be normalized and valid.
func RunWithBackends(ctx context.Context, cfg *config.Config, region string, input, output store.ObjectStore, svc analysis.Service) (string, error) {
	log.Info().
		Str("input_bucket", cfg.InputBucket).
		Str("input_prefix", cfg.InputPrefix).
		Str("output_bucket", cfg.OutputBucket).
		Str("output_prefix", cfg.OutputPrefix).
		Int("min_confidence", cfg.MinConfidence).
		Int("presign_ttl", cfg.PresignTTL).
		Str("collection_id", cfg.CollectionID).
		Bool("export_csv", cfg.ExportCSV).
		Msg("Starting analysis run")

	ttl := time.Duration(cfg.PresignTTL) * time.Second

	var resolver *facematch.Resolver
	if cfg.CollectionID != "" {
		resolver = facematch.NewResolver(svc, cfg.CollectionID)
	}

	agg := pipeline.NewAggregator()
	orch := pipeline.NewOrchestrator(input, svc, agg, resolver, ttl)
	batcher := pipeline.NewBatcher(cfg.Concurrency, orch.Process)
	driver := pipeline.NewDriver(input, batcher, cfg.InputPrefix, cfg.MaxPages, cfg.MaxItemsPerPage)

	if err := driver.Run(ctx); err != nil {
		return "", err
	}

	records := agg.Records()
	summary := report.Summarize(records)
	log.Info().
		Int("total", summary.Total).
		Int("analyzed", summary.Analyzed).
		Int("failed", summary.Failed).
		Msg("Analysis finished")

	gen := report.NewGenerator(output, report.NewNames(cfg.OutputPrefix), region, cfg.OutputBucket, ttl, cfg.ExportCSV)
	return gen.Generate(ctx, records), nil
}
