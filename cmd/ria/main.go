// Command ria runs a bulk Rekognition analysis over an S3 bucket and
// prints the URL of the generated HTML report.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	ria "github.com/menta2k/rekognition-image-analyzer"
	"github.com/menta2k/rekognition-image-analyzer/internal/config"
)

func main() {
	var inputBucket, inputDir, outputBucket, outputDir, collectionID string
	var minConfidence, expirationTime int
	var noCSV, debug bool

	flag.StringVar(&inputBucket, "input-bucket", "", "S3 bucket holding the images to analyze (required)")
	flag.StringVar(&inputDir, "input-directory", "", "key prefix of the images within the input bucket")
	flag.StringVar(&outputBucket, "output-bucket", "", "S3 bucket for generated artifacts (defaults to the input bucket)")
	flag.StringVar(&outputDir, "output-directory", "", "key prefix for generated artifacts")
	flag.StringVar(&collectionID, "collection-id", "", "Rekognition face collection for identity search (optional)")
	flag.IntVar(&minConfidence, "min-confidence", config.DefaultMinConfidence, "minimum confidence (0-100) for label detection")
	flag.IntVar(&expirationTime, "s3-expiration-time", config.DefaultPresignTTL, "presigned URL lifetime in seconds")
	flag.BoolVar(&noCSV, "no-csv", false, "skip CSV generation")
	flag.BoolVar(&debug, "debug", false, "enable debug logging")
	flag.Parse()

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	if inputBucket == "" {
		fmt.Fprintln(os.Stderr, "Invalid input: -input-bucket is required, all other parameters are optional.")
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Default(inputBucket)
	cfg.InputPrefix = inputDir
	cfg.OutputBucket = outputBucket
	cfg.OutputPrefix = outputDir
	cfg.CollectionID = collectionID
	cfg.MinConfidence = minConfidence
	cfg.PresignTTL = expirationTime
	cfg.ExportCSV = !noCSV

	reportURL, err := ria.Run(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Analysis run failed")
	}

	fmt.Println(reportURL)
}
