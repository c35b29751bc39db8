// Package config holds the pipeline run configuration.
package config

import "fmt"

// Defaults applied by Normalize when a value is unset or out of range.
const (
	DefaultConcurrency     = 100
	DefaultMaxPages        = 10
	DefaultMaxItemsPerPage = 1000
	DefaultMinConfidence   = 50
	DefaultPresignTTL      = 604800 // seconds, the S3 presign maximum (7 days)
)

// Config describes one analysis run.
type Config struct {
	InputBucket  string `json:"input_bucket"`
	InputPrefix  string `json:"input_prefix"`
	OutputBucket string `json:"output_bucket"`
	OutputPrefix string `json:"output_prefix"`

	// Concurrency is the batch size: the maximum number of images analyzed
	// simultaneously and the sole admission-control knob of the pipeline.
	Concurrency     int `json:"concurrency"`
	MaxPages        int `json:"max_pages"`
	MaxItemsPerPage int `json:"max_items_per_page"`

	// MinConfidence (0-100) is passed to label and moderation detection.
	MinConfidence int `json:"min_confidence"`

	ExportCSV bool `json:"export_csv"`

	// CollectionID enables face-identity search when non-empty.
	CollectionID string `json:"collection_id"`

	// PresignTTL is the lifetime of generated presigned URLs, in seconds.
	PresignTTL int `json:"presign_ttl"`
}

// Default returns a configuration with default values for the given input
// bucket.
func Default(inputBucket string) *Config {
	return &Config{
		InputBucket:     inputBucket,
		Concurrency:     DefaultConcurrency,
		MaxPages:        DefaultMaxPages,
		MaxItemsPerPage: DefaultMaxItemsPerPage,
		MinConfidence:   DefaultMinConfidence,
		ExportCSV:       true,
		PresignTTL:      DefaultPresignTTL,
	}
}

// Normalize fills unset fields and silently resets out-of-range values to
// their defaults. Directory prefixes gain a trailing slash so they compose
// with object names.
func (c *Config) Normalize() {
	if c.OutputBucket == "" {
		c.OutputBucket = c.InputBucket
	}
	c.InputPrefix = ensureTrailingSlash(c.InputPrefix)
	c.OutputPrefix = ensureTrailingSlash(c.OutputPrefix)

	if c.Concurrency <= 0 {
		c.Concurrency = DefaultConcurrency
	}
	if c.MaxPages <= 0 {
		c.MaxPages = DefaultMaxPages
	}
	if c.MaxItemsPerPage <= 0 {
		c.MaxItemsPerPage = DefaultMaxItemsPerPage
	}
	if c.MinConfidence < 0 || c.MinConfidence > 100 {
		c.MinConfidence = DefaultMinConfidence
	}
	if c.PresignTTL < 0 || c.PresignTTL > DefaultPresignTTL {
		c.PresignTTL = DefaultPresignTTL
	}
}

// Validate checks that the configuration names an input bucket.
func (c *Config) Validate() error {
	if c.InputBucket == "" {
		return fmt.Errorf("input bucket is required")
	}
	return nil
}

func ensureTrailingSlash(prefix string) string {
	if prefix != "" && prefix[len(prefix)-1] != '/' {
		return prefix + "/"
	}
	return prefix
}
