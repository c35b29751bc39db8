// Package store abstracts the object store the pipeline reads images from
// and writes artifacts to.
package store

import (
	"context"
	"time"
)

// Page is one page of an object listing.
type Page struct {
	Keys        []string
	IsTruncated bool
	NextToken   string
}

// ObjectStore is the object-store surface consumed by the pipeline.
// Implementations must be safe for concurrent use.
type ObjectStore interface {
	// ListPage requests one page of object keys under prefix. Pass an empty
	// continuation token for the first page.
	ListPage(ctx context.Context, prefix, continuationToken string) (*Page, error)

	// Read returns the full content of an object.
	Read(ctx context.Context, key string) ([]byte, error)

	// Write stores an object with the given content type. publicRead
	// controls whether the object is world-readable.
	Write(ctx context.Context, key string, body []byte, contentType string, publicRead bool) error

	// Presign returns a time-limited credential-free read URL for an object.
	Presign(ctx context.Context, key string, ttl time.Duration) (string, error)
}
