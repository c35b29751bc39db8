package pipeline

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/menta2k/rekognition-image-analyzer/internal/imageutil"
	"github.com/menta2k/rekognition-image-analyzer/pkg/store"
)

// Driver walks the object listing page by page and feeds image keys to the
// batcher. Pages are processed strictly sequentially; concurrency happens
// only within a page's batches.
type Driver struct {
	store           store.ObjectStore
	batcher         *Batcher
	prefix          string
	maxPages        int
	maxItemsPerPage int
}

// NewDriver creates a listing driver over the given store and batcher.
func NewDriver(st store.ObjectStore, batcher *Batcher, prefix string, maxPages, maxItemsPerPage int) *Driver {
	return &Driver{
		store:           st,
		batcher:         batcher,
		prefix:          prefix,
		maxPages:        maxPages,
		maxItemsPerPage: maxItemsPerPage,
	}
}

// Run lists and processes up to maxPages pages. Non-image keys are skipped
// and a page is truncated at maxItemsPerPage image keys. A listing failure
// is fatal and aborts the run.
func (d *Driver) Run(ctx context.Context) error {
	token := ""
	for page := 1; page <= d.maxPages; page++ {
		listing, err := d.store.ListPage(ctx, d.prefix, token)
		if err != nil {
			return fmt.Errorf("failed to list page %d: %w", page, err)
		}

		keys := make([]string, 0, len(listing.Keys))
		for _, key := range listing.Keys {
			if !imageutil.IsImageKey(key) {
				continue
			}
			keys = append(keys, key)
			if len(keys) >= d.maxItemsPerPage {
				break
			}
		}

		log.Info().Int("page", page).Int("images", len(keys)).Msg("Processing page")
		d.batcher.Run(ctx, page, keys)
		log.Info().Int("page", page).Msg("Processed page")

		if !listing.IsTruncated {
			break
		}
		token = listing.NextToken
	}
	return nil
}
