package pipeline

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// ProcessFunc handles one item. Implementations contain their own failures;
// the batcher treats every item as completing.
type ProcessFunc func(ctx context.Context, key string)

// Batcher partitions an item sequence into fixed-size batches and runs each
// batch with one task per item, waiting for the whole batch to drain before
// starting the next. The batch size is the concurrency budget: the pipeline
// is never more than size items into flight at once.
type Batcher struct {
	size    int
	process ProcessFunc
}

// NewBatcher creates a batcher with the given batch size.
func NewBatcher(size int, process ProcessFunc) *Batcher {
	if size < 1 {
		size = 1
	}
	return &Batcher{size: size, process: process}
}

// Run processes keys batch by batch. Batch k+1 never starts before batch k
// has fully drained. page is only used for progress logging.
func (b *Batcher) Run(ctx context.Context, page int, keys []string) {
	for start, n := 0, 1; start < len(keys); start, n = start+b.size, n+1 {
		end := start + b.size
		if end > len(keys) {
			end = len(keys)
		}
		batch := keys[start:end]

		g, gctx := errgroup.WithContext(ctx)
		for _, key := range batch {
			key := key
			g.Go(func() error {
				b.process(gctx, key)
				return nil
			})
		}
		// Tasks never return errors; Wait is the batch barrier.
		_ = g.Wait()

		log.Info().
			Int("page", page).
			Int("batch", n).
			Int("images", len(batch)).
			Msg("Processed batch")
	}
}
