// Package pipeline contains the concurrent fan-out/fan-in machinery: the
// paginated listing driver, the batch scheduler, the per-image analysis
// orchestrator and the shared result aggregator.
package pipeline

import (
	"sync"

	"github.com/menta2k/rekognition-image-analyzer/pkg/types"
)

// Aggregator is the append-only output collection shared by all
// concurrently running orchestrations. Insertion order is unspecified.
type Aggregator struct {
	mu      sync.Mutex
	records []*types.AnalysisRecord
}

// NewAggregator creates an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Append publishes a finished record. The record must not be mutated after
// this call.
func (a *Aggregator) Append(rec *types.AnalysisRecord) {
	a.mu.Lock()
	a.records = append(a.records, rec)
	a.mu.Unlock()
}

// Records returns a snapshot of the collected records.
func (a *Aggregator) Records() []*types.AnalysisRecord {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]*types.AnalysisRecord, len(a.records))
	copy(out, a.records)
	return out
}

// Len returns the number of collected records.
func (a *Aggregator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.records)
}
