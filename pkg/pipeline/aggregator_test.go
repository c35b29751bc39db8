package pipeline

import (
	"fmt"
	"sync"
	"testing"

	"github.com/menta2k/rekognition-image-analyzer/pkg/types"
)

func TestAggregatorAppend(t *testing.T) {
	agg := NewAggregator()
	agg.Append(&types.AnalysisRecord{ImageName: "a.jpg"})
	agg.Append(&types.AnalysisRecord{ImageName: "b.jpg"})

	if agg.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", agg.Len())
	}
}

func TestAggregatorConcurrentAppend(t *testing.T) {
	agg := NewAggregator()

	const n = 200
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			agg.Append(&types.AnalysisRecord{ImageName: fmt.Sprintf("img-%d.jpg", i)})
		}(i)
	}
	wg.Wait()

	if agg.Len() != n {
		t.Errorf("Len() = %d, want %d", agg.Len(), n)
	}

	seen := map[string]bool{}
	for _, rec := range agg.Records() {
		seen[rec.ImageName] = true
	}
	if len(seen) != n {
		t.Errorf("Recorded %d distinct images, want %d", len(seen), n)
	}
}

func TestAggregatorRecordsSnapshot(t *testing.T) {
	agg := NewAggregator()
	agg.Append(&types.AnalysisRecord{ImageName: "a.jpg"})

	snap := agg.Records()
	agg.Append(&types.AnalysisRecord{ImageName: "b.jpg"})

	if len(snap) != 1 {
		t.Errorf("Snapshot grew after a later append: len = %d, want 1", len(snap))
	}
}
