package pipeline

import (
	"context"
	"image"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/menta2k/rekognition-image-analyzer/internal/imageutil"
	"github.com/menta2k/rekognition-image-analyzer/pkg/analysis"
	"github.com/menta2k/rekognition-image-analyzer/pkg/facematch"
	"github.com/menta2k/rekognition-image-analyzer/pkg/store"
	"github.com/menta2k/rekognition-image-analyzer/pkg/types"
)

// Orchestrator runs the per-image analysis fan-out: it retrieves the image
// and its orientation, presigns its URL, launches the independent analysis
// sub-tasks concurrently and publishes the joined record.
//
// Each sub-task owns exactly one field of the record, so the concurrent
// writers never race. A sub-task converts any service failure into an
// in-band Error payload on its own field; one kind failing never delays or
// corrupts the others, and never prevents the record from being published.
type Orchestrator struct {
	store      store.ObjectStore
	svc        analysis.Service
	agg        *Aggregator
	resolver   *facematch.Resolver
	presignTTL time.Duration
}

// NewOrchestrator wires a per-image orchestrator. resolver is nil when no
// face collection is configured; the FaceSearch field is then never set.
func NewOrchestrator(st store.ObjectStore, svc analysis.Service, agg *Aggregator, resolver *facematch.Resolver, presignTTL time.Duration) *Orchestrator {
	return &Orchestrator{
		store:      st,
		svc:        svc,
		agg:        agg,
		resolver:   resolver,
		presignTTL: presignTTL,
	}
}

// Process analyzes one image and appends the finished record to the
// aggregator. It never fails: all analysis errors end up inside the record.
func (o *Orchestrator) Process(ctx context.Context, imageName string) {
	rec := &types.AnalysisRecord{
		ImageName:        imageName,
		ImageOrientation: types.OrientationUnknown,
	}

	// One read serves both the orientation metadata and the face crops.
	var img image.Image
	raw, err := o.store.Read(ctx, imageName)
	if err != nil {
		log.Warn().Err(err).Str("image", imageName).Msg("Failed to read image")
	} else {
		rec.ImageOrientation = imageutil.Orientation(raw)
		if img, err = imageutil.Decode(raw); err != nil {
			log.Warn().Err(err).Str("image", imageName).Msg("Failed to decode image")
		}
	}

	url, err := o.store.Presign(ctx, imageName, o.presignTTL)
	if err != nil {
		log.Warn().Err(err).Str("image", imageName).Msg("Failed to presign image URL")
	} else {
		rec.ImagePreSignedURL = url
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rec.Labels = o.labels(gctx, imageName)
		return nil
	})
	g.Go(func() error {
		rec.ModerationLabels = o.moderationLabels(gctx, imageName)
		return nil
	})
	g.Go(func() error {
		rec.Celebrities = o.celebrities(gctx, imageName)
		return nil
	})
	g.Go(func() error {
		rec.Text = o.text(gctx, imageName)
		return nil
	})
	g.Go(func() error {
		rec.Faces = o.faces(gctx, imageName)
		return nil
	})
	if o.resolver != nil {
		g.Go(func() error {
			rec.FaceSearch = o.faceSearch(gctx, imageName, img)
			return nil
		})
	}
	_ = g.Wait()

	o.agg.Append(rec)
}

func (o *Orchestrator) labels(ctx context.Context, imageName string) *types.LabelsResult {
	labels, err := o.svc.DetectLabels(ctx, imageName)
	if err != nil {
		return &types.LabelsResult{Error: err.Error()}
	}
	return &types.LabelsResult{Labels: labels}
}

func (o *Orchestrator) moderationLabels(ctx context.Context, imageName string) *types.ModerationLabelsResult {
	labels, err := o.svc.DetectModerationLabels(ctx, imageName)
	if err != nil {
		return &types.ModerationLabelsResult{Error: err.Error()}
	}
	return &types.ModerationLabelsResult{ModerationLabels: labels}
}

func (o *Orchestrator) celebrities(ctx context.Context, imageName string) *types.CelebritiesResult {
	celebs, err := o.svc.RecognizeCelebrities(ctx, imageName)
	if err != nil {
		return &types.CelebritiesResult{Error: err.Error()}
	}
	return &types.CelebritiesResult{CelebrityFaces: celebs}
}

func (o *Orchestrator) text(ctx context.Context, imageName string) *types.TextResult {
	detections, err := o.svc.DetectText(ctx, imageName)
	if err != nil {
		return &types.TextResult{Error: err.Error()}
	}
	return &types.TextResult{TextDetections: detections}
}

func (o *Orchestrator) faces(ctx context.Context, imageName string) *types.FacesResult {
	faces, err := o.svc.DetectFaces(ctx, imageName, analysis.AttributesAll)
	if err != nil {
		return &types.FacesResult{Error: err.Error()}
	}
	return &types.FacesResult{FaceDetails: faces}
}

func (o *Orchestrator) faceSearch(ctx context.Context, imageName string, img image.Image) *types.FaceSearchResult {
	result, err := o.resolver.Resolve(ctx, imageName, img)
	if err != nil {
		return &types.FaceSearchResult{Error: err.Error()}
	}
	return result
}
