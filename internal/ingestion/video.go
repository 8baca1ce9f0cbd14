package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"reciperoll/internal/frame"
	"reciperoll/internal/metrics"
	"reciperoll/internal/models"
	"reciperoll/internal/storage"
)

// VideoIngester registers frame-dump directories as sources and runs the
// batch keyframe extractor over them.
type VideoIngester struct {
	sourceRepo   *storage.SourceRepository
	artifactRepo *storage.ArtifactRepository
	jobRepo      *storage.JobRepository
	extractor    *frame.Extractor
	dataDir      string
}

// NewVideoIngester creates a new VideoIngester
func NewVideoIngester(
	sourceRepo *storage.SourceRepository,
	artifactRepo *storage.ArtifactRepository,
	jobRepo *storage.JobRepository,
	dataDir string,
) *VideoIngester {
	return &VideoIngester{
		sourceRepo:   sourceRepo,
		artifactRepo: artifactRepo,
		jobRepo:      jobRepo,
		extractor:    frame.New(),
		dataDir:      dataDir,
	}
}

// Extractor exposes the underlying batch extractor (for stats/reset).
func (i *VideoIngester) Extractor() *frame.Extractor {
	return i.extractor
}

// RegisterFrameDir creates a video source for an on-disk directory of luma
// frame dumps and queues an extraction job.
func (i *VideoIngester) RegisterFrameDir(ctx context.Context, dir string, priority int) (*IngestResult, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("frame directory not accessible: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	source := &models.Source{
		Type:     models.SourceTypeVideo,
		FilePath: dir,
	}
	if err := i.sourceRepo.Create(ctx, source); err != nil {
		return nil, fmt.Errorf("failed to create source: %w", err)
	}

	job := &models.ProcessingJob{
		SourceID: source.ID,
		Type:     models.JobTypeExtractFrames,
		Priority: priority,
	}
	if err := i.jobRepo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	return &IngestResult{SourceID: source.ID, JobID: job.ID}, nil
}

// ProcessExtraction processes an extract_frames job. Called by the worker.
func (i *VideoIngester) ProcessExtraction(ctx context.Context, job *models.ProcessingJob) error {
	if job.SourceID == "" {
		return fmt.Errorf("job has no source ID")
	}

	reportProgress := func(progress int, step string) {
		_ = i.jobRepo.UpdateProgressWithStep(ctx, job.ID, progress, step)
	}

	reportProgress(5, "loading frames")

	source, err := i.sourceRepo.GetByID(ctx, job.SourceID)
	if err != nil {
		return fmt.Errorf("failed to get source: %w", err)
	}
	if source == nil {
		return fmt.Errorf("source not found: %s", job.SourceID)
	}

	if err := i.sourceRepo.UpdateStatus(ctx, source.ID, models.SourceStatusProcessing); err != nil {
		return fmt.Errorf("failed to update source status: %w", err)
	}

	frames, err := LoadFrameDir(source.FilePath)
	if err != nil {
		return err
	}

	reportProgress(20, "extracting")

	started := time.Now()
	keyframes := i.extractor.ProcessBatch(frames)
	metrics.BatchDuration.Observe(time.Since(started).Seconds())
	metrics.FramesProcessed.Add(float64(len(frames)))
	metrics.KeyframesExtracted.Add(float64(len(keyframes)))

	reportProgress(70, "saving keyframes")

	outDir := filepath.Join(i.dataDir, "keyframes", source.ID)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create keyframe directory: %w", err)
	}

	for _, kf := range keyframes {
		jpegPath := filepath.Join(outDir, fmt.Sprintf("%06d_%d.jpg", kf.FrameNumber, kf.TimestampMs))
		if len(kf.JPEGData) > 0 {
			if err := os.WriteFile(jpegPath, kf.JPEGData, 0644); err != nil {
				return fmt.Errorf("failed to write keyframe: %w", err)
			}
		} else {
			// Degraded encode; record the keyframe without a payload.
			jpegPath = ""
		}

		meta, _ := json.Marshal(map[string]interface{}{
			"timestamp_ms": kf.TimestampMs,
			"frame_number": kf.FrameNumber,
			"confidence":   kf.Confidence,
			"width":        kf.Width,
			"height":       kf.Height,
		})
		artifact := &models.ProcessingArtifact{
			SourceID: source.ID,
			Type:     models.ArtifactTypeKeyframe,
			Format:   "jpeg",
			FilePath: jpegPath,
			Metadata: string(meta),
		}
		if err := i.artifactRepo.Create(ctx, artifact); err != nil {
			return fmt.Errorf("failed to save keyframe artifact: %w", err)
		}
	}

	if err := i.sourceRepo.UpdateStatus(ctx, source.ID, models.SourceStatusCompleted); err != nil {
		return fmt.Errorf("failed to update source status: %w", err)
	}

	reportProgress(100, "")
	return nil
}
