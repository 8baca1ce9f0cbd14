package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"reciperoll/internal/asr"
	"reciperoll/internal/metrics"
	"reciperoll/internal/models"
	"reciperoll/internal/storage"
)

// AudioIngester handles audio file ingestion and transcription
type AudioIngester struct {
	sourceRepo   *storage.SourceRepository
	artifactRepo *storage.ArtifactRepository
	jobRepo      *storage.JobRepository
	modelsDir    string
	dataDir      string

	// The recognizer loads its models once, on first use.
	recognizerOnce sync.Once
	recognizer     *asr.Recognizer
	recognizerErr  error
}

// NewAudioIngester creates a new AudioIngester
func NewAudioIngester(
	sourceRepo *storage.SourceRepository,
	artifactRepo *storage.ArtifactRepository,
	jobRepo *storage.JobRepository,
	modelsDir string,
	dataDir string,
) *AudioIngester {
	return &AudioIngester{
		sourceRepo:   sourceRepo,
		artifactRepo: artifactRepo,
		jobRepo:      jobRepo,
		modelsDir:    modelsDir,
		dataDir:      dataDir,
	}
}

// AudioFile represents an uploaded audio file
type AudioFile struct {
	Filename string
	Reader   io.Reader
}

// IngestOptions contains options for audio ingestion
type IngestOptions struct {
	Title    string      // optional title for the source metadata
	Files    []AudioFile // audio files to process
	Priority int         // job priority (0-9, lower is higher priority)
}

// IngestResult contains the result of audio ingestion
type IngestResult struct {
	SourceID string
	JobID    string
}

// Ingest saves the uploaded files, creates a source record, and queues a
// transcription job for processing.
func (i *AudioIngester) Ingest(ctx context.Context, opts IngestOptions) (*IngestResult, error) {
	if len(opts.Files) == 0 {
		return nil, fmt.Errorf("no audio files provided")
	}

	sourceID := uuid.New().String()

	sourceDir := filepath.Join(i.dataDir, "sources", "audio", sourceID)
	if err := os.MkdirAll(sourceDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create source directory: %w", err)
	}

	var filePaths []string
	for _, file := range opts.Files {
		if !asr.IsSupportedFormat(file.Filename) {
			return nil, fmt.Errorf("unsupported audio format: %s", file.Filename)
		}

		destPath := filepath.Join(sourceDir, filepath.Base(file.Filename))
		dest, err := os.Create(destPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create file: %w", err)
		}

		_, err = io.Copy(dest, file.Reader)
		dest.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to save file: %w", err)
		}

		filePaths = append(filePaths, destPath)
	}

	metadata := map[string]interface{}{
		"files": filePaths,
		"title": opts.Title,
	}
	metadataJSON, _ := json.Marshal(metadata)

	source := &models.Source{
		ID:       sourceID,
		Type:     models.SourceTypeAudio,
		FilePath: sourceDir,
		Metadata: string(metadataJSON),
	}
	if err := i.sourceRepo.Create(ctx, source); err != nil {
		return nil, fmt.Errorf("failed to create source: %w", err)
	}

	job := &models.ProcessingJob{
		SourceID: sourceID,
		Type:     models.JobTypeTranscribe,
		Priority: opts.Priority,
	}
	if err := i.jobRepo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	return &IngestResult{SourceID: sourceID, JobID: job.ID}, nil
}

// CreateTranscriptionJob queues a new transcription job for an existing
// source (re-transcription).
func (i *AudioIngester) CreateTranscriptionJob(ctx context.Context, sourceID string, priority int) (string, error) {
	source, err := i.sourceRepo.GetByID(ctx, sourceID)
	if err != nil {
		return "", fmt.Errorf("failed to get source: %w", err)
	}
	if source == nil {
		return "", fmt.Errorf("source not found: %s", sourceID)
	}

	if err := i.sourceRepo.UpdateStatus(ctx, sourceID, models.SourceStatusPending); err != nil {
		return "", fmt.Errorf("failed to update source status: %w", err)
	}

	job := &models.ProcessingJob{
		SourceID: sourceID,
		Type:     models.JobTypeTranscribe,
		Priority: priority,
	}
	if err := i.jobRepo.Create(ctx, job); err != nil {
		return "", fmt.Errorf("failed to create job: %w", err)
	}

	return job.ID, nil
}

// getRecognizer lazily loads the ASR/VAD engines, once per ingester.
func (i *AudioIngester) getRecognizer() (*asr.Recognizer, error) {
	i.recognizerOnce.Do(func() {
		i.recognizer, i.recognizerErr = asr.NewRecognizer(i.modelsDir)
	})
	return i.recognizer, i.recognizerErr
}

// Close releases the recognizer if it was loaded.
func (i *AudioIngester) Close() error {
	if i.recognizer != nil {
		return i.recognizer.Close()
	}
	return nil
}

// ProcessTranscription processes a transcription job. Called by the worker.
func (i *AudioIngester) ProcessTranscription(ctx context.Context, job *models.ProcessingJob) error {
	if job.SourceID == "" {
		return fmt.Errorf("job has no source ID")
	}

	reportProgress := func(progress int, step string) {
		_ = i.jobRepo.UpdateProgressWithStep(ctx, job.ID, progress, step)
	}

	reportProgress(5, "preparing")

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

	var metadata struct {
		Files []string `json:"files"`
		Title string   `json:"title"`
	}
	if source.Metadata != "" {
		if err := json.Unmarshal([]byte(source.Metadata), &metadata); err != nil {
			return fmt.Errorf("failed to parse metadata: %w", err)
		}
	}
	if len(metadata.Files) == 0 && source.FilePath != "" {
		// Sources registered by path rather than upload.
		metadata.Files = []string{source.FilePath}
	}
	if len(metadata.Files) == 0 {
		return fmt.Errorf("no audio files in source metadata")
	}

	reportProgress(10, "initializing")

	recognizer, err := i.getRecognizer()
	if err != nil {
		return fmt.Errorf("failed to load recognizer: %w", err)
	}

	started := time.Now()
	fileCount := len(metadata.Files)
	var allLines []asr.Line

	for idx, filePath := range metadata.Files {
		fileProgressStart := 20 + (70 * idx / fileCount)
		fileProgressEnd := 20 + (70 * (idx + 1) / fileCount)

		wavPath := filePath
		if asr.NeedsConversion(filePath) {
			reportProgress(fileProgressStart, "converting")
			converted, err := asr.ConvertToWavTemp(filePath)
			if err != nil {
				return fmt.Errorf("failed to convert audio: %w", err)
			}
			defer os.Remove(converted)
			wavPath = converted
		}

		transcript, err := recognizer.TranscribeAudio(wavPath, "", func(pct int, step string) {
			fileProgress := fileProgressStart + pct*(fileProgressEnd-fileProgressStart)/100
			reportProgress(fileProgress, step)
		})
		if err != nil {
			return fmt.Errorf("failed to transcribe %s: %w", filePath, err)
		}

		allLines = append(allLines, transcript.Lines...)
	}

	metrics.TranscriptionDuration.Observe(time.Since(started).Seconds())

	reportProgress(95, "saving")

	finalTranscript := asr.Transcript{Lines: allLines}
	artifact := &models.ProcessingArtifact{
		SourceID: source.ID,
		Type:     models.ArtifactTypeTranscript,
		Content:  finalTranscript.String(),
		Format:   "text",
	}
	if err := i.artifactRepo.Create(ctx, artifact); err != nil {
		return fmt.Errorf("failed to save artifact: %w", err)
	}

	if err := i.sourceRepo.UpdateStatus(ctx, source.ID, models.SourceStatusCompleted); err != nil {
		return fmt.Errorf("failed to update source status: %w", err)
	}

	reportProgress(100, "")
	return nil
}
