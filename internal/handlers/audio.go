package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"reciperoll/internal/ingestion"
	"reciperoll/internal/models"
	"reciperoll/internal/storage"
)

// AudioHandler handles audio-related HTTP requests
type AudioHandler struct {
	ingester     *ingestion.AudioIngester
	sourceRepo   *storage.SourceRepository
	artifactRepo *storage.ArtifactRepository
}

// NewAudioHandler creates a new AudioHandler
func NewAudioHandler(
	ingester *ingestion.AudioIngester,
	sourceRepo *storage.SourceRepository,
	artifactRepo *storage.ArtifactRepository,
) *AudioHandler {
	return &AudioHandler{
		ingester:     ingester,
		sourceRepo:   sourceRepo,
		artifactRepo: artifactRepo,
	}
}

// Upload handles audio file upload
// POST /api/ingest/audio
func (h *AudioHandler) Upload(c echo.Context) error {
	ctx := c.Request().Context()

	title := c.FormValue("title")

	form, err := c.MultipartForm()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "failed to parse form"})
	}

	files := form.File["files"]
	if len(files) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "no files uploaded"})
	}

	var audioFiles []ingestion.AudioFile
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to open file"})
		}
		defer f.Close()

		audioFiles = append(audioFiles, ingestion.AudioFile{
			Filename: fh.Filename,
			Reader:   f,
		})
	}

	result, err := h.ingester.Ingest(ctx, ingestion.IngestOptions{
		Title:    title,
		Files:    audioFiles,
		Priority: models.JobPriorityNormal,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusAccepted, map[string]string{
		"source_id": result.SourceID,
		"job_id":    result.JobID,
		"message":   "Audio ingestion started",
	})
}

// Transcript returns the transcript artifact for a source
// GET /api/sources/:id/transcript
func (h *AudioHandler) Transcript(c echo.Context) error {
	ctx := c.Request().Context()
	sourceID := c.Param("id")

	artifacts, err := h.artifactRepo.GetBySourceID(ctx, sourceID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	for _, artifact := range artifacts {
		if artifact.Type == models.ArtifactTypeTranscript {
			return c.String(http.StatusOK, artifact.Content)
		}
	}

	return c.JSON(http.StatusNotFound, map[string]string{"error": "transcript not found"})
}

// Retranscribe deletes existing artifacts and queues a fresh transcription
// job for the source
// POST /api/sources/:id/retranscribe
func (h *AudioHandler) Retranscribe(c echo.Context) error {
	ctx := c.Request().Context()
	sourceID := c.Param("id")

	source, err := h.sourceRepo.GetByID(ctx, sourceID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if source == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "source not found"})
	}

	if err := h.artifactRepo.DeleteBySourceID(ctx, sourceID); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to delete artifacts: " + err.Error()})
	}

	jobID, err := h.ingester.CreateTranscriptionJob(ctx, sourceID, models.JobPriorityImmediate)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to create job: " + err.Error()})
	}

	return c.JSON(http.StatusAccepted, map[string]string{
		"message":   "Retranscription job created",
		"source_id": sourceID,
		"job_id":    jobID,
	})
}
