package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"reciperoll/internal/ingestion"
	"reciperoll/internal/models"
)

// VideoHandler handles frame-batch ingestion requests
type VideoHandler struct {
	ingester *ingestion.VideoIngester
}

// NewVideoHandler creates a new VideoHandler
func NewVideoHandler(ingester *ingestion.VideoIngester) *VideoHandler {
	return &VideoHandler{ingester: ingester}
}

// RegisterFramesRequest is the POST /api/ingest/frames body.
type RegisterFramesRequest struct {
	Dir string `json:"dir"`
}

// RegisterFrames registers an on-disk directory of luma frame dumps and
// queues an extraction job
// POST /api/ingest/frames
func (h *VideoHandler) RegisterFrames(c echo.Context) error {
	ctx := c.Request().Context()

	var req RegisterFramesRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Dir == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "dir is required"})
	}

	result, err := h.ingester.RegisterFrameDir(ctx, req.Dir, models.JobPriorityNormal)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusAccepted, map[string]string{
		"source_id": result.SourceID,
		"job_id":    result.JobID,
		"message":   "Frame extraction started",
	})
}

// Stats returns the extractor's lifetime counters
// GET /api/extractor/stats
func (h *VideoHandler) Stats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.ingester.Extractor().Stats())
}

// ResetStats zeroes the extractor's lifetime counters
// POST /api/extractor/reset
func (h *VideoHandler) ResetStats(c echo.Context) error {
	h.ingester.Extractor().Reset()
	return c.NoContent(http.StatusNoContent)
}
