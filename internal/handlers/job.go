package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"reciperoll/internal/models"
	"reciperoll/internal/storage"
)

// JobHandler はジョブAPIのハンドラー
type JobHandler struct {
	repo       *storage.JobRepository
	sourceRepo *storage.SourceRepository
}

// NewJobHandler は新しいJobHandlerを作成
func NewJobHandler(repo *storage.JobRepository, sourceRepo *storage.SourceRepository) *JobHandler {
	return &JobHandler{repo: repo, sourceRepo: sourceRepo}
}

// EnqueueRequest is the POST /api/sources/:id/jobs body.
type EnqueueRequest struct {
	Type     string `json:"type"`
	Priority *int   `json:"priority"`
}

// Enqueue はソースに対するジョブを登録
// POST /api/sources/:id/jobs
func (h *JobHandler) Enqueue(c echo.Context) error {
	ctx := c.Request().Context()
	sourceID := c.Param("id")

	var req EnqueueRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Type != models.JobTypeExtractFrames && req.Type != models.JobTypeTranscribe {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "type must be extract_frames or transcribe"})
	}

	source, err := h.sourceRepo.GetByID(ctx, sourceID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if source == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "source not found"})
	}

	priority := models.JobPriorityNormal
	if req.Priority != nil {
		priority = *req.Priority
	}

	job := &models.ProcessingJob{
		SourceID: sourceID,
		Type:     req.Type,
		Priority: priority,
	}
	if err := h.repo.Create(ctx, job); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusAccepted, job)
}

// List はジョブ一覧を取得
// GET /api/jobs
func (h *JobHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	status := c.QueryParam("status")

	limit := 50
	if l := c.QueryParam("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil {
			limit = parsed
		}
	}

	var jobs []models.ProcessingJob
	var err error

	if status != "" {
		jobs, err = h.repo.ListByStatus(ctx, status, limit)
	} else {
		jobs, err = h.repo.ListRecent(ctx, limit)
	}

	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, jobs)
}

// Get はジョブを取得
// GET /api/jobs/:id
func (h *JobHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	job, err := h.repo.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if job == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "job not found"})
	}

	return c.JSON(http.StatusOK, job)
}

// Stats はジョブ統計を取得
// GET /api/jobs/stats
func (h *JobHandler) Stats(c echo.Context) error {
	ctx := c.Request().Context()

	counts, err := h.repo.CountByStatus(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, counts)
}

// Delete はジョブを削除
// DELETE /api/jobs/:id
func (h *JobHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	job, err := h.repo.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if job == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "job not found"})
	}

	if err := h.repo.Delete(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.NoContent(http.StatusNoContent)
}
