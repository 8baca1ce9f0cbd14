package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"reciperoll/internal/models"
	"reciperoll/internal/storage"
)

// SourceHandler はソースAPIのハンドラー
type SourceHandler struct {
	sourceRepo   *storage.SourceRepository
	artifactRepo *storage.ArtifactRepository
}

// NewSourceHandler は新しいSourceHandlerを作成
func NewSourceHandler(sourceRepo *storage.SourceRepository, artifactRepo *storage.ArtifactRepository) *SourceHandler {
	return &SourceHandler{sourceRepo: sourceRepo, artifactRepo: artifactRepo}
}

// CreateSourceRequest is the POST /api/sources body.
type CreateSourceRequest struct {
	Type        string `json:"type"`
	FilePath    string `json:"file_path"`
	OriginalURL string `json:"original_url"`
	Metadata    string `json:"metadata"`
}

// Create はソースを登録
// POST /api/sources
func (h *SourceHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateSourceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Type != models.SourceTypeVideo && req.Type != models.SourceTypeAudio {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "type must be video or audio"})
	}
	if req.FilePath == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "file_path is required"})
	}

	source := &models.Source{
		Type:        req.Type,
		FilePath:    req.FilePath,
		OriginalURL: req.OriginalURL,
		Metadata:    req.Metadata,
	}
	if err := h.sourceRepo.Create(ctx, source); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, source)
}

// Get はソースを取得
// GET /api/sources/:id
func (h *SourceHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	source, err := h.sourceRepo.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if source == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "source not found"})
	}

	return c.JSON(http.StatusOK, source)
}

// List はソース一覧を取得
// GET /api/sources
func (h *SourceHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	limit := 20
	if l := c.QueryParam("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil {
			limit = parsed
		}
	}
	offset := 0
	if o := c.QueryParam("offset"); o != "" {
		if parsed, err := strconv.Atoi(o); err == nil {
			offset = parsed
		}
	}

	sources, err := h.sourceRepo.List(ctx, limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, sources)
}

// Artifacts はソースのアーティファクト一覧を取得
// GET /api/sources/:id/artifacts
func (h *SourceHandler) Artifacts(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	source, err := h.sourceRepo.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if source == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "source not found"})
	}

	artifacts, err := h.artifactRepo.GetBySourceID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, artifacts)
}

// ArtifactContent はアーティファクトの中身を返す
// GET /api/artifacts/:id/content
func (h *SourceHandler) ArtifactContent(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	artifact, err := h.artifactRepo.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if artifact == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "artifact not found"})
	}

	// キーフレームはファイル、文字起こしはテキスト本体
	if artifact.FilePath != "" {
		return c.File(artifact.FilePath)
	}
	return c.String(http.StatusOK, artifact.Content)
}
