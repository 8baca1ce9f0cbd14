package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"reciperoll/internal/xhs"
)

// XhsHandler handles share-text URL extraction
type XhsHandler struct{}

// NewXhsHandler creates a new XhsHandler
func NewXhsHandler() *XhsHandler {
	return &XhsHandler{}
}

// ExtractURLRequest is the POST /api/xhs/extract-url body.
type ExtractURLRequest struct {
	Text string `json:"text"`
}

// ExtractURL pulls the note link out of pasted share-text
// POST /api/xhs/extract-url
func (h *XhsHandler) ExtractURL(c echo.Context) error {
	var req ExtractURLRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	url, err := xhs.ExtractURL(req.Text)
	if err != nil {
		if errors.Is(err, xhs.ErrURLNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "url not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]string{"url": url})
}
