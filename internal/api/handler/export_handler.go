package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/codecoach-ai/codecoach-api/internal/api/metrics"
	"github.com/codecoach-ai/codecoach-api/internal/api/middleware"
	"github.com/codecoach-ai/codecoach-api/internal/core/domain"
	"github.com/codecoach-ai/codecoach-api/internal/core/ports"
)

// ExportHandler serves PDF downloads of generated content.
type ExportHandler struct {
	exportService ports.ExportService
}

func NewExportHandler(exportService ports.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// Export renders the requested content as a PDF attachment.
// The contentId check runs before auth so a malformed request is a 400
// regardless of session state, and the export service is never invoked.
//
// @Summary      Export content as PDF
// @Tags         export
// @Produce      application/pdf
// @Security     SessionCookie
// @Param        contentId  query  string  true  "Content ID"
// @Success      200  {file}    file
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /export/pdf [get]
func (h *ExportHandler) Export(c echo.Context) error {
	contentID := c.QueryParam("contentId")
	if contentID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "contentId is required")
	}

	identity, ok := middleware.Identity(c)
	if !ok {
		return domain.ErrAuthRequired
	}

	start := time.Now()
	pdf, filename, err := h.exportService.Export(c.Request().Context(), identity, contentID)
	if err != nil {
		metrics.ExportDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return err
	}
	metrics.ExportDuration.WithLabelValues("success").Observe(time.Since(start).Seconds())

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(filename)))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}
