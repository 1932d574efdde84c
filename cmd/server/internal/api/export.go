package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/houzhh15/transcript-minutes/cmd/server/internal/export"
	"github.com/houzhh15/transcript-minutes/cmd/server/internal/metrics"
	"github.com/houzhh15/transcript-minutes/cmd/server/internal/middleware"
	"github.com/houzhh15/transcript-minutes/pkg/logger"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// ExportDocxRequest is the body of POST /api/export/docx.
type ExportDocxRequest struct {
	Minutes string `json:"minutes"`
	Title   string `json:"title,omitempty"`
}

// HandleExportDocx renders Markdown minutes as a Word attachment.
// POST /api/export/docx
func HandleExportDocx() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ExportDocxRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			if isBodyTooLarge(err) {
				errorResponse(c, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
				return
			}
			errorResponse(c, http.StatusBadRequest, msgEmptyMinutes)
			return
		}
		if strings.TrimSpace(req.Minutes) == "" {
			errorResponse(c, http.StatusBadRequest, msgEmptyMinutes)
			return
		}

		data, err := export.Render(req.Title, req.Minutes)
		if err != nil {
			metrics.RecordDocxExport(false)
			logger.L().Error("docx export failed", "rid", middleware.RequestID(c), "error", err)
			errorResponse(c, http.StatusInternalServerError, msgExportFailure)
			return
		}
		metrics.RecordDocxExport(true)

		c.Header("Content-Disposition", contentDisposition(req.Title))
		c.Data(http.StatusOK, docxContentType, data)
	}
}

func contentDisposition(title string) string {
	name := strings.TrimSpace(title)
	if name == "" {
		name = export.DefaultTitle
	}
	name = strings.NewReplacer("/", "_", "\\", "_", "\"", "").Replace(name) + ".docx"
	return fmt.Sprintf(`attachment; filename="minutes.docx"; filename*=UTF-8''%s`, url.PathEscape(name))
}
