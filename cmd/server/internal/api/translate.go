package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/houzhh15/transcript-minutes/cmd/server/internal/domain/minutes"
	"github.com/houzhh15/transcript-minutes/cmd/server/internal/metrics"
	"github.com/houzhh15/transcript-minutes/cmd/server/internal/middleware"
	"github.com/houzhh15/transcript-minutes/pkg/logger"
)

// MinutesCreator runs the translate then compose pipeline.
type MinutesCreator interface {
	Create(ctx context.Context, text string) (*minutes.Result, error)
}

// TranslateRequest is the body of POST /api/translate.
type TranslateRequest struct {
	Text string `json:"text"`
}

// TranslateResponse is the success body of POST /api/translate.
type TranslateResponse struct {
	Success bool `json:"success"`
	minutes.Result
}

// HandleTranslate translates a transcript and returns generated minutes.
// POST /translate, POST /api/translate
func HandleTranslate(svc MinutesCreator) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		var req TranslateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			metrics.RecordRequest(metrics.OutcomeInvalid, 0)
			if isBodyTooLarge(err) {
				errorResponse(c, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
				return
			}
			errorResponse(c, http.StatusBadRequest, msgEmptyText)
			return
		}

		result, err := svc.Create(c.Request.Context(), req.Text)
		if err != nil {
			if errors.Is(err, minutes.ErrEmptyText) {
				metrics.RecordRequest(metrics.OutcomeInvalid, 0)
				errorResponse(c, http.StatusBadRequest, msgEmptyText)
				return
			}

			stage := "unknown"
			var upErr *minutes.UpstreamError
			if errors.As(err, &upErr) {
				stage = upErr.Stage
			}
			metrics.RecordStageError(stage)
			metrics.RecordRequest(metrics.OutcomeUpstreamError, time.Since(start).Seconds())
			logger.L().Error("minutes generation failed",
				"rid", middleware.RequestID(c),
				"stage", stage,
				"error", err,
			)
			errorResponse(c, http.StatusInternalServerError, msgErrorPrefix+err.Error())
			return
		}

		metrics.RecordRequest(metrics.OutcomeSuccess, time.Since(start).Seconds())
		c.JSON(http.StatusOK, TranslateResponse{Success: true, Result: *result})
	}
}
