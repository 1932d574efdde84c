package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Messages shown to the browser; the page displays them verbatim.
const (
	msgEmptyText     = "テキストが入力されていません"
	msgEmptyMinutes  = "議事録が入力されていません"
	msgBodyTooLarge  = "リクエストが大きすぎます"
	msgErrorPrefix   = "エラー: "
	msgEndpointMiss  = "endpoint not found"
	msgExportFailure = "docx の生成に失敗しました"
)

// errorResponse 返回错误响应
func errorResponse(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{
		"error": message,
	})
}

// isBodyTooLarge reports whether err came from http.MaxBytesReader.
func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
