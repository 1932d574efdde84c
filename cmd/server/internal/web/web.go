// Package web serves the single-page input form.
package web

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed index.html
var indexHTML []byte

// Index returns the page markup.
func Index() []byte {
	return indexHTML
}

// HandleIndex serves the page with no caching so a redeploy is picked up immediately.
func HandleIndex(c *gin.Context) {
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}
