package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/houzhh15/transcript-minutes/cmd/server/internal/web"
)

// Service is what the routes need from the minutes pipeline.
type Service interface {
	MinutesCreator
	ReadinessReporter
}

// SetupRoutes registers every endpoint on r. pipeline runs in front of the
// translate handlers only, typically a concurrency limiter.
func SetupRoutes(r *gin.Engine, svc Service, pipeline ...gin.HandlerFunc) {
	r.GET("/", web.HandleIndex)

	r.GET("/health", HandleHealth)
	r.GET("/api/health", HandleHealth)
	r.GET("/readiness", HandleReadiness(svc))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	translate := append(append([]gin.HandlerFunc{}, pipeline...), HandleTranslate(svc))
	r.POST("/translate", translate...)
	r.POST("/api/translate", translate...)

	r.POST("/api/export/docx", HandleExportDocx())

	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			errorResponse(c, http.StatusNotFound, msgEndpointMiss)
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
}
