package api

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

// ReadinessReporter lists upstream clients and whether each is wired.
type ReadinessReporter interface {
	Ready() map[string]bool
}

// ReadinessCheckResponse represents the response from the readiness check endpoint
type ReadinessCheckResponse struct {
	Ready     bool             `json:"ready"`
	Checks    []ReadinessCheck `json:"checks"`
	Timestamp time.Time        `json:"timestamp"`
}

// ReadinessCheck represents a single readiness check
type ReadinessCheck struct {
	Name   string `json:"name"`
	Status string `json:"status"` // "ok" or "fail"
}

// HandleHealth is the liveness probe.
// GET /health, GET /api/health
func HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// HandleReadiness reports 200 only when every upstream client is configured.
// GET /readiness
func HandleReadiness(r ReadinessReporter) gin.HandlerFunc {
	return func(c *gin.Context) {
		state := map[string]bool{}
		if r != nil {
			state = r.Ready()
		}

		names := make([]string, 0, len(state))
		for name := range state {
			names = append(names, name)
		}
		sort.Strings(names)

		allReady := len(names) > 0
		checks := make([]ReadinessCheck, 0, len(names))
		for _, name := range names {
			check := ReadinessCheck{Name: name, Status: "ok"}
			if !state[name] {
				check.Status = "fail"
				allReady = false
			}
			checks = append(checks, check)
		}

		status := http.StatusOK
		if !allReady {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, ReadinessCheckResponse{
			Ready:     allReady,
			Checks:    checks,
			Timestamp: time.Now(),
		})
	}
}
