package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MinutesRequestsTotal 议事录生成请求总数
	// Labels: outcome (success/invalid/upstream_error)
	MinutesRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "minutes_requests_total",
			Help: "Total number of minutes generation requests by outcome",
		},
		[]string{"outcome"},
	)

	// MinutesStageErrorsTotal 按阶段统计的上游失败
	// Labels: stage (translate/compose)
	MinutesStageErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "minutes_stage_errors_total",
			Help: "Total number of failed minutes requests by pipeline stage",
		},
		[]string{"stage"},
	)

	// MinutesRequestDuration 端到端耗时直方图（秒）
	MinutesRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "minutes_request_duration_seconds",
			Help:    "End-to-end minutes generation duration in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120, 300},
		},
	)

	// DocxExportsTotal docx 导出次数
	// Labels: status (success/error)
	DocxExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "minutes_docx_exports_total",
			Help: "Total number of docx exports by status",
		},
		[]string{"status"},
	)
)

// Outcome labels
const (
	OutcomeSuccess       = "success"
	OutcomeInvalid       = "invalid"
	OutcomeUpstreamError = "upstream_error"
)

// RecordRequest 记录一次议事录请求结果
func RecordRequest(outcome string, durationSeconds float64) {
	MinutesRequestsTotal.WithLabelValues(outcome).Inc()
	if outcome != OutcomeInvalid {
		MinutesRequestDuration.Observe(durationSeconds)
	}
}

// RecordStageError 记录上游阶段失败
func RecordStageError(stage string) {
	MinutesStageErrorsTotal.WithLabelValues(stage).Inc()
}

// RecordDocxExport 记录 docx 导出
func RecordDocxExport(success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	DocxExportsTotal.WithLabelValues(status).Inc()
}
