package metrics

import (
	"errors"
	"testing"

	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, labels ...string) float64 {
	t.Helper()
	metric := &dto.Metric{}
	if err := upstreamCallsTotal.WithLabelValues(labels...).Write(metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.Counter.GetValue()
}

func TestRecordUpstreamCall(t *testing.T) {
	// Reset metrics before test
	upstreamCallsTotal.Reset()

	RecordUpstreamCall("translation", "google", nil)
	if got := counterValue(t, "translation", "google", "success"); got != 1 {
		t.Errorf("Expected counter value 1, got %f", got)
	}

	RecordUpstreamCall("translation", "google", nil)
	if got := counterValue(t, "translation", "google", "success"); got != 2 {
		t.Errorf("Expected counter value 2, got %f", got)
	}

	RecordUpstreamCall("composer", "anthropic", errors.New("boom"))
	if got := counterValue(t, "composer", "anthropic", "error"); got != 1 {
		t.Errorf("Expected error counter value 1, got %f", got)
	}
	if got := counterValue(t, "composer", "anthropic", "success"); got != 0 {
		t.Errorf("Expected success counter value 0, got %f", got)
	}
}

func TestRecordUpstreamDuration(t *testing.T) {
	upstreamCallDuration.Reset()

	RecordUpstreamDuration("composer", "gemini", 5.5)
	RecordUpstreamDuration("composer", "gemini", 10.0)

	metric := &dto.Metric{}
	observer := upstreamCallDuration.WithLabelValues("composer", "gemini")
	if err := observer.(interface{ Write(*dto.Metric) error }).Write(metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Histogram.GetSampleCount() != 2 {
		t.Errorf("Expected 2 samples, got %d", metric.Histogram.GetSampleCount())
	}
	if metric.Histogram.GetSampleSum() != 15.5 {
		t.Errorf("Expected sample sum 15.5, got %f", metric.Histogram.GetSampleSum())
	}
}
