package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNilRegistererIsNoop(t *testing.T) {
	m := NewAPIMetrics(nil)
	m.ObserveDuration("/v1/products/", time.Second)
	m.IncSuccess("/v1/products/")
	m.IncFailure("/v1/products/")
}

func TestCountersIncrement(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewAPIMetrics(reg)

	m.IncSuccess("/v1/concepts/")
	m.IncSuccess("/v1/concepts/")
	m.IncFailure("/v1/orders/")

	if got := testutil.ToFloat64(m.success.WithLabelValues("/v1/concepts/")); got != 2 {
		t.Fatalf("expected 2 successes, got %v", got)
	}
	if got := testutil.ToFloat64(m.failure.WithLabelValues("/v1/orders/")); got != 1 {
		t.Fatalf("expected 1 failure, got %v", got)
	}
}

func TestNormalizeLabel(t *testing.T) {
	if normalizeLabel("  ") != "unknown" {
		t.Fatal("blank label should normalize to unknown")
	}
	if normalizeLabel("/v1/me/profile") != "/v1/me/profile" {
		t.Fatal("labels should pass through unchanged")
	}
}
