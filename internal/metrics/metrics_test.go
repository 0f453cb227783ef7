package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordEstimate(t *testing.T) {
	FootprintEstimates.Reset()

	RecordEstimate("LOW", 66)
	RecordEstimate("LOW", 10)
	RecordEstimate("HIGH", 562.5)

	if got := testutil.ToFloat64(FootprintEstimates.WithLabelValues("LOW")); got != 2 {
		t.Errorf("Expected 2 LOW estimates, got %v", got)
	}
	if got := testutil.ToFloat64(FootprintEstimates.WithLabelValues("HIGH")); got != 1 {
		t.Errorf("Expected 1 HIGH estimate, got %v", got)
	}
}

func TestRecordCacheLookup(t *testing.T) {
	CacheHits.Reset()
	CacheMisses.Reset()

	RecordCacheLookup("lru", 3, 1)
	RecordCacheLookup("lru", 0, 2)

	if got := testutil.ToFloat64(CacheHits.WithLabelValues("lru")); got != 3 {
		t.Errorf("Expected 3 hits, got %v", got)
	}
	if got := testutil.ToFloat64(CacheMisses.WithLabelValues("lru")); got != 3 {
		t.Errorf("Expected 3 misses, got %v", got)
	}
}

func TestRecordUpstreamRequest(t *testing.T) {
	UpstreamRequestsTotal.Reset()

	RecordUpstreamRequest(10*time.Millisecond, true)
	RecordUpstreamRequest(20*time.Millisecond, false)

	if got := testutil.ToFloat64(UpstreamRequestsTotal.WithLabelValues("success")); got != 1 {
		t.Errorf("Expected 1 successful request, got %v", got)
	}
	if got := testutil.ToFloat64(UpstreamRequestsTotal.WithLabelValues("error")); got != 1 {
		t.Errorf("Expected 1 failed request, got %v", got)
	}
}
