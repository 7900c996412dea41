package convert

import (
	"testing"
	"time"
)

func TestStatsSnapshotPercentiles(t *testing.T) {
	stats := NewStats(time.Hour)
	stats.Observe(100*time.Millisecond, 10)
	stats.Observe(200*time.Millisecond, 10)
	stats.Observe(300*time.Millisecond, 10)
	stats.Observe(400*time.Millisecond, 10)
	stats.Observe(500*time.Millisecond, 10)

	snap := stats.Snapshot()
	if snap.Count != 5 {
		t.Fatalf("expected count=5, got %d", snap.Count)
	}
	if snap.MinMs != 100 {
		t.Fatalf("expected min=100, got %d", snap.MinMs)
	}
	if snap.MaxMs != 500 {
		t.Fatalf("expected max=500, got %d", snap.MaxMs)
	}
	if snap.AvgMs != 300 {
		t.Fatalf("expected avg=300, got %f", snap.AvgMs)
	}
	if snap.P50Ms != 300 {
		t.Fatalf("expected p50=300, got %f", snap.P50Ms)
	}
	if snap.P95Ms != 480 {
		t.Fatalf("expected p95=480, got %f", snap.P95Ms)
	}
	if snap.P99Ms != 496 {
		t.Fatalf("expected p99=496, got %f", snap.P99Ms)
	}
}

func TestStatsCountsTotals(t *testing.T) {
	stats := NewStats(time.Hour)
	stats.Observe(10*time.Millisecond, 7)
	stats.Observe(10*time.Millisecond, 3)
	stats.ObserveFailure()

	snap := stats.Snapshot()
	if snap.Documents != 2 {
		t.Errorf("expected 2 documents, got %d", snap.Documents)
	}
	if snap.Records != 10 {
		t.Errorf("expected 10 records, got %d", snap.Records)
	}
	if snap.Failures != 1 {
		t.Errorf("expected 1 failure, got %d", snap.Failures)
	}
}

func TestStatsPrunesExpiredSamples(t *testing.T) {
	stats := NewStats(10 * time.Millisecond)
	stats.Observe(100*time.Millisecond, 1)
	time.Sleep(25 * time.Millisecond)

	snap := stats.Snapshot()
	if snap.Count != 0 {
		t.Fatalf("expected count=0 after prune, got %d", snap.Count)
	}
	// Totals survive the window.
	if snap.Documents != 1 {
		t.Fatalf("expected documents=1 after prune, got %d", snap.Documents)
	}

	stats.Observe(200*time.Millisecond, 1)
	snap = stats.Snapshot()
	if snap.Count != 1 {
		t.Fatalf("expected count=1 for fresh sample, got %d", snap.Count)
	}
	if snap.MinMs != 200 || snap.MaxMs != 200 {
		t.Fatalf("expected min=max=200, got min=%d max=%d", snap.MinMs, snap.MaxMs)
	}
}
