package sysstats

import (
	"context"
	"os"
	"testing"
)

func TestCollectReportsOwnProcess(t *testing.T) {
	c := NewCollector()
	snap := c.Collect(context.Background())

	if snap.Process.PID != int32(os.Getpid()) {
		t.Fatalf("expected pid %d, got %d", os.Getpid(), snap.Process.PID)
	}
	if snap.Process.Goroutines < 1 {
		t.Fatalf("expected at least one goroutine, got %d", snap.Process.Goroutines)
	}
	if snap.CollectedAt.IsZero() {
		t.Fatal("expected collected_at to be set")
	}
}
