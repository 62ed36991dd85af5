package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/sahadev/jyotish/ai/tracker"
)

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	database, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer database.Close()

	var mode string
	if err := database.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("failed to read journal mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal mode = %q, want wal", mode)
	}

	// Schema is usable end to end
	tr := tracker.NewUsageTracker(database)
	tokens := 42
	if err := tr.TrackUsage(&tracker.ModelUsage{
		OperationType:    "horoscope",
		ModelName:        "test/model",
		ModelProvider:    "local",
		RequestTimestamp: time.Now(),
		TokensUsed:       &tokens,
		Success:          true,
	}); err != nil {
		t.Fatalf("TrackUsage failed: %v", err)
	}

	stats, err := tr.GetUsageStats(time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("GetUsageStats failed: %v", err)
	}
	if stats.TotalRequests != 1 || stats.TotalTokens != 42 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestOpen_BadPath(t *testing.T) {
	if _, err := Open("/nonexistent-dir/impossible/test.db"); err == nil {
		t.Error("expected error for unwritable path")
	}
}
