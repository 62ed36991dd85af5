package tracker

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestTrackUsage(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	tracker := NewUsageTracker(db)

	tokens := 150
	cost := 0.0003
	responseTime := time.Now()
	usage := &ModelUsage{
		OperationType:     "horoscope",
		EntityType:        "chart",
		EntityID:          "req_abc123",
		ModelName:         "openai/gpt-4o-mini",
		ModelProvider:     "openrouter",
		RequestTimestamp:  time.Now().Add(-2 * time.Second),
		ResponseTimestamp: &responseTime,
		TokensUsed:        &tokens,
		Cost:              &cost,
		Success:           true,
	}

	mock.ExpectExec("INSERT INTO ai_model_usage").
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := tracker.TrackUsage(usage); err != nil {
		t.Errorf("TrackUsage failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetUsageStats(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	tracker := NewUsageTracker(db)

	rows := sqlmock.NewRows([]string{
		"total_requests", "successful_requests", "total_tokens", "total_cost", "unique_models",
	}).AddRow(10, 8, 4200, 0.012, 2)

	mock.ExpectQuery("SELECT").WillReturnRows(rows)

	stats, err := tracker.GetUsageStats(time.Now().Add(-24 * time.Hour))
	if err != nil {
		t.Fatalf("GetUsageStats failed: %v", err)
	}

	if stats.TotalRequests != 10 {
		t.Errorf("total requests = %d, want 10", stats.TotalRequests)
	}
	if stats.SuccessRate != 0.8 {
		t.Errorf("success rate = %f, want 0.8", stats.SuccessRate)
	}
	if stats.TotalTokens != 4200 {
		t.Errorf("total tokens = %d", stats.TotalTokens)
	}
}

func TestGetModelBreakdown(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	tracker := NewUsageTracker(db)

	rows := sqlmock.NewRows([]string{
		"model_name", "model_provider", "request_count", "total_tokens", "total_cost",
	}).
		AddRow("openai/gpt-4o-mini", "openrouter", 7, 3000, 0.009).
		AddRow("llama3.2:3b", "local", 3, 1200, 0.0)

	mock.ExpectQuery("SELECT").WillReturnRows(rows)

	breakdown, err := tracker.GetModelBreakdown(time.Now().Add(-24 * time.Hour))
	if err != nil {
		t.Fatalf("GetModelBreakdown failed: %v", err)
	}

	if len(breakdown) != 2 {
		t.Fatalf("expected 2 models, got %d", len(breakdown))
	}
	if breakdown[0].ModelName != "openai/gpt-4o-mini" {
		t.Errorf("first model = %q", breakdown[0].ModelName)
	}
}

func TestNewModelConfig(t *testing.T) {
	t.Run("nil inputs give nil", func(t *testing.T) {
		if cfg := NewModelConfig(nil, nil); cfg != nil {
			t.Errorf("expected nil, got %v", *cfg)
		}
	})

	t.Run("serializes values", func(t *testing.T) {
		temp := 0.2
		tokens := 1000
		cfg := NewModelConfig(&temp, &tokens)
		if cfg == nil {
			t.Fatal("expected config JSON")
		}

		var parsed ModelConfig
		if err := json.Unmarshal([]byte(*cfg), &parsed); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if parsed.Temperature == nil || *parsed.Temperature != 0.2 {
			t.Errorf("temperature = %v", parsed.Temperature)
		}
		if parsed.MaxTokens == nil || *parsed.MaxTokens != 1000 {
			t.Errorf("max tokens = %v", parsed.MaxTokens)
		}
	})
}
