package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sahadev/jyotish/ai/openrouter"
	"github.com/sahadev/jyotish/config"
)

func testConfig() *config.Config {
	return &config.Config{
		LocalInference: config.LocalInferenceConfig{
			BaseURL:        "http://localhost:11434",
			Model:          "llama3.2:3b",
			TimeoutSeconds: 30,
		},
		OpenRouter: config.OpenRouterConfig{
			Model: "openai/gpt-4o-mini",
		},
	}
}

func TestParseProvider(t *testing.T) {
	tests := []struct {
		input   string
		want    Provider
		wantErr bool
	}{
		{"local", ProviderLocal, false},
		{"ollama", ProviderLocal, false},
		{"localai", ProviderLocal, false},
		{"openrouter", ProviderOpenRouter, false},
		{"or", ProviderOpenRouter, false},
		{"auto", ProviderAuto, false},
		{"", ProviderAuto, false},
		{"gpt4", "", true},
	}

	for _, tt := range tests {
		got, err := ParseProvider(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseProvider(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseProvider(%q): %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseProvider(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestAutoSelection(t *testing.T) {
	t.Run("prefers local when enabled", func(t *testing.T) {
		cfg := testConfig()
		cfg.LocalInference.Enabled = true
		cfg.OpenRouter.APIKey = "sk-test"

		client, err := NewAIClient(cfg, Options{})
		if err != nil {
			t.Fatalf("NewAIClient: %v", err)
		}
		if _, ok := client.(*LocalClientAdapter); !ok {
			t.Errorf("expected local client, got %T", client)
		}
	})

	t.Run("falls back to openrouter", func(t *testing.T) {
		cfg := testConfig()
		cfg.LocalInference.Enabled = false
		cfg.OpenRouter.APIKey = "sk-test"

		client, err := NewAIClient(cfg, Options{})
		if err != nil {
			t.Fatalf("NewAIClient: %v", err)
		}
		if _, ok := client.(*openrouter.Client); !ok {
			t.Errorf("expected openrouter client, got %T", client)
		}
	})

	t.Run("errors when nothing configured", func(t *testing.T) {
		cfg := testConfig()
		cfg.LocalInference.Enabled = false
		cfg.OpenRouter.APIKey = ""

		if _, err := NewAIClient(cfg, Options{}); err == nil {
			t.Error("expected error with no provider available")
		}
	})
}

func TestExplicitProvider(t *testing.T) {
	t.Run("openrouter requires key", func(t *testing.T) {
		cfg := testConfig()
		if _, err := NewAIClientWithProvider(cfg, ProviderOpenRouter, Options{}); err == nil {
			t.Error("expected error without API key")
		}
	})

	t.Run("local requires base URL", func(t *testing.T) {
		cfg := testConfig()
		cfg.LocalInference.BaseURL = ""
		if _, err := NewAIClientWithProvider(cfg, ProviderLocal, Options{}); err == nil {
			t.Error("expected error without base URL")
		}
	})

	t.Run("unknown provider", func(t *testing.T) {
		if _, err := NewAIClientWithProvider(testConfig(), Provider("bard"), Options{}); err == nil {
			t.Error("expected error for unknown provider")
		}
	})
}

func TestGetAvailableProviders(t *testing.T) {
	cfg := testConfig()
	cfg.OpenRouter.APIKey = "sk-test"

	providers := GetAvailableProviders(cfg)
	if len(providers) != 2 {
		t.Fatalf("expected 2 providers, got %v", providers)
	}

	cfg.OpenRouter.APIKey = ""
	cfg.LocalInference.BaseURL = ""
	if providers := GetAvailableProviders(cfg); len(providers) != 0 {
		t.Errorf("expected no providers, got %v", providers)
	}
}

func TestLocalClientAdapter_Chat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		var req ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if req.Stream {
			t.Error("expected non-streaming request")
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			t.Errorf("expected system+user messages, got %+v", req.Messages)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "a local reading"}},
			},
		})
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.LocalInference.Enabled = true
	cfg.LocalInference.BaseURL = server.URL

	client, err := NewAIClientWithProvider(cfg, ProviderLocal, Options{})
	if err != nil {
		t.Fatalf("NewAIClientWithProvider: %v", err)
	}

	resp, err := client.Chat(context.Background(), openrouter.ChatRequest{
		SystemPrompt: "You are a Vedic astrologer.",
		UserPrompt:   "Read this chart.",
	})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if resp.Content != "a local reading" {
		t.Errorf("content = %q", resp.Content)
	}
	if client.ModelName() != "llama3.2:3b" {
		t.Errorf("model = %q", client.ModelName())
	}
}

func TestLocalClientAdapter_ChatStreaming(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		chunks := []string{"The ", "Moon ", "is strong."}
		for _, c := range chunks {
			payload, _ := json.Marshal(map[string]any{
				"choices": []map[string]any{
					{"delta": map[string]string{"content": c}},
				},
			})
			fmt.Fprintf(w, "data: %s\n\n", payload)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.LocalInference.BaseURL = server.URL

	client, err := NewAIClientWithProvider(cfg, ProviderLocal, Options{})
	if err != nil {
		t.Fatalf("NewAIClientWithProvider: %v", err)
	}

	streamer, ok := client.(StreamingAIClient)
	if !ok {
		t.Fatal("local client should support streaming")
	}

	chunkChan := make(chan StreamChunk, 16)
	done := make(chan error, 1)
	go func() {
		done <- streamer.ChatStreaming(context.Background(), openrouter.ChatRequest{
			UserPrompt: "stream a reading",
		}, chunkChan)
	}()

	var text string
	var sawDone bool
	for chunk := range chunkChan {
		if chunk.Done {
			sawDone = true
			break
		}
		text += chunk.Content
	}

	if err := <-done; err != nil {
		t.Fatalf("ChatStreaming: %v", err)
	}
	if text != "The Moon is strong." {
		t.Errorf("streamed text = %q", text)
	}
	if !sawDone {
		t.Error("expected a Done chunk")
	}
}
