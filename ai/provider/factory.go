// Package provider selects between AI backends: a local inference
// server (Ollama or compatible) and OpenRouter.ai. Selection is
// explicit or automatic based on configuration.
package provider

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/sahadev/jyotish/ai/openrouter"
	"github.com/sahadev/jyotish/ai/tracker"
	"github.com/sahadev/jyotish/config"
	"github.com/sahadev/jyotish/errors"
)

// Provider identifies an AI inference backend
type Provider string

const (
	// ProviderLocal uses a local inference server (Ollama, LocalAI)
	ProviderLocal Provider = "local"
	// ProviderOpenRouter uses the OpenRouter.ai API
	ProviderOpenRouter Provider = "openrouter"
	// ProviderAuto selects automatically based on configuration
	ProviderAuto Provider = "auto"
)

// AIClient is the interface all AI providers implement
type AIClient interface {
	Chat(ctx context.Context, req openrouter.ChatRequest) (*openrouter.ChatResponse, error)
	IsConfigured() bool
	ModelName() string
}

// StreamChunk is a piece of a streaming AI response
type StreamChunk struct {
	Content string
	Done    bool
}

// StreamingAIClient is implemented by providers that can stream
// responses incrementally.
type StreamingAIClient interface {
	AIClient
	ChatStreaming(ctx context.Context, req openrouter.ChatRequest, chunkChan chan<- StreamChunk) error
}

// Options carries cross-provider settings the factory threads through
// to whichever client it builds.
type Options struct {
	Logger        *zap.SugaredLogger
	DB            *sql.DB // usage accounting, may be nil
	OperationType string
	EntityType    string
	EntityID      string
}

// NewAIClient creates an AI client using automatic provider selection
func NewAIClient(cfg *config.Config, opts Options) (AIClient, error) {
	return NewAIClientWithProvider(cfg, ProviderAuto, opts)
}

// NewAIClientWithProvider creates an AI client for a specific provider
func NewAIClientWithProvider(cfg *config.Config, provider Provider, opts Options) (AIClient, error) {
	switch provider {
	case ProviderLocal:
		if cfg.LocalInference.BaseURL == "" {
			return nil, errors.Wrap(errors.ErrNoProvider, "local inference has no base_url configured")
		}
		return newLocalClient(cfg, opts), nil

	case ProviderOpenRouter:
		if cfg.OpenRouter.APIKey == "" {
			return nil, errors.Wrap(errors.ErrNoProvider, "OpenRouter API key not configured")
		}
		return newOpenRouterClient(cfg, opts), nil

	case ProviderAuto, "":
		return autoSelectClient(cfg, opts)

	default:
		return nil, errors.Newf("unknown AI provider: %s", provider)
	}
}

// autoSelectClient picks a provider: local inference when enabled,
// otherwise OpenRouter when a key is present.
func autoSelectClient(cfg *config.Config, opts Options) (AIClient, error) {
	if cfg.LocalInference.Enabled && cfg.LocalInference.BaseURL != "" {
		return newLocalClient(cfg, opts), nil
	}

	if cfg.OpenRouter.APIKey != "" {
		return newOpenRouterClient(cfg, opts), nil
	}

	return nil, errors.Wrap(errors.ErrNoProvider,
		"no AI provider available: enable local_inference or set an OpenRouter API key")
}

func newOpenRouterClient(cfg *config.Config, opts Options) *openrouter.Client {
	return openrouter.NewClient(openrouter.Config{
		APIKey:        cfg.OpenRouter.APIKey,
		Model:         cfg.OpenRouter.Model,
		Temperature:   cfg.OpenRouter.Temperature,
		MaxTokens:     cfg.OpenRouter.MaxTokens,
		Logger:        opts.Logger,
		DB:            opts.DB,
		OperationType: opts.OperationType,
		EntityType:    opts.EntityType,
		EntityID:      opts.EntityID,
	})
}

func newLocalClient(cfg *config.Config, opts Options) *LocalClientAdapter {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	var usageTracker *tracker.UsageTracker
	if opts.DB != nil {
		usageTracker = tracker.NewUsageTracker(opts.DB)
	}

	return &LocalClientAdapter{
		provider:      NewLocalProvider(&cfg.LocalInference),
		logger:        logger,
		usageTracker:  usageTracker,
		operationType: opts.OperationType,
		entityType:    opts.EntityType,
		entityID:      opts.EntityID,
	}
}

// ParseProvider converts a string to a Provider
func ParseProvider(s string) (Provider, error) {
	switch s {
	case "local", "ollama", "localai":
		return ProviderLocal, nil
	case "openrouter", "or":
		return ProviderOpenRouter, nil
	case "auto", "":
		return ProviderAuto, nil
	default:
		return "", errors.Newf("unknown provider %q (valid: local, openrouter, auto)", s)
	}
}

// GetAvailableProviders returns the providers usable with the current
// configuration.
func GetAvailableProviders(cfg *config.Config) []Provider {
	var available []Provider
	if cfg.LocalInference.BaseURL != "" {
		available = append(available, ProviderLocal)
	}
	if cfg.OpenRouter.APIKey != "" {
		available = append(available, ProviderOpenRouter)
	}
	return available
}

// LocalClientAdapter adapts LocalProvider to the AIClient interface
type LocalClientAdapter struct {
	provider      *LocalProvider
	logger        *zap.SugaredLogger
	usageTracker  *tracker.UsageTracker
	operationType string
	entityType    string
	entityID      string
}

// Chat sends a request to the local inference server
func (a *LocalClientAdapter) Chat(ctx context.Context, req openrouter.ChatRequest) (*openrouter.ChatResponse, error) {
	requestTime := time.Now()

	a.logger.Debugw("Local inference request",
		"model", a.provider.GetModelName(),
		"base_url", a.provider.baseURL,
	)

	content, err := a.provider.GenerateText(ctx, req.SystemPrompt, req.UserPrompt)
	a.trackUsage(requestTime, err)
	if err != nil {
		return nil, errors.Wrap(err, "local inference failed")
	}

	// Local servers do not report token usage in a consistent way, so
	// the response carries zero usage. Cost is zero regardless.
	return &openrouter.ChatResponse{Content: content}, nil
}

// ChatStreaming streams a response from the local inference server
func (a *LocalClientAdapter) ChatStreaming(ctx context.Context, req openrouter.ChatRequest, chunkChan chan<- StreamChunk) error {
	requestTime := time.Now()
	err := a.provider.GenerateTextStreaming(ctx, req.SystemPrompt, req.UserPrompt, chunkChan)
	a.trackUsage(requestTime, err)
	if err != nil {
		return errors.Wrap(err, "local inference streaming failed")
	}
	return nil
}

// IsConfigured returns true if a base URL is set
func (a *LocalClientAdapter) IsConfigured() bool {
	return a.provider.baseURL != ""
}

// ModelName returns the configured local model name
func (a *LocalClientAdapter) ModelName() string {
	return a.provider.GetModelName()
}

func (a *LocalClientAdapter) trackUsage(requestTime time.Time, reqErr error) {
	if a.usageTracker == nil {
		return
	}

	responseTime := time.Now()
	usage := &tracker.ModelUsage{
		OperationType:     a.operationType,
		EntityType:        a.entityType,
		EntityID:          a.entityID,
		ModelName:         a.provider.GetModelName(),
		ModelProvider:     "local",
		RequestTimestamp:  requestTime,
		ResponseTimestamp: &responseTime,
		Success:           reqErr == nil,
	}
	if reqErr != nil {
		errMsg := reqErr.Error()
		usage.ErrorMessage = &errMsg
	}

	if err := a.usageTracker.TrackUsage(usage); err != nil {
		a.logger.Warnw("Failed to track local usage", "error", err)
	}
}
