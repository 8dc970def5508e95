package openai

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/agroguide/agroguide/internal/domain"
	"github.com/agroguide/agroguide/internal/metrics"
)

// GeneratorConfig holds the generation provider settings.
type GeneratorConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
	Logger      *zap.Logger
}

// Generator calls an OpenAI-compatible chat-completion endpoint.
type Generator struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
	logger      *zap.Logger
}

// NewGenerator creates an OpenAI-compatible generation provider.
func NewGenerator(cfg *GeneratorConfig) *Generator {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		logger:      logger,
	}
}

// Generate implements domain.Generator. The caller bounds the call with a
// context deadline; a timed-out call fails, it is never retried here since
// generation calls incur cost even when abandoned.
func (g *Generator) Generate(ctx context.Context, system, user string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: g.temperature,
		MaxTokens:   g.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	}

	start := time.Now()
	resp, err := g.client.CreateChatCompletion(ctx, req)
	duration := time.Since(start)

	if err != nil {
		metrics.CapabilityRequestsTotal.WithLabelValues("generation", g.model, "error").Inc()
		return "", wrapAPIError("generation", err, domain.ErrGenerationProviderError)
	}
	if len(resp.Choices) == 0 {
		metrics.CapabilityRequestsTotal.WithLabelValues("generation", g.model, "error").Inc()
		return "", fmt.Errorf("empty generation response: %w", domain.ErrGenerationProviderError)
	}

	metrics.CapabilityRequestsTotal.WithLabelValues("generation", g.model, "success").Inc()
	metrics.CapabilityRequestDuration.WithLabelValues("generation", g.model).Observe(duration.Seconds())
	if resp.Usage.TotalTokens > 0 {
		metrics.CapabilityTokensTotal.
			WithLabelValues("generation", g.model, "total").
			Add(float64(resp.Usage.TotalTokens))
	}

	g.logger.Debug("Generation completed",
		zap.String("model", g.model),
		zap.Duration("latency", duration),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
	)
	return resp.Choices[0].Message.Content, nil
}
