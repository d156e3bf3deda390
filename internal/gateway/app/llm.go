package app

import (
	"context"
	"fmt"

	"questio/internal/gateway/config"
	"questio/internal/llm"
	llmclient "questio/internal/llmClient"
	"questio/internal/logger"
)

// newLLMClient builds the provider client and its middleware chain. The
// chain runs outermost first: tracing, logging, hooks, rate limiting.
func newLLMClient(ctx context.Context, cfg config.LLMConfig, log *logger.Logger) (llmclient.Client, error) {
	var base llmclient.Client
	switch cfg.Provider {
	case "fake":
		log.Warn("llm provider: fake, responses are canned")
		base = llm.NewFakeClient()
	case "", "gemini":
		c, err := llmclient.NewGeminiClient(ctx, cfg.APIKey, llmclient.Models{
			Fast:  cfg.FastModel,
			Deep:  cfg.DeepModel,
			Image: cfg.ImageModel,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		base = c
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.Provider)
	}
	return llm.Wrap(base,
		llm.WithTracing(),
		llm.WithLogging(log),
		llm.WithHooks(),
		llm.RateLimit(cfg.RPS, cfg.Burst),
	), nil
}
