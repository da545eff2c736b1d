package factory

import (
	"context"
	"fmt"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/config"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/llm"
)

// NewClient 根据配置创建模型客户端，并加上限流与单次调用超时
func NewClient(ctx context.Context, cfg *config.Config) (llm.Client, error) {
	if cfg.LLM.APIKey == "" {
		return nil, config.ErrMissingAPIKey
	}

	var (
		client llm.Client
		err    error
	)
	switch cfg.LLM.Provider {
	case "", "gemini":
		client, err = llm.NewGeminiClient(ctx, llm.GeminiOptions{
			APIKey:          cfg.LLM.APIKey,
			BaseURL:         cfg.LLM.BaseURL,
			SafetyThreshold: cfg.LLM.SafetyThreshold,
			JSONMode:        cfg.LLM.JSONMode == nil || *cfg.LLM.JSONMode,
		})

	case "openai":
		if cfg.LLM.BaseURL == "" {
			return nil, fmt.Errorf("openai base url is missing")
		}
		var defaultModel string
		if len(cfg.LLM.Models) > 0 {
			defaultModel = cfg.LLM.Models[0]
		}
		client, err = llm.NewOpenAIClient(ctx, llm.OpenAIOptions{
			BaseURL: cfg.LLM.BaseURL,
			APIKey:  cfg.LLM.APIKey,
			Model:   defaultModel,
			Timeout: cfg.LLMTimeout(),
		})

	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.LLM.Provider)
	}
	if err != nil {
		return nil, err
	}

	limiter := llm.NewLimiter(cfg.Concurrency.RPM, cfg.Concurrency.QPS)
	return llm.WithPacing(client, limiter, cfg.LLMTimeout()), nil
}
