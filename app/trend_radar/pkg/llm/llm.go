// Package llm 封装文本生成模型的调用，支持 Gemini 与 OpenAI 兼容接口。
package llm

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// Client 定义统一的生成接口，模型名称按次传入以便回退
type Client interface {
	Generate(ctx context.Context, modelID, prompt string) (string, error)
	Name() string
}

// paced 为任意 Client 加上限流和单次调用超时
type paced struct {
	next    Client
	limiter *rate.Limiter
	timeout time.Duration
}

// WithPacing 用共享的限流器包装 Client；limiter 为 nil 时不限流，timeout<=0 时不设超时
func WithPacing(c Client, limiter *rate.Limiter, timeout time.Duration) Client {
	return &paced{next: c, limiter: limiter, timeout: timeout}
}

// NewLimiter 按每分钟请求数和突发数创建限流器
func NewLimiter(rpm, burst int) *rate.Limiter {
	if rpm <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(float64(rpm)/60.0), burst)
}

func (p *paced) Name() string { return p.next.Name() }

func (p *paced) Generate(ctx context.Context, modelID, prompt string) (string, error) {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limit wait: %w", err)
		}
	}
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	return p.next.Generate(ctx, modelID, prompt)
}
