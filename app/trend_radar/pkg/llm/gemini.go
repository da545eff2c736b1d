package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiClient 通过 Gemini API 生成内容
type GeminiClient struct {
	client   *genai.Client
	safety   []*genai.SafetySetting
	jsonMode bool
}

// GeminiOptions Gemini 客户端参数
type GeminiOptions struct {
	APIKey string
	// BaseURL 为空时使用官方地址
	BaseURL string
	// SafetyThreshold 四类内容的拦截阈值，默认 BLOCK_NONE
	SafetyThreshold string
	JSONMode        bool
}

// NewGeminiClient 创建 Gemini 客户端
func NewGeminiClient(ctx context.Context, opts GeminiOptions) (*GeminiClient, error) {
	cc := &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if opts.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}

	threshold := genai.HarmBlockThreshold(strings.ToUpper(strings.TrimSpace(opts.SafetyThreshold)))
	if threshold == "" {
		threshold = genai.HarmBlockThresholdBlockNone
	}
	var safety []*genai.SafetySetting
	for _, c := range []genai.HarmCategory{
		genai.HarmCategoryHarassment,
		genai.HarmCategoryHateSpeech,
		genai.HarmCategorySexuallyExplicit,
		genai.HarmCategoryDangerousContent,
	} {
		safety = append(safety, &genai.SafetySetting{Category: c, Threshold: threshold})
	}

	return &GeminiClient{client: client, safety: safety, jsonMode: opts.JSONMode}, nil
}

func (c *GeminiClient) Name() string { return "gemini" }

func (c *GeminiClient) Generate(ctx context.Context, modelID, prompt string) (string, error) {
	cfg := &genai.GenerateContentConfig{SafetySettings: c.safety}
	if c.jsonMode {
		cfg.ResponseMIMEType = "application/json"
	}

	resp, err := c.client.Models.GenerateContent(ctx, modelID, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	return text, nil
}
