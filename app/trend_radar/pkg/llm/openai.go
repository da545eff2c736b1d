package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

const systemPrompt = "你是一個 JSON 生成器。請只輸出 JSON，不要包含任何 markdown 標記或說明文字。"

// OpenAIClient 调用 OpenAI 兼容接口
type OpenAIClient struct {
	chatModel model.ChatModel
}

// OpenAIOptions OpenAI 兼容客户端参数
type OpenAIOptions struct {
	BaseURL string
	APIKey  string
	// Model 默认模型，调用时会被 modelID 覆盖
	Model   string
	Timeout time.Duration
}

// NewOpenAIClient 创建 OpenAI 兼容客户端
func NewOpenAIClient(ctx context.Context, opts OpenAIOptions) (*OpenAIClient, error) {
	cfg := &openai.ChatModelConfig{
		BaseURL: opts.BaseURL,
		APIKey:  opts.APIKey,
		Model:   opts.Model,
		Timeout: opts.Timeout,
	}
	// json_object 模式只允许顶层对象，而趋势结果是数组，因此不设置 ResponseFormat
	chatModel, err := openai.NewChatModel(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}
	return &OpenAIClient{chatModel: chatModel}, nil
}

func (c *OpenAIClient) Name() string { return "openai" }

func (c *OpenAIClient) Generate(ctx context.Context, modelID, prompt string) (string, error) {
	messages := []*schema.Message{
		{Role: schema.System, Content: systemPrompt},
		{Role: schema.User, Content: prompt},
	}

	var opts []model.Option
	if modelID != "" {
		opts = append(opts, model.WithModel(modelID))
	}
	resp, err := c.chatModel.Generate(ctx, messages, opts...)
	if err != nil {
		return "", err
	}
	if resp == nil {
		return "", nil
	}
	return resp.Content, nil
}
