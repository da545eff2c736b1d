// Package analyzer 把候选新闻交给 LLM，得到排序后的趋势话题列表。
package analyzer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/config"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/fallback"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/llm"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/logger"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/model"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/source"
)

const defaultLanguage = "繁體中文"

// Config 分析器配置，由调用方注入
type Config struct {
	// ModelIDs 按优先级排列，前一个失败时尝试下一个
	ModelIDs []string
	Prompt   PromptFunc
	Language string
}

// Analyzer 趋势分析器
type Analyzer struct {
	client llm.Client
	cfg    Config
}

// New 创建分析器，未设置的字段使用默认值
func New(client llm.Client, cfg Config) *Analyzer {
	if len(cfg.ModelIDs) == 0 {
		cfg.ModelIDs = config.DefaultModels
	}
	if cfg.Prompt == nil {
		cfg.Prompt = DefaultPrompt
	}
	if cfg.Language == "" {
		cfg.Language = defaultLanguage
	}
	return &Analyzer{client: client, cfg: cfg}
}

// Analyze 依次尝试各个模型，返回第一个有效结果以及每次尝试的记录。
// 没有候选项时不调用模型；全部失败时返回空列表。
func (a *Analyzer) Analyze(ctx context.Context, category source.Category, items []model.CandidateItem) ([]model.TrendRecord, []string) {
	if len(items) == 0 {
		return []model.TrendRecord{}, []string{"analyzer: no candidate items"}
	}

	prompt, err := a.cfg.Prompt(category, items, a.cfg.Language)
	if err != nil {
		logger.Log.Errorf("生成提示词失败 [%s]: %v", category, err)
		return []model.TrendRecord{}, []string{fmt.Sprintf("analyzer: build prompt: %v", err)}
	}

	results, log := fallback.TryInOrder(ctx, a.cfg.ModelIDs, a.attempt(prompt),
		fallback.WithLabel(func(id string) string { return "model " + id }),
	)
	if len(results) == 0 {
		logger.Log.Warnf("分类 [%s] 所有模型均未返回有效结果", category)
		return []model.TrendRecord{}, log
	}
	logger.Log.Infof("分类 [%s] 分析完成: %d 个话题", category, len(results[0]))
	return results[0], log
}

func (a *Analyzer) attempt(prompt string) fallback.Attempt[string, []model.TrendRecord] {
	return func(ctx context.Context, modelID string) ([]model.TrendRecord, fallback.Outcome, error) {
		raw, err := a.client.Generate(ctx, modelID, prompt)
		if err != nil {
			logger.Log.Warnf("模型 [%s] 调用失败: %v", modelID, err)
			return nil, fallback.Failure, err
		}

		payload := llm.ExtractJSONPayload(raw)
		if payload == "" {
			logger.Log.Warnf("模型 [%s] 返回空内容", modelID)
			return nil, fallback.Empty, nil
		}

		var records []model.TrendRecord
		if err := json.Unmarshal([]byte(payload), &records); err != nil {
			logger.Log.Warnf("模型 [%s] 返回的 JSON 无法解析: %v", modelID, err)
			return nil, fallback.Failure, fmt.Errorf("json unmarshal: %w", err)
		}

		// 解析成功即视为该模型已作答，即使过滤后为空也不再回退
		records = model.Sanitize(records)
		if len(records) == 0 {
			logger.Log.Infof("模型 [%s] 返回的话题列表为空", modelID)
		}
		return records, fallback.Success, nil
	}
}
