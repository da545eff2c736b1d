package server

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/trend_radar/app/display/internal/conf"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/config"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/engine"
	trLogger "github.com/iWorld-y/trend_radar/app/trend_radar/pkg/logger"
)

// RadarConfig 将 internal/conf.Radar 转换为 pkg/config.Config，并补齐默认值
func RadarConfig(c *conf.Radar) *config.Config {
	cfg := &config.Config{}
	if c != nil {
		if l := c.Llm; l != nil {
			cfg.LLM = config.LLMConfig{
				Provider:        l.Provider,
				BaseURL:         l.BaseUrl,
				APIKey:          l.ApiKey,
				Models:          l.Models,
				Timeout:         int(l.Timeout),
				JSONMode:        l.JsonMode,
				SafetyThreshold: l.SafetyThreshold,
				Language:        l.Language,
			}
		}
		if f := c.Feed; f != nil {
			cfg.Feed = config.FeedConfig{
				Timeout:        int(f.Timeout),
				UserAgents:     f.UserAgents,
				Cookie:         f.Cookie,
				AcceptLanguage: f.AcceptLanguage,
				JitterMS:       int(f.JitterMs),
				HomeCap:        int(f.HomeCap),
				TopicCap:       int(f.TopicCap),
				EnrichSnippets: f.EnrichSnippets,
			}
		}
		if ca := c.Cache; ca != nil {
			cfg.Cache = config.CacheConfig{Interval: int(ca.Interval), Disabled: ca.Disabled}
		}
		if lg := c.Log; lg != nil {
			cfg.Log = config.LogConfig{Level: lg.Level, File: lg.File}
		}
		if cc := c.Concurrency; cc != nil {
			cfg.Concurrency = config.ConcurrencyConfig{QPS: int(cc.Qps), RPM: int(cc.Rpm)}
		}
	}
	cfg.ApplyDefaults()
	return cfg
}

// NewRadarEngine 初始化 trend_radar 引擎，缺少 API Key 时返回错误
func NewRadarEngine(c *conf.Radar, logger log.Logger) (*engine.Engine, func(), error) {
	helper := log.NewHelper(logger)
	cfg := RadarConfig(c)
	if err := cfg.Validate(); err != nil {
		helper.Errorf("Invalid radar config: %v", err)
		return nil, nil, err
	}

	// 初始化日志
	if err := trLogger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		helper.Errorf("Failed to init trend_radar logger: %v", err)
		_ = trLogger.InitLogger("info", "") // 降级处理
	}

	// 初始化核心引擎
	eng, err := engine.NewEngine(context.Background(), cfg)
	if err != nil {
		helper.Errorf("Failed to init engine: %v", err)
		return nil, nil, err
	}

	cleanup := func() {
		helper.Info("Cleaning up trend_radar engine")
	}
	return eng, cleanup, nil
}
