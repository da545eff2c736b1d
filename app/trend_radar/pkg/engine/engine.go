package engine

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/analyzer"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/cache"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/config"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/feed"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/llm"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/llm/factory"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/logger"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/model"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/source"
)

// Engine 核心处理引擎：抓取 → 标准化 → 分析，结果按时间桶缓存
type Engine struct {
	cfg      *config.Config
	fetcher  *feed.Fetcher
	analyzer *analyzer.Analyzer
	cache    *cache.Cache
	urls     func(source.Category) []string
	now      func() time.Time
}

type options struct {
	client     llm.Client
	httpClient *http.Client
	urls       func(source.Category) []string
	now        func() time.Time
}

// Option 引擎选项，主要用于测试注入
type Option func(*options)

// WithLLMClient 使用指定的模型客户端，不再根据配置创建
func WithLLMClient(c llm.Client) Option {
	return func(o *options) { o.client = c }
}

// WithHTTPClient RSS 抓取使用的 http.Client
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithURLs 替换分类到 RSS 地址的映射
func WithURLs(f func(source.Category) []string) Option {
	return func(o *options) { o.urls = f }
}

// WithClock 替换当前时间，用于缓存时间桶
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// NewEngine 创建引擎实例
func NewEngine(ctx context.Context, cfg *config.Config, opts ...Option) (*Engine, error) {
	o := options{urls: source.URLs, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	// 初始化 LLM
	client := o.client
	if client == nil {
		c, err := factory.NewClient(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("LLM 初始化失败: %w", err)
		}
		client = c
	}

	fopts := []feed.Option{
		feed.WithTimeout(cfg.FeedTimeout()),
		feed.WithUserAgents(cfg.Feed.UserAgents),
		feed.WithCookie(cfg.Feed.Cookie),
		feed.WithAcceptLanguage(cfg.Feed.AcceptLanguage),
		feed.WithJitter(time.Duration(cfg.Feed.JitterMS) * time.Millisecond),
		feed.WithCaps(cfg.Feed.HomeCap, cfg.Feed.TopicCap),
		feed.WithSnippetEnrichment(cfg.Feed.EnrichSnippets),
	}
	if o.httpClient != nil {
		fopts = append(fopts, feed.WithHTTPClient(o.httpClient))
	}

	e := &Engine{
		cfg:     cfg,
		fetcher: feed.NewFetcher(fopts...),
		analyzer: analyzer.New(client, analyzer.Config{
			ModelIDs: cfg.LLM.Models,
			Language: cfg.LLM.Language,
		}),
		urls: o.urls,
		now:  o.now,
	}

	if !cfg.Cache.Disabled {
		c, err := cache.New(cfg.CacheInterval())
		if err != nil {
			return nil, fmt.Errorf("缓存初始化失败: %w", err)
		}
		e.cache = c
	}
	return e, nil
}

// Run 返回分类的趋势结果，同一时间桶内复用缓存
func (e *Engine) Run(ctx context.Context, category source.Category) model.Result {
	if e.cache == nil {
		return e.run(ctx, category)
	}
	r, hit := e.cache.GetOrCompute(ctx, category, e.now(), func(ctx context.Context) model.Result {
		return e.run(ctx, category)
	})
	if hit {
		logger.Log.Debugf("分类 [%s] 命中缓存", category)
	}
	return r
}

// Refresh 清除分类缓存后重新计算
func (e *Engine) Refresh(ctx context.Context, category source.Category) model.Result {
	if e.cache != nil {
		e.cache.Invalidate(category)
	}
	return e.Run(ctx, category)
}

func (e *Engine) run(ctx context.Context, category source.Category) model.Result {
	logger.Log.Infof("开始分析分类 [%s]", category)
	start := e.now()

	// 1. 抓取
	fetched := e.fetcher.Fetch(ctx, category, e.urls(category))
	diagnostics := append([]string(nil), fetched.Log...)
	if len(fetched.Items) == 0 {
		logger.Log.Warnf("分类 [%s] 没有抓取到任何候选新闻", category)
	}

	// 2. 分析
	records, log := e.analyzer.Analyze(ctx, category, fetched.Items)
	diagnostics = append(diagnostics, log...)

	logger.Log.Infof("分类 [%s] 完成: %d 条候选, %d 个话题, 耗时 %s",
		category, len(fetched.Items), len(records), e.now().Sub(start).Round(time.Millisecond))

	return model.Result{
		Category:    string(category),
		Records:     records,
		Diagnostics: diagnostics,
		GeneratedAt: e.now(),
	}
}
