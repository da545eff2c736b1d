// Package feed 负责抓取 RSS 并把条目标准化为候选项。
package feed

import (
	"bytes"
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/mmcdole/gofeed"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/fallback"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/logger"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/model"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/source"
)

const (
	DefaultTimeout        = 10 * time.Second
	DefaultJitter         = 800 * time.Millisecond
	DefaultHomeCap        = 30
	DefaultTopicCap       = 15
	DefaultAcceptLanguage = "zh-TW,zh;q=0.9,en-US;q=0.8,en;q=0.7"
	// Google 的同意页 cookie，没有它部分地区会被重定向到 consent.google.com
	DefaultCookie = "CONSENT=YES+cb.20210720-07-p0.en+FX+410"
)

// DefaultUserAgents 轮换使用的浏览器 UA，降低被上游拦截的概率
var DefaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:125.0) Gecko/20100101 Firefox/125.0",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
}

// Result 一轮抓取的结果：所有成功来源的候选项，以及每个地址的尝试记录
type Result struct {
	Items []model.CandidateItem
	Log   []string
}

// Fetcher RSS 抓取器，单个地址失败不会影响整体
type Fetcher struct {
	client         *resty.Client
	timeout        time.Duration
	userAgents     []string
	cookie         string
	acceptLanguage string
	jitter         time.Duration
	homeCap        int
	topicCap       int
	enrichOn       bool
	enrich         enrichFunc

	mu  sync.Mutex
	rnd *rand.Rand
}

// Option 配置 Fetcher
type Option func(*Fetcher)

// WithTimeout 单次请求超时
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithUserAgents 设置 UA 轮换池，空列表保持默认值
func WithUserAgents(uas []string) Option {
	return func(f *Fetcher) {
		if len(uas) > 0 {
			f.userAgents = append([]string(nil), uas...)
		}
	}
}

// WithCookie 设置同意页 cookie
func WithCookie(c string) Option {
	return func(f *Fetcher) {
		if c != "" {
			f.cookie = c
		}
	}
}

// WithAcceptLanguage 设置 Accept-Language
func WithAcceptLanguage(v string) Option {
	return func(f *Fetcher) {
		if v != "" {
			f.acceptLanguage = v
		}
	}
}

// WithJitter 每次请求前的随机等待上限，0 表示不等待
func WithJitter(d time.Duration) Option {
	return func(f *Fetcher) { f.jitter = d }
}

// WithCaps 设置聚合视图与单一分类的条目上限
func WithCaps(home, topic int) Option {
	return func(f *Fetcher) {
		if home > 0 {
			f.homeCap = home
		}
		if topic > 0 {
			f.topicCap = topic
		}
	}
}

// WithSnippetEnrichment 对没有摘要的条目抓取原文补充摘要
func WithSnippetEnrichment(enabled bool) Option {
	return func(f *Fetcher) { f.enrichOn = enabled }
}

// WithRand 指定随机源，测试中用于固定 UA 选择
func WithRand(r *rand.Rand) Option {
	return func(f *Fetcher) { f.rnd = r }
}

// WithHTTPClient 使用自定义的 http.Client（代理、测试等）
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) { f.client = resty.NewWithClient(c) }
}

// NewFetcher 创建抓取器
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:        DefaultTimeout,
		userAgents:     DefaultUserAgents,
		cookie:         DefaultCookie,
		acceptLanguage: DefaultAcceptLanguage,
		jitter:         DefaultJitter,
		homeCap:        DefaultHomeCap,
		topicCap:       DefaultTopicCap,
		rnd:            rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed)),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.client == nil {
		f.client = resty.New()
	}
	f.client.SetTimeout(f.timeout)
	if f.enrichOn {
		f.enrich = readableSnippet(f.timeout)
	}
	return f
}

// Cap 返回分类对应的条目上限
func (f *Fetcher) Cap(category source.Category) int {
	if source.IsAggregate(category) {
		return f.homeCap
	}
	return f.topicCap
}

// Fetch 依次抓取候选地址。单一分类遇到第一个成功来源即停止；聚合视图尝试全部来源并合并。
// 不返回错误，全部失败时 Items 为空，Log 中记录每个地址的失败原因。
func (f *Fetcher) Fetch(ctx context.Context, category source.Category, urls []string) Result {
	mode := fallback.StopOnFirstSuccess
	if source.IsAggregate(category) {
		mode = fallback.TryAll
	}

	batches, log := fallback.TryInOrder(ctx, urls, f.attempt(category), fallback.WithMode[string](mode))

	var items []model.CandidateItem
	for _, b := range batches {
		items = append(items, b...)
	}
	logger.Log.Infof("分类 [%s] 抓取完成: %d 个地址, %d 条候选", category, len(urls), len(items))
	return Result{Items: items, Log: log}
}

func (f *Fetcher) attempt(category source.Category) fallback.Attempt[string, []model.CandidateItem] {
	limit := f.Cap(category)
	return func(ctx context.Context, u string) ([]model.CandidateItem, fallback.Outcome, error) {
		if err := f.wait(ctx); err != nil {
			return nil, fallback.Failure, err
		}

		entries, err := f.get(ctx, u)
		if err != nil {
			logger.Log.Warnf("抓取 RSS 失败 [%s]: %v", u, err)
			return nil, fallback.Failure, err
		}

		items := normalize(entries, string(category), limit, f.enrich)
		if len(items) == 0 {
			logger.Log.Warnf("RSS 没有可用条目 [%s]", u)
			return nil, fallback.Empty, nil
		}
		return items, fallback.Success, nil
	}
}

// get 发起一次 GET 请求并解析 RSS
func (f *Fetcher) get(ctx context.Context, u string) ([]*gofeed.Item, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("User-Agent", f.userAgent()).
		SetHeader("Accept-Language", f.acceptLanguage).
		SetHeader("Accept", "application/rss+xml, application/xml;q=0.9, */*;q=0.8").
		SetHeader("Cookie", f.cookie).
		Get(u)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode())
	}

	feed, err := gofeed.NewParser().Parse(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	return feed.Items, nil
}

func (f *Fetcher) userAgent() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.userAgents[f.rnd.IntN(len(f.userAgents))]
}

// wait 请求前随机等待一小段时间
func (f *Fetcher) wait(ctx context.Context) error {
	if f.jitter <= 0 {
		return nil
	}
	f.mu.Lock()
	d := time.Duration(f.rnd.Int64N(int64(f.jitter)))
	f.mu.Unlock()

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
