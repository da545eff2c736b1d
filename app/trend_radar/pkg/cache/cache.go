// Package cache 按分类和时间桶缓存分析结果，同一时间桶内的请求复用同一份结果。
package cache

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/model"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/source"
)

const DefaultInterval = 20 * time.Minute

type key struct {
	category source.Category
	bucket   int64
}

// Cache 结果缓存，容量为分类数的两倍，够放当前桶和上一个桶
type Cache struct {
	interval time.Duration
	entries  *lru.Cache[key, model.Result]
}

// New 创建缓存，interval<=0 时使用默认值
func New(interval time.Duration) (*Cache, error) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	entries, err := lru.New[key, model.Result](len(source.All()) * 2)
	if err != nil {
		return nil, err
	}
	return &Cache{interval: interval, entries: entries}, nil
}

func (c *Cache) key(category source.Category, now time.Time) key {
	return key{category: category, bucket: now.Truncate(c.interval).Unix()}
}

// Get 读取 now 所在时间桶的结果
func (c *Cache) Get(category source.Category, now time.Time) (model.Result, bool) {
	return c.entries.Get(c.key(category, now))
}

// Put 写入结果，没有话题的结果不缓存，下次请求会重新计算
func (c *Cache) Put(category source.Category, now time.Time, r model.Result) {
	if r.Empty() {
		return
	}
	c.entries.Add(c.key(category, now), r)
}

// Invalidate 删除某个分类的所有时间桶
func (c *Cache) Invalidate(category source.Category) {
	for _, k := range c.entries.Keys() {
		if k.category == category {
			c.entries.Remove(k)
		}
	}
}

// GetOrCompute 命中时直接返回，否则调用 fn 计算并写入
func (c *Cache) GetOrCompute(ctx context.Context, category source.Category, now time.Time,
	fn func(ctx context.Context) model.Result) (model.Result, bool) {
	if r, ok := c.Get(category, now); ok {
		return r, true
	}
	r := fn(ctx)
	c.Put(category, now, r)
	return r, false
}
