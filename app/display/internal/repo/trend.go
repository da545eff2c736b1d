package repo

import (
	"context"

	"github.com/iWorld-y/trend_radar/app/display/internal/domain"
)

// TrendSource 趋势数据来源接口
type TrendSource interface {
	// GetTrends 获取分类的趋势，同一时间段内可能返回缓存结果
	GetTrends(ctx context.Context, category string) (*domain.TrendList, error)
	// RefreshTrends 丢弃缓存并重新计算
	RefreshTrends(ctx context.Context, category string) (*domain.TrendList, error)
	// ListCategories 按展示顺序列出分类
	ListCategories(ctx context.Context) ([]*domain.Category, error)
}
