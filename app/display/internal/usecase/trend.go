package usecase

import (
	"context"
	"strings"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/trend_radar/app/display/internal/domain"
	"github.com/iWorld-y/trend_radar/app/display/internal/repo"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/source"
)

// ErrInvalidCategory 请求了未知的分类
var ErrInvalidCategory = errors.BadRequest("INVALID_CATEGORY", "unknown trend category")

// TrendUseCase 趋势业务逻辑
type TrendUseCase struct {
	repo repo.TrendSource
	log  *log.Helper
}

// NewTrendUseCase 创建趋势业务逻辑实例
func NewTrendUseCase(repo repo.TrendSource, logger log.Logger) *TrendUseCase {
	return &TrendUseCase{repo: repo, log: log.NewHelper(logger)}
}

// Get 获取分类趋势，空分类视为首页
func (uc *TrendUseCase) Get(ctx context.Context, category string) (*domain.TrendList, error) {
	c, err := uc.category(category)
	if err != nil {
		return nil, err
	}
	return uc.repo.GetTrends(ctx, c)
}

// Refresh 强制重新计算分类趋势
func (uc *TrendUseCase) Refresh(ctx context.Context, category string) (*domain.TrendList, error) {
	c, err := uc.category(category)
	if err != nil {
		return nil, err
	}
	return uc.repo.RefreshTrends(ctx, c)
}

// Categories 列出所有分类
func (uc *TrendUseCase) Categories(ctx context.Context) ([]*domain.Category, error) {
	return uc.repo.ListCategories(ctx)
}

func (uc *TrendUseCase) category(s string) (string, error) {
	if strings.TrimSpace(s) == "" {
		return string(source.Home), nil
	}
	c, ok := source.Lookup(s)
	if !ok {
		uc.log.Warnf("unknown category: %q", s)
		return "", ErrInvalidCategory
	}
	return string(c), nil
}
