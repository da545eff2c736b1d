package data

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/trend_radar/app/display/internal/domain"
	"github.com/iWorld-y/trend_radar/app/display/internal/repo"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/model"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/source"
)

type trendRepo struct {
	data *Data
	log  *log.Helper
}

func NewTrendRepo(data *Data, logger log.Logger) repo.TrendSource {
	return &trendRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *trendRepo) GetTrends(ctx context.Context, category string) (*domain.TrendList, error) {
	c := source.Parse(category)
	return toTrendList(c, r.data.engine.Run(ctx, c)), nil
}

func (r *trendRepo) RefreshTrends(ctx context.Context, category string) (*domain.TrendList, error) {
	c := source.Parse(category)
	r.log.Infof("refresh trends: %s", c)
	return toTrendList(c, r.data.engine.Refresh(ctx, c)), nil
}

func (r *trendRepo) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	all := source.All()
	list := make([]*domain.Category, 0, len(all))
	for _, c := range all {
		list = append(list, &domain.Category{ID: string(c), Label: c.Label()})
	}
	return list, nil
}

func toTrendList(c source.Category, res model.Result) *domain.TrendList {
	tl := &domain.TrendList{
		Category:    string(c),
		Label:       c.Label(),
		GeneratedAt: res.GeneratedAt,
		Trends:      make([]*domain.Trend, 0, len(res.Records)),
		Diagnostics: res.Diagnostics,
	}
	for _, rec := range res.Records {
		tl.Trends = append(tl.Trends, &domain.Trend{
			ID:          rec.ID,
			Keyword:     rec.Keyword,
			Category:    rec.Category,
			Score:       rec.Score,
			VolumeLabel: rec.VolumeLabel,
			Summary:     rec.Summary,
			Hashtags:    rec.Hashtags,
		})
	}
	return tl
}
