package service

import (
	"context"
	"io"
	"net/url"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/trend_radar/app/display/internal/domain"
	"github.com/iWorld-y/trend_radar/app/display/internal/usecase"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/model"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/render"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/source"
)

type Trend struct {
	ID          int      `json:"id"`
	Keyword     string   `json:"keyword"`
	Category    string   `json:"category"`
	Score       int      `json:"score"`
	VolumeLabel string   `json:"volume_label,omitempty"`
	Summary     string   `json:"summary"`
	Hashtags    []string `json:"hashtags"`
}

type ListTrendsReply struct {
	Category    string   `json:"category"`
	Label       string   `json:"label"`
	GeneratedAt string   `json:"generated_at"`
	Records     []*Trend `json:"records"`
	Diagnostics []string `json:"diagnostics"`
}

type Category struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type ListCategoriesReply struct {
	Categories []*Category `json:"categories"`
}

type DisplayService struct {
	uc  *usecase.TrendUseCase
	log *log.Helper
}

func NewDisplayService(uc *usecase.TrendUseCase, logger log.Logger) *DisplayService {
	return &DisplayService{
		uc:  uc,
		log: log.NewHelper(logger),
	}
}

func (s *DisplayService) ListTrends(ctx context.Context, category string) (*ListTrendsReply, error) {
	tl, err := s.uc.Get(ctx, category)
	if err != nil {
		return nil, err
	}
	return toReply(tl), nil
}

func (s *DisplayService) RefreshTrends(ctx context.Context, category string) (*ListTrendsReply, error) {
	tl, err := s.uc.Refresh(ctx, category)
	if err != nil {
		return nil, err
	}
	return toReply(tl), nil
}

func (s *DisplayService) ListCategories(ctx context.Context) (*ListCategoriesReply, error) {
	cs, err := s.uc.Categories(ctx)
	if err != nil {
		return nil, err
	}
	list := make([]*Category, 0, len(cs))
	for _, c := range cs {
		list = append(list, &Category{ID: c.ID, Label: c.Label})
	}
	return &ListCategoriesReply{Categories: list}, nil
}

// RenderDashboard 渲染 HTML 看板，导航链接指向同一页面的其他分类
func (s *DisplayService) RenderDashboard(ctx context.Context, w io.Writer, category string) error {
	tl, err := s.uc.Get(ctx, category)
	if err != nil {
		return err
	}
	c := source.Parse(tl.Category)
	page := render.NewPage(c, toResult(tl), func(c source.Category) string {
		return "/?" + url.Values{"category": {string(c)}}.Encode()
	})
	return render.HTML(w, page)
}

func toReply(tl *domain.TrendList) *ListTrendsReply {
	records := make([]*Trend, 0, len(tl.Trends))
	for _, t := range tl.Trends {
		records = append(records, &Trend{
			ID:          t.ID,
			Keyword:     t.Keyword,
			Category:    t.Category,
			Score:       t.Score,
			VolumeLabel: t.VolumeLabel,
			Summary:     t.Summary,
			Hashtags:    t.Hashtags,
		})
	}
	diagnostics := tl.Diagnostics
	if diagnostics == nil {
		diagnostics = []string{}
	}
	return &ListTrendsReply{
		Category:    tl.Category,
		Label:       tl.Label,
		GeneratedAt: tl.GeneratedAt.Format(time.RFC3339),
		Records:     records,
		Diagnostics: diagnostics,
	}
}

func toResult(tl *domain.TrendList) model.Result {
	r := model.Result{
		Category:    tl.Category,
		Diagnostics: tl.Diagnostics,
		GeneratedAt: tl.GeneratedAt,
	}
	for _, t := range tl.Trends {
		r.Records = append(r.Records, model.TrendRecord{
			ID:          t.ID,
			Keyword:     t.Keyword,
			Category:    t.Category,
			Score:       t.Score,
			VolumeLabel: t.VolumeLabel,
			Summary:     t.Summary,
			Hashtags:    t.Hashtags,
		})
	}
	return r
}
