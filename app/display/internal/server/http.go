package server

import (
	"bytes"
	nethttp "net/http"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/trend_radar/app/display/internal/conf"
	"github.com/iWorld-y/trend_radar/app/display/internal/service"
)

// 一次刷新要抓取 RSS 并依次尝试多个模型，kratos 默认的 1s 远远不够
const defaultHTTPTimeout = 180 * time.Second

func NewHTTPServer(c *conf.Server, s *service.DisplayService, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
		),
		http.Timeout(defaultHTTPTimeout),
	}
	if c != nil && c.Http != nil {
		if c.Http.Addr != "" {
			opts = append(opts, http.Address(c.Http.Addr))
		}
		if c.Http.Timeout != "" {
			if d, err := time.ParseDuration(c.Http.Timeout); err == nil {
				opts = append(opts, http.Timeout(d))
			}
		}
	}

	srv := http.NewServer(opts...)

	r := srv.Route("/api")
	r.GET("/trends", func(ctx http.Context) error {
		reply, err := s.ListTrends(ctx, ctx.Query().Get("category"))
		if err != nil {
			return err
		}
		return ctx.Result(nethttp.StatusOK, reply)
	})
	r.POST("/trends/refresh", func(ctx http.Context) error {
		reply, err := s.RefreshTrends(ctx, ctx.Query().Get("category"))
		if err != nil {
			return err
		}
		return ctx.Result(nethttp.StatusOK, reply)
	})
	r.GET("/categories", func(ctx http.Context) error {
		reply, err := s.ListCategories(ctx)
		if err != nil {
			return err
		}
		return ctx.Result(nethttp.StatusOK, reply)
	})

	srv.HandleFunc("/", func(w nethttp.ResponseWriter, req *nethttp.Request) {
		if req.URL.Path != "/" {
			nethttp.NotFound(w, req)
			return
		}
		var buf bytes.Buffer
		if err := s.RenderDashboard(req.Context(), &buf, req.URL.Query().Get("category")); err != nil {
			se := errors.FromError(err)
			nethttp.Error(w, se.Message, int(se.Code))
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(buf.Bytes())
	})

	return srv
}
