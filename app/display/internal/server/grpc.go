package server

import (
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	kgrpc "github.com/go-kratos/kratos/v2/transport/grpc"
	"google.golang.org/grpc"

	"github.com/iWorld-y/trend_radar/app/display/internal/conf"
)

// NewGRPCServer 只对外提供标准的 grpc health 服务，用于探活
func NewGRPCServer(c *conf.Server, logger log.Logger) *kgrpc.Server {
	var opts = []kgrpc.ServerOption{
		kgrpc.Middleware(
			recovery.Recovery(),
		),
	}
	if c != nil && c.Grpc != nil {
		if c.Grpc.Addr != "" {
			opts = append(opts, kgrpc.Address(c.Grpc.Addr))
		}
		if c.Grpc.Timeout != "" {
			if d, err := time.ParseDuration(c.Grpc.Timeout); err == nil {
				opts = append(opts, kgrpc.Timeout(d), kgrpc.Options(grpc.ConnectionTimeout(d)))
			}
		}
	}
	return kgrpc.NewServer(opts...)
}
