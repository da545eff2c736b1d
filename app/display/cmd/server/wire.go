package main

import (
	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/grpc"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/trend_radar/app/display/internal/conf"
	"github.com/iWorld-y/trend_radar/app/display/internal/data"
	"github.com/iWorld-y/trend_radar/app/display/internal/server"
	"github.com/iWorld-y/trend_radar/app/display/internal/service"
	"github.com/iWorld-y/trend_radar/app/display/internal/usecase"
)

// initApp 手动组装依赖：engine → data → usecase → service → server
func initApp(confServer *conf.Server, confRadar *conf.Radar, logger log.Logger) (*kratos.App, func(), error) {
	eng, cleanupEngine, err := server.NewRadarEngine(confRadar, logger)
	if err != nil {
		return nil, nil, err
	}
	dataData, cleanupData, err := data.NewData(eng, logger)
	if err != nil {
		cleanupEngine()
		return nil, nil, err
	}
	trendSource := data.NewTrendRepo(dataData, logger)
	trendUseCase := usecase.NewTrendUseCase(trendSource, logger)
	displayService := service.NewDisplayService(trendUseCase, logger)
	httpServer := server.NewHTTPServer(confServer, displayService, logger)
	grpcServer := server.NewGRPCServer(confServer, logger)
	app := newApp(logger, httpServer, grpcServer)
	return app, func() {
		cleanupData()
		cleanupEngine()
	}, nil
}

func newApp(logger log.Logger, hs *http.Server, gs *grpc.Server) *kratos.App {
	return kratos.New(
		kratos.ID(id),
		kratos.Name(Name),
		kratos.Version(Version),
		kratos.Metadata(map[string]string{}),
		kratos.Logger(logger),
		kratos.Server(hs, gs),
	)
}
