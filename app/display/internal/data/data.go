package data

import (
	"errors"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/engine"
)

// Data 持有趋势引擎，引擎内部自带结果缓存
type Data struct {
	engine *engine.Engine
}

func NewData(eng *engine.Engine, logger log.Logger) (*Data, func(), error) {
	if eng == nil {
		return nil, nil, errors.New("radar engine is not configured")
	}
	cleanup := func() {
		log.NewHelper(logger).Info("closing the data resources")
	}
	return &Data{engine: eng}, cleanup, nil
}
