package main

import (
	"bytes"
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/config"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/engine"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/logger"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/render"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/source"
)

var (
	confPath = flag.String("conf", "configs/config.yaml", "config path, eg: -conf config.yaml")
	category = flag.String("category", "home", "trend category: "+categoryList())
	outPath  = flag.String("out", "index.html", "output html file")
)

func categoryList() string {
	var s string
	for i, c := range source.All() {
		if i > 0 {
			s += ","
		}
		s += string(c)
	}
	return s
}

func main() {
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.LoadConfig(*confPath)
	if err != nil {
		log.Fatalf("无法加载配置文件: %v", err)
	}

	// 验证配置，缺少 API Key 时不进入流水线
	if err := cfg.Validate(); err != nil {
		log.Fatalf("配置错误: %v", err)
	}

	// 2. 初始化日志
	if err = logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		log.Fatalf("无法初始化日志: %v", err)
	}
	logger.Log.Info("启动趋势雷达...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. 初始化引擎
	eng, err := engine.NewEngine(ctx, cfg)
	if err != nil {
		logger.Log.Fatalf("引擎初始化失败: %v", err)
	}

	// 4. 执行分析
	c := source.Parse(*category)
	result := eng.Run(ctx, c)
	if result.Empty() {
		logger.Log.Warnf("分类 [%s] 没有生成任何趋势话题", c)
		for _, d := range result.Diagnostics {
			logger.Log.Warn(d)
		}
	}

	// 5. 生成 HTML
	if err := writeHTML(*outPath, render.NewPage(c, result, nil)); err != nil {
		logger.Log.Fatalf("生成 HTML 失败: %v", err)
	}
	logger.Log.Infof("✅ 趋势雷达生成完毕: %s (%d 个话题)", *outPath, len(result.Records))
}

// writeHTML 先渲染到内存再写盘，模板出错时不会留下半截文件
func writeHTML(path string, page render.Page) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	var buf bytes.Buffer
	if err := render.HTML(&buf, page); err != nil {
		return err
	}
	// os.WriteFile 会返回 Close 的错误，磁盘写满等情况不会被吞掉
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
