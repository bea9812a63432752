package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"holder-scan/internal/scanner"
	"holder-scan/internal/scanner/config"
	"holder-scan/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	// 初始化配置文件
	cfg := config.InitConfig()

	// 初始化 trace provider
	shutdownTrace := logger.InitTrace("holder-scan", "bot")
	// 启动主 span
	ctx, span := logger.StartSpan(context.Background(), "main", "main")
	defer span.End()

	// 创建 root logger 并注入 trace 上下文
	rootLogger := logger.NewLoggerWithDir(cfg.Log.Dir, "bot")
	logger.SetLogLevel(cfg.Log.Level)
	tl := logger.WithTrace(ctx, rootLogger)
	defer tl.Sync()

	// 启动配置热加载监听
	config.WatchConfig()

	core, err := scanner.New(cfg, tl)
	if err != nil {
		tl.Fatal("init holder scan failed", zap.Error(err))
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		tl.Info("Starting holder scan bot...")
		if err := core.Start(ctx); err != nil {
			tl.Error("holder scan start failed", zap.Error(err))
			cancel()
		}
	}()

	// 监听操作系统信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
		tl.Info("Received shutdown signal, starting graceful shutdown...")
	case <-ctx.Done():
	}
	cancel()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer stopCancel()
	core.Stop(stopCtx)
	_ = shutdownTrace(stopCtx)

	tl.Info("Holder scan bot exited")
}
