package scanner

import (
	"context"
	"fmt"

	"holder-scan/internal/scanner/bot"
	"holder-scan/internal/scanner/config"
	"holder-scan/internal/scanner/job"
	"holder-scan/internal/scanner/model"
	"holder-scan/internal/scanner/monitor"
	"holder-scan/internal/scanner/repository"

	"go.uber.org/zap"
)

type Core struct {
	cfg       config.Config
	tl        *zap.Logger
	repo      repository.Repository
	pipeline  *Pipeline
	scheduler *job.Scheduler
	bot       *bot.Bot
	metrics   *monitor.MetricsServer
}

func New(cfg config.Config, logger *zap.Logger) (*Core, error) {
	// 初始化repo
	repo, err := repository.New(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("init repository: %w", err)
	}

	pipeline := NewPipeline(cfg, repo, logger)
	defaultStyle, _ := model.ParseReportStyle(cfg.Report.DefaultStyle)

	// 初始化作业调度器
	scheduler := job.NewScheduler(logger)
	if cfg.Watch.Enable && len(cfg.Watch.Mints) > 0 {
		style, err := model.ParseReportStyle(cfg.Watch.Style)
		if err != nil {
			repo.Close()
			return nil, fmt.Errorf("watch.style: %w", err)
		}
		watchList := job.NewWatchListJob(pipeline.Report, cfg.Watch.Mints, style, logger)
		scheduler.RegisterJob("watch_list_report", cfg.Watch.IntervalDuration(), 0, watchList.Run)
	}

	var discordBot *bot.Bot
	if cfg.Discord.Enable {
		discordBot, err = bot.New(cfg.Discord, pipeline.Report, defaultStyle, logger)
		if err != nil {
			repo.Close()
			return nil, err
		}
	}

	return &Core{
		cfg:       cfg,
		tl:        logger,
		repo:      repo,
		pipeline:  pipeline,
		scheduler: scheduler,
		bot:       discordBot,
		metrics:   monitor.NewMetricsServer(cfg.Monitor, logger),
	}, nil
}

// Start 启动所有组件并阻塞到 ctx 结束
func (c *Core) Start(ctx context.Context) error {
	c.tl.Info("Starting holder scan core...")
	c.metrics.Run()

	if c.bot != nil {
		if err := c.bot.Start(); err != nil {
			return err
		}
	}

	c.scheduler.Start(ctx)
	c.tl.Info("Holder scan started successfully")

	// 等待外部关闭信号
	<-ctx.Done()
	c.tl.Info("Shutting down holder scan due to context cancellation...")
	return nil
}

// Stop 优雅关闭 Core 的所有资源
func (c *Core) Stop(ctx context.Context) {
	c.tl.Info("Stopping holder scan core...")

	if c.bot != nil {
		if err := c.bot.Close(); err != nil {
			c.tl.Warn("close discord session failed", zap.Error(err))
		}
	}

	c.scheduler.Stop(ctx)

	// 报告推送写完再关连接
	c.pipeline.Close()

	if err := c.metrics.Stop(ctx); err != nil {
		c.tl.Warn("stop metrics server failed", zap.Error(err))
	}

	c.repo.Close()
	c.tl.Info("Holder scan core stopped.")
}
