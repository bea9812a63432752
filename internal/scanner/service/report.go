package service

import (
	"context"
	"errors"
	"time"

	"holder-scan/internal/scanner/config"
	"holder-scan/internal/scanner/ledger"
	"holder-scan/internal/scanner/model"
	"holder-scan/internal/scanner/monitor"
	"holder-scan/pkg/logger"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

const tracerName = "holder-scan/report"

// ReportSink 接收生成好的报告事件，Submit 不能阻塞
type ReportSink interface {
	Submit(event model.ReportEvent)
}

type ReportService struct {
	tl             *zap.Logger
	fetcher        *HolderFetcher
	driver         *ClassificationDriver
	thresholds     model.Thresholds
	defaultStyle   model.ReportStyle
	emptyMessage   string
	requestTimeout time.Duration
	sink           ReportSink
	now            func() time.Time
}

func NewReportService(cfg config.ReportConfig, client ledger.Client, logger *zap.Logger) *ReportService {
	style, err := model.ParseReportStyle(cfg.DefaultStyle)
	if err != nil {
		style = model.ReportStyleFull
	}
	classifier := NewWalletClassifier(client, cfg.MaxSignaturePages, logger)
	return &ReportService{
		tl:             logger,
		fetcher:        NewHolderFetcher(client, logger),
		driver:         NewClassificationDriver(classifier, cfg.Concurrency, cfg.LookupTimeoutDuration(), logger),
		thresholds:     cfg.Thresholds(),
		defaultStyle:   style,
		emptyMessage:   cfg.EmptyMessage,
		requestTimeout: cfg.RequestTimeoutDuration(),
		now:            time.Now,
	}
}

// WithSink 报告生成后把事件推给 sink，nil 表示不推送
func (s *ReportService) WithSink(sink ReportSink) *ReportService {
	s.sink = sink
	return s
}

func (s *ReportService) Thresholds() model.Thresholds {
	return s.thresholds
}

// GenerateReport 使用默认样式生成报告文本
func (s *ReportService) GenerateReport(ctx context.Context, mintAddress string) (string, error) {
	report, err := s.Generate(ctx, mintAddress, s.defaultStyle)
	if err != nil {
		return "", err
	}
	return report.Text, nil
}

// Generate 拉取 holder → 阈值过滤 → 并发分类 → 聚合 → 渲染
// 只有 mint 非法或上游不可用才会返回错误，单个钱包的查询失败只会降级
func (s *ReportService) Generate(ctx context.Context, mintAddress string, style model.ReportStyle) (report *model.Report, err error) {
	ctx, span := logger.StartSpan(ctx, tracerName, "generate_report",
		attribute.String("mint", mintAddress), attribute.String("style", string(style)))
	defer span.End()
	tl := logger.NewLoggerWithTrace(ctx, s.tl).With(zap.String("mint", mintAddress))

	if s.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.requestTimeout)
		defer cancel()
	}

	start := time.Now()
	defer func() {
		monitor.ReportDuration.WithLabelValues("total").Observe(time.Since(start).Seconds())
		monitor.ReportsGenerated.WithLabelValues(reportStatus(err)).Inc()
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	stageStart := time.Now()
	holders, err := s.fetcher.FetchHolders(ctx, mintAddress)
	if err != nil {
		tl.Warn("fetch holders failed", zap.Error(err))
		return nil, err
	}
	monitor.ReportDuration.WithLabelValues("fetch").Observe(time.Since(stageStart).Seconds())

	filtered := FilterByMinimumBalance(holders, s.thresholds.MinDisplayAmount)
	monitor.HoldersScanned.WithLabelValues("all").Observe(float64(len(holders)))
	monitor.HoldersScanned.WithLabelValues("filtered").Observe(float64(len(filtered)))

	stageStart = time.Now()
	classified := s.driver.ClassifyAll(ctx, filtered, s.thresholds)
	monitor.ReportDuration.WithLabelValues("classify").Observe(time.Since(stageStart).Seconds())
	// 整体超时后剩余的检查全部降级，报告只能算部分结果
	partial := ctx.Err() != nil
	if partial {
		tl.Warn("request deadline reached during classification, report is partial", zap.Error(ctx.Err()))
	}

	agg := Aggregate(mintAddress, len(holders), classified, style.TopN())
	report = &model.Report{
		Aggregate:   agg,
		Thresholds:  s.thresholds,
		Style:       style,
		Text:        FormatReport(agg, s.thresholds, s.emptyMessage),
		GeneratedAt: s.now(),
		Partial:     partial,
	}

	span.SetAttributes(
		attribute.Int("holders.total", agg.TotalHolders),
		attribute.Int("holders.filtered", agg.FilteredHolderCount),
		attribute.Int("lookups.failed", agg.FailedChecks),
	)
	tl.Info("report generated",
		zap.Int("total_holders", agg.TotalHolders),
		zap.Int("filtered", agg.FilteredHolderCount),
		zap.Int("bundle", agg.BundleCount),
		zap.Int("whale", agg.WhaleCount),
		zap.Int("failed_checks", agg.FailedChecks),
		zap.Bool("partial", partial),
		zap.Duration("elapsed", time.Since(start)))

	if s.sink != nil {
		s.sink.Submit(model.NewReportEvent(report))
	}
	return report, nil
}

func reportStatus(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInvalidMintAddress):
		return "invalid_mint"
	case errors.Is(err, ErrUpstreamUnavailable):
		return "upstream_unavailable"
	default:
		return "error"
	}
}
