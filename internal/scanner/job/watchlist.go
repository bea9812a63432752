package job

import (
	"context"
	"errors"
	"fmt"

	"holder-scan/internal/scanner/model"

	"go.uber.org/zap"
)

// ReportGenerator 生成一份报告，生成后的推送由实现方负责
type ReportGenerator interface {
	Generate(ctx context.Context, mintAddress string, style model.ReportStyle) (*model.Report, error)
}

// WatchListJob 定时为关注列表里的 mint 生成报告
type WatchListJob struct {
	generator ReportGenerator
	mints     []string
	style     model.ReportStyle
	logger    *zap.Logger
}

func NewWatchListJob(generator ReportGenerator, mints []string, style model.ReportStyle, logger *zap.Logger) *WatchListJob {
	return &WatchListJob{generator: generator, mints: mints, style: style, logger: logger}
}

// Run 逐个生成，单个 mint 失败不影响后面的 mint
func (j *WatchListJob) Run(ctx context.Context) error {
	var errs []error
	for _, mint := range j.mints {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}
		report, err := j.generator.Generate(ctx, mint, j.style)
		if err != nil {
			j.logger.Warn("watch list report failed", zap.String("mint", mint), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", mint, err))
			continue
		}
		j.logger.Info("watch list report generated",
			zap.String("mint", mint),
			zap.Int("filtered", report.Aggregate.FilteredHolderCount))
	}
	return errors.Join(errs...)
}
