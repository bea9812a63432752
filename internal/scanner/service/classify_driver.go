package service

import (
	"context"
	"time"

	"holder-scan/internal/scanner/model"
	"holder-scan/internal/scanner/monitor"

	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// Classifier 单个钱包的两项检查
type Classifier interface {
	IsFreshWallet(ctx context.Context, address string, maxAgeHours uint64) (bool, error)
	IsWhale(ctx context.Context, address string, minWhaleSol float64) (bool, error)
}

// ClassificationDriver 并发对 holder 做分类，最多同时处理 concurrency 个 holder
type ClassificationDriver struct {
	tl            *zap.Logger
	classifier    Classifier
	concurrency   int
	lookupTimeout time.Duration
}

func NewClassificationDriver(classifier Classifier, concurrency int, lookupTimeout time.Duration, logger *zap.Logger) *ClassificationDriver {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &ClassificationDriver{
		tl:            logger,
		classifier:    classifier,
		concurrency:   concurrency,
		lookupTimeout: lookupTimeout,
	}
}

// ClassifyAll 输出与输入一一对应，顺序不变
// 单项检查失败或超时只会让该项为 false，不影响其他 holder
func (d *ClassificationDriver) ClassifyAll(ctx context.Context, holders []model.Holder, thresholds model.Thresholds) []model.ClassifiedHolder {
	out := make([]model.ClassifiedHolder, len(holders))
	if len(holders) == 0 {
		return out
	}

	p := pool.New().WithMaxGoroutines(d.concurrency)
	for i, h := range holders {
		i, h := i, h
		p.Go(func() {
			out[i] = d.classifyOne(ctx, h, thresholds)
		})
	}
	p.Wait()
	return out
}

func (d *ClassificationDriver) classifyOne(ctx context.Context, h model.Holder, thresholds model.Thresholds) model.ClassifiedHolder {
	if d.lookupTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.lookupTimeout)
		defer cancel()
	}

	var fresh, whale model.CheckResult
	var wg conc.WaitGroup
	wg.Go(func() {
		v, err := d.classifier.IsFreshWallet(ctx, h.Owner, thresholds.MaxWalletAgeHours)
		fresh = model.CheckResult{Value: v, Err: err}
	})
	wg.Go(func() {
		v, err := d.classifier.IsWhale(ctx, h.Owner, thresholds.MinWhaleSol)
		whale = model.CheckResult{Value: v, Err: err}
	})
	wg.Wait()

	failed := 0
	if fresh.Failed() {
		failed++
		monitor.LookupFailures.WithLabelValues("fresh_wallet").Inc()
		d.tl.Debug("fresh wallet check failed", zap.String("owner", h.Owner), zap.Error(fresh.Err))
	}
	if whale.Failed() {
		failed++
		monitor.LookupFailures.WithLabelValues("whale").Inc()
		d.tl.Debug("whale check failed", zap.String("owner", h.Owner), zap.Error(whale.Err))
	}

	return model.ClassifiedHolder{
		Holder: h,
		Flags: model.ClassificationFlags{
			IsFreshWallet: fresh.Degrade(),
			IsWhale:       whale.Degrade(),
		},
		FailedChecks: failed,
	}
}
