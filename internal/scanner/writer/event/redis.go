package event

import (
	"context"
	"time"

	"holder-scan/internal/scanner/model"
	"holder-scan/internal/scanner/writer"
	"holder-scan/pkg/utils"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// REDIS_LATEST_REPORT_TTL 每个 mint 最近一份报告的保留时间
const REDIS_LATEST_REPORT_TTL = 6 * time.Hour

// RedisReportWriter 把报告发布到频道，并保存每个 mint 最近一份报告
type RedisReportWriter struct {
	redis   redis.Cmdable
	tl      *zap.Logger
	channel string
}

func NewRedisReportWriter(rdb redis.Cmdable, tl *zap.Logger, channelPrefix string) writer.BatchWriter[model.ReportEvent] {
	return &RedisReportWriter{redis: rdb, tl: tl, channel: utils.ReportChannelKey(channelPrefix)}
}

func (w *RedisReportWriter) BWrite(ctx context.Context, events []model.ReportEvent) error {
	if len(events) == 0 {
		return nil
	}

	pipe := w.redis.Pipeline()
	for _, e := range events {
		payload, err := sonic.Marshal(e)
		if err != nil {
			w.tl.Warn("marshal report event failed", zap.String("mint", e.Mint), zap.Error(err))
			continue
		}
		pipe.Publish(ctx, w.channel, payload)
		pipe.Set(ctx, utils.ReportMessageKey(e.Mint), payload, REDIS_LATEST_REPORT_TTL)
	}

	// 执行 Pipeline 并添加重试机制
	var err error
	for attempt := 0; attempt < RETRY_COUNT; attempt++ {
		_, err = pipe.Exec(ctx)
		if err == nil {
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	if err != nil {
		w.tl.Warn("❌ Redis pipeline exec failed, exceeded the maximum number of retries", zap.Error(err))
		return err
	}
	return nil
}

func (w *RedisReportWriter) Close() error {
	return nil
}
