package scanner

import (
	"context"
	"time"

	"holder-scan/internal/scanner/config"
	"holder-scan/internal/scanner/model"
	"holder-scan/internal/scanner/repository"
	"holder-scan/internal/scanner/service"
	"holder-scan/internal/scanner/writer"
	"holder-scan/internal/scanner/writer/event"

	"go.uber.org/zap"
)

// Pipeline 报告服务及其异步推送
type Pipeline struct {
	Report  *service.ReportService
	writers []*writer.AsyncBatchWriter[model.ReportEvent]
}

// NewPipeline 按配置挂上 Kafka / Redis / Lark 推送，都未启用时报告只返回给调用方
func NewPipeline(cfg config.Config, repo repository.Repository, logger *zap.Logger) *Pipeline {
	p := &Pipeline{
		Report: service.NewReportService(cfg.Report, repo.GetLedger(), logger),
	}

	if mq := repo.GetMQ(); mq != nil {
		p.addWriter(logger, event.NewKafkaReportWriter(mq, logger, cfg.Kafka.TopicReport), 50, time.Second, "report_kafka_writer")
	}
	if rdb := repo.GetRDB(); rdb != nil {
		p.addWriter(logger, event.NewRedisReportWriter(rdb, logger, cfg.Redis.ChannelPrefix), 50, time.Second, "report_redis_writer")
	}
	if lark := repo.GetLarkClient(); lark != nil {
		p.addWriter(logger, event.NewLarkReportWriter(lark, logger, cfg.Lark.Webhook), 10, 2*time.Second, "report_lark_writer")
	}

	if len(p.writers) > 0 {
		sinks := make(writer.Fanout[model.ReportEvent], 0, len(p.writers))
		for _, w := range p.writers {
			sinks = append(sinks, w)
		}
		p.Report.WithSink(sinks)
	}
	return p
}

func (p *Pipeline) addWriter(logger *zap.Logger, w writer.BatchWriter[model.ReportEvent], batchSize int, flushInterval time.Duration, id string) {
	aw := writer.NewAsyncBatchWriter(logger, w, batchSize, flushInterval, id, 1)
	aw.Start(context.Background())
	p.writers = append(p.writers, aw)
	logger.Info("report sink enabled", zap.String("id", id))
}

// Close 等待已提交的事件写完
func (p *Pipeline) Close() {
	for _, w := range p.writers {
		w.Close()
	}
}
