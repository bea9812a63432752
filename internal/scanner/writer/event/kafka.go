package event

import (
	"context"
	"time"

	"holder-scan/internal/scanner/model"
	"holder-scan/internal/scanner/writer"

	"github.com/bytedance/sonic"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const RETRY_COUNT = 3

type KafkaReportWriter struct {
	mq *kafka.Writer
	tl *zap.Logger

	topic string
}

func NewKafkaReportWriter(mq *kafka.Writer, tl *zap.Logger, topic string) writer.BatchWriter[model.ReportEvent] {
	return &KafkaReportWriter{mq: mq, tl: tl, topic: topic}
}

func (w *KafkaReportWriter) BWrite(ctx context.Context, events []model.ReportEvent) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(events))
	for _, e := range events {
		msg, err := w.marshalToMsg(e)
		if err != nil {
			w.tl.Warn("marshal report event failed", zap.String("mint", e.Mint), zap.Error(err))
			continue
		}
		msgs = append(msgs, msg)
	}

	newCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// 重试机制
	var err error
	for attempt := 0; attempt < RETRY_COUNT; attempt++ {
		err = w.mq.WriteMessages(newCtx, msgs...)
		if err == nil {
			break
		}
	}
	if err != nil {
		w.tl.Warn("❌ MQ write failed, exceeded the maximum number of retries", zap.Error(err))
		return err
	}
	return nil
}

func (w *KafkaReportWriter) Close() error {
	return nil
}

func (w *KafkaReportWriter) marshalToMsg(e model.ReportEvent) (kafka.Message, error) {
	jsonData, err := sonic.Marshal(e)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Topic: w.topic,
		Key:   []byte(e.Mint),
		Value: jsonData,
	}, nil
}
