package writer

import (
	"context"
	"sync"
	"time"

	"holder-scan/internal/scanner/monitor"

	"go.uber.org/zap"
)

const defaultQueueSize = 1024

type AsyncBatchWriter[T any] struct {
	id            string
	workers       int
	tl            *zap.Logger
	writer        BatchWriter[T]
	inputChan     chan T
	wg            sync.WaitGroup
	batchSize     int
	flushInterval time.Duration
	closeOnce     sync.Once

	// closed 之后的 Submit 直接丢弃，避免向已关闭的 channel 发送
	mu     sync.RWMutex
	closed bool
}

func NewAsyncBatchWriter[T any](tl *zap.Logger, writer BatchWriter[T], batchSize int, flushInterval time.Duration, id string, workers int) *AsyncBatchWriter[T] {
	if batchSize <= 0 {
		batchSize = 1
	}
	if workers <= 0 {
		workers = 1
	}
	return &AsyncBatchWriter[T]{
		id:            id,
		workers:       workers,
		tl:            tl,
		writer:        writer,
		inputChan:     make(chan T, defaultQueueSize),
		batchSize:     batchSize,
		flushInterval: flushInterval,
	}
}

func (b *AsyncBatchWriter[T]) Start(ctx context.Context) {
	for i := 0; i < b.workers; i++ {
		b.wg.Add(1)
		go b.processItems(ctx)
	}
}

func (b *AsyncBatchWriter[T]) processItems(ctx context.Context) {
	defer b.wg.Done()
	ticker := time.NewTicker(b.flushInterval)
	defer ticker.Stop()

	var batch = make([]T, 0, b.batchSize)
	for {
		select {
		case <-ctx.Done():
			if len(batch) > 0 {
				// ctx 已取消，用新的 ctx 把剩余数据写完
				b.writeAndRecord(context.Background(), batch)
			}
			return
		case item, ok := <-b.inputChan:
			if !ok {
				if len(batch) > 0 {
					b.writeAndRecord(ctx, batch)
				}
				return
			}
			batch = append(batch, item)
			if len(batch) >= b.batchSize {
				b.writeAndRecord(ctx, batch)
				batch = make([]T, 0, b.batchSize)
			}
		case <-ticker.C:
			if len(batch) > 0 {
				b.writeAndRecord(ctx, batch)
				batch = make([]T, 0, b.batchSize)
			}
		}
	}
}

// 封装写入操作并记录指标
func (b *AsyncBatchWriter[T]) writeAndRecord(ctx context.Context, batch []T) {
	startTime := time.Now()
	monitor.AsyncWriterItemsWritten.WithLabelValues(b.id).Add(float64(len(batch)))

	if err := b.writer.BWrite(ctx, batch); err != nil {
		monitor.AsyncWriterFlushErrors.WithLabelValues(b.id).Inc()
		b.tl.Warn("batch write failed", zap.String("id", b.id), zap.Int("size", len(batch)), zap.Error(err))
	}

	monitor.AsyncWriterFlushDuration.WithLabelValues(b.id).Observe(time.Since(startTime).Seconds())
}

// Submit 队列满或已关闭时直接丢弃，不阻塞调用方
func (b *AsyncBatchWriter[T]) Submit(item T) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		monitor.AsyncWriterMessagesDropped.WithLabelValues(b.id).Inc()
		b.tl.Warn("Batch writer closed, dropping item", zap.String("id", b.id))
		return
	}
	select {
	case b.inputChan <- item:
		monitor.AsyncWriterMessagesQueued.WithLabelValues(b.id).Inc()
	default:
		monitor.AsyncWriterMessagesDropped.WithLabelValues(b.id).Inc()
		b.tl.Warn("Batch input channel full, dropping item", zap.String("id", b.id))
	}
}

// Close 关闭输入并等待剩余数据写完，之后的 Submit 会被丢弃
func (b *AsyncBatchWriter[T]) Close() {
	b.closeOnce.Do(func() {
		b.mu.Lock()
		b.closed = true
		close(b.inputChan)
		b.mu.Unlock()
		b.wg.Wait()
		if err := b.writer.Close(); err != nil {
			b.tl.Warn("close batch writer failed", zap.String("id", b.id), zap.Error(err))
		}
	})
}
