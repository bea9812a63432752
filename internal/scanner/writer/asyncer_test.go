package writer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"holder-scan/internal/scanner/monitor"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type memoryWriter struct {
	mu      sync.Mutex
	batches [][]int
	closed  bool
	err     error
}

func (w *memoryWriter) BWrite(_ context.Context, batch []int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.batches = append(w.batches, append([]int(nil), batch...))
	return w.err
}

func (w *memoryWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

func (w *memoryWriter) items() []int {
	w.mu.Lock()
	defer w.mu.Unlock()
	var out []int
	for _, b := range w.batches {
		out = append(out, b...)
	}
	return out
}

func TestAsyncBatchWriterFlushesOnSize(t *testing.T) {
	mw := &memoryWriter{}
	w := NewAsyncBatchWriter[int](zap.NewNop(), mw, 2, time.Hour, "test_size", 1)
	w.Start(context.Background())

	for i := 0; i < 4; i++ {
		w.Submit(i)
	}
	assert.Eventually(t, func() bool { return len(mw.items()) == 4 }, time.Second, 10*time.Millisecond)

	w.Close()
	assert.Equal(t, []int{0, 1, 2, 3}, mw.items())
	assert.True(t, mw.closed)
}

func TestAsyncBatchWriterFlushesOnInterval(t *testing.T) {
	mw := &memoryWriter{}
	w := NewAsyncBatchWriter[int](zap.NewNop(), mw, 100, 20*time.Millisecond, "test_interval", 1)
	w.Start(context.Background())
	defer w.Close()

	w.Submit(7)
	assert.Eventually(t, func() bool { return len(mw.items()) == 1 }, time.Second, 10*time.Millisecond)
}

func TestAsyncBatchWriterCloseDrains(t *testing.T) {
	mw := &memoryWriter{err: errors.New("sink down")}
	w := NewAsyncBatchWriter[int](zap.NewNop(), mw, 100, time.Hour, "test_drain", 1)
	w.Start(context.Background())

	w.Submit(1)
	w.Submit(2)
	w.Close()
	w.Close()

	// 写入失败只记录，不会重复提交
	assert.Equal(t, []int{1, 2}, mw.items())
}

func TestAsyncBatchWriterDropsWhenFull(t *testing.T) {
	mw := &memoryWriter{}
	w := NewAsyncBatchWriter[int](zap.NewNop(), mw, 1, time.Hour, "test_drop", 1)
	// 未 Start，队列满后直接丢弃
	for i := 0; i < defaultQueueSize+10; i++ {
		w.Submit(i)
	}
	assert.Len(t, w.inputChan, defaultQueueSize)
}

func TestAsyncBatchWriterSubmitAfterClose(t *testing.T) {
	mw := &memoryWriter{}
	w := NewAsyncBatchWriter[int](zap.NewNop(), mw, 10, time.Hour, "test_after_close", 1)
	w.Start(context.Background())

	w.Submit(1)
	w.Close()

	dropped := testutil.ToFloat64(monitor.AsyncWriterMessagesDropped.WithLabelValues("test_after_close"))
	assert.NotPanics(t, func() {
		w.Submit(2)
		w.Submit(3)
	})
	assert.Equal(t, []int{1}, mw.items())
	assert.Equal(t, dropped+2, testutil.ToFloat64(monitor.AsyncWriterMessagesDropped.WithLabelValues("test_after_close")))
}

func TestAsyncBatchWriterConcurrentSubmitAndClose(t *testing.T) {
	mw := &memoryWriter{}
	w := NewAsyncBatchWriter[int](zap.NewNop(), mw, 4, time.Hour, "test_race_close", 1)
	w.Start(context.Background())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				w.Submit(n*100 + j)
			}
		}(i)
	}
	assert.NotPanics(t, w.Close)
	wg.Wait()
	assert.LessOrEqual(t, len(mw.items()), 400)
}

type countingSubmitter struct{ n int }

func (c *countingSubmitter) Submit(int) { c.n++ }

func TestFanout(t *testing.T) {
	a, b := &countingSubmitter{}, &countingSubmitter{}
	f := Fanout[int]{a, b}
	f.Submit(1)
	f.Submit(2)
	assert.Equal(t, 2, a.n)
	assert.Equal(t, 2, b.n)
}
