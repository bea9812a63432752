package writer

import (
	"context"
)

type BatchWriter[T any] interface {
	BWrite(ctx context.Context, batch []T) error
	Close() error
}

// Submitter 非阻塞提交
type Submitter[T any] interface {
	Submit(item T)
}

// Fanout 把同一个 item 提交给多个下游
type Fanout[T any] []Submitter[T]

func (f Fanout[T]) Submit(item T) {
	for _, s := range f {
		s.Submit(item)
	}
}
