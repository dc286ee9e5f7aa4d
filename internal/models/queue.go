package models

import "context"

// Work is a unit of schedulable work. The context is cancelled when the
// caller stops the future or the scheduler closes.
type Work[T any] func(ctx context.Context) (T, error)

type Queue[T any] []T

func (wq *Queue[T]) Len() int { return len(*wq) }

// Pop removes the oldest element. Dispatch order is FIFO.
func (wq *Queue[T]) Pop() T {
	old := *wq
	x := old[0]
	*wq = old[1:]
	return x
}

func (wq *Queue[T]) Push(t T) {
	*wq = append(*wq, t)
}

type Result[T any] struct {
	Data T
	Err  error
}
