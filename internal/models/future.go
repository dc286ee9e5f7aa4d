package models

import "context"

// Future gives access to the result of one scheduled work function. The
// result channel is buffered: a future nobody reads does not block a worker.
type Future[T any] struct {
	c      chan Result[T]
	cancel context.CancelFunc
}

func NewFuture[T any](c chan Result[T], cancel context.CancelFunc) *Future[T] {
	return &Future[T]{c: c, cancel: cancel}
}

// C returns the channel on which the result is delivered exactly once.
func (f *Future[T]) C() <-chan Result[T] {
	return f.c
}

// Stop cancels the context handed to the work function. The work decides
// whether and how fast it reacts; the result still arrives on C.
func (f *Future[T]) Stop() {
	f.cancel()
}
