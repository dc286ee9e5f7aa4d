package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/pipeforge/prql-translator/internal/models"
)

type workRequest struct {
	fn     models.Work[any]
	c      chan models.Result[any]
	ctx    context.Context
	cancel context.CancelFunc
}

type worker struct {
	done chan any
}

func newWorker(done chan any) worker {
	return worker{done: done}
}

func (w worker) Work(r workRequest) {
	defer func() {
		if rec := recover(); rec != nil {
			r.c <- models.Result[any]{Err: fmt.Errorf("worker panicked: %v", rec)}
		}
		r.cancel()
		w.done <- struct{}{}
	}()
	v, err := r.fn(r.ctx)
	r.c <- models.Result[any]{Data: v, Err: err}
}

// Scheduler runs work functions on a fixed pool of workers. Work added while
// every worker is busy queues up and dispatches in FIFO order.
type Scheduler struct {
	workers    *models.Queue[worker]
	workQueue  *models.Queue[workRequest]
	quit       chan any
	done       chan any
	work       chan workRequest
	mainCtx    context.Context
	mainCancel context.CancelFunc

	wg     sync.WaitGroup
	mu     sync.Mutex
	closed bool
}

func NewScheduler(nbWorkers int) *Scheduler {
	// buffered so workers finishing after Close never block on the signal
	done := make(chan any, nbWorkers)
	wq := &models.Queue[worker]{}
	for range nbWorkers {
		wq.Push(newWorker(done))
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		workers:    wq,
		workQueue:  &models.Queue[workRequest]{},
		quit:       make(chan any),
		done:       done,
		work:       make(chan workRequest),
		mainCtx:    ctx,
		mainCancel: cancel,
	}
	go s.run()
	return s
}

// AddWork schedules w and returns its future. After Close the future resolves
// immediately with context.Canceled.
func (s *Scheduler) AddWork(w models.Work[any]) *models.Future[any] {
	c := make(chan models.Result[any], 1)
	ctx, cancel := context.WithCancel(s.mainCtx)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		cancel()
		c <- models.Result[any]{Err: context.Canceled}
		return models.NewFuture(c, cancel)
	}
	// the mutex pins the run loop: Close cannot signal quit while a send
	// is in progress
	s.work <- workRequest{fn: w, c: c, ctx: ctx, cancel: cancel}
	s.mu.Unlock()

	return models.NewFuture(c, cancel)
}

// Close cancels the context of every in-flight work function, resolves all
// queued futures with context.Canceled and waits for in-flight work to
// return.
func (s *Scheduler) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.mainCancel()
	s.quit <- struct{}{}
	s.wg.Wait()
}

func (s *Scheduler) run() {
	for {
		select {
		case w := <-s.work:
			s.workQueue.Push(w)
			if s.workers.Len() == 0 {
				continue
			}
			s.dispatch(s.workQueue.Pop())
		case <-s.done:
			s.workers.Push(newWorker(s.done))

			if s.workQueue.Len() == 0 {
				continue
			}
			s.dispatch(s.workQueue.Pop())
		case <-s.quit:
			for s.workQueue.Len() > 0 {
				r := s.workQueue.Pop()
				r.cancel()
				r.c <- models.Result[any]{Err: context.Canceled}
			}
			return
		}
	}
}

func (s *Scheduler) dispatch(r workRequest) {
	worker := s.workers.Pop()
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		worker.Work(r)
	}()
}
