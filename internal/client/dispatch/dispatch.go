// Package dispatch keeps blocking data-layer calls off the presentation
// thread. Work runs on its own goroutine per call (Submit) and its result is
// handed back to a single-threaded event Loop, which is the only place
// presentation state is touched.
package dispatch

import (
	"context"
	"sync"
)

// Loop runs posted callbacks one at a time, in the order they arrive.
type Loop struct {
	events   chan func()
	done     chan struct{}
	stopOnce sync.Once
	inflight sync.WaitGroup
}

// NewLoop returns a Loop whose queue holds up to buffer pending callbacks
// before Post blocks.
func NewLoop(buffer int) *Loop {
	return &Loop{
		events: make(chan func(), buffer),
		done:   make(chan struct{}),
	}
}

// Run executes callbacks until ctx is done or Stop is called. It must be
// called from exactly one goroutine.
func (l *Loop) Run(ctx context.Context) {
	for {
		select {
		case fn := <-l.events:
			fn()
		case <-ctx.Done():
			l.Stop()
			return
		case <-l.done:
			return
		}
	}
}

// Post queues fn for execution on the loop. It reports false if the loop
// has stopped, in which case fn is dropped.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.events <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Stop ends Run. Results of tasks still in flight are dropped.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.done) })
}

// Wait blocks until every task started with Submit has finished its work.
func (l *Loop) Wait() {
	l.inflight.Wait()
}

// Submit runs work on a new goroutine and posts render(result) to the loop.
// There is no cancellation: once submitted, work runs to completion.
func Submit[T any](l *Loop, work func() T, render func(T)) {
	l.inflight.Add(1)
	go func() {
		defer l.inflight.Done()
		res := work()
		l.Post(func() { render(res) })
	}()
}

// Call submits work and blocks the calling goroutine until render has run on
// the loop. It returns false if the loop stopped first.
func Call[T any](l *Loop, work func() T, render func(T)) bool {
	rendered := make(chan struct{})
	Submit(l, work, func(res T) {
		render(res)
		close(rendered)
	})
	select {
	case <-rendered:
		return true
	case <-l.done:
		return false
	}
}
