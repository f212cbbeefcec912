package worker

import (
	"context"
	"log"
	"runtime"
	"sync"

	"screensnip/screenshot"
)

// SessionFunc processes one selected region end to end. An empty action
// means the session runs the configured primary action.
type SessionFunc func(ctx context.Context, region screenshot.Region, action string) error

// ResultCallback is invoked when a session finishes (from a worker
// goroutine). The event loop should pass a closure that posts back into the
// loop safely.
type ResultCallback func(err error)

// Pool is a fixed-size session worker pool with a 1-slot input queue
// (strict back-pressure). A second region submitted while one is in flight
// is dropped rather than queued behind it.
type Pool struct {
	run  SessionFunc
	jobs chan job
	wg   sync.WaitGroup
}

type job struct {
	ctx    context.Context
	region screenshot.Region
	action string
	cb     ResultCallback
}

// New creates a worker pool running fn. Size defaults to NumCPU when
// size<=0. Queue is 1 slot.
func New(size int, fn SessionFunc) *Pool {
	if size <= 0 {
		size = runtime.NumCPU()
	}
	p := &Pool{run: fn, jobs: make(chan job, 1)}
	p.start(size)
	return p
}

func (p *Pool) start(n int) {
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for j := range p.jobs {
				log.Printf("Worker: starting session for region %dx%d", j.region.Width, j.region.Height)
				err := p.run(j.ctx, j.region, j.action)
				log.Printf("Worker: session completed, err=%v", err)
				if j.cb != nil {
					j.cb(err)
				}
			}
		}()
	}
}

// Submit enqueues a session if the single-slot queue is free. Returns false
// if dropped.
func (p *Pool) Submit(ctx context.Context, region screenshot.Region, action string, cb ResultCallback) bool {
	select {
	case p.jobs <- job{ctx: ctx, region: region, action: action, cb: cb}:
		return true
	default:
		return false
	}
}

// Close stops the pool after draining current work.
func (p *Pool) Close() {
	close(p.jobs)
	p.wg.Wait()
}
