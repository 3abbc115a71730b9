package concurrency

import "sync"

// Pool runs jobs on their own goroutines with at most size of them in flight.
// A size of zero means unbounded.
type Pool struct {
	queue chan struct{}
	wg    sync.WaitGroup
	jobs  int
}

func NewPool(size int) *Pool {
	if size < 0 {
		size = 0
	}
	return &Pool{
		jobs:  size,
		queue: make(chan struct{}, size),
	}
}

// Enqueue blocks while the pool is full, then starts job.
func (p *Pool) Enqueue(job func(params ...any), params ...any) {
	p.wg.Add(1)
	if p.jobs == 0 {
		go func() {
			defer p.wg.Done()
			job(params...)
		}()
		return
	}
	p.queue <- struct{}{}
	go func() {
		defer func() {
			<-p.queue
			p.wg.Done()
		}()
		job(params...)
	}()
}

// Wait blocks until every enqueued job has returned.
func (p *Pool) Wait() {
	p.wg.Wait()
}
