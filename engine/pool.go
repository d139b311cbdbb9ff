package engine

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a fixed-size set of long-lived worker goroutines. Create it once,
// dispatch tile work against it for many evaluations, and Close it at
// shutdown; spinning workers up per evaluation is exactly the overhead this
// engine exists to avoid.
//
// Each worker owns a queue and work is dispatched round-robin, so task i
// always lands on worker i%Workers. Load balancing happens upstream in the
// Planner's interleaving, not by work stealing.
type Pool struct {
	workers int
	queues  []chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
}

// NewPool starts a pool of n workers. n <= 0 means GOMAXPROCS.
func NewPool(n int) *Pool {
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	p := &Pool{
		workers: n,
		queues:  make([]chan func(), n),
		done:    make(chan struct{}),
	}
	for i := range p.queues {
		p.queues[i] = make(chan func(), 4)
	}
	p.running.Store(true)
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go p.worker(p.queues[i])
	}
	return p
}

func (p *Pool) worker(queue chan func()) {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			// Drain so a barrier racing with Close still releases.
			for {
				select {
				case task := <-queue:
					task()
				default:
					return
				}
			}
		case task := <-queue:
			task()
		}
	}
}

// Workers returns the pool size.
func (p *Pool) Workers() int { return p.workers }

// runAll dispatches tasks round-robin and blocks until every task has
// completed. This barrier is the only blocking point in an evaluation; the
// workers themselves never wait on each other.
func (p *Pool) runAll(tasks []func()) {
	var barrier sync.WaitGroup
	barrier.Add(len(tasks))
	for i, task := range tasks {
		task := task
		wrapped := func() {
			defer barrier.Done()
			task()
		}
		select {
		case p.queues[i%p.workers] <- wrapped:
		case <-p.done:
			// Pool shut down mid-dispatch; run inline so the barrier
			// still releases with every tile written.
			wrapped()
		}
	}
	barrier.Wait()
}

// Close stops the workers. Safe to call more than once; in-flight tasks
// finish before their worker exits its queue receive.
func (p *Pool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}
