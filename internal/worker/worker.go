package worker

import (
	"context"
	"sync"

	"github.com/preemiealert/go-preemie-alerts/internal/models"
)

// ProcessFunc handles one inbound notification.
type ProcessFunc func(ctx context.Context, n *models.Notification) error

// Pool fans inbound notifications out to a fixed set of workers over a
// bounded channel. Submit blocks when the buffer is full.
type Pool struct {
	numWorkers int
	jobs       chan *models.Notification
	processor  ProcessFunc
	wg         sync.WaitGroup
}

func NewPool(numWorkers int, bufferSize int, processor ProcessFunc) *Pool {
	return &Pool{
		numWorkers: numWorkers,
		jobs:       make(chan *models.Notification, bufferSize),
		processor:  processor,
	}
}

func (p *Pool) Start(ctx context.Context) {
	for i := 1; i <= p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}
}

func (p *Pool) worker(ctx context.Context) {
	defer p.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-p.jobs:
			if !ok {
				return
			}
			p.processor(ctx, n)
		}
	}
}

func (p *Pool) Submit(n *models.Notification) {
	p.jobs <- n
}

func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}
