// Package stream fans newly persisted alerts out to live subscribers
// (the dashboard websocket). Delivery is best-effort: slow subscribers
// drop alerts rather than stalling ingestion.
package stream

import (
	"sync"
	"sync/atomic"

	"github.com/preemiealert/go-preemie-alerts/internal/models"
)

type Broadcaster struct {
	subscribers map[uint64]chan *models.AlertRecord
	nextID      atomic.Uint64
	mu          sync.RWMutex
	closed      bool
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[uint64]chan *models.AlertRecord),
	}
}

func (b *Broadcaster) Subscribe() (uint64, <-chan *models.AlertRecord) {
	id := b.nextID.Add(1)
	ch := make(chan *models.AlertRecord, 64)

	b.mu.Lock()
	if b.closed {
		close(ch)
	} else {
		b.subscribers[id] = ch
	}
	b.mu.Unlock()

	return id, ch
}

func (b *Broadcaster) Unsubscribe(id uint64) {
	b.mu.Lock()
	if ch, ok := b.subscribers[id]; ok {
		close(ch)
		delete(b.subscribers, id)
	}
	b.mu.Unlock()
}

func (b *Broadcaster) Broadcast(a *models.AlertRecord) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- a:
		default:
			// Skip slow subscribers
		}
	}
}

func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Close ends every subscription. Subsequent Subscribe calls get a closed
// channel, subsequent Broadcasts are no-ops.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	for id, ch := range b.subscribers {
		close(ch)
		delete(b.subscribers, id)
	}
	b.closed = true
	b.mu.Unlock()
}
