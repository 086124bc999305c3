package hub

import (
	"context"
	"hash/fnv"
	"sync"

	"github.com/rs/zerolog"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// Dispatcher fans change notifications out to local subscribers using a
// fixed set of workers sharded by topic, guaranteeing per-topic delivery
// ordering. Signals are coalesced: a subscriber that has not yet drained
// its pending signal is not queued a second one.
type Dispatcher struct {
	workers []chan string
	log     zerolog.Logger

	mu     sync.RWMutex
	subs   map[string]map[int]chan struct{}
	nextID int
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan string, numWorkers),
		log:     log,
		subs:    make(map[string]map[int]chan struct{}),
	}
	for i := range d.workers {
		d.workers[i] = make(chan string, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for _, ch := range d.workers {
		go d.runWorker(ctx, ch)
	}
}

// Notify enqueues a change notification for topic. The call is non-blocking
// up to channelBuffer capacity.
func (d *Dispatcher) Notify(topic string) {
	d.workers[d.shardIndex(topic)] <- topic
}

// Subscribe registers a listener for topic and returns its signal channel
// together with an unsubscribe func.
func (d *Dispatcher) Subscribe(topic string) (<-chan struct{}, func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	id := d.nextID
	d.nextID++

	ch := make(chan struct{}, 1)
	if d.subs[topic] == nil {
		d.subs[topic] = make(map[int]chan struct{})
	}
	d.subs[topic][id] = ch

	return ch, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		delete(d.subs[topic], id)
		if len(d.subs[topic]) == 0 {
			delete(d.subs, topic)
		}
	}
}

// shardIndex maps a topic deterministically to a worker index.
func (d *Dispatcher) shardIndex(topic string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(topic))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, ch <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case topic, ok := <-ch:
			if !ok {
				return
			}
			d.deliver(topic)
		}
	}
}

func (d *Dispatcher) deliver(topic string) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, ch := range d.subs[topic] {
		select {
		case ch <- struct{}{}:
		default:
			// signal already pending; the subscriber will re-read anyway
		}
	}
}
