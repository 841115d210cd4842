// Package refresh re-warms invalidated cache entries in the background,
// keeping "mutation succeeded" and "cache refreshed" as two separate
// sequential events for every consumer.
package refresh

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/aexy/console-state/internal/api/metrics"
	"github.com/aexy/console-state/internal/core/ports"
)

const (
	defaultWorkers = 2
	channelBuffer  = 64
)

// Handler re-fetches the resource behind a cache key.
type Handler func(ctx context.Context, key ports.CacheKey)

// Dispatcher routes re-warm jobs to a fixed set of workers using
// consistent hashing on the cache key, so refreshes for the same key are
// applied in order.
type Dispatcher struct {
	workers []chan ports.CacheKey
	log     zerolog.Logger

	mu      sync.RWMutex
	handler Handler
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.CacheKey, numWorkers),
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.CacheKey, channelBuffer)
	}
	return d
}

// SetHandler installs the refresh function. Services enqueue through the
// dispatcher while the handler closes over those same services, so the
// handler is wired after construction.
func (d *Dispatcher) SetHandler(h Handler) {
	d.mu.Lock()
	d.handler = h
	d.mu.Unlock()
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a key to the worker responsible for it. When the worker's
// buffer is full the job is dropped: a re-warm is an optimisation, the
// entry is already invalidated and the next read fetches fresh state.
func (d *Dispatcher) Enqueue(key ports.CacheKey) {
	i := d.shardIndex(key)
	select {
	case d.workers[i] <- key:
		metrics.RefreshQueueDepth.WithLabelValues(strconv.Itoa(i)).Inc()
	default:
		d.log.Debug().Str("key", string(key)).Msg("refresh queue full, job dropped")
	}
}

func (d *Dispatcher) shardIndex(key ports.CacheKey) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.CacheKey) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case key, ok := <-ch:
			if !ok {
				return
			}
			metrics.RefreshQueueDepth.WithLabelValues(label).Dec()

			d.mu.RLock()
			h := d.handler
			d.mu.RUnlock()
			if h == nil {
				continue
			}
			h(ctx, key)
		}
	}
}
