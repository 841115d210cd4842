// Package navigation holds the pending redirect destination for the
// console shell. Gate decisions and logout write to it; the shell polls
// it and performs the actual route change, keeping navigation a separate
// effect from decision making.
package navigation

import (
	"sync"

	"github.com/rs/zerolog"
)

// Bus is a single-slot destination holder. Seq increases on every
// navigation so the shell can distinguish a repeated destination from a
// stale read.
type Bus struct {
	log zerolog.Logger

	mu    sync.Mutex
	route string
	seq   uint64
}

func NewBus(log zerolog.Logger) *Bus {
	return &Bus{log: log}
}

func (b *Bus) Navigate(route string) {
	b.mu.Lock()
	b.route = route
	b.seq++
	seq := b.seq
	b.mu.Unlock()

	b.log.Info().Str("route", route).Uint64("seq", seq).Msg("navigation requested")
}

// Pending returns the latest destination and its sequence number. A zero
// sequence means no navigation has been requested yet.
func (b *Bus) Pending() (route string, seq uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.route, b.seq
}
