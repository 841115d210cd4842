// Package scheme carries the live system color scheme. The console shell
// reports OS scheme changes to the sidecar; the hub fans them out to
// subscribers (the preference service) and remembers the current value.
package scheme

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/aexy/console-state/internal/core/domain"
)

// Hub implements ports.ColorSchemeSignal. Subscriptions are torn down via
// the cancel function returned by Subscribe.
type Hub struct {
	log zerolog.Logger

	mu      sync.Mutex
	current domain.ColorScheme
	nextID  int
	subs    map[int]func(domain.ColorScheme)
}

func NewHub(initial domain.ColorScheme, log zerolog.Logger) *Hub {
	if initial != domain.SchemeDark {
		initial = domain.SchemeLight
	}
	return &Hub{
		log:     log,
		current: initial,
		subs:    make(map[int]func(domain.ColorScheme)),
	}
}

func (h *Hub) Current() domain.ColorScheme {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// Set records a new system scheme and notifies subscribers when the value
// actually changed.
func (h *Hub) Set(s domain.ColorScheme) {
	if s != domain.SchemeDark && s != domain.SchemeLight {
		return
	}

	h.mu.Lock()
	if h.current == s {
		h.mu.Unlock()
		return
	}
	h.current = s
	fns := make([]func(domain.ColorScheme), 0, len(h.subs))
	for _, fn := range h.subs {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	h.log.Debug().Str("scheme", string(s)).Msg("system color scheme changed")
	for _, fn := range fns {
		fn(s)
	}
}

func (h *Hub) Subscribe(fn func(domain.ColorScheme)) (cancel func()) {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = fn
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}
}
