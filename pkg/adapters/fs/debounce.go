package fs

import (
	"sync"
	"time"

	"github.com/aretw0/cellar/pkg/core"
)

// debouncer coalesces bursts of events for the same record: editors tend
// to produce several filesystem events per save, the store should report
// one.
type debouncer struct {
	window time.Duration

	mu      sync.Mutex
	pending map[string]*pendingEvent
	stopped bool
	wg      sync.WaitGroup
}

type pendingEvent struct {
	timer *time.Timer
	event core.Event
	fired bool
}

func newDebouncer(window time.Duration) *debouncer {
	return &debouncer{
		window:  window,
		pending: make(map[string]*pendingEvent),
	}
}

// add schedules the event for delivery after the quiet window. A newer
// event for the same record replaces the pending one and restarts the
// window.
func (d *debouncer) add(e core.Event, fire func(core.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	key := string(e.Kind) + "/" + e.ID
	if p, ok := d.pending[key]; ok {
		// Reset only extends a timer that has not gone off. If it has, the
		// callback is already on its way with the previous event; Reset has
		// re-armed the timer, but the fired flag makes the extra run a no-op.
		// Schedule a fresh entry for this event instead.
		if !p.fired && p.timer.Reset(d.window) {
			p.event = e
			return
		}
	}

	p := &pendingEvent{event: e}
	d.wg.Add(1)
	p.timer = time.AfterFunc(d.window, func() {
		d.mu.Lock()
		if p.fired {
			d.mu.Unlock()
			return
		}
		p.fired = true
		latest := p.event
		if d.pending[key] == p {
			delete(d.pending, key)
		}
		d.mu.Unlock()

		fire(latest)
		d.wg.Done()
	})
	d.pending[key] = p
}

// stopAndWait rejects new events and waits for in-flight timers to fire,
// bounded by the timeout.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
	}
}
