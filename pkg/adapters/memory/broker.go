package memory

import (
	"sync"

	"github.com/aretw0/cellar/pkg/core"
)

// broker fans out store events to subscribers. Publishing never blocks:
// a subscriber that falls behind loses events rather than stalling writes.
type broker struct {
	mu   sync.Mutex
	subs map[chan core.Event]struct{}
}

func newBroker() *broker {
	return &broker{subs: make(map[chan core.Event]struct{})}
}

func (b *broker) subscribe() chan core.Event {
	ch := make(chan core.Event, 16)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *broker) unsubscribe(ch chan core.Event) {
	b.mu.Lock()
	if _, ok := b.subs[ch]; ok {
		delete(b.subs, ch)
		close(ch)
	}
	b.mu.Unlock()
}

func (b *broker) publish(e core.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- e:
		default:
		}
	}
}
