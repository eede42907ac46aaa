package notify

import "sync"

// Event carries the storage key and the new serialized value, mirroring what
// a browser storage-change event would have carried.
type Event struct {
	Key   string
	Value []byte
}

// Bus is an in-process publish/subscribe channel: the explicit replacement for
// the ambient browser storage broadcast. Views in the same process subscribe
// and re-load their data when a key they care about changes. Out-of-process
// consumers never see these events and must poll the HTTP API instead.
type Bus struct {
	mu   sync.RWMutex
	subs map[int]chan Event
	next int
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan Event)}
}

// Subscribe registers a listener and returns its channel plus a cancel
// function. The channel is buffered; events beyond the buffer are dropped for
// that subscriber rather than blocking the publisher.
func (b *Bus) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	id := b.next
	b.next++
	ch := make(chan Event, 8)
	b.subs[id] = ch
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if c, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(c)
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers the event to every subscriber without blocking.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
		}
	}
}
