package editor

import (
	"sync"

	"github.com/ng-portfolio/backend/internal/content"
	"github.com/ng-portfolio/backend/internal/notify"
)

// Viewer is the display side of the content flow: it holds a read-only copy
// of the document and re-loads it from the cache whenever the bus announces
// a change to the content key. Processes that do not share the bus (separate
// deployments, server-rendered views) must poll the HTTP API instead.
type Viewer struct {
	cache  *ContentCache
	mu     sync.RWMutex
	doc    *content.PortfolioContent
	cancel func()
}

// NewViewer loads the current document and starts listening for changes.
// Call Close when done.
func NewViewer(cache *ContentCache, bus *notify.Bus) *Viewer {
	v := &Viewer{cache: cache}
	v.doc = cache.Load()

	ch, cancel := bus.Subscribe()
	v.cancel = cancel
	go func() {
		for ev := range ch {
			if ev.Key != ContentKey {
				continue
			}
			doc := cache.Load()
			v.mu.Lock()
			v.doc = doc
			v.mu.Unlock()
		}
	}()
	return v
}

// Current returns the most recently loaded document.
func (v *Viewer) Current() *content.PortfolioContent {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.doc
}

// Close unsubscribes from the bus.
func (v *Viewer) Close() {
	if v.cancel != nil {
		v.cancel()
	}
}
