package editor

import (
	"encoding/json"
	"time"

	"github.com/ng-portfolio/backend/internal/content"
	"github.com/ng-portfolio/backend/internal/notify"
	"github.com/ng-portfolio/backend/pkg/logger"
)

const (
	// ContentKey is the well-known storage key holding the serialized document.
	ContentKey = "siteContent"
	// secretKey holds the opaque admin gate string.
	secretKey = "adminSecret"

	// defaultBroadcastDelay gives the underlying storage write a moment to
	// commit before other views are told to re-read it.
	defaultBroadcastDelay = 100 * time.Millisecond
)

// ContentCache is the client-side Content Store: the editor's working copy of
// the portfolio document. Load never fails: any read problem is absorbed by
// the built-in default document. Save writes through and then broadcasts a
// change notification so sibling views re-load.
type ContentCache struct {
	store *LocalStore
	bus   *notify.Bus
	delay time.Duration
}

func NewContentCache(store *LocalStore, bus *notify.Bus) *ContentCache {
	return &ContentCache{store: store, bus: bus, delay: defaultBroadcastDelay}
}

// Load returns the cached document shallow-merged over the defaults: fields
// the stored record carries win (explicit empties included), missing fields
// inherit the default, so a record saved before a field existed picks up the
// new field's default transparently.
func (c *ContentCache) Load() *content.PortfolioContent {
	raw, ok := c.store.Get(ContentKey)
	if !ok {
		return content.Defaults()
	}
	doc, err := content.MergeWithDefaults([]byte(raw))
	if err != nil {
		logger.Warnf("cached content unreadable, serving defaults: %v", err)
		return content.Defaults()
	}
	return doc
}

// Save replaces the cached record and, after a short delay, publishes the
// change so viewers in this process re-load.
func (c *ContentCache) Save(doc *content.PortfolioContent) {
	raw, err := json.Marshal(doc)
	if err != nil {
		logger.Errorf("cannot serialize content: %v", err)
		return
	}
	c.store.Set(ContentKey, string(raw))
	if c.bus != nil {
		time.AfterFunc(c.delay, func() {
			c.bus.Publish(notify.Event{Key: ContentKey, Value: raw})
		})
	}
}

// Reset drops the cached record so the next Load serves the defaults, and
// notifies viewers.
func (c *ContentCache) Reset() {
	c.store.Remove(ContentKey)
	if c.bus != nil {
		time.AfterFunc(c.delay, func() {
			c.bus.Publish(notify.Event{Key: ContentKey, Value: nil})
		})
	}
}

// HasSecret reports whether the admin gate string has been set.
func (c *ContentCache) HasSecret() bool {
	_, ok := c.store.Get(secretKey)
	return ok
}

// SetSecret stores the gate string. Set once; an obfuscation affordance only,
// not a security boundary.
func (c *ContentCache) SetSecret(secret string) {
	c.store.Set(secretKey, secret)
}

// Validate compares the attempt byte-for-byte against the stored gate string.
func (c *ContentCache) Validate(secret string) bool {
	v, ok := c.store.Get(secretKey)
	return ok && v == secret
}
