package editor

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ng-portfolio/backend/internal/content"
	"github.com/ng-portfolio/backend/internal/notify"
)

func newTestCache() (*ContentCache, *notify.Bus) {
	bus := notify.NewBus()
	c := NewContentCache(NewLocalStore(""), bus)
	c.delay = time.Millisecond // keep tests fast
	return c, bus
}

func TestCache_LoadEmptyReturnsDefaults(t *testing.T) {
	c, _ := newTestCache()
	assert.Equal(t, content.Defaults(), c.Load())
}

func TestCache_LoadMergesStoredOverDefaults(t *testing.T) {
	c, _ := newTestCache()
	c.store.Set(ContentKey, `{"name":"X"}`)

	doc := c.Load()
	assert.Equal(t, "X", doc.Name)
	assert.Equal(t, content.Defaults().Role, doc.Role)
	assert.Equal(t, content.Defaults().SkillsTabs, doc.SkillsTabs)
}

func TestCache_GarbageFallsBackToDefaults(t *testing.T) {
	c, _ := newTestCache()
	c.store.Set(ContentKey, "{broken")
	assert.Equal(t, content.Defaults(), c.Load())
}

func TestCache_SaveRoundTrip(t *testing.T) {
	c, _ := newTestCache()

	d := content.Defaults()
	d.Name = "Ada"
	d.Bio = ""
	c.Save(d)

	got := c.Load()
	assert.Equal(t, "Ada", got.Name)
	// an explicitly saved empty field stays empty (explicit beats default)
	assert.Equal(t, "", got.Bio)
}

func TestCache_SaveNotifiesViewer(t *testing.T) {
	c, bus := newTestCache()
	v := NewViewer(c, bus)
	defer v.Close()

	assert.Equal(t, content.Defaults().Name, v.Current().Name)

	d := content.Defaults()
	d.Name = "Ada"
	c.Save(d)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if v.Current().Name == "Ada" {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("viewer never observed the save, still sees %q", v.Current().Name)
}

func TestCache_ResetNotifiesAndServesDefaults(t *testing.T) {
	c, bus := newTestCache()

	d := content.Defaults()
	d.Name = "Ada"
	c.Save(d)

	v := NewViewer(c, bus)
	defer v.Close()

	c.Reset()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if v.Current().Name == content.Defaults().Name {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("viewer never observed the reset")
}

func TestSecretGate(t *testing.T) {
	c, _ := newTestCache()

	require.False(t, c.HasSecret())
	assert.False(t, c.Validate("anything"))

	c.SetSecret("hunter2")
	require.True(t, c.HasSecret())
	assert.True(t, c.Validate("hunter2"))
	assert.False(t, c.Validate("Hunter2"))
	assert.False(t, c.Validate(""))
}

func TestLocalStore_FilePersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.json")

	s := NewLocalStore(path)
	s.Set("siteContent", `{"name":"persisted"}`)
	s.Set("adminSecret", "s3cret")
	s.Remove("adminSecret")

	reopened := NewLocalStore(path)
	v, ok := reopened.Get("siteContent")
	require.True(t, ok)
	assert.Equal(t, `{"name":"persisted"}`, v)
	_, ok = reopened.Get("adminSecret")
	assert.False(t, ok)
}
