package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashkendre1298/vastureports/config"
	"github.com/akashkendre1298/vastureports/model"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestStore(ttlMinutes, maxArtifacts int) (*ArtifactStore, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)}
	store := NewArtifactStore(&config.DownloadsConfig{TTLMinutes: ttlMinutes, MaxArtifacts: maxArtifacts})
	store.now = clock.Now
	return store, clock
}

func artifact(name string) *model.Artifact {
	return &model.Artifact{Filename: name, ContentType: "application/pdf", Data: []byte("%PDF")}
}

func TestArtifactStorePutGet(t *testing.T) {
	store, _ := newTestStore(10, 0)

	item := store.Put(artifact("clients_report.pdf"))
	require.NotEmpty(t, item.ID)
	assert.Equal(t, 10*time.Minute, item.ExpiresAt.Sub(item.CreatedAt))

	got := store.Get(item.ID)
	require.NotNil(t, got)
	assert.Equal(t, "clients_report.pdf", got.Artifact.Filename)
	assert.Nil(t, store.Get("missing"))
}

func TestArtifactStoreTakeIsOneShot(t *testing.T) {
	store, _ := newTestStore(10, 0)
	item := store.Put(artifact("cases_report.xlsx"))

	require.NotNil(t, store.Take(item.ID))
	assert.Nil(t, store.Take(item.ID))
	assert.Zero(t, store.Count())
}

func TestArtifactStoreExpiry(t *testing.T) {
	store, clock := newTestStore(10, 0)
	item := store.Put(artifact("executives_report.pdf"))

	clock.Advance(9 * time.Minute)
	assert.NotNil(t, store.Get(item.ID))

	clock.Advance(2 * time.Minute)
	assert.Nil(t, store.Get(item.ID))
	assert.Zero(t, store.Count())
}

func TestArtifactStorePutPurgesExpired(t *testing.T) {
	store, clock := newTestStore(1, 0)
	store.Put(artifact("a.pdf"))
	store.Put(artifact("b.pdf"))

	clock.Advance(2 * time.Minute)
	store.Put(artifact("c.pdf"))

	assert.Equal(t, 1, store.Count())
}

func TestArtifactStoreEvictsOldest(t *testing.T) {
	store, clock := newTestStore(10, 2)

	first := store.Put(artifact("first.pdf"))
	clock.Advance(time.Second)
	second := store.Put(artifact("second.pdf"))
	clock.Advance(time.Second)
	third := store.Put(artifact("third.pdf"))

	assert.Equal(t, 2, store.Count())
	assert.Nil(t, store.Get(first.ID))
	assert.NotNil(t, store.Get(second.ID))
	assert.NotNil(t, store.Get(third.ID))
}

func TestArtifactStoreDelete(t *testing.T) {
	store, _ := newTestStore(10, 0)
	item := store.Put(artifact("a.pdf"))

	store.Delete(item.ID)
	store.Delete("unknown")

	assert.Nil(t, store.Get(item.ID))
}
