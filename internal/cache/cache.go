// Package cache wraps bigcache as an explicit read-through cache keyed by
// entity id. Writers never patch cached values in place: after a confirmed
// successful mutation the affected keys are invalidated so the next read
// re-fetches server truth.
package cache

import (
	"bytes"
	"context"
	"encoding/gob"
	"time"

	"github.com/allegro/bigcache/v3"
)

// Key builders for the two cached read models.
func ApplicationKey(id string) string { return "application:" + id }
func TimelineKey(id string) string    { return "timeline:" + id }

type Cache struct {
	store *bigcache.BigCache
}

func New(eviction time.Duration) (*Cache, error) {
	store, err := bigcache.New(context.Background(), bigcache.DefaultConfig(eviction))
	if err != nil {
		return nil, err
	}
	return &Cache{store: store}, nil
}

// Get decodes the cached value for key into out, reporting whether the key
// was present.
func (c *Cache) Get(key string, out interface{}) bool {
	raw, err := c.store.Get(key)
	if err != nil {
		return false
	}
	dec := gob.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(out); err != nil {
		return false
	}
	return true
}

func (c *Cache) Set(key string, val interface{}) error {
	buf := &bytes.Buffer{}
	if err := gob.NewEncoder(buf).Encode(val); err != nil {
		return err
	}
	return c.store.Set(key, buf.Bytes())
}

// Invalidate marks a key stale. A missing key is not an error: the point is
// only that the next read re-fetches.
func (c *Cache) Invalidate(key string) {
	_ = c.store.Delete(key)
}
