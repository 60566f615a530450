package client

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"go.etcd.io/bbolt"
)

var bucketLayouts = []byte("layouts")

// Cache stores completed layout sequences keyed by model, anchor word and
// neighbor set, mirroring the producer's own per-anchor layout cache
// Re-focusing a previously visited anchor replays instantly and offline
type Cache struct {
	db *bbolt.DB
}

func OpenCache(path string) (*Cache, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open layout cache: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketLayouts)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create layout bucket: %w", err)
	}
	return &Cache{db: db}, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// cacheKey mirrors the producer's cache key: model, anchor, sorted neighbors
// The neighbor set invalidates the entry when the neighbor query changes
func cacheKey(model string, spec FetchSpec) []byte {
	neighbors := append([]string(nil), spec.Neighbors...)
	sort.Strings(neighbors)
	neighborKey := "no_neighbors"
	if len(neighbors) > 0 {
		neighborKey = strings.Join(neighbors, "_")
	}
	return []byte(model + "\x00" + spec.Anchor + "\x00" + neighborKey)
}

// Get returns the stored sequence for spec, batch by batch
func (c *Cache) Get(model string, spec FetchSpec) ([][]WirePoint, bool) {
	var batches [][]WirePoint
	found := false
	_ = c.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketLayouts).Get(cacheKey(model, spec))
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, &batches); err != nil {
			return nil // treat a corrupt entry as a miss
		}
		found = true
		return nil
	})
	if !found || len(batches) == 0 {
		return nil, false
	}
	return batches, true
}

// Put stores a completed sequence
func (c *Cache) Put(model string, spec FetchSpec, batches [][]WirePoint) error {
	data, err := json.Marshal(batches)
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	return c.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketLayouts).Put(cacheKey(model, spec), data)
	})
}

// Invalidate drops every entry for the given anchor word across neighbor sets
func (c *Cache) Invalidate(model, anchor string) error {
	prefix := []byte(model + "\x00" + anchor + "\x00")
	return c.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketLayouts)
		cur := b.Cursor()
		var doomed [][]byte
		for k, _ := cur.Seek(prefix); k != nil && strings.HasPrefix(string(k), string(prefix)); k, _ = cur.Next() {
			doomed = append(doomed, append([]byte(nil), k...))
		}
		for _, k := range doomed {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}
