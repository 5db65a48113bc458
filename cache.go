package dataset

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

// statBucket is the bbolt bucket holding per-image measurements.
var statBucket = []byte("measurements")

// cacheOpenTimeout bounds how long opening the cache database may block on
// another process holding its file lock.
const cacheOpenTimeout = 5 * time.Second

// statCache stores per-image measurements between runs.
// Implemented by *boltCache for production and nopCache when disabled.
type statCache interface {
	// get returns the cached measurement for path if the recorded file
	// size and mtime still match.
	get(path string, size, mtime int64) (ImageStat, bool)

	// put stores a measurement together with the file's size and mtime.
	put(path string, size, mtime int64, st ImageStat) error

	// prune removes all cached measurements.
	prune() error

	// close releases the underlying database.
	close() error
}

// cacheEntry is the stored form of one measurement.
type cacheEntry struct {
	// Size and MTime identify the file state the measurement belongs to.
	Size  int64 `json:"size"`
	MTime int64 `json:"mtime"`

	// Stat is the measurement itself.
	Stat ImageStat `json:"stat"`
}

// boltCache implements statCache on a bbolt database.
type boltCache struct {
	db *bbolt.DB
}

// Ensure boltCache implements statCache.
var _ statCache = (*boltCache)(nil)

// newBoltCache opens (or creates) the measurement cache at path.
func newBoltCache(path string) (*boltCache, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: cacheOpenTimeout})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCacheError, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(statBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrCacheError, err)
	}

	return &boltCache{db: db}, nil
}

// get returns the cached measurement for path if size and mtime still match.
func (c *boltCache) get(path string, size, mtime int64) (ImageStat, bool) {
	var entry cacheEntry
	found := false

	c.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(statBucket)
		if b == nil {
			return nil
		}
		data := b.Get([]byte(path))
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, &entry); err != nil {
			return nil // treat a corrupt entry as a miss
		}
		found = true
		return nil
	})

	if !found || entry.Size != size || entry.MTime != mtime {
		return ImageStat{}, false
	}
	return entry.Stat, true
}

// put stores a measurement keyed by path.
func (c *boltCache) put(path string, size, mtime int64, st ImageStat) error {
	data, err := json.Marshal(cacheEntry{Size: size, MTime: mtime, Stat: st})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCacheError, err)
	}

	err = c.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(statBucket).Put([]byte(path), data)
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCacheError, err)
	}
	return nil
}

// prune removes all cached measurements.
func (c *boltCache) prune() error {
	err := c.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(statBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucket(statBucket)
		return err
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCacheError, err)
	}
	return nil
}

// close releases the database.
func (c *boltCache) close() error {
	return c.db.Close()
}

// nopCache is the statCache used when caching is disabled or unavailable.
type nopCache struct{}

var _ statCache = nopCache{}

func (nopCache) get(string, int64, int64) (ImageStat, bool) { return ImageStat{}, false }
func (nopCache) put(string, int64, int64, ImageStat) error  { return nil }
func (nopCache) prune() error                               { return nil }
func (nopCache) close() error                               { return nil }
