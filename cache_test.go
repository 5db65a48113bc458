package dataset

import (
	"path/filepath"
	"testing"
)

func newTestCache(t *testing.T) *boltCache {
	t.Helper()
	cache, err := newBoltCache(filepath.Join(t.TempDir(), "measurements.db"))
	if err != nil {
		t.Fatalf("newBoltCache() error = %v", err)
	}
	t.Cleanup(func() { cache.close() })
	return cache
}

func TestBoltCachePutGet(t *testing.T) {
	cache := newTestCache(t)

	st := ImageStat{
		Width:  640,
		Height: 480,
		Mean:   [3]float64{120.5, 110.25, 98.75},
		Std:    [3]float64{40.5, 39.0, 35.125},
	}

	if err := cache.put("wikiart/a.jpg", 1234, 5678, st); err != nil {
		t.Fatalf("put() error = %v", err)
	}

	t.Run("hit on matching size and mtime", func(t *testing.T) {
		got, ok := cache.get("wikiart/a.jpg", 1234, 5678)
		if !ok {
			t.Fatal("get() miss, want hit")
		}
		if got != st {
			t.Errorf("get() = %+v, want %+v", got, st)
		}
	})

	t.Run("miss on unknown path", func(t *testing.T) {
		if _, ok := cache.get("wikiart/b.jpg", 1234, 5678); ok {
			t.Error("get() hit, want miss")
		}
	})

	t.Run("miss on changed size", func(t *testing.T) {
		if _, ok := cache.get("wikiart/a.jpg", 999, 5678); ok {
			t.Error("get() hit, want miss")
		}
	})

	t.Run("miss on changed mtime", func(t *testing.T) {
		if _, ok := cache.get("wikiart/a.jpg", 1234, 999); ok {
			t.Error("get() hit, want miss")
		}
	})
}

func TestBoltCacheOverwrite(t *testing.T) {
	cache := newTestCache(t)

	first := ImageStat{Width: 100, Height: 100}
	second := ImageStat{Width: 200, Height: 200}

	if err := cache.put("a.jpg", 1, 1, first); err != nil {
		t.Fatalf("put() error = %v", err)
	}
	if err := cache.put("a.jpg", 2, 2, second); err != nil {
		t.Fatalf("put() error = %v", err)
	}

	if _, ok := cache.get("a.jpg", 1, 1); ok {
		t.Error("stale entry still served after overwrite")
	}
	got, ok := cache.get("a.jpg", 2, 2)
	if !ok {
		t.Fatal("get() miss after overwrite")
	}
	if got != second {
		t.Errorf("get() = %+v, want %+v", got, second)
	}
}

func TestBoltCachePrune(t *testing.T) {
	cache := newTestCache(t)

	if err := cache.put("a.jpg", 1, 1, ImageStat{Width: 1, Height: 1}); err != nil {
		t.Fatalf("put() error = %v", err)
	}
	if err := cache.prune(); err != nil {
		t.Fatalf("prune() error = %v", err)
	}

	if _, ok := cache.get("a.jpg", 1, 1); ok {
		t.Error("entry survived prune")
	}

	// The cache must stay usable after a prune.
	if err := cache.put("b.jpg", 2, 2, ImageStat{Width: 2, Height: 2}); err != nil {
		t.Fatalf("put() after prune error = %v", err)
	}
	if _, ok := cache.get("b.jpg", 2, 2); !ok {
		t.Error("get() miss after post-prune put")
	}
}

func TestNopCache(t *testing.T) {
	cache := nopCache{}

	if err := cache.put("a.jpg", 1, 1, ImageStat{Width: 1}); err != nil {
		t.Errorf("put() error = %v", err)
	}
	if _, ok := cache.get("a.jpg", 1, 1); ok {
		t.Error("nopCache.get() hit, want miss")
	}
	if err := cache.prune(); err != nil {
		t.Errorf("prune() error = %v", err)
	}
	if err := cache.close(); err != nil {
		t.Errorf("close() error = %v", err)
	}
}
