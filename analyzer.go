package dataset

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// analyzer is the concrete implementation of the Analyzer interface.
type analyzer struct {
	// cfg holds the module configuration.
	cfg Config

	// logger receives diagnostic messages. May be nil.
	logger Logger

	// subsets are the partitions ScanAll reports on.
	subsets []Subset

	// storage resolves dataset locations on the local filesystem.
	storage storageInterface

	// cache stores per-image measurements between runs.
	cache statCache

	// scanMu serializes scans; the measurement loop itself is strictly
	// sequential, one image open at a time.
	scanMu sync.Mutex
}

// Entries loads and parses the label file.
func (a *analyzer) Entries(ctx context.Context) ([]Entry, error) {
	return loadLabelFile(a.storage.labelFilePath())
}

// Verify resolves every entry and reports the ones without a file on disk.
func (a *analyzer) Verify(ctx context.Context) (VerifyReport, error) {
	entries, err := a.Entries(ctx)
	if err != nil {
		return VerifyReport{}, err
	}

	report := VerifyReport{Total: len(entries)}
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return VerifyReport{}, err
		}
		if _, err := a.storage.stat(a.storage.imagePath(e.Path)); err != nil {
			report.Missing = append(report.Missing, e.Path)
		}
	}

	return report, nil
}

// Subsets returns the registered subsets.
func (a *analyzer) Subsets() []Subset {
	out := make([]Subset, len(a.subsets))
	copy(out, a.subsets)
	return out
}

// Collect measures every image matched by the subset filter, sequentially.
func (a *analyzer) Collect(ctx context.Context, subset Subset, opts ...ScanOption) (SubsetSeries, error) {
	cfg := newScanConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	entries, err := a.Entries(ctx)
	if err != nil {
		return SubsetSeries{}, err
	}

	var matched []Entry
	for _, e := range entries {
		if subset.Matches(e.Path) {
			matched = append(matched, e)
		}
	}
	if len(matched) == 0 {
		return SubsetSeries{}, fmt.Errorf("%w: %s", ErrNoMatches, subset)
	}
	if cfg.limit > 0 && len(matched) > cfg.limit {
		matched = matched[:cfg.limit]
	}

	a.scanMu.Lock()
	defer a.scanMu.Unlock()

	series := SubsetSeries{Subset: subset}
	for _, e := range matched {
		if err := ctx.Err(); err != nil {
			return SubsetSeries{}, err
		}

		if cfg.progressFn != nil {
			cfg.progressFn(ScanProgress{
				Matched:     len(matched),
				Scanned:     series.Count(),
				CacheHits:   series.CacheHits,
				CurrentFile: e.Path,
			})
		}

		st, hit, err := a.measure(e.Path, cfg.noCache)
		if err != nil {
			if cfg.keepGoing {
				if a.logger != nil {
					a.logger.Warn("skipping unreadable image", "path", e.Path, "error", err)
				}
				series.Failed = append(series.Failed, e.Path)
				continue
			}
			return SubsetSeries{}, err
		}
		if hit {
			series.CacheHits++
		}

		series.Widths = append(series.Widths, float64(st.Width))
		series.Heights = append(series.Heights, float64(st.Height))
		for i := 0; i < 3; i++ {
			series.Means[i] = append(series.Means[i], st.Mean[i])
			series.Stds[i] = append(series.Stds[i], st.Std[i])
		}
	}

	if cfg.progressFn != nil {
		cfg.progressFn(ScanProgress{
			Matched:   len(matched),
			Scanned:   series.Count(),
			CacheHits: series.CacheHits,
		})
	}

	return series, nil
}

// measure returns the measurement for one image, consulting the cache first.
// The second return value reports whether the measurement came from cache.
func (a *analyzer) measure(rel string, noCache bool) (ImageStat, bool, error) {
	path := a.storage.imagePath(rel)

	fi, err := a.storage.stat(path)
	if err != nil {
		return ImageStat{}, false, fmt.Errorf("%w: %s: %v", ErrImageDecode, rel, err)
	}
	size := fi.Size()
	mtime := fi.ModTime().UnixNano()

	if !noCache {
		if st, ok := a.cache.get(rel, size, mtime); ok {
			return st, true, nil
		}
	}

	st, err := measureFile(path)
	if err != nil {
		return ImageStat{}, false, err
	}

	if !noCache {
		if err := a.cache.put(rel, size, mtime, st); err != nil && a.logger != nil {
			a.logger.Warn("failed to cache measurement", "path", rel, "error", err)
		}
	}

	return st, false, nil
}

// Scan is Collect followed by aggregation.
func (a *analyzer) Scan(ctx context.Context, subset Subset, opts ...ScanOption) (SubsetSummary, error) {
	series, err := a.Collect(ctx, subset, opts...)
	if err != nil {
		return SubsetSummary{}, err
	}
	return summarize(series), nil
}

// ScanAll runs Scan for every registered subset, in order. A subset that
// matches no entries yields a zero-count summary rather than an error.
func (a *analyzer) ScanAll(ctx context.Context, opts ...ScanOption) ([]SubsetSummary, error) {
	summaries := make([]SubsetSummary, 0, len(a.subsets))
	for _, subset := range a.subsets {
		summary, err := a.Scan(ctx, subset, opts...)
		if err != nil {
			if errors.Is(err, ErrNoMatches) {
				if a.logger != nil {
					a.logger.Info("subset matched no entries", "subset", subset.String())
				}
				summaries = append(summaries, SubsetSummary{Subset: subset})
				continue
			}
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// Info returns dataset-level facts.
func (a *analyzer) Info(ctx context.Context) (DatasetInfo, error) {
	entries, err := a.Entries(ctx)
	if err != nil {
		return DatasetInfo{}, err
	}

	return DatasetInfo{
		Entries:    len(entries),
		LabelWords: labelVocabulary(entries),
		DataDir:    a.storage.dataRoot(),
		LabelFile:  a.storage.labelFilePath(),
		Subsets:    a.Subsets(),
	}, nil
}

// PruneCache removes all cached image measurements.
func (a *analyzer) PruneCache(ctx context.Context) error {
	return a.cache.prune()
}

// Close releases the measurement cache.
func (a *analyzer) Close() error {
	return a.cache.close()
}
