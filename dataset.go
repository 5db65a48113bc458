package dataset

import (
	"context"
	"errors"
)

// Analyzer provides programmatic access to dataset analysis.
// All methods are safe for concurrent use.
// For CLI integration, use NewCommand instead.
type Analyzer interface {
	// Entries loads and parses the label file.
	// Returns ErrLabelFileNotFound if the label file does not exist.
	Entries(ctx context.Context) ([]Entry, error)

	// Verify resolves every entry to a filesystem path and reports the
	// entries whose file does not exist. A missing file is part of the
	// report, not an error.
	Verify(ctx context.Context) (VerifyReport, error)

	// Subsets returns the subsets ScanAll reports on.
	Subsets() []Subset

	// Collect opens every image matched by the subset filter, strictly
	// sequentially, and returns the raw per-image measurement series.
	// Returns ErrNoMatches if the filter selects no entries, and a wrapped
	// ErrImageDecode on the first undecodable image unless WithKeepGoing
	// is specified.
	Collect(ctx context.Context, subset Subset, opts ...ScanOption) (SubsetSeries, error)

	// Scan is Collect followed by aggregation: the mean and standard
	// deviation of each measurement series across the subset.
	Scan(ctx context.Context, subset Subset, opts ...ScanOption) (SubsetSummary, error)

	// ScanAll runs Scan for every registered subset, in order.
	ScanAll(ctx context.Context, opts ...ScanOption) ([]SubsetSummary, error)

	// Info returns dataset-level facts: entry count, label vocabulary size,
	// and the resolved data locations.
	Info(ctx context.Context) (DatasetInfo, error)

	// PruneCache removes all cached image measurements.
	PruneCache(ctx context.Context) error

	// Close releases the measurement cache. The Analyzer must not be used
	// after Close.
	Close() error
}

// Ensure analyzer implements Analyzer interface.
var _ Analyzer = (*analyzer)(nil)

// NewAnalyzer creates a new Analyzer with the given configuration.
// Returns an error if the configuration is invalid (empty AppName or
// LabelFile with no environment override).
func NewAnalyzer(cfg Config, opts ...AnalyzerOption) (Analyzer, error) {
	if cfg.AppName == "" {
		return nil, errors.New("dataset: AppName is required")
	}

	// Apply options
	acfg := newAnalyzerConfig()
	for _, opt := range opts {
		opt(acfg)
	}

	// Create storage (resolves data dir, label file and cache dir,
	// honoring environment overrides)
	st, err := newStorage(cfg)
	if err != nil {
		return nil, err
	}

	// Open the measurement cache unless disabled
	var cache statCache = nopCache{}
	if !acfg.disableCache {
		cache, err = newBoltCache(st.cacheDBPath())
		if err != nil {
			// A broken cache must not block analysis.
			if acfg.logger != nil {
				acfg.logger.Warn("measurement cache unavailable", "error", err)
			}
			cache = nopCache{}
		}
	}

	return &analyzer{
		cfg:     cfg,
		logger:  acfg.logger,
		subsets: acfg.subsets,
		storage: st,
		cache:   cache,
	}, nil
}
