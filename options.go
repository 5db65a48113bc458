package dataset

// ScanOption configures a scan operation.
type ScanOption func(*scanConfig)

// scanConfig holds configuration for a scan operation.
type scanConfig struct {
	// keepGoing records undecodable images instead of aborting.
	keepGoing bool

	// limit caps the number of images measured. Zero means no limit.
	limit int

	// noCache bypasses the measurement cache for both reads and writes.
	noCache bool

	// progressFn is called with progress updates during the scan.
	progressFn func(ScanProgress)
}

// newScanConfig returns a scanConfig with default values.
func newScanConfig() *scanConfig {
	return &scanConfig{}
}

// WithKeepGoing records images that fail to decode in SubsetSummary.Failed
// and continues scanning instead of aborting on the first failure.
func WithKeepGoing() ScanOption {
	return func(c *scanConfig) {
		c.keepGoing = true
	}
}

// WithLimit caps the number of images measured per subset.
// Useful for quick sampling during exploration. Values below 1 disable
// the limit.
func WithLimit(n int) ScanOption {
	return func(c *scanConfig) {
		if n < 1 {
			n = 0
		}
		c.limit = n
	}
}

// WithNoCache bypasses the measurement cache: every image is decoded and
// measured even when a cached measurement exists, and nothing is stored.
func WithNoCache() ScanOption {
	return func(c *scanConfig) {
		c.noCache = true
	}
}

// WithProgress sets a callback for progress updates during a scan.
// The callback is invoked from the scanning goroutine, once per image.
func WithProgress(fn func(ScanProgress)) ScanOption {
	return func(c *scanConfig) {
		c.progressFn = fn
	}
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*analyzerConfig)

// analyzerConfig holds configuration for Analyzer construction.
type analyzerConfig struct {
	// logger receives diagnostic log messages.
	logger Logger

	// subsets overrides DefaultSubsets for ScanAll.
	subsets []Subset

	// disableCache turns off the measurement cache entirely.
	disableCache bool
}

// newAnalyzerConfig returns an analyzerConfig with default values.
func newAnalyzerConfig() *analyzerConfig {
	return &analyzerConfig{
		subsets: DefaultSubsets,
	}
}

// WithLogger sets a logger for diagnostic output.
// If not set, logging is disabled.
func WithLogger(logger Logger) AnalyzerOption {
	return func(c *analyzerConfig) {
		c.logger = logger
	}
}

// WithSubsets overrides the default subsets reported by ScanAll.
func WithSubsets(subsets ...Subset) AnalyzerOption {
	return func(c *analyzerConfig) {
		if len(subsets) > 0 {
			c.subsets = subsets
		}
	}
}

// WithoutCache disables the measurement cache for the whole Analyzer.
// No cache database is opened or created.
func WithoutCache() AnalyzerOption {
	return func(c *analyzerConfig) {
		c.disableCache = true
	}
}

// Logger is the interface for diagnostic logging.
// Compatible with slog, zap, logrus, and other structured loggers.
type Logger interface {
	// Debug logs a debug-level message with optional key-value pairs.
	Debug(msg string, keysAndValues ...any)

	// Info logs an info-level message with optional key-value pairs.
	Info(msg string, keysAndValues ...any)

	// Warn logs a warning-level message with optional key-value pairs.
	Warn(msg string, keysAndValues ...any)

	// Error logs an error-level message with optional key-value pairs.
	Error(msg string, keysAndValues ...any)
}
