package dataset

import "strings"

// Config configures the dataset module.
type Config struct {
	// AppName determines the cache directory name and the prefix of the
	// environment variables the module honors.
	// Example: "t2p" → ~/.local/share/t2p/dataset/ on Linux
	AppName string

	// DataDir is the directory image paths in the label file are relative to.
	// Can also be set via environment variable: <APPNAME>_DATA_DIR
	DataDir string

	// LabelFile is the path to the CSV label file. Each line's first
	// comma-delimited field is an image path relative to DataDir; the
	// remaining fields are label words.
	// Can also be set via environment variable: <APPNAME>_LABEL_FILE
	LabelFile string

	// CacheDir overrides the default measurement cache directory.
	// If empty, uses platform-appropriate default.
	// Can also be set via environment variable: <APPNAME>_CACHE_DIR
	CacheDir string
}

// Entry is a single label-file line: an image path and its label words.
type Entry struct {
	// Path is the image path relative to the data directory.
	Path string `json:"path"`

	// Labels are the remaining comma-delimited fields of the line.
	Labels []string `json:"labels,omitempty"`
}

// Subset is a named partition of the dataset selected by a substring match
// on the image path. A Subset with an empty Pattern matches every entry.
type Subset struct {
	// Name identifies the subset in reports, e.g. "wikiart".
	Name string `json:"name"`

	// Pattern is the substring an entry's path must contain.
	// Empty matches everything.
	Pattern string `json:"pattern,omitempty"`
}

// Matches reports whether the entry path belongs to the subset.
func (s Subset) Matches(path string) bool {
	if s.Pattern == "" {
		return true
	}
	return strings.Contains(path, s.Pattern)
}

// String returns the canonical string form: "name=pattern".
// If Name equals Pattern (or Pattern is empty), returns just the name.
func (s Subset) String() string {
	if s.Pattern == "" || s.Pattern == s.Name {
		return s.Name
	}
	return s.Name + "=" + s.Pattern
}

// DefaultSubsets are the partitions reported by ScanAll when the caller does
// not register its own: the whole dataset plus the two source sites.
var DefaultSubsets = []Subset{
	{Name: "all"},
	{Name: "wikiart", Pattern: "wikiart"},
	{Name: "deviantart", Pattern: "deviantart"},
}

// ParseSubset parses "name", "name=pattern", or "all" into a Subset.
// A bare name doubles as its own pattern; "all" matches everything.
// Returns ErrInvalidSubset if the format is invalid.
func ParseSubset(s string) (Subset, error) {
	if s == "" {
		return Subset{}, ErrInvalidSubset
	}

	if idx := strings.Index(s, "="); idx != -1 {
		name := s[:idx]
		pattern := s[idx+1:]
		if name == "" || pattern == "" {
			return Subset{}, ErrInvalidSubset
		}
		return Subset{Name: name, Pattern: pattern}, nil
	}

	if s == "all" {
		return Subset{Name: "all"}, nil
	}
	return Subset{Name: s, Pattern: s}, nil
}

// ImageStat holds the measurements taken from a single image.
type ImageStat struct {
	// Width and Height are the image dimensions in pixels.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Mean is the per-channel color mean in RGB order, 0-255 scale.
	Mean [3]float64 `json:"mean"`

	// Std is the per-channel color standard deviation in RGB order,
	// 0-255 scale (population standard deviation).
	Std [3]float64 `json:"std"`
}

// SeriesStats is the aggregate of one scalar series across a subset.
type SeriesStats struct {
	// Mean is the arithmetic mean of the series.
	Mean float64 `json:"mean"`

	// Std is the population standard deviation of the series.
	Std float64 `json:"std"`
}

// SubsetSummary aggregates the per-image measurements of one subset.
type SubsetSummary struct {
	// Subset identifies the partition the summary describes.
	Subset Subset `json:"subset"`

	// Count is the number of images measured. It equals the number of
	// entries matched by the subset filter minus len(Failed).
	Count int `json:"count"`

	// Width and Height aggregate the dimension series.
	Width  SeriesStats `json:"width"`
	Height SeriesStats `json:"height"`

	// Mean aggregates the per-channel color mean series, RGB order.
	Mean [3]SeriesStats `json:"channel_mean"`

	// Std aggregates the per-channel color std series, RGB order.
	Std [3]SeriesStats `json:"channel_std"`

	// CacheHits is the number of images served from the measurement cache.
	CacheHits int `json:"cache_hits"`

	// Failed lists paths that could not be decoded. Only populated when
	// scanning with WithKeepGoing; otherwise the first failure aborts.
	Failed []string `json:"failed,omitempty"`
}

// SubsetSeries holds the raw per-image measurement series of one subset.
// All slices have equal length: the number of images measured.
type SubsetSeries struct {
	// Subset identifies the partition the series describe.
	Subset Subset `json:"subset"`

	// Widths and Heights are the dimension series in pixels.
	Widths  []float64 `json:"widths"`
	Heights []float64 `json:"heights"`

	// Means holds the per-channel color mean series, RGB order.
	Means [3][]float64 `json:"means"`

	// Stds holds the per-channel color std series, RGB order.
	Stds [3][]float64 `json:"stds"`

	// CacheHits is the number of measurements served from cache.
	CacheHits int `json:"cache_hits"`

	// Failed lists paths that could not be decoded (WithKeepGoing only).
	Failed []string `json:"failed,omitempty"`
}

// Count returns the number of images measured.
func (s SubsetSeries) Count() int {
	return len(s.Widths)
}

// DatasetInfo holds dataset-level facts.
type DatasetInfo struct {
	// Entries is the number of lines in the label file.
	Entries int `json:"entries"`

	// LabelWords is the size of the label vocabulary (unique words).
	LabelWords int `json:"label_words"`

	// DataDir is the resolved data directory.
	DataDir string `json:"data_dir"`

	// LabelFile is the resolved label file path.
	LabelFile string `json:"label_file"`

	// Subsets are the registered subsets.
	Subsets []Subset `json:"subsets"`
}

// VerifyReport lists label-file entries without a backing file on disk.
type VerifyReport struct {
	// Total is the number of entries in the label file.
	Total int `json:"total"`

	// Missing holds the relative paths of entries whose file does not exist.
	Missing []string `json:"missing,omitempty"`
}

// OK reports whether every entry resolved to an existing file.
func (r VerifyReport) OK() bool {
	return len(r.Missing) == 0
}

// ScanProgress reports progress during a Scan operation.
type ScanProgress struct {
	// Matched is the number of entries selected by the subset filter.
	Matched int

	// Scanned is the number of images measured so far.
	Scanned int

	// CacheHits is the number of measurements served from cache so far.
	CacheHits int

	// CurrentFile is the relative path of the image being processed.
	CurrentFile string
}
