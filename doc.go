// Package dataset provides descriptive statistics over the labeled image
// dataset used by the text2painting project.
//
// The package serves two primary use cases:
//
//  1. Programmatic API via the Analyzer interface - Applications can use
//     NewAnalyzer to create an Analyzer that provides methods for loading
//     the label file, verifying that every listed image exists on disk, and
//     computing per-subset image statistics.
//
//  2. Embeddable CLI via NewCommand - Parent CLI tools can attach a complete
//     "dataset" subcommand tree to their Cobra root command, providing
//     commands like "mytool dataset stats", "mytool dataset verify", etc.
//
// # Statistics
//
// For every image matched by a subset filter the analyzer records the image
// dimensions and the per-channel (RGB, 0-255 scale) color mean and standard
// deviation. Each of those scalar series is then aggregated into its own
// mean and standard deviation across the subset. Scanning is strictly
// sequential: each image file is opened, measured, and released before the
// next one is processed.
//
// # Subsets
//
// A subset is a named partition of the dataset identified by a substring
// match on the image path, e.g. "wikiart" or "deviantart". The built-in
// "all" subset matches every entry.
//
// # Caching
//
// Per-image measurements are cached in a bbolt database keyed by the image's
// relative path and invalidated by file size and modification time, so
// repeated scans do not re-decode unchanged images. The cache location is
// platform-appropriate:
//   - Linux: $XDG_DATA_HOME/<app>/dataset/ or ~/.local/share/<app>/dataset/
//   - macOS: ~/Library/Application Support/<app>/dataset/
//   - Windows: %APPDATA%\<app>\dataset\
//
// The cache location can be overridden via Config.CacheDir or the
// <APPNAME>_CACHE_DIR environment variable.
package dataset
