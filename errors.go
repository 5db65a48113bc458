package dataset

import "errors"

// Sentinel errors for dataset analysis operations.
// Use errors.Is() to check for specific error conditions.
var (
	// ErrLabelFileNotFound indicates the label file does not exist.
	ErrLabelFileNotFound = errors.New("dataset: label file not found")

	// ErrInvalidEntry indicates a label-file line could not be parsed.
	ErrInvalidEntry = errors.New("dataset: invalid label entry")

	// ErrInvalidSubset indicates an invalid subset specification.
	ErrInvalidSubset = errors.New("dataset: invalid subset")

	// ErrNoMatches indicates no entry matched the subset filter.
	ErrNoMatches = errors.New("dataset: no entries match subset")

	// ErrImageDecode indicates an image could not be opened or decoded.
	ErrImageDecode = errors.New("dataset: image decode failed")

	// ErrStorageError indicates a filesystem operation failed.
	ErrStorageError = errors.New("dataset: storage error")

	// ErrCacheError indicates the measurement cache could not be used.
	ErrCacheError = errors.New("dataset: cache error")
)
