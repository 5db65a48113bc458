// Command text2painting is the standalone CLI for the dataset package.
//
// Configuration is loaded from the environment, with an optional .env file
// in the working directory:
//   - T2P_DATA_DIR: directory image paths are relative to (default "data")
//   - T2P_LABEL_FILE: path to the CSV label file (required)
//   - T2P_CACHE_DIR: override for the measurement cache directory (optional)
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	dataset "github.com/tanminggang/text2painting"
)

// CLI exit codes for standardized error reporting.
const (
	// ExitSuccess indicates the operation completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitInvalidArgs indicates invalid command line arguments.
	ExitInvalidArgs = 2

	// ExitLabelFileNotFound indicates the label file does not exist.
	ExitLabelFileNotFound = 3

	// ExitInvalidEntry indicates the label file could not be parsed.
	ExitInvalidEntry = 4

	// ExitNoMatches indicates a subset filter matched no entries.
	ExitNoMatches = 5

	// ExitImageDecode indicates an image could not be opened or decoded.
	ExitImageDecode = 6

	// ExitStorageError indicates a filesystem operation failed.
	ExitStorageError = 7
)

func main() {
	// Load .env if present; the environment itself takes priority.
	_ = godotenv.Load()

	labelFile := os.Getenv("T2P_LABEL_FILE")
	if labelFile == "" {
		fmt.Fprintln(os.Stderr, "Error: T2P_LABEL_FILE environment variable is required")
		os.Exit(ExitInvalidArgs)
	}

	cfg := dataset.Config{
		AppName:   "t2p",
		LabelFile: labelFile,
		// DataDir and CacheDir can be set via T2P_DATA_DIR / T2P_CACHE_DIR
		// (handled by the storage layer)
	}

	cmd := dataset.NewCommand(cfg)
	if err := cmd.Execute(); err != nil {
		os.Exit(exitCodeFromError(err))
	}
}

// exitCodeFromError maps error types to exit codes.
func exitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, dataset.ErrLabelFileNotFound):
		return ExitLabelFileNotFound
	case errors.Is(err, dataset.ErrInvalidEntry):
		return ExitInvalidEntry
	case errors.Is(err, dataset.ErrNoMatches):
		return ExitNoMatches
	case errors.Is(err, dataset.ErrImageDecode):
		return ExitImageDecode
	case errors.Is(err, dataset.ErrStorageError), errors.Is(err, dataset.ErrCacheError):
		return ExitStorageError
	case errors.Is(err, dataset.ErrInvalidSubset):
		return ExitInvalidArgs
	default:
		return ExitGeneralError
	}
}
