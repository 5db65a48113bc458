package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultDataDir is used when neither Config.DataDir nor the environment
// override is set. Relative to the working directory, matching the layout
// of the project's data checkout.
const DefaultDataDir = "data"

// cacheDBName is the filename of the measurement cache inside the cache dir.
const cacheDBName = "measurements.db"

// storageInterface defines path resolution and filesystem checks.
// Implemented by *storage; kept as an interface so tests can substitute
// their own resolution.
type storageInterface interface {
	// labelFilePath returns the resolved label file path.
	labelFilePath() string

	// imagePath resolves a label-file relative path to an absolute one.
	imagePath(rel string) string

	// dataRoot returns the resolved data directory.
	dataRoot() string

	// stat returns file info for a path.
	stat(path string) (os.FileInfo, error)

	// cacheDBPath returns the path of the measurement cache database.
	cacheDBPath() string

	// ensureDir creates a directory and all parents if they don't exist.
	ensureDir(path string) error
}

// storage resolves all local filesystem locations.
// Implements storageInterface.
type storage struct {
	// dataDir is the directory image paths are relative to.
	dataDir string

	// labelFile is the label file path.
	labelFile string

	// cacheDir is the measurement cache directory.
	cacheDir string
}

// Ensure storage implements storageInterface.
var _ storageInterface = (*storage)(nil)

// envVarName constructs an environment variable name from the app name.
// Example: envVarName("t2p", "DATA_DIR") returns "T2P_DATA_DIR".
func envVarName(appName, suffix string) string {
	return strings.ToUpper(appName) + "_" + suffix
}

// newStorage resolves the dataset locations for the given configuration.
// Priority for every location: env var > Config field > default.
func newStorage(cfg Config) (*storage, error) {
	dataDir := cfg.DataDir
	if envDir := os.Getenv(envVarName(cfg.AppName, "DATA_DIR")); envDir != "" {
		dataDir = envDir
	}
	if dataDir == "" {
		dataDir = DefaultDataDir
	}

	labelFile := cfg.LabelFile
	if envFile := os.Getenv(envVarName(cfg.AppName, "LABEL_FILE")); envFile != "" {
		labelFile = envFile
	}
	if labelFile == "" {
		return nil, errors.New("dataset: LabelFile is required")
	}

	cacheDir := cfg.CacheDir
	if envCache := os.Getenv(envVarName(cfg.AppName, "CACHE_DIR")); envCache != "" {
		cacheDir = envCache
	}
	if cacheDir == "" {
		defaultDir, err := getDefaultCacheDir(cfg.AppName)
		if err != nil {
			return nil, fmt.Errorf("failed to get default cache dir: %w", err)
		}
		cacheDir = defaultDir
	}

	s := &storage{dataDir: dataDir, labelFile: labelFile, cacheDir: cacheDir}

	if err := s.ensureDir(cacheDir); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return s, nil
}

// labelFilePath returns the resolved label file path.
func (s *storage) labelFilePath() string {
	return s.labelFile
}

// imagePath resolves a label-file relative path to a path under dataDir.
// Label files use forward slashes regardless of platform.
func (s *storage) imagePath(rel string) string {
	return filepath.Join(s.dataDir, filepath.FromSlash(rel))
}

// dataRoot returns the resolved data directory.
func (s *storage) dataRoot() string {
	return s.dataDir
}

// stat returns file info for a path.
func (s *storage) stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// cacheDBPath returns the path of the measurement cache database.
func (s *storage) cacheDBPath() string {
	return filepath.Join(s.cacheDir, cacheDBName)
}

// ensureDir creates a directory and all parent directories if they don't exist.
func (s *storage) ensureDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("%w: failed to create directory %s: %v", ErrStorageError, path, err)
	}
	return nil
}
