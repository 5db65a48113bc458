//go:build darwin

package dataset

import (
	"os"
	"path/filepath"
)

// getDefaultCacheDir returns the default cache directory for macOS.
// Returns ~/Library/Application Support/<appName>/dataset/
func getDefaultCacheDir(appName string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Library", "Application Support", appName, "dataset"), nil
}
