//go:build linux

package dataset

import (
	"os"
	"path/filepath"
)

// getDefaultCacheDir returns the default cache directory for Linux.
// Uses $XDG_DATA_HOME/<appName>/dataset/ if set,
// otherwise ~/.local/share/<appName>/dataset/
func getDefaultCacheDir(appName string) (string, error) {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, appName, "dataset"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName, "dataset"), nil
}
