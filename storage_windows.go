//go:build windows

package dataset

import (
	"os"
	"path/filepath"
)

// getDefaultCacheDir returns the default cache directory for Windows.
// Returns %APPDATA%\<appName>\dataset\
func getDefaultCacheDir(appName string) (string, error) {
	appData := os.Getenv("APPDATA")
	if appData == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		appData = filepath.Join(home, "AppData", "Roaming")
	}
	return filepath.Join(appData, appName, "dataset"), nil
}
