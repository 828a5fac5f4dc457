package store

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// appName names the per-user data directory.
const appName = "launchpad"

// SettingsFile is the default settings file name inside the data directory.
const SettingsFile = "settings.json"

// DataDir returns the platform-appropriate writable data directory and
// creates it if missing. $LAUNCHPAD_DATA_DIR overrides the platform default.
func DataDir() (string, error) {
	dir := resolveDataDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}
	return dir, nil
}

// DataFile joins the data directory with the provided relative name.
func DataFile(name string) (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

func resolveDataDir() string {
	if custom := os.Getenv("LAUNCHPAD_DATA_DIR"); custom != "" {
		return custom
	}

	switch runtime.GOOS {
	case "windows":
		if base := os.Getenv("APPDATA"); base != "" {
			return filepath.Join(base, appName)
		}
		if base := os.Getenv("LOCALAPPDATA"); base != "" {
			return filepath.Join(base, appName)
		}
	case "darwin":
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, "Library", "Application Support", appName)
		}
	default:
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, appName)
		}
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, ".local", "share", appName)
		}
	}

	return filepath.Join(".", appName)
}
