// Package config provides the global configuration directory for srcmd.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Dir returns the srcmd configuration directory.
//
// Resolution:
//   - $SRCMD_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/srcmd if set (respects XDG on any platform)
//   - %AppData%/srcmd on Windows
//   - ~/.config/srcmd on macOS and Linux
func Dir() string {
	// Explicit override
	if dir := os.Getenv("SRCMD_CONFIG_HOME"); dir != "" {
		return dir
	}

	// XDG override (works on any platform)
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "srcmd")
	}

	// Windows: use AppData
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "srcmd")
		}
	}

	// macOS and Linux: ~/.config/srcmd
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "srcmd")
}
