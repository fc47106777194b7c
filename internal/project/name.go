// Package project extracts light metadata about the scanned project.
package project

import (
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// tomlConfig is the subset of the root TOML config srcmd cares about.
// wrangler.toml carries the worker name at the top level.
type tomlConfig struct {
	Name string `toml:"name"`
}

// Name returns the project name declared in a root TOML config, or ""
// when the file is missing, unparseable, or has no name key. The probe
// is best-effort: it only decorates the document title and never fails
// a run.
func Name(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}

	var cfg tomlConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return ""
	}
	return strings.TrimSpace(cfg.Name)
}

// NameFromCandidates probes the first TOML file among the given paths.
func NameFromCandidates(paths []string) string {
	for _, path := range paths {
		if !strings.HasSuffix(strings.ToLower(path), ".toml") {
			continue
		}
		if name := Name(path); name != "" {
			return name
		}
	}
	return ""
}
