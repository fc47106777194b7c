package locate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/calebws/srcmd/internal/config"
)

// ManifestName is the per-project manifest filename, looked up at the root.
const ManifestName = ".srcmd.yaml"

// globalManifestName is the fallback manifest in the config directory.
const globalManifestName = "srcmd.yaml"

// Manifest describes where discovery looks. Zero-value fields fall back
// to the built-in defaults, so a manifest may override just one of them.
type Manifest struct {
	// ScanDirs are root-relative directories scanned recursively.
	ScanDirs []string `yaml:"scan_dirs"`

	// Extensions are the file extensions included from scanned trees,
	// dot-prefixed (".ts"). Matching is case-insensitive.
	Extensions []string `yaml:"extensions"`

	// Extras are root-level files included unconditionally when present.
	Extras []string `yaml:"extras"`
}

// DefaultManifest returns the built-in discovery layout: TypeScript
// sources under worker/src plus the root wrangler and vitest configs.
func DefaultManifest() *Manifest {
	return &Manifest{
		ScanDirs:   []string{filepath.Join("worker", "src")},
		Extensions: []string{".ts", ".tsx"},
		Extras:     []string{"wrangler.toml", "vitest.config.ts"},
	}
}

// LoadManifest resolves the manifest for a project root.
//
// Resolution order:
//  1. <root>/.srcmd.yaml
//  2. <configdir>/srcmd.yaml
//  3. built-in defaults
//
// A manifest file that exists but fails to parse is an error; a missing
// manifest is not.
func LoadManifest(root string) (*Manifest, error) {
	if manifest, err := readManifest(filepath.Join(root, ManifestName)); err != nil || manifest != nil {
		return manifest, err
	}

	if dir := config.Dir(); dir != "" {
		if manifest, err := readManifest(filepath.Join(dir, globalManifestName)); err != nil || manifest != nil {
			return manifest, err
		}
	}

	return DefaultManifest(), nil
}

// readManifest parses a manifest file, returning (nil, nil) if absent.
func readManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	manifest := &Manifest{}
	if err := yaml.Unmarshal(data, manifest); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	manifest.applyDefaults()
	return manifest, nil
}

// applyDefaults fills unset fields from the built-in layout.
func (m *Manifest) applyDefaults() {
	defaults := DefaultManifest()
	if len(m.ScanDirs) == 0 {
		m.ScanDirs = defaults.ScanDirs
	}
	if len(m.Extensions) == 0 {
		m.Extensions = defaults.Extensions
	}
	if len(m.Extras) == 0 {
		m.Extras = defaults.Extras
	}
}

// matchesExtension reports whether a path carries one of the manifest
// extensions, case-insensitively.
func (m *Manifest) matchesExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range m.Extensions {
		if ext == strings.ToLower(want) {
			return true
		}
	}
	return false
}
