package locate

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadManifest_Defaults(t *testing.T) {
	t.Setenv("SRCMD_CONFIG_HOME", t.TempDir())

	manifest, err := LoadManifest(t.TempDir())
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if !reflect.DeepEqual(manifest, DefaultManifest()) {
		t.Errorf("LoadManifest() = %+v, want defaults", manifest)
	}
}

func TestLoadManifest_RootFile(t *testing.T) {
	t.Setenv("SRCMD_CONFIG_HOME", t.TempDir())

	root := t.TempDir()
	content := "scan_dirs: [src]\nextensions: [\".go\"]\nextras: [go.mod]\n"
	if err := os.WriteFile(filepath.Join(root, ManifestName), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	manifest, err := LoadManifest(root)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}

	if !reflect.DeepEqual(manifest.ScanDirs, []string{"src"}) {
		t.Errorf("ScanDirs = %v", manifest.ScanDirs)
	}
	if !reflect.DeepEqual(manifest.Extensions, []string{".go"}) {
		t.Errorf("Extensions = %v", manifest.Extensions)
	}
	if !reflect.DeepEqual(manifest.Extras, []string{"go.mod"}) {
		t.Errorf("Extras = %v", manifest.Extras)
	}
}

func TestLoadManifest_PartialFileFillsDefaults(t *testing.T) {
	t.Setenv("SRCMD_CONFIG_HOME", t.TempDir())

	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, ManifestName), []byte("scan_dirs: [app]\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	manifest, err := LoadManifest(root)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}

	if !reflect.DeepEqual(manifest.ScanDirs, []string{"app"}) {
		t.Errorf("ScanDirs = %v, want override", manifest.ScanDirs)
	}
	defaults := DefaultManifest()
	if !reflect.DeepEqual(manifest.Extensions, defaults.Extensions) {
		t.Errorf("Extensions = %v, want defaults", manifest.Extensions)
	}
	if !reflect.DeepEqual(manifest.Extras, defaults.Extras) {
		t.Errorf("Extras = %v, want defaults", manifest.Extras)
	}
}

func TestLoadManifest_GlobalFallback(t *testing.T) {
	configDir := t.TempDir()
	t.Setenv("SRCMD_CONFIG_HOME", configDir)
	if err := os.WriteFile(filepath.Join(configDir, "srcmd.yaml"), []byte("scan_dirs: [global]\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	manifest, err := LoadManifest(t.TempDir())
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if !reflect.DeepEqual(manifest.ScanDirs, []string{"global"}) {
		t.Errorf("ScanDirs = %v, want global manifest override", manifest.ScanDirs)
	}
}

func TestLoadManifest_RootBeatsGlobal(t *testing.T) {
	configDir := t.TempDir()
	t.Setenv("SRCMD_CONFIG_HOME", configDir)
	if err := os.WriteFile(filepath.Join(configDir, "srcmd.yaml"), []byte("scan_dirs: [global]\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, ManifestName), []byte("scan_dirs: [local]\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	manifest, err := LoadManifest(root)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if !reflect.DeepEqual(manifest.ScanDirs, []string{"local"}) {
		t.Errorf("ScanDirs = %v, want root manifest to win", manifest.ScanDirs)
	}
}

func TestLoadManifest_InvalidYAML(t *testing.T) {
	t.Setenv("SRCMD_CONFIG_HOME", t.TempDir())

	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, ManifestName), []byte("scan_dirs: [unterminated\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadManifest(root); err == nil {
		t.Error("expected error for invalid manifest YAML")
	}
}

func TestMatchesExtension(t *testing.T) {
	manifest := DefaultManifest()

	tests := []struct {
		path string
		want bool
	}{
		{"index.ts", true},
		{"App.tsx", true},
		{"INDEX.TS", true},
		{"styles.css", false},
		{"notes.md", false},
		{"Makefile", false},
	}

	for _, tt := range tests {
		if got := manifest.matchesExtension(tt.path); got != tt.want {
			t.Errorf("matchesExtension(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
