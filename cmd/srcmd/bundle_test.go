// Package main provides the entry point for the srcmd CLI.
package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// newTestProject builds a default-layout project tree and returns its root.
func newTestProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

// isolateEnv keeps global config and env overrides out of the test.
func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SRCMD_CONFIG_HOME", t.TempDir())
	t.Setenv("SRCMD_ROOT", "")
	t.Setenv("SRCMD_OUTPUT", "")
}

// runCommand executes the root command with args and captured streams.
func runCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestBundleCommand_WritesDocument(t *testing.T) {
	isolateEnv(t)
	root := newTestProject(t, map[string]string{
		"worker/src/index.ts": "export const n = 1;\n",
		"wrangler.toml":       "name = \"demo\"\n",
	})
	outPath := filepath.Join(t.TempDir(), "out.md")

	stdout, _, err := runCommand(t, "--root", root, "--output", outPath)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if !strings.Contains(stdout, "Wrote "+outPath+" with 2 files.") {
		t.Errorf("summary = %q", stdout)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	doc := string(data)

	wantContains := []string{
		"# Combined source files - demo",
		"Generated: ",
		"```ts\nexport const n = 1;\n```",
		"```toml\nname = \"demo\"\n```",
	}
	for _, want := range wantContains {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q", want)
		}
	}

	// Path-sorted order: worker/src/index.ts before wrangler.toml.
	if strings.Index(doc, "index.ts") > strings.Index(doc, "wrangler.toml") {
		t.Error("sections out of sorted order")
	}
}

func TestBundleCommand_NoCandidates(t *testing.T) {
	isolateEnv(t)
	outPath := filepath.Join(t.TempDir(), "out.md")

	_, stderr, err := runCommand(t, "--root", t.TempDir(), "--output", outPath)
	if err == nil {
		t.Fatal("expected error for empty discovery")
	}
	if !strings.Contains(stderr, "no files found to include") {
		t.Errorf("stderr = %q", stderr)
	}
	if _, statErr := os.Stat(outPath); !os.IsNotExist(statErr) {
		t.Error("no output file should be written for empty discovery")
	}
}

func TestBundleCommand_JSONResult(t *testing.T) {
	isolateEnv(t)
	root := newTestProject(t, map[string]string{
		"worker/src/index.ts": "export {}\n",
	})
	outPath := filepath.Join(t.TempDir(), "out.md")

	stdout, _, err := runCommand(t, "--json", "--root", root, "--output", outPath)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var result struct {
		Output       string   `json:"output"`
		FilesWritten int      `json:"files_written"`
		Skipped      []string `json:"skipped"`
	}
	if jsonErr := json.Unmarshal([]byte(stdout), &result); jsonErr != nil {
		t.Fatalf("invalid JSON %q: %v", stdout, jsonErr)
	}
	if result.Output != outPath {
		t.Errorf("output = %q, want %q", result.Output, outPath)
	}
	if result.FilesWritten != 1 {
		t.Errorf("files_written = %d, want 1", result.FilesWritten)
	}
}

func TestBundleCommand_IncludeDotTypes(t *testing.T) {
	isolateEnv(t)
	root := newTestProject(t, map[string]string{
		"worker/src/index.ts": "export {}\n",
		"worker/src/env.d.ts": "declare const E: string\n",
	})

	outPath := filepath.Join(t.TempDir(), "default.md")
	if _, _, err := runCommand(t, "--root", root, "--output", outPath); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "env.d.ts") {
		t.Error("declaration file bundled without --include-dot-types")
	}

	outPath = filepath.Join(t.TempDir(), "included.md")
	if _, _, err := runCommand(t, "--root", root, "--output", outPath, "--include-dot-types"); err != nil {
		t.Fatal(err)
	}
	data, err = os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "env.d.ts") {
		t.Error("declaration file missing with --include-dot-types")
	}
}

// The historical flag parses but changes nothing.
func TestBundleCommand_LegacySkipFlag(t *testing.T) {
	isolateEnv(t)
	root := newTestProject(t, map[string]string{
		"worker/src/index.ts": "export {}\n",
		"worker/src/env.d.ts": "declare const E: string\n",
	})
	outPath := filepath.Join(t.TempDir(), "out.md")

	if _, _, err := runCommand(t, "--root", root, "--output", outPath, "--skip-dot-types"); err != nil {
		t.Fatalf("legacy flag should parse: %v", err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "env.d.ts") {
		t.Error("declaration file bundled despite default skip")
	}
}

func TestBundleCommand_SkipsNonText(t *testing.T) {
	isolateEnv(t)
	root := newTestProject(t, map[string]string{
		"worker/src/good.ts": "ok\n",
	})
	badPath := filepath.Join(root, "worker", "src", "bad.ts")
	if err := os.WriteFile(badPath, []byte{0xff, 0xfe, 0x00}, 0o600); err != nil {
		t.Fatal(err)
	}
	outPath := filepath.Join(t.TempDir(), "out.md")

	stdout, stderr, err := runCommand(t, "--root", root, "--output", outPath)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if !strings.Contains(stdout, "with 1 files.") || !strings.Contains(stdout, "Skipped 1.") {
		t.Errorf("summary = %q", stdout)
	}
	if !strings.Contains(stderr, "bad.ts") {
		t.Errorf("stderr should name the skipped file: %q", stderr)
	}

	data, readErr := os.ReadFile(outPath)
	if readErr != nil {
		t.Fatal(readErr)
	}
	if strings.Contains(string(data), "bad.ts") {
		t.Error("skipped file leaked into document")
	}
}

func TestBundleCommand_EnvDefaults(t *testing.T) {
	isolateEnv(t)
	root := newTestProject(t, map[string]string{
		"worker/src/index.ts": "export {}\n",
	})
	outPath := filepath.Join(t.TempDir(), "env-out.md")

	t.Setenv("SRCMD_ROOT", root)
	t.Setenv("SRCMD_OUTPUT", outPath)

	stdout, _, err := runCommand(t)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(stdout, outPath) {
		t.Errorf("summary = %q, want env output path", stdout)
	}
	if _, statErr := os.Stat(outPath); statErr != nil {
		t.Errorf("document not written at env path: %v", statErr)
	}
}

func TestBundleCommand_FlagBeatsEnv(t *testing.T) {
	isolateEnv(t)
	root := newTestProject(t, map[string]string{
		"worker/src/index.ts": "export {}\n",
	})
	flagOut := filepath.Join(t.TempDir(), "flag.md")

	t.Setenv("SRCMD_OUTPUT", filepath.Join(t.TempDir(), "env.md"))

	if _, _, err := runCommand(t, "--root", root, "--output", flagOut); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(flagOut); err != nil {
		t.Errorf("document not written at flag path: %v", err)
	}
}
