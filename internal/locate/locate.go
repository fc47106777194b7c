// Package locate discovers the candidate files to bundle into a document.
package locate

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/calebws/srcmd/internal/lang"
)

// declSuffix marks TypeScript declaration files, which carry type
// information but no implementation.
const declSuffix = ".d.ts"

// Options controls discovery.
type Options struct {
	// Root is the project root to scan. It need not exist; a missing
	// root simply yields no matches.
	Root string

	// IncludeDeclarations includes .d.ts files from the recursive scan.
	// Extras are never filtered by this flag.
	IncludeDeclarations bool

	// Manifest overrides the scan locations. Nil means DefaultManifest.
	Manifest *Manifest
}

// File is a candidate selected by discovery.
type File struct {
	// Path is the file location, root-joined as discovered.
	Path string

	// Language is the Markdown fence tag for the file.
	Language string
}

// Files returns the candidate files under opts.Root, deduplicated by
// canonical path and sorted ascending by the lowercase path string so
// repeated runs produce identical ordering across platforms.
//
// Discovery never fails: a missing scan directory or absent extra file
// contributes zero candidates. The caller decides how to treat an empty
// result.
func Files(opts Options) []File {
	manifest := opts.Manifest
	if manifest == nil {
		manifest = DefaultManifest()
	}

	var paths []string
	for _, dir := range manifest.ScanDirs {
		paths = append(paths, scanTree(filepath.Join(opts.Root, dir), manifest, opts.IncludeDeclarations)...)
	}
	paths = append(paths, presentExtras(opts.Root, manifest.Extras)...)

	paths = dedupe(paths)
	sort.Slice(paths, func(i, j int) bool {
		return strings.ToLower(paths[i]) < strings.ToLower(paths[j])
	})

	files := make([]File, 0, len(paths))
	for _, path := range paths {
		files = append(files, File{Path: path, Language: lang.TagFor(path)})
	}
	return files
}

// scanTree walks dir recursively and returns files matching the manifest
// extensions. A missing or unreadable directory yields nothing.
func scanTree(dir string, manifest *Manifest, includeDecls bool) []string {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil
	}

	var paths []string
	_ = filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtree: contribute nothing from it.
			if entry != nil && entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.IsDir() {
			return nil
		}
		if !manifest.matchesExtension(path) {
			return nil
		}
		if !includeDecls && strings.HasSuffix(strings.ToLower(entry.Name()), declSuffix) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	return paths
}

// presentExtras returns the root-level extra files that exist.
func presentExtras(root string, extras []string) []string {
	var paths []string
	for _, name := range extras {
		path := filepath.Join(root, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			paths = append(paths, path)
		}
	}
	return paths
}

// dedupe removes paths that resolve to the same canonical location.
// Overlapping scan patterns or an extra inside a scanned tree would
// otherwise produce duplicate sections.
func dedupe(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	result := paths[:0]
	for _, path := range paths {
		key := canonical(path)
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, path)
	}
	return result
}

// canonical returns the absolute cleaned form of a path for identity
// comparison. Falls back to the cleaned path if the cwd is unavailable.
func canonical(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

// DisplayPath returns the path to show in document headings: relative to
// the current working directory when possible, otherwise the path as given.
func DisplayPath(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(cwd, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
