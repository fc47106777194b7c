package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/calebws/srcmd/internal/bundle"
	"github.com/calebws/srcmd/internal/locate"
	"github.com/calebws/srcmd/internal/output"
	"github.com/calebws/srcmd/internal/project"
)

// FileInfo is a discovered candidate file.
type FileInfo struct {
	Path        string `json:"path"         jsonschema:"file path as discovered"`
	DisplayPath string `json:"display_path" jsonschema:"path relative to the working directory when possible"`
	Language    string `json:"language"     jsonschema:"Markdown fence language tag"`
}

// --- Scan tool ---

// ScanInput is the input for the scan tool.
type ScanInput struct {
	Root            string `json:"root,omitempty"              jsonschema:"project root to scan (default: working directory)"`
	IncludeDotTypes bool   `json:"include_dot_types,omitempty" jsonschema:"include .d.ts declaration files"`
}

// ScanOutput is the output for the scan tool.
type ScanOutput struct {
	Count int        `json:"count"           jsonschema:"number of candidate files"`
	Files []FileInfo `json:"files,omitempty" jsonschema:"candidate files in bundle order"`
}

func handleScan(_ context.Context, _ *mcp.CallToolRequest, input ScanInput) (*mcp.CallToolResult, ScanOutput, error) {
	files, err := discover(input.Root, input.IncludeDotTypes)
	if err != nil {
		return nil, ScanOutput{}, err
	}

	out := ScanOutput{Count: len(files)}
	for _, file := range files {
		out.Files = append(out.Files, FileInfo{
			Path:        file.Path,
			DisplayPath: locate.DisplayPath(file.Path),
			Language:    file.Language,
		})
	}
	return nil, out, nil
}

// --- Bundle tool ---

// BundleInput is the input for the bundle tool.
type BundleInput struct {
	Root            string `json:"root,omitempty"              jsonschema:"project root to scan (default: working directory)"`
	Output          string `json:"output,omitempty"            jsonschema:"output Markdown path (default: worker_sources.md)"`
	IncludeDotTypes bool   `json:"include_dot_types,omitempty" jsonschema:"include .d.ts declaration files"`
}

// BundleOutput is the output for the bundle tool.
type BundleOutput struct {
	Output       string   `json:"output"            jsonschema:"path of the written document"`
	FilesWritten int      `json:"files_written"     jsonschema:"number of file sections written"`
	Skipped      []string `json:"skipped,omitempty" jsonschema:"files omitted for read or decode failures"`
}

func handleBundle(_ context.Context, _ *mcp.CallToolRequest, input BundleInput) (*mcp.CallToolResult, BundleOutput, error) {
	files, err := discover(input.Root, input.IncludeDotTypes)
	if err != nil {
		return nil, BundleOutput{}, err
	}
	if len(files) == 0 {
		return nil, BundleOutput{}, output.NewNoFilesError("no files found to include")
	}

	outPath := input.Output
	if outPath == "" {
		outPath = "worker_sources.md"
	}

	writer := &bundle.Writer{}
	result, err := writer.WriteDocument(files, outPath, bundle.Title(projectName(files)))
	if err != nil {
		return nil, BundleOutput{}, fmt.Errorf("writing document: %w", err)
	}

	return nil, BundleOutput{
		Output:       result.Output,
		FilesWritten: result.Written,
		Skipped:      result.Skipped,
	}, nil
}

// --- Helpers ---

// discover resolves the manifest for a root and runs discovery.
func discover(root string, includeDotTypes bool) ([]locate.File, error) {
	if root == "" {
		root = "."
	}
	manifest, err := locate.LoadManifest(root)
	if err != nil {
		return nil, fmt.Errorf("loading manifest: %w", err)
	}
	return locate.Files(locate.Options{
		Root:                root,
		IncludeDeclarations: includeDotTypes,
		Manifest:            manifest,
	}), nil
}

// projectName probes the candidates for a TOML config naming the project.
func projectName(files []locate.File) string {
	paths := make([]string, 0, len(files))
	for _, file := range files {
		paths = append(paths, file.Path)
	}
	return project.NameFromCandidates(paths)
}
