// Package main provides the entry point for the srcmd CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calebws/srcmd/internal/bundle"
	"github.com/calebws/srcmd/internal/locate"
	"github.com/calebws/srcmd/internal/output"
	"github.com/calebws/srcmd/internal/project"
)

// bundleOptions holds the flag values for the bundle operation.
type bundleOptions struct {
	root            string
	outPath         string
	includeDotTypes bool
}

// runBundle executes the primary operation: discover candidates, write
// the document, report the result.
func runBundle(cmd *cobra.Command, opts *bundleOptions) error {
	printer := newPrinter(cmd)
	applyEnvDefaults(cmd, opts)

	files, err := discoverCandidates(printer, opts)
	if err != nil {
		return err
	}

	writer := &bundle.Writer{Warn: printer.Warn}
	title := bundle.Title(project.NameFromCandidates(candidatePaths(files)))

	result, err := writer.WriteDocument(files, opts.outPath, title)
	if err != nil {
		printer.Error(err)
		return err
	}

	return reportResult(printer, result)
}

// newPrinter builds a printer wired to the command's streams.
func newPrinter(cmd *cobra.Command) *output.Printer {
	out := cmd.OutOrStdout()
	return output.NewPrinter(out, isJSONMode(cmd), output.IsTTY(out)).
		WithStderr(cmd.ErrOrStderr())
}

// discoverCandidates runs discovery and turns an empty result into the
// no-files error (exit code 2). No output file exists at that point.
func discoverCandidates(printer *output.Printer, opts *bundleOptions) ([]locate.File, error) {
	manifest, err := locate.LoadManifest(opts.root)
	if err != nil {
		userErr := output.NewUserError(err.Error())
		printer.Error(userErr)
		return nil, userErr
	}

	files := locate.Files(locate.Options{
		Root:                opts.root,
		IncludeDeclarations: opts.includeDotTypes,
		Manifest:            manifest,
	})
	if len(files) == 0 {
		noFiles := output.NewNoFilesError("no files found to include")
		printer.Error(noFiles)
		return nil, noFiles
	}
	return files, nil
}

// candidatePaths extracts the path list from discovered files.
func candidatePaths(files []locate.File) []string {
	paths := make([]string, 0, len(files))
	for _, file := range files {
		paths = append(paths, file.Path)
	}
	return paths
}

// reportResult emits the completion summary. The count reflects sections
// actually written, not the pre-filter candidate count.
func reportResult(printer *output.Printer, result bundle.Result) error {
	if printer.IsJSON() {
		return printer.WriteJSON(result)
	}

	message := fmt.Sprintf("Wrote %s with %d files.", result.Output, result.Written)
	if skipped := len(result.Skipped); skipped > 0 {
		message += fmt.Sprintf(" Skipped %d.", skipped)
	}
	return printer.Success(map[string]any{"message": message})
}
