// Package main provides the entry point for the srcmd CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/calebws/srcmd/internal/locate"
)

// scanFileInfo is the JSON shape for one scanned candidate.
type scanFileInfo struct {
	Path        string `json:"path"`
	DisplayPath string `json:"display_path"`
	Language    string `json:"language"`
}

// newScanCmd creates the scan command, which lists candidates without
// writing a document.
func newScanCmd() *cobra.Command {
	opts := &bundleOptions{}

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "List the files that would be bundled",
		Long: `List the candidate files discovery selects under the project root,
in the order they would appear in the document, without writing anything.

Examples:
  srcmd scan                       # table of candidates under the cwd
  srcmd scan --root ../api --json  # structured list for tooling`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScan(cmd, opts)
		},
	}

	addDiscoveryFlags(cmd, opts)
	return cmd
}

// runScan executes the scan command.
func runScan(cmd *cobra.Command, opts *bundleOptions) error {
	printer := newPrinter(cmd)
	applyEnvDefaults(cmd, opts)

	files, err := discoverCandidates(printer, opts)
	if err != nil {
		return err
	}

	if printer.IsJSON() {
		infos := make([]scanFileInfo, 0, len(files))
		for _, file := range files {
			infos = append(infos, scanFileInfo{
				Path:        file.Path,
				DisplayPath: locate.DisplayPath(file.Path),
				Language:    file.Language,
			})
		}
		return printer.WriteJSON(infos)
	}

	rows := make([][]string, 0, len(files))
	for _, file := range files {
		rows = append(rows, []string{locate.DisplayPath(file.Path), file.Language})
	}
	printer.Table([]string{"PATH", "LANG"}, rows)
	printer.Stderr("%d candidate files\n", len(files))
	return nil
}
